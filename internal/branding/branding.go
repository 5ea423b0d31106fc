// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults apply when a key is missing.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName        string `yaml:"cli_name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	HomeDir        string `yaml:"home_dir"`
	EnvPrefix      string `yaml:"env_prefix"`
	ComposeService string `yaml:"compose_service"`
	ComposeVolume  string `yaml:"compose_volume"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:        "mcpctl",
			DisplayName:    "mcpctl",
			Description:    "Register MCP servers with AI coding-assistant CLIs",
			HomeDir:        ".mcpctl",
			EnvPrefix:      "MCPCTL",
			ComposeService: "ai-cli",
			ComposeVolume:  "ai-cli_home:/root",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "mcpctl").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".mcpctl").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "MCPCTL").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ComposeService returns the docker compose service that hosts the CLIs.
func ComposeService() string { load(); return defaults.ComposeService }

// ComposeVolume returns the volume mapping where CLI state (and any registered
// env vars) is persisted inside the container.
func ComposeVolume() string { load(); return defaults.ComposeVolume }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "MCPCTL_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
