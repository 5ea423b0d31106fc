package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ai-cli-labs/mcpctl/internal/branding"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyLogLevel          = "log.level"
	KeyClaudeBin         = "claude.bin"
	KeyCodexBin          = "codex.bin"
	KeyRegisterTools     = "register.tools"
	KeyComposeProjectDir = "compose.project_dir"
	KeyComposeFile       = "compose.file"
	KeyComposeService    = "compose.service"
	KeyComposeVolume     = "compose.volume"
	KeyDockerBin         = "docker.bin"
	KeyNpmBin            = "npm.bin"
	KeyNpxBin            = "npx.bin"
	KeyNpmAttempts       = "npm.attempts"
	KeyNpmRetryDelay     = "npm.retry_delay"
	KeyPlaywrightConfig  = "playwright.config"
	KeyPlaywrightMinVer  = "playwright.min_version"
	KeyPlaywrightExtra   = "playwright.extra_args"
	KeyProbeTimeout      = "probe.timeout"
)

// Settings is the typed view of the merged config file, environment and defaults.
type Settings struct {
	Log        LogSettings        `mapstructure:"log"`
	Claude     BinarySettings     `mapstructure:"claude"`
	Codex      BinarySettings     `mapstructure:"codex"`
	Register   RegisterSettings   `mapstructure:"register"`
	Compose    ComposeSettings    `mapstructure:"compose"`
	Docker     BinarySettings     `mapstructure:"docker"`
	Npm        NpmSettings        `mapstructure:"npm"`
	Npx        BinarySettings     `mapstructure:"npx"`
	Playwright PlaywrightSettings `mapstructure:"playwright"`
	Probe      ProbeSettings      `mapstructure:"probe"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

// BinarySettings names the executable used for an external tool.
type BinarySettings struct {
	Bin string `mapstructure:"bin"`
}

type RegisterSettings struct {
	Tools []string `mapstructure:"tools"`
}

// ComposeSettings locates the docker compose project that hosts the CLIs.
type ComposeSettings struct {
	ProjectDir string `mapstructure:"project_dir"`
	File       string `mapstructure:"file"`
	Service    string `mapstructure:"service"`
	Volume     string `mapstructure:"volume"`
}

type NpmSettings struct {
	Bin        string        `mapstructure:"bin"`
	Attempts   int           `mapstructure:"attempts"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

type PlaywrightSettings struct {
	Config     string   `mapstructure:"config"`
	MinVersion string   `mapstructure:"min_version"`
	ExtraArgs  []string `mapstructure:"extra_args"`
}

type ProbeSettings struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Dir returns the path to the config directory (~/.mcpctl/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.mcpctl/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// ScriptsDir returns the directory holding the running executable. Wrapper
// scripts (claude.cmd, codex.cmd) and playwright-mcp.json are looked up there.
func ScriptsDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyClaudeBin, "claude")
	viper.SetDefault(KeyCodexBin, "codex")
	viper.SetDefault(KeyRegisterTools, "claude,codex,copilot")
	viper.SetDefault(KeyComposeProjectDir, "")
	viper.SetDefault(KeyComposeFile, "docker-compose.yml")
	viper.SetDefault(KeyComposeService, branding.ComposeService())
	viper.SetDefault(KeyComposeVolume, branding.ComposeVolume())
	viper.SetDefault(KeyDockerBin, "docker")
	viper.SetDefault(KeyNpmBin, "npm")
	viper.SetDefault(KeyNpxBin, "npx")
	viper.SetDefault(KeyNpmAttempts, 1)
	viper.SetDefault(KeyNpmRetryDelay, "2s")
	viper.SetDefault(KeyPlaywrightConfig, "")
	viper.SetDefault(KeyPlaywrightMinVer, "")
	viper.SetDefault(KeyPlaywrightExtra, "")
	viper.SetDefault(KeyProbeTimeout, "30s")
}

// Load initializes Viper to read from the config file and environment.
// An empty path selects the default file under Dir().
func Load(path string) {
	if path == "" {
		path = FilePath()
	}
	setDefaults()
	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current decodes the loaded configuration into Settings.
func Current() (*Settings, error) {
	var s Settings
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(&s, hook); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	s.Register.Tools = trimEmpty(s.Register.Tools)
	s.Playwright.ExtraArgs = trimEmpty(s.Playwright.ExtraArgs)
	if s.Npm.Attempts < 1 {
		s.Npm.Attempts = 1
	}
	return &s, nil
}

// ResolveProjectDir returns the compose project directory, defaulting to
// the parent of scriptsDir.
func (c ComposeSettings) ResolveProjectDir(scriptsDir string) string {
	if c.ProjectDir != "" {
		return c.ProjectDir
	}
	return filepath.Dir(scriptsDir)
}

// ResolveFile returns the compose file path, resolved against projectDir
// when relative.
func (c ComposeSettings) ResolveFile(projectDir string) string {
	if filepath.IsAbs(c.File) {
		return c.File
	}
	return filepath.Join(projectDir, c.File)
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	viper.Set(key, value)

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = FilePath()
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", filepath.Dir(configFile), err)
	}

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func trimEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
