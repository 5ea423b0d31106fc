package integrations

import (
	"fmt"
	"strings"

	"github.com/ai-cli-labs/mcpctl/internal/platform"
	"github.com/samber/lo"
)

// ToolName identifies a supported AI tool integration.
type ToolName string

const (
	Claude  ToolName = "claude"
	Codex   ToolName = "codex"
	Copilot ToolName = "copilot"
)

// Method is how a server is registered with a tool.
type Method int

const (
	// MethodCLI runs `<bin> mcp remove/add` on the tool's own CLI.
	MethodCLI Method = iota
	// MethodComposeConfig writes the tool's config file inside the compose service.
	MethodComposeConfig
)

func (m Method) String() string {
	switch m {
	case MethodCLI:
		return "cli"
	case MethodComposeConfig:
		return "compose-config"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ToolConfig describes one integration.
type ToolConfig struct {
	Label  string
	Method Method
	// DefaultBin is the CLI binary when no wrapper or override applies.
	DefaultBin string
}

// AllTools returns all supported tool names in registration order.
func AllTools() []ToolName {
	return []ToolName{Claude, Codex, Copilot}
}

var toolRegistry = map[ToolName]ToolConfig{
	Claude: {
		Label:      "Claude",
		Method:     MethodCLI,
		DefaultBin: "claude",
	},
	Codex: {
		Label:      "Codex",
		Method:     MethodCLI,
		DefaultBin: "codex",
	},
	Copilot: {
		Label:  "Github Copilot",
		Method: MethodComposeConfig,
	},
}

// Lookup returns the config for tool.
func Lookup(tool ToolName) (ToolConfig, bool) {
	cfg, ok := toolRegistry[tool]
	return cfg, ok
}

// Label returns the display label for tool, or the raw name if unknown.
func (t ToolName) Label() string {
	if cfg, ok := toolRegistry[t]; ok {
		return cfg.Label
	}
	return string(t)
}

// ParseToolName converts a string to a ToolName, returning false if invalid.
func ParseToolName(s string) (ToolName, bool) {
	switch s {
	case "claude":
		return Claude, true
	case "codex":
		return Codex, true
	case "copilot":
		return Copilot, true
	default:
		return "", false
	}
}

// ParseToolList parses names such as ["claude", "codex,copilot"] into a
// de-duplicated list ordered like AllTools.
func ParseToolList(values []string) ([]ToolName, error) {
	var parts []string
	for _, v := range values {
		parts = append(parts, strings.Split(v, ",")...)
	}
	parts = lo.Compact(lo.Map(parts, func(p string, _ int) string {
		return strings.ToLower(strings.TrimSpace(p))
	}))
	if len(parts) == 0 {
		return AllTools(), nil
	}

	selected := make(map[ToolName]bool, len(parts))
	for _, p := range parts {
		name, ok := ParseToolName(p)
		if !ok {
			return nil, fmt.Errorf("unknown tool %q: supported tools are %s", p, strings.Join(lo.Map(AllTools(), func(t ToolName, _ int) string { return string(t) }), ", "))
		}
		selected[name] = true
	}
	return lo.Filter(AllTools(), func(t ToolName, _ int) bool { return selected[t] }), nil
}

// ResolveBinary returns the executable used for a CLI tool: a <tool>.cmd
// wrapper in scriptsDir when present, else override, else the default binary.
func ResolveBinary(tool ToolName, scriptsDir, override string) string {
	if wrapper := platform.FindWrapper(scriptsDir, string(tool)); wrapper != "" {
		return wrapper
	}
	if override != "" {
		return override
	}
	if cfg, ok := toolRegistry[tool]; ok && cfg.DefaultBin != "" {
		return cfg.DefaultBin
	}
	return string(tool)
}
