package mcpconfig

import (
	"encoding/json"
	"fmt"
)

// ServerTypeLocal marks a server the Copilot CLI starts as a local process.
const ServerTypeLocal = "local"

// CopilotConfig is the document stored at ~/.copilot/mcp-config.json.
type CopilotConfig struct {
	MCPServers map[string]CopilotServer `json:"mcpServers"`
}

// CopilotServer is one entry under mcpServers.
type CopilotServer struct {
	Type    string   `json:"type"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Tools   []string `json:"tools"`
}

// NewCopilotConfig returns a config holding a single local server that
// exposes all of its tools.
func NewCopilotConfig(name, command string, args []string) *CopilotConfig {
	if args == nil {
		args = []string{}
	}
	return &CopilotConfig{
		MCPServers: map[string]CopilotServer{
			name: {
				Type:    ServerTypeLocal,
				Command: command,
				Args:    args,
				Tools:   []string{"*"},
			},
		},
	}
}

// Marshal renders the config as indented JSON and validates it against the
// embedded schema.
func (c *CopilotConfig) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling copilot config: %w", err)
	}
	result, err := ValidateCopilot(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("copilot config is invalid: %s", result.Summary())
	}
	return data, nil
}
