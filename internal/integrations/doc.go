// Package integrations names the AI coding-assistant CLIs that MCP servers are
// registered with (Claude, Codex, Github Copilot) and how each one is reached:
// through its own CLI binary, or through a config file written inside the
// docker compose service.
package integrations
