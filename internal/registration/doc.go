// Package registration registers one MCP server with every supported AI
// coding-assistant CLI. Claude and Codex are driven through their own
// `mcp remove`/`mcp add` commands. Github Copilot has no such command, so a
// generated bash script writes ~/.copilot/mcp-config.json inside the docker
// compose service that hosts the CLIs. Environment variables for the server
// are baked into the command line with a `bash -c 'export ...; <cmd>'`
// wrapper, which means they end up in plaintext in the container's home
// volume.
package registration
