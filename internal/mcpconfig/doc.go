// Package mcpconfig builds and validates the JSON documents mcpctl produces or
// consumes: the Github Copilot CLI mcp-config.json written into the container,
// and the playwright-mcp.json launcher settings. Both are checked against JSON
// Schemas embedded in the binary.
package mcpconfig
