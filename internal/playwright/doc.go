// Package playwright launches the @playwright/mcp browser automation server.
// It reads headed/display settings from playwright-mcp.json, pins the npx
// invocation to the globally installed package version reported by npm, and
// runs the server with stdio passed through so it can act as an MCP stdio
// server for whichever CLI spawned it.
package playwright
