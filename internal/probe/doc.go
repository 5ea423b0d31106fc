// Package probe starts an MCP server, performs the initialize handshake and
// lists the tools it advertises. It is used to check that a command works as
// an MCP stdio server before registering it with the assistant CLIs.
package probe
