// Package cli wires the mcpctl commands. One file per command: register,
// playwright, probe, tools, doctor, config and version. Shared state built by
// the root command (settings, logger, process runner) lives in root.go, and
// the constructors that turn settings into runtime objects live in wiring.go.
package cli
