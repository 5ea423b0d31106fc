// Package config manages user-level settings stored at ~/.mcpctl/config.yaml.
// Values can be overridden with MCPCTL_* environment variables (dots become
// underscores, e.g. MCPCTL_CLAUDE_BIN). Current decodes everything into a
// typed Settings value.
package config
