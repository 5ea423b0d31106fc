package cli

import (
	"github.com/ai-cli-labs/mcpctl/internal/config"
	"github.com/ai-cli-labs/mcpctl/internal/integrations"
	"github.com/ai-cli-labs/mcpctl/internal/runtime"
)

func newNode(s *config.Settings) *runtime.Node {
	return &runtime.Node{
		Runner:     runner,
		NpmBin:     s.Npm.Bin,
		NpxBin:     s.Npx.Bin,
		Attempts:   s.Npm.Attempts,
		RetryDelay: s.Npm.RetryDelay,
		Logger:     logger,
	}
}

func newCompose(s *config.Settings) *runtime.Compose {
	dir := s.Compose.ResolveProjectDir(scriptsDir())
	return &runtime.Compose{
		Runner:     runner,
		DockerBin:  s.Docker.Bin,
		ProjectDir: dir,
		File:       s.Compose.ResolveFile(dir),
		Service:    s.Compose.Service,
	}
}

// toolBinary resolves the executable for a CLI-registered tool.
func toolBinary(s *config.Settings, tool integrations.ToolName) string {
	var override string
	switch tool {
	case integrations.Claude:
		override = s.Claude.Bin
	case integrations.Codex:
		override = s.Codex.Bin
	}
	return integrations.ResolveBinary(tool, scriptsDir(), override)
}
