package registration

import (
	"context"
	"fmt"
	"io"

	"github.com/ai-cli-labs/mcpctl/internal/integrations"
	"github.com/ai-cli-labs/mcpctl/internal/runtime"
	"go.uber.org/zap"
)

// CLIRegistrar registers a server through a CLI that has `mcp add` and
// `mcp remove` subcommands (Claude, Codex).
type CLIRegistrar struct {
	ToolName integrations.ToolName
	Bin      string
	Runner   runtime.Runner

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

func (r *CLIRegistrar) Tool() integrations.ToolName { return r.ToolName }

// Register removes any existing entry named req.Name, ignoring the outcome,
// then adds `<name> -- <argv...>`.
func (r *CLIRegistrar) Register(ctx context.Context, req *Request, inv Invocation) error {
	logger := orNop(r.Logger).With(zap.String("tool", string(r.ToolName)), zap.String("bin", r.Bin))

	remove := runtime.Command{Name: r.Bin, Args: []string{"mcp", "remove", req.Name}}
	if out, err := r.Runner.Run(ctx, remove); err != nil {
		logger.Debug("mcp remove failed", zap.Error(err))
	} else if out.ExitCode != 0 {
		logger.Debug("mcp remove exited non-zero", zap.Int("exit_code", out.ExitCode))
	}

	argv, err := inv.Argv()
	if err != nil {
		return err
	}

	add := runtime.Command{
		Name:   r.Bin,
		Args:   append([]string{"mcp", "add", req.Name, "--"}, argv...),
		Stdin:  r.Stdin,
		Stdout: r.Stdout,
		Stderr: r.Stderr,
	}
	logger.Debug("adding mcp server",
		zap.String("server", req.Name),
		zap.String("command", redactedLine(req)))

	out, err := r.Runner.Run(ctx, add)
	if err != nil {
		return err
	}
	if out.ExitCode != 0 {
		return fmt.Errorf("%s mcp add exited with code %d", r.Bin, out.ExitCode)
	}
	return nil
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
