package playwright

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ai-cli-labs/mcpctl/internal/runtime"
	"go.uber.org/zap"
)

const (
	// PackageName is the npm package providing the server.
	PackageName = "@playwright/mcp"
	// DefaultDisplay points headed browsers at an X server on the Docker host.
	DefaultDisplay = "host.docker.internal:0.0"
)

// ErrVersionUnknown is returned when the installed package version cannot
// be determined.
var ErrVersionUnknown = errors.New("could not determine " + PackageName + " version")

// baseArgs are passed to @playwright/mcp on every launch.
var baseArgs = []string{"--browser", "chromium", "--isolated", "--no-sandbox"}

// Launcher resolves and starts the Playwright MCP server.
type Launcher struct {
	Node   *runtime.Node
	Runner runtime.Runner

	// MinVersion, when set, rejects older installed versions.
	MinVersion string
	// ExtraArgs are appended after the standard flags.
	ExtraArgs []string
	// Environ returns the base environment; defaults to os.Environ.
	Environ func() []string

	Stdin  io.Reader
	Stdout io.Writer
	// Stderr receives every diagnostic line. Stdout is reserved for the
	// MCP protocol stream.
	Stderr io.Writer
	Logger *zap.Logger
}

// Command resolves the package version and builds the npx invocation,
// including the DISPLAY environment for headed mode.
func (l *Launcher) Command(ctx context.Context, s *Settings) (runtime.Command, error) {
	version, err := l.Node.GlobalPackageVersion(ctx, PackageName)
	if err != nil {
		l.logger().Debug("version lookup failed", zap.Error(err))
		fmt.Fprintf(l.Stderr, "Could not determine %s version\n", PackageName)
		return runtime.Command{}, fmt.Errorf("%w: %v", ErrVersionUnknown, err)
	}
	fmt.Fprintf(l.Stderr, "Found %s version via npm ls\n", PackageName)

	if err := runtime.CheckMinVersion(version, l.MinVersion); err != nil {
		return runtime.Command{}, fmt.Errorf("%s: %w", PackageName, err)
	}

	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}
	env := environ()
	if s.Headed {
		display := s.Display
		if display == "" {
			display = DefaultDisplay
		}
		env = runtime.SetEnv(env, "DISPLAY", display)
	}

	args := append([]string{}, baseArgs...)
	if !s.Headed {
		args = append(args, "--headless")
	}
	args = append(args, l.ExtraArgs...)

	cmd := l.Node.NpxCommand(PackageName, version, args...)
	cmd.Env = env
	return cmd, nil
}

// Run launches the server and blocks until it exits, returning its exit
// code. Cancelling ctx terminates the server.
func (l *Launcher) Run(ctx context.Context, s *Settings) (int, error) {
	cmd, err := l.Command(ctx, s)
	if err != nil {
		return 1, err
	}

	display, ok := runtime.LookupEnv(cmd.Env, "DISPLAY")
	if !ok {
		display = "<unset>"
	}
	line := strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
	fmt.Fprintf(l.Stderr, "[playwright-mcp] Starting %s (DISPLAY=%s)\n", line, display)
	l.logger().Info("starting playwright mcp",
		zap.String("command", line),
		zap.Bool("headed", s.Headed),
		zap.String("display", display))

	cmd.Passthrough = true
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	out, err := l.Runner.Run(ctx, cmd)
	if err != nil {
		return 1, err
	}
	if out.ExitCode < 0 {
		// Terminated by a signal.
		return 1, nil
	}
	return out.ExitCode, nil
}

func (l *Launcher) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}
