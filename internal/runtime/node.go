package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v5"
	"go.uber.org/zap"
)

// ErrPackageNotInstalled is returned when npm reports no global install of
// the requested package.
var ErrPackageNotInstalled = errors.New("package is not installed globally")

// Node wraps the npm and npx binaries.
type Node struct {
	Runner Runner
	NpmBin string
	NpxBin string

	// Attempts is the number of npm ls attempts; values below 1 mean one.
	Attempts   int
	RetryDelay time.Duration

	Logger *zap.Logger
}

// npmList is the subset of `npm ls --json` output we read.
type npmList struct {
	Dependencies map[string]struct {
		Version string `json:"version"`
	} `json:"dependencies"`
}

// GlobalPackageVersion returns the version of a globally installed package,
// as reported by `npm ls -g <pkg> --json --depth=0`. The version must be
// valid semver.
func (n *Node) GlobalPackageVersion(ctx context.Context, pkg string) (string, error) {
	attempts := n.Attempts
	if attempts < 1 {
		attempts = 1
	}
	logger := n.logger()

	var version string
	var lastErr error
	err := retry.New(
		retry.Attempts(uint(attempts)),
		retry.Delay(n.RetryDelay),
		retry.Context(ctx),
	).Do(func() error {
		version, lastErr = n.listGlobal(ctx, pkg)
		if lastErr != nil {
			logger.Debug("npm ls failed", zap.String("package", pkg), zap.Error(lastErr))
		}
		return lastErr
	})
	if err != nil {
		if lastErr != nil {
			return "", lastErr
		}
		return "", err
	}
	return version, nil
}

func (n *Node) listGlobal(ctx context.Context, pkg string) (string, error) {
	out, err := n.Runner.Run(ctx, Command{
		Name: orName(n.NpmBin, "npm"),
		Args: []string{"ls", "-g", pkg, "--json", "--depth=0"},
	})
	if err != nil {
		return "", err
	}
	if out.ExitCode != 0 {
		return "", fmt.Errorf("npm ls exited with code %d", out.ExitCode)
	}

	var list npmList
	if err := json.Unmarshal([]byte(out.Stdout), &list); err != nil {
		return "", fmt.Errorf("parsing npm ls output: %w", err)
	}
	dep, ok := list.Dependencies[pkg]
	if !ok || dep.Version == "" {
		return "", fmt.Errorf("%s: %w", pkg, ErrPackageNotInstalled)
	}
	if _, err := ParseVersion(dep.Version); err != nil {
		return "", fmt.Errorf("npm reported invalid version %q for %s: %w", dep.Version, pkg, err)
	}
	return dep.Version, nil
}

// NpxCommand builds `npx --yes <pkg>@<version> <args...>`.
func (n *Node) NpxCommand(pkg, version string, args ...string) Command {
	return Command{
		Name: orName(n.NpxBin, "npx"),
		Args: append([]string{"--yes", pkg + "@" + version}, args...),
	}
}

func (n *Node) logger() *zap.Logger {
	if n.Logger == nil {
		return zap.NewNop()
	}
	return n.Logger
}

func orName(name, def string) string {
	if name == "" {
		return def
	}
	return name
}
