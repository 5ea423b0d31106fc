package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// DefaultGracePeriod is how long a cancelled process gets between SIGTERM
// and SIGKILL.
const DefaultGracePeriod = 5 * time.Second

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// GracePeriod overrides DefaultGracePeriod when non-zero.
	GracePeriod time.Duration
}

// Run starts the command and waits for it. Cancelling ctx sends SIGTERM, then
// kills the process once the grace period expires.
func (r *ExecRunner) Run(ctx context.Context, c Command) (*Output, error) {
	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return nil, fmt.Errorf("%s not found: %w", c.Name, err)
	}

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = r.GracePeriod
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultGracePeriod
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	if c.Passthrough {
		cmd.Stdin = c.Stdin
		cmd.Stdout = orDefault(c.Stdout, os.Stdout)
		cmd.Stderr = orDefault(c.Stderr, os.Stderr)
	} else {
		cmd.Stdin = c.Stdin
		cmd.Stdout = tee(c.Stdout, &stdoutBuf)
		cmd.Stderr = tee(c.Stderr, &stderrBuf)
	}

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("executing %s: %w", c.Name, err)
	}

	return output, nil
}

func tee(w io.Writer, buf *bytes.Buffer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(w, buf)
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
