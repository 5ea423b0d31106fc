package runtime

import (
	"context"
	"io"

	"github.com/kballard/go-shellquote"
)

// Command describes a single process invocation.
type Command struct {
	Name string
	Args []string

	// Env is the full environment for the process. Nil inherits the
	// current process environment.
	Env []string
	Dir string

	Stdin io.Reader
	// Stdout and Stderr receive a live copy of the process output. Nil
	// writers only capture into Output.
	Stdout io.Writer
	Stderr io.Writer

	// Passthrough connects Stdin/Stdout/Stderr directly to the process
	// without capturing. Used for long-running stdio servers.
	Passthrough bool
}

// String renders the command as a shell-quoted line.
func (c Command) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// Output captures the result of a finished process. Stdout and Stderr are
// empty for passthrough commands.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes commands. A process that starts and exits non-zero is not
// an error: the exit code is reported in Output. Errors are reserved for
// processes that could not be started or waited on.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Output, error)
}
