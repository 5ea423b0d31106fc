package registration

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Invocation is the shell command line a CLI stores for the server.
type Invocation struct {
	Line string
	// Wrapped is true when Line is a `bash -c` wrapper exporting env vars.
	Wrapped bool
}

// BuildInvocation joins command into a shell line. With env vars present the
// line becomes `bash -c '<export K=V; ...; command>'`.
func BuildInvocation(command, env []string) Invocation {
	if len(env) == 0 {
		return Invocation{Line: shellquote.Join(command...)}
	}
	return Invocation{
		Line:    shellquote.Join("bash", "-c", ExportScript(command, env)),
		Wrapped: true,
	}
}

// ExportScript renders `export K=V; export K2=V2; <command>`. Values are
// shell-quoted.
func ExportScript(command, env []string) string {
	parts := make([]string, 0, len(env)+1)
	for _, e := range env {
		key, value, _ := strings.Cut(e, "=")
		parts = append(parts, "export "+key+"="+shellquote.Join(value))
	}
	parts = append(parts, shellquote.Join(command...))
	return strings.Join(parts, "; ")
}

// Argv splits Line back into arguments using shell rules.
func (i Invocation) Argv() ([]string, error) {
	argv, err := shellquote.Split(i.Line)
	if err != nil {
		return nil, fmt.Errorf("splitting command line: %w", err)
	}
	return argv, nil
}

// CopilotCommand returns the executable and arguments stored in the Copilot
// config: the command itself, or bash with the export script when env vars
// are present.
func CopilotCommand(command, env []string) (string, []string) {
	if len(env) > 0 {
		return "bash", []string{"-c", ExportScript(command, env)}
	}
	if len(command) == 0 {
		return "", []string{}
	}
	return command[0], append([]string{}, command[1:]...)
}
