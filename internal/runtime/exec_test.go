package runtime

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
}

func TestExecRunner_CapturesAndStreams(t *testing.T) {
	requireSh(t)

	var stdout, stderr bytes.Buffer
	r := &ExecRunner{}
	out, err := r.Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", "echo out; echo err >&2"},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", out.ExitCode)
	}
	if out.Stdout != "out\n" || stdout.String() != "out\n" {
		t.Errorf("stdout captured %q, streamed %q", out.Stdout, stdout.String())
	}
	if out.Stderr != "err\n" || stderr.String() != "err\n" {
		t.Errorf("stderr captured %q, streamed %q", out.Stderr, stderr.String())
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireSh(t)

	r := &ExecRunner{}
	out, err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 42"}})
	if err != nil {
		t.Fatalf("non-zero exit should not be an error: %v", err)
	}
	if out.ExitCode != 42 {
		t.Errorf("exit code = %d, want 42", out.ExitCode)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	r := &ExecRunner{}
	_, err := r.Run(context.Background(), Command{Name: "mcpctl-definitely-not-installed"})
	if err == nil {
		t.Fatal("expected error for missing binary, got nil")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want a not found error", err)
	}
}

func TestExecRunner_EnvAndStdin(t *testing.T) {
	requireSh(t)

	r := &ExecRunner{}
	out, err := r.Run(context.Background(), Command{
		Name:  "sh",
		Args:  []string{"-c", `read line; echo "$GREETING $line"`},
		Env:   []string{"GREETING=hello", "PATH=/usr/bin:/bin"},
		Stdin: strings.NewReader("world\n"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Stdout != "hello world\n" {
		t.Errorf("stdout = %q, want %q", out.Stdout, "hello world\n")
	}
}

func TestExecRunner_CancelTerminates(t *testing.T) {
	requireSh(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	r := &ExecRunner{GracePeriod: time.Second}
	start := time.Now()
	out, err := r.Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 30"}})
	if time.Since(start) > 10*time.Second {
		t.Fatal("cancelled command was not terminated")
	}
	if err == nil && out.ExitCode == 0 {
		t.Error("expected cancelled command to report failure")
	}
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "bash", Args: []string{"-c", "export A=1; run me"}}
	if got, want := c.String(), `bash -c 'export A=1; run me'`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
