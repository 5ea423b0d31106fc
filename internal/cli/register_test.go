package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ai-cli-labs/mcpctl/internal/runtime"
	"github.com/ai-cli-labs/mcpctl/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestRegisterCommand_AllTools(t *testing.T) {
	env := setupCLI(t)

	stdout, stderr, err := env.execute(t, "register", "--name", "playwright", "--", "npx", "@playwright/mcp@latest")
	if err != nil {
		t.Fatalf("unexpected error: %v (stderr %q)", err, stderr)
	}

	cmds := env.Fake.Commands()
	if len(cmds) != 5 {
		t.Fatalf("got %d commands, want 5: %v", len(cmds), cmds)
	}
	want := []string{
		"claude mcp remove playwright",
		"claude mcp add playwright -- npx @playwright/mcp@latest",
		"codex mcp remove playwright",
		"codex mcp add playwright -- npx @playwright/mcp@latest",
	}
	if diff := cmp.Diff(want, cmds[:4]); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	docker := env.Fake.Calls[4]
	if docker.Name != "docker" {
		t.Errorf("copilot step ran %q, want docker", docker.Name)
	}
	wantPrefix := []string{"compose", "--project-directory", env.Dir, "-f", filepath.Join(env.Dir, "docker-compose.yml"), "run", "--rm", "-v"}
	if diff := cmp.Diff(wantPrefix, docker.Args[:len(wantPrefix)]); diff != "" {
		t.Errorf("docker args mismatch (-want +got):\n%s", diff)
	}
	if got := strings.Join(docker.Args[len(docker.Args)-4:], " "); got != "--entrypoint bash ai-cli /tmp/setup-mcp.sh" {
		t.Errorf("docker args tail = %q", got)
	}

	if !strings.Contains(stdout, "Registration complete for all CLIs") {
		t.Errorf("stdout missing success banner:\n%s", stdout)
	}
	if strings.Contains(stdout, "[WARNING]") {
		t.Error("unexpected env warning without env vars")
	}
}

func TestRegisterCommand_FailureExitCode(t *testing.T) {
	env := setupCLI(t)
	env.Fake.Queue("claude", testutil.Result{}, testutil.Result{Output: runtime.Output{ExitCode: 1}})

	stdout, stderr, err := env.execute(t, "register", "--name", "srv", "--", "srv-bin")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("error = %v, want ExitError code 1", err)
	}
	if exitErr.Err != nil {
		t.Errorf("ExitError should carry no message, got %v", exitErr.Err)
	}
	if stderr != "[ERROR] Claude: MCP registration failed.\n" {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stdout, "[OK] Codex: MCP 'srv' registered") {
		t.Errorf("codex should still run:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Registration completed with errors") {
		t.Errorf("stdout missing error banner:\n%s", stdout)
	}
}

func TestRegisterCommand_Only(t *testing.T) {
	env := setupCLI(t)

	stdout, _, err := env.execute(t, "register", "--name", "srv", "--only", "codex", "--", "srv-bin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"codex mcp remove srv", "codex mcp add srv -- srv-bin"}
	if diff := cmp.Diff(want, env.Fake.Commands()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(stdout, "[1/1] Registering for Codex...") {
		t.Errorf("unexpected step numbering:\n%s", stdout)
	}
}

func TestRegisterCommand_ToolsFromConfig(t *testing.T) {
	env := setupCLI(t)
	env.writeFile(t, env.ConfigPath, "register:\n  tools: claude\nclaude:\n  bin: /opt/claude/bin/claude\n")

	if _, _, err := env.execute(t, "register", "--name", "srv", "--", "srv-bin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"/opt/claude/bin/claude mcp remove srv", "/opt/claude/bin/claude mcp add srv -- srv-bin"}
	if diff := cmp.Diff(want, env.Fake.Commands()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterCommand_UnknownTool(t *testing.T) {
	env := setupCLI(t)

	_, _, err := env.execute(t, "register", "--name", "srv", "--only", "cursor", "--", "srv-bin")
	if err == nil || !strings.Contains(err.Error(), `unknown tool "cursor"`) {
		t.Fatalf("error = %v, want unknown tool", err)
	}
	if len(env.Fake.Calls) != 0 {
		t.Errorf("no commands should run, got %v", env.Fake.Commands())
	}
}

func TestRegisterCommand_EnvFile(t *testing.T) {
	env := setupCLI(t)
	envFile := env.writeFile(t, "mcp.env", "# github\nexport GITHUB_TOKEN=ghp_abc\n")

	stdout, _, err := env.execute(t, "register", "--name", "github", "--only", "claude",
		"--env-file", envFile, "--env", "LOG_LEVEL=debug", "--", "python3", "/opt/mcp/github-mcp.py")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantArgs := []string{"mcp", "add", "github", "--", "bash", "-c",
		"export GITHUB_TOKEN=ghp_abc; export LOG_LEVEL=debug; python3 /opt/mcp/github-mcp.py"}
	if diff := cmp.Diff(wantArgs, env.Fake.Calls[1].Args); diff != "" {
		t.Errorf("add args mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(stdout, "in Docker volume 'ai-cli_home:/root'") {
		t.Errorf("stdout missing plaintext warning:\n%s", stdout)
	}
}

func TestRegisterCommand_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing name", []string{"register", "--", "srv-bin"}},
		{"missing command", []string{"register", "--name", "srv"}},
		{"bad env", []string{"register", "--name", "srv", "--env", "NOVALUE", "--", "srv-bin"}},
		{"name with space", []string{"register", "--name", "my srv", "--", "srv-bin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCLI(t)
			stdout, _, err := env.execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if len(env.Fake.Calls) != 0 {
				t.Errorf("no commands should run, got %v", env.Fake.Commands())
			}
			if stdout != "" {
				t.Errorf("unexpected output %q", stdout)
			}
		})
	}
}

func TestRegisterCommand_Wrapper(t *testing.T) {
	env := setupCLI(t)
	wrapper := env.writeFile(t, filepath.Join(env.ScriptsDir, "claude.cmd"), "#!/bin/sh\n")

	if _, _, err := env.execute(t, "register", "--name", "srv", "--only", "claude", "--", "srv-bin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range env.Fake.Calls {
		if c.Name != wrapper {
			t.Errorf("ran %q, want wrapper %q", c.Name, wrapper)
		}
	}
}

func TestCollectEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	env := (&cliEnv{Dir: dir}).writeFile(t, path, "A=1\n\nB=\nC=3\nE=\"two words\"\nF=''\n")

	got, err := collectEnv(env, []string{"D=4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"A=1", "C=3", "E=two words", "D=4"}, got); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}

	if _, err := collectEnv(filepath.Join(dir, "missing.env"), nil); err == nil {
		t.Error("expected error for missing env file")
	}
}
