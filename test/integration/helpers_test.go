//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds the isolated directories for one test.
type testEnv struct {
	BinDir     string // stub executables, first on PATH
	HomeDir    string // HOME for the stubs and the setup script
	ProjectDir string // compose project directory
	LogFile    string // every stub appends its argv here
}

// setupTestEnv creates isolated temp directories and points PATH and HOME at
// them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}

	root := t.TempDir()
	env := &testEnv{
		BinDir:     filepath.Join(root, "bin"),
		HomeDir:    filepath.Join(root, "home"),
		ProjectDir: filepath.Join(root, "project"),
		LogFile:    filepath.Join(root, "calls.log"),
	}
	for _, dir := range []string{env.BinDir, env.HomeDir, env.ProjectDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}

	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("STUB_LOG", env.LogFile)
	return env
}

// writeStub installs an executable bash script named name on PATH.
func (e *testEnv) writeStub(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(e.BinDir, name)
	writeFile(t, path, "#!/bin/bash\n"+body)
	if err := os.Chmod(path, 0755); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
	return path
}

// recordingStub logs its argv and exits with code.
func recordingStub(code string) string {
	return `printf '%s\n' "${0##*/} $*" >> "$STUB_LOG"` + "\nexit " + code + "\n"
}

// composeStub runs the mounted script with bash, the way the compose service
// entrypoint would.
const composeStub = `printf '%s\n' "docker $*" >> "$STUB_LOG"
mount=""
while [ $# -gt 0 ]; do
  case "$1" in
    -v) mount="$2"; shift 2 ;;
    *) shift ;;
  esac
done
exec bash "${mount%%:*}"
`

// calls returns the logged stub invocations.
func (e *testEnv) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading stub log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
