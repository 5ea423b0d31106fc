package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ai-cli-labs/mcpctl/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type cliEnv struct {
	Fake       *testutil.FakeRunner
	Dir        string
	ScriptsDir string
	ConfigPath string
}

// setupCLI isolates the package-level command state for one test.
func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	viper.Reset()
	resetFlags(rootCmd)

	dir := t.TempDir()
	env := &cliEnv{
		Fake:       testutil.NewFakeRunner(),
		Dir:        dir,
		ScriptsDir: filepath.Join(dir, "bin"),
		ConfigPath: filepath.Join(dir, "config.yaml"),
	}
	if err := os.MkdirAll(env.ScriptsDir, 0755); err != nil {
		t.Fatal(err)
	}

	prevRunner, prevScripts, prevLookPath := runner, scriptsDir, lookPath
	runner = env.Fake
	scriptsDir = func() string { return env.ScriptsDir }
	t.Cleanup(func() {
		runner, scriptsDir, lookPath = prevRunner, prevScripts, prevLookPath
		viper.Reset()
	})
	return env
}

func (e *cliEnv) execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config", e.ConfigPath}, args...))
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func (e *cliEnv) writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.Dir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
