package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ai-cli-labs/mcpctl/internal/config"
	"github.com/ai-cli-labs/mcpctl/internal/integrations"
	"github.com/ai-cli-labs/mcpctl/internal/mcpconfig"
	"github.com/ai-cli-labs/mcpctl/internal/playwright"
	"github.com/ai-cli-labs/mcpctl/internal/runtime"
	"github.com/spf13/cobra"
)

var lookPath = exec.LookPath

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the mcpctl environment",
	Long: `Check that docker, npm, npx and the assistant CLIs can be found, that the
compose file exists, and that @playwright/mcp resolves to an installed version.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := &doctor{out: cmd.OutOrStdout()}
		d.runtimeCheck(settings)
		d.toolsCheck(settings)
		d.composeCheck(settings)
		d.playwrightCheck(cmd, settings)
		if d.failed {
			return &ExitError{Code: 1}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type doctor struct {
	out    io.Writer
	failed bool
}

func (d *doctor) ok(format string, a ...any) {
	fmt.Fprintf(d.out, "  [ OK ] "+format+"\n", a...)
}

func (d *doctor) miss(format string, a ...any) {
	d.failed = true
	fmt.Fprintf(d.out, "  [MISS] "+format+"\n", a...)
}

func (d *doctor) fail(format string, a ...any) {
	d.failed = true
	fmt.Fprintf(d.out, "  [FAIL] "+format+"\n", a...)
}

func (d *doctor) info(format string, a ...any) {
	fmt.Fprintf(d.out, "  [INFO] "+format+"\n", a...)
}

func (d *doctor) checkBinary(name string) {
	path, err := lookPath(name)
	if err != nil {
		d.miss("%s not found", name)
		return
	}
	d.ok("%s found at %s", name, path)
}

func (d *doctor) runtimeCheck(s *config.Settings) {
	fmt.Fprintln(d.out, "Runtime check:")
	for _, bin := range []string{s.Docker.Bin, s.Npm.Bin, s.Npx.Bin, "node", "bash"} {
		d.checkBinary(bin)
	}
}

func (d *doctor) toolsCheck(s *config.Settings) {
	fmt.Fprintln(d.out, "Assistant CLIs:")
	for _, tool := range integrations.AllTools() {
		cfg, _ := integrations.Lookup(tool)
		if cfg.Method != integrations.MethodCLI {
			d.info("%s is configured through compose service %s", cfg.Label, s.Compose.Service)
			continue
		}
		d.checkBinary(toolBinary(s, tool))
	}
}

func (d *doctor) composeCheck(s *config.Settings) {
	fmt.Fprintln(d.out, "Docker compose:")
	dir := s.Compose.ResolveProjectDir(scriptsDir())
	file := s.Compose.ResolveFile(dir)
	if _, err := os.Stat(file); err != nil {
		d.miss("compose file %s not found", file)
		return
	}
	d.ok("compose file %s", file)
}

func (d *doctor) playwrightCheck(cmd *cobra.Command, s *config.Settings) {
	fmt.Fprintln(d.out, "Playwright MCP:")

	version, err := newNode(s).GlobalPackageVersion(cmd.Context(), playwright.PackageName)
	switch {
	case err != nil:
		d.miss("%s version could not be determined: %v", playwright.PackageName, err)
	case runtime.CheckMinVersion(version, s.Playwright.MinVersion) != nil:
		d.fail("%s %s is older than required %s", playwright.PackageName, version, s.Playwright.MinVersion)
	default:
		d.ok("%s %s", playwright.PackageName, version)
	}

	path := s.Playwright.Config
	if path == "" {
		path = filepath.Join(scriptsDir(), playwright.ConfigFileName)
	}
	result, err := mcpconfig.ValidateFile(mcpconfig.PlaywrightSchema, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		d.info("%s not found, defaults apply", path)
	case err != nil:
		d.fail("cannot read %s: %v", path, err)
	case !result.Valid:
		d.fail("%s is invalid: %s", path, result.Summary())
	default:
		d.ok("%s is valid", path)
	}
}
