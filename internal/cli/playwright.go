package cli

import (
	"errors"
	"path/filepath"

	"github.com/ai-cli-labs/mcpctl/internal/playwright"
	"github.com/spf13/cobra"
)

var (
	playwrightConfigFile string
	playwrightHeaded     bool
	playwrightDisplay    string
)

var playwrightCmd = &cobra.Command{
	Use:   "playwright",
	Short: "Launch the Playwright MCP server over stdio",
	Long: `Start @playwright/mcp pinned to the globally installed version.

Settings are read from playwright-mcp.json next to the mcpctl executable
(or --config-file). Flags and MCPCTL_PLAYWRIGHT_HEADED/DISPLAY override the
file. Stdout carries the MCP protocol; all diagnostics go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runPlaywright,
}

func init() {
	playwrightCmd.Flags().StringVar(&playwrightConfigFile, "config-file", "", "Path to playwright-mcp.json")
	playwrightCmd.Flags().BoolVar(&playwrightHeaded, "headed", false, "Run the browser with a visible window")
	playwrightCmd.Flags().StringVar(&playwrightDisplay, "display", "", "X display for headed mode (default "+playwright.DefaultDisplay+")")
	rootCmd.AddCommand(playwrightCmd)
}

func runPlaywright(cmd *cobra.Command, args []string) error {
	path := playwrightConfigFile
	if path == "" {
		path = settings.Playwright.Config
	}
	if path == "" {
		path = filepath.Join(scriptsDir(), playwright.ConfigFileName)
	}

	ps, err := playwright.LoadSettings(path, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("headed") {
		ps.Headed = playwrightHeaded
	}
	if cmd.Flags().Changed("display") {
		ps.Display = playwrightDisplay
	}

	launcher := &playwright.Launcher{
		Node:       newNode(settings),
		Runner:     runner,
		MinVersion: settings.Playwright.MinVersion,
		ExtraArgs:  settings.Playwright.ExtraArgs,
		Stdin:      cmd.InOrStdin(),
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
		Logger:     logger,
	}
	code, err := launcher.Run(cmd.Context(), ps)
	if errors.Is(err, playwright.ErrVersionUnknown) {
		return &ExitError{Code: 1}
	}
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
