package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ai-cli-labs/mcpctl/internal/probe"
	"github.com/spf13/cobra"
)

var (
	probeEnv     []string
	probeTimeout time.Duration
	probeJSON    bool
)

var probeCmd = &cobra.Command{
	Use:   "probe [--env KEY=VALUE]... -- COMMAND [ARGS...]",
	Short: "Start an MCP stdio server and list its tools",
	Long: `Run a command as an MCP stdio server, perform the initialize handshake and
list the tools it advertises. Use it to check a server before registering it.`,
	Example: `  mcpctl probe -- mcpctl playwright
  mcpctl probe --env API_KEY=x --json -- node /opt/mcp/custom.js`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().StringArrayVar(&probeEnv, "env", nil, "Environment variable in KEY=VALUE format (repeatable)")
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", probe.DefaultTimeout, "Give up after this long")
	probeCmd.Flags().BoolVar(&probeJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	for _, e := range probeEnv {
		if key, _, ok := strings.Cut(e, "="); !ok || key == "" {
			return fmt.Errorf("invalid environment variable %q: expected KEY=VALUE", e)
		}
	}

	timeout := settings.Probe.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout = probeTimeout
	}

	transport, err := probe.CommandTransport(args, probeEnv)
	if err != nil {
		return err
	}
	report, err := probe.Run(cmd.Context(), transport, probe.Options{
		ClientVersion: buildVersion,
		Timeout:       timeout,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	if probeJSON {
		return probe.WriteJSON(cmd.OutOrStdout(), report)
	}
	return probe.WriteText(cmd.OutOrStdout(), report)
}
