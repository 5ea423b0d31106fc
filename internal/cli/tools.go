package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/ai-cli-labs/mcpctl/internal/integrations"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the assistant CLIs servers are registered with",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TOOL\tLABEL\tMETHOD\tTARGET")
		for _, tool := range integrations.AllTools() {
			cfg, _ := integrations.Lookup(tool)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tool, cfg.Label, cfg.Method, toolTarget(tool, cfg))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

// toolTarget describes what a registration for tool will invoke.
func toolTarget(tool integrations.ToolName, cfg integrations.ToolConfig) string {
	if cfg.Method == integrations.MethodComposeConfig {
		return "compose service " + settings.Compose.Service
	}
	return toolBinary(settings, tool)
}
