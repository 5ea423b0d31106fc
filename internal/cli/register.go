package cli

import (
	"github.com/ai-cli-labs/mcpctl/internal/config"
	"github.com/ai-cli-labs/mcpctl/internal/integrations"
	"github.com/ai-cli-labs/mcpctl/internal/registration"
	"github.com/ai-cli-labs/mcpctl/internal/runtime"
	"github.com/spf13/cobra"
)

var (
	registerName    string
	registerEnv     []string
	registerEnvFile string
	registerOnly    []string
)

var registerCmd = &cobra.Command{
	Use:   "register --name NAME [--env KEY=VALUE]... -- COMMAND [ARGS...]",
	Short: "Register an MCP server with Claude, Codex and Github Copilot",
	Long: `Register one MCP server with every supported assistant CLI.

Claude and Codex are configured through their own "mcp add" subcommands.
Github Copilot is configured by writing ~/.copilot/mcp-config.json inside
the docker compose service.

Security Warning:
  Environment variables are stored in PLAINTEXT in the Docker volume that
  holds the CLI state. Only use them for non-sensitive data or accept the
  risk.`,
	Example: `  mcpctl register --name playwright -- mcpctl playwright
  mcpctl register --name github --env GITHUB_TOKEN=ghp_abc123 -- python3 /opt/mcp/github-mcp.py
  mcpctl register --name custom --only claude,codex -- node /opt/mcp/custom.js --port 0`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "MCP server name")
	registerCmd.Flags().StringArrayVar(&registerEnv, "env", nil, "Environment variable in KEY=VALUE format (repeatable)")
	registerCmd.Flags().StringVar(&registerEnvFile, "env-file", "", "Read KEY=VALUE lines from a dotenv file")
	registerCmd.Flags().StringSliceVar(&registerOnly, "only", nil, "Register only with these tools (claude, codex, copilot)")
	_ = registerCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	env, err := collectEnv(registerEnvFile, registerEnv)
	if err != nil {
		return err
	}

	only := settings.Register.Tools
	if cmd.Flags().Changed("only") {
		only = registerOnly
	}
	tools, err := integrations.ParseToolList(only)
	if err != nil {
		return err
	}

	svc := &registration.Service{
		Registrars: newRegistrars(cmd, settings),
		Volume:     settings.Compose.Volume,
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
		Logger:     logger,
	}
	summary, err := svc.Run(cmd.Context(), &registration.Request{
		Name:    registerName,
		Command: args,
		Env:     env,
		Tools:   tools,
	})
	if err != nil {
		return err
	}
	if !summary.OK() {
		return &ExitError{Code: 1}
	}
	return nil
}

// collectEnv merges entries from envFile (first) with the --env flags.
func collectEnv(envFile string, flags []string) ([]string, error) {
	var env []string
	if envFile != "" {
		fromFile, err := runtime.ReadEnvFile(envFile)
		if err != nil {
			return nil, err
		}
		env = append(env, fromFile...)
	}
	return append(env, flags...), nil
}

func newRegistrars(cmd *cobra.Command, s *config.Settings) []registration.Registrar {
	var registrars []registration.Registrar
	for _, tool := range integrations.AllTools() {
		cfg, _ := integrations.Lookup(tool)
		switch cfg.Method {
		case integrations.MethodCLI:
			registrars = append(registrars, &registration.CLIRegistrar{
				ToolName: tool,
				Bin:      toolBinary(s, tool),
				Runner:   runner,
				Stdin:    cmd.InOrStdin(),
				Stdout:   cmd.OutOrStdout(),
				Stderr:   cmd.ErrOrStderr(),
				Logger:   logger,
			})
		case integrations.MethodComposeConfig:
			registrars = append(registrars, &registration.CopilotRegistrar{
				Compose: newCompose(s),
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
				Logger:  logger,
			})
		}
	}
	return registrars
}
