package registration

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/ai-cli-labs/mcpctl/internal/integrations"
	"github.com/ai-cli-labs/mcpctl/internal/mcpconfig"
	"github.com/ai-cli-labs/mcpctl/internal/platform"
	"github.com/ai-cli-labs/mcpctl/internal/runtime"
	"go.uber.org/zap"
)

// ContainerScriptPath is where the setup script is mounted in the container.
const ContainerScriptPath = "/tmp/setup-mcp.sh"

const heredocDelimiter = "EOFMCP"

//go:embed templates/copilot-setup.sh.tmpl
var copilotScriptTemplate string

var copilotScript = template.Must(template.New("copilot-setup.sh").Parse(copilotScriptTemplate))

type copilotScriptData struct {
	Name      string
	Config    string
	Delimiter string
}

// RenderCopilotScript renders the bash script that writes config to
// $HOME/.copilot/mcp-config.json.
func RenderCopilotScript(name string, config []byte) (string, error) {
	body := strings.TrimRight(string(config), "\n")
	for _, line := range strings.Split(body, "\n") {
		if line == heredocDelimiter {
			return "", fmt.Errorf("config contains heredoc delimiter %q", heredocDelimiter)
		}
	}

	var buf bytes.Buffer
	err := copilotScript.Execute(&buf, copilotScriptData{
		Name:      name,
		Config:    body,
		Delimiter: heredocDelimiter,
	})
	if err != nil {
		return "", fmt.Errorf("rendering copilot setup script: %w", err)
	}
	return buf.String(), nil
}

// CopilotRegistrar writes the Copilot CLI config inside the compose service.
type CopilotRegistrar struct {
	Compose *runtime.Compose
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *zap.Logger
}

func (r *CopilotRegistrar) Tool() integrations.ToolName { return integrations.Copilot }

// Register renders the config and setup script, mounts the script into a
// one-off container and runs it. The temp script is always removed.
func (r *CopilotRegistrar) Register(ctx context.Context, req *Request, _ Invocation) error {
	command, args := CopilotCommand(req.Command, req.Env)
	config, err := mcpconfig.NewCopilotConfig(req.Name, command, args).Marshal()
	if err != nil {
		return err
	}

	script, err := RenderCopilotScript(req.Name, config)
	if err != nil {
		return err
	}

	path, cleanup, err := platform.WriteTempScript("setup-mcp-*.sh", script)
	if err != nil {
		return err
	}
	defer cleanup()

	logger := orNop(r.Logger)
	logger.Debug("running copilot setup script",
		zap.String("script", path),
		zap.String("service", r.Compose.Service),
		zap.String("compose_file", r.Compose.File))

	out, err := r.Compose.RunScript(ctx, path, ContainerScriptPath, r.Stdout, r.Stderr)
	if err != nil {
		return err
	}
	if out.ExitCode != 0 {
		return fmt.Errorf("docker compose run exited with code %d", out.ExitCode)
	}
	return nil
}
