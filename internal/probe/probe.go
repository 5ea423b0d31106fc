package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"text/tabwriter"
	"time"

	"github.com/ai-cli-labs/mcpctl/internal/branding"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// DefaultTimeout bounds the whole probe when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// ErrEmptyCommand is returned by CommandTransport for an empty command.
var ErrEmptyCommand = errors.New("a command to run the MCP server is required")

// Options configures a probe.
type Options struct {
	// ClientVersion is reported to the server during initialize.
	ClientVersion string
	Timeout       time.Duration
	Logger        *zap.Logger
}

// Tool is one advertised tool.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Report describes the server as seen by the handshake.
type Report struct {
	ServerName      string `json:"server_name"`
	ServerVersion   string `json:"server_version,omitempty"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
	Instructions    string `json:"instructions,omitempty"`
	Tools           []Tool `json:"tools"`
}

// CommandTransport returns a stdio transport for command. env entries are
// appended to the current environment.
func CommandTransport(command, env []string) (mcp.Transport, error) {
	if len(command) == 0 || command[0] == "" {
		return nil, ErrEmptyCommand
	}
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stderr = os.Stderr
	return &mcp.CommandTransport{Command: cmd}, nil
}

// Run connects over transport, reads the server info and lists every tool,
// following pagination cursors.
func Run(ctx context.Context, transport mcp.Transport, opts Options) (*Report, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	version := opts.ClientVersion
	if version == "" {
		version = "dev"
	}

	client := mcp.NewClient(&mcp.Implementation{Name: branding.CLIName(), Version: version}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to MCP server: %w", err)
	}
	defer session.Close()

	report := &Report{}
	if res := session.InitializeResult(); res != nil {
		report.ProtocolVersion = res.ProtocolVersion
		report.Instructions = res.Instructions
		if res.ServerInfo != nil {
			report.ServerName = res.ServerInfo.Name
			report.ServerVersion = res.ServerInfo.Version
		}
	}
	logger.Debug("mcp handshake complete",
		zap.String("server", report.ServerName),
		zap.String("protocol", report.ProtocolVersion))

	params := &mcp.ListToolsParams{}
	for {
		res, err := session.ListTools(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("listing tools: %w", err)
		}
		for _, t := range res.Tools {
			report.Tools = append(report.Tools, Tool{Name: t.Name, Description: t.Description})
		}
		if res.NextCursor == "" {
			break
		}
		params = &mcp.ListToolsParams{Cursor: res.NextCursor}
	}
	return report, nil
}

// WriteText prints the report in human-readable form.
func WriteText(w io.Writer, r *Report) error {
	name := r.ServerName
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "Server:   %s %s\n", name, r.ServerVersion)
	if r.ProtocolVersion != "" {
		fmt.Fprintf(w, "Protocol: %s\n", r.ProtocolVersion)
	}
	fmt.Fprintf(w, "Tools:    %d\n", len(r.Tools))
	if len(r.Tools) == 0 {
		return nil
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDESCRIPTION")
	for _, t := range r.Tools {
		fmt.Fprintf(tw, "%s\t%s\n", t.Name, t.Description)
	}
	return tw.Flush()
}

// WriteJSON prints the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
