package registration

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ai-cli-labs/mcpctl/internal/integrations"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bannerWidth = 40

// Registrar registers a server with one tool.
type Registrar interface {
	Tool() integrations.ToolName
	Register(ctx context.Context, req *Request, inv Invocation) error
}

// Result is the outcome for one tool.
type Result struct {
	Tool integrations.ToolName
	Err  error
}

// OK reports whether the tool succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Summary collects the per-tool results of a run.
type Summary struct {
	Results []Result
}

// OK is true only when every selected tool succeeded.
func (s *Summary) OK() bool {
	for _, r := range s.Results {
		if !r.OK() {
			return false
		}
	}
	return true
}

// Failed returns the tools that did not succeed.
func (s *Summary) Failed() []integrations.ToolName {
	var failed []integrations.ToolName
	for _, r := range s.Results {
		if !r.OK() {
			failed = append(failed, r.Tool)
		}
	}
	return failed
}

// Service runs a registration across the configured registrars and prints
// progress in the reg-mcp format.
type Service struct {
	Registrars []Registrar
	// Volume names where env vars end up, for the plaintext warning.
	Volume string

	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// Run validates req and registers it with every selected tool in order. A
// failing tool does not stop the remaining ones. The returned error is
// non-nil only for an invalid request.
func (s *Service) Run(ctx context.Context, req *Request) (*Summary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger := orNop(s.Logger).With(zap.String("run", uuid.NewString()), zap.String("server", req.Name))
	inv := BuildInvocation(req.Command, req.Env)
	logger.Debug("built invocation",
		zap.String("line", redactedLine(req)),
		zap.Bool("wrapped", inv.Wrapped),
		redactedEnv(req.Env))

	registrars, err := s.selected(req.SelectedTools())
	if err != nil {
		return nil, err
	}

	banner := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(s.Stdout, banner)
	fmt.Fprintf(s.Stdout, "Registering MCP Server: %s\n", req.Name)
	fmt.Fprintln(s.Stdout, banner)

	if len(req.Env) > 0 {
		fmt.Fprintln(s.Stdout)
		fmt.Fprintln(s.Stdout, "[WARNING] Environment variables will be stored in PLAINTEXT")
		fmt.Fprintf(s.Stdout, "          in Docker volume '%s'\n", s.Volume)
		fmt.Fprintln(s.Stdout)
	}

	summary := &Summary{}
	for i, r := range registrars {
		tool := r.Tool()
		label := tool.Label()
		fmt.Fprintf(s.Stdout, "[%d/%d] Registering for %s...\n", i+1, len(registrars), label)

		err := r.Register(ctx, req, inv)
		summary.Results = append(summary.Results, Result{Tool: tool, Err: err})

		noun, verb := "registration", "registered"
		if cfg, ok := integrations.Lookup(tool); ok && cfg.Method == integrations.MethodComposeConfig {
			noun, verb = "configuration", "configured"
		}
		if err != nil {
			logger.Warn("registration failed", zap.String("tool", string(tool)), zap.Error(err))
			fmt.Fprintf(s.Stderr, "[ERROR] %s: MCP %s failed.\n", label, noun)
		} else {
			fmt.Fprintf(s.Stdout, "[OK] %s: MCP '%s' %s\n", label, req.Name, verb)
		}
		fmt.Fprintln(s.Stdout)
	}

	fmt.Fprintln(s.Stdout, banner)
	if summary.OK() {
		fmt.Fprintln(s.Stdout, "Registration complete for all CLIs")
	} else {
		fmt.Fprintln(s.Stdout, "Registration completed with errors")
	}
	fmt.Fprintln(s.Stdout, banner)

	return summary, nil
}

func (s *Service) selected(tools []integrations.ToolName) ([]Registrar, error) {
	byTool := make(map[integrations.ToolName]Registrar, len(s.Registrars))
	for _, r := range s.Registrars {
		byTool[r.Tool()] = r
	}
	out := make([]Registrar, 0, len(tools))
	for _, t := range tools {
		r, ok := byTool[t]
		if !ok {
			return nil, fmt.Errorf("no registrar configured for %s", t)
		}
		out = append(out, r)
	}
	return out, nil
}
