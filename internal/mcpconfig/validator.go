package mcpconfig

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

// Embedded schema names.
const (
	CopilotSchema    = "copilot-mcp-config.schema.json"
	PlaywrightSchema = "playwright-mcp.schema.json"
)

var (
	schemasMu sync.Mutex
	schemas   = make(map[string]*jsonschema.Schema)
	printer   = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/mcpServers/playwright/command")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

// Summary joins the issues into one line.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return strings.Join(parts, "; ")
}

// getSchema compiles the named embedded schema once and caches it.
func getSchema(name string) (*jsonschema.Schema, error) {
	schemasMu.Lock()
	defer schemasMu.Unlock()

	if s, ok := schemas[name]; ok {
		return s, nil
	}

	raw, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	s, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}
	schemas[name] = s
	return s, nil
}

// Validate validates raw JSON bytes against the named embedded schema.
// The error return is for malformed input or schema compilation failures.
// Validation issues are returned in the ValidationResult.
func Validate(schemaName string, data []byte) (*ValidationResult, error) {
	schema, err := getSchema(schemaName)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// ValidateCopilot validates a Copilot mcp-config.json document.
func ValidateCopilot(data []byte) (*ValidationResult, error) {
	return Validate(CopilotSchema, data)
}

// ValidatePlaywright validates playwright-mcp.json launcher settings.
func ValidatePlaywright(data []byte) (*ValidationResult, error) {
	return Validate(PlaywrightSchema, data)
}

// ValidateFile reads path and validates it against the named schema.
func ValidateFile(schemaName, path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Validate(schemaName, data)
}

// issueCollector gathers the leaf errors of a validation tree. Interior
// nodes ($ref hops into $defs/server, the root schema) only group their
// causes and carry no message of their own.
type issueCollector struct {
	issues []ValidationIssue
	seen   map[ValidationIssue]bool
}

func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	c := &issueCollector{seen: make(map[ValidationIssue]bool)}
	c.walk(ve)
	if len(c.issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return c.issues
}

func (c *issueCollector) walk(ve *jsonschema.ValidationError) {
	for _, cause := range ve.Causes {
		c.walk(cause)
	}
	if len(ve.Causes) > 0 || ve.ErrorKind == nil {
		return
	}
	kw := ve.ErrorKind.KeywordPath()
	if len(kw) == 0 {
		return
	}

	issue := ValidationIssue{
		Message: ve.ErrorKind.LocalizedString(printer),
		Keyword: kw[len(kw)-1],
	}
	if len(ve.InstanceLocation) > 0 {
		issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	if !c.seen[issue] {
		c.seen[issue] = true
		c.issues = append(c.issues, issue)
	}
}
