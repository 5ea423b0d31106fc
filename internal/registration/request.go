package registration

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/ai-cli-labs/mcpctl/internal/integrations"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var (
	serverNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
	envKeyPattern     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Request describes one server registration.
type Request struct {
	// Name is the server name shown by each CLI.
	Name string `validate:"required,servername"`
	// Command is the executable followed by its arguments.
	Command []string `validate:"min=1,dive,required"`
	// Env holds KEY=VALUE assignments exported before Command runs.
	Env []string `validate:"dive,envassign"`
	// Tools restricts registration to a subset; empty means all.
	Tools []integrations.ToolName
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("servername", func(fl validator.FieldLevel) bool {
			return serverNamePattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("envassign", func(fl validator.FieldLevel) bool {
			key, _, ok := strings.Cut(fl.Field().String(), "=")
			return ok && envKeyPattern.MatchString(key)
		})
	})
	return validate
}

// Validate checks the request and returns a readable error for the first
// problem of each field.
func (r *Request) Validate() error {
	err := getValidator().Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating request: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(lo.Uniq(msgs), "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "servername":
		return fmt.Sprintf("invalid server name %q: use letters, digits, '.', '_' or '-'", fe.Value())
	case "envassign":
		return fmt.Sprintf("invalid environment variable %q: expected KEY=VALUE", fe.Value())
	case "required":
		if fe.StructField() == "Name" {
			return "server name is required"
		}
		return "command arguments must not be empty"
	case "min":
		return "a command to run the MCP server is required"
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Namespace(), fe.Tag())
	}
}

// EnvKeys returns the variable names from Env, in order.
func (r *Request) EnvKeys() []string {
	return lo.Map(r.Env, func(e string, _ int) string {
		key, _, _ := strings.Cut(e, "=")
		return key
	})
}

// SelectedTools returns Tools, or every supported tool when Tools is empty.
func (r *Request) SelectedTools() []integrations.ToolName {
	if len(r.Tools) == 0 {
		return integrations.AllTools()
	}
	return r.Tools
}
