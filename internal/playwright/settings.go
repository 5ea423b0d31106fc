package playwright

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ai-cli-labs/mcpctl/internal/branding"
	"github.com/ai-cli-labs/mcpctl/internal/mcpconfig"
	"github.com/spf13/viper"
)

// ConfigFileName is the settings file looked up next to the executable.
const ConfigFileName = "playwright-mcp.json"

// Settings controls how the browser is launched.
type Settings struct {
	Headed  bool   `mapstructure:"headed"`
	Display string `mapstructure:"display"`
}

// LoadSettings reads path into Settings. A missing file is not an error: a
// notice is written to notice and defaults are used. MCPCTL_PLAYWRIGHT_HEADED
// and MCPCTL_PLAYWRIGHT_DISPLAY override values from the file.
func LoadSettings(path string, notice io.Writer) (*Settings, error) {
	v := viper.New()
	v.SetDefault("headed", false)
	v.SetDefault("display", "")
	v.SetEnvPrefix(branding.EnvVar("PLAYWRIGHT"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(notice, "Config file %s not found, using defaults.\n", path)
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	default:
		result, err := mcpconfig.ValidatePlaywright(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if !result.Valid {
			return nil, fmt.Errorf("invalid %s: %s", path, result.Summary())
		}
		v.SetConfigType("json")
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding playwright settings: %w", err)
	}
	return &s, nil
}
