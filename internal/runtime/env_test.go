package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      []string
		key      string
		value    string
		expected []string
	}{
		{
			name:     "add new variable",
			env:      []string{"FOO=bar"},
			key:      "DISPLAY",
			value:    ":0",
			expected: []string{"FOO=bar", "DISPLAY=:0"},
		},
		{
			name:     "replace existing variable",
			env:      []string{"FOO=bar", "DISPLAY=old:0"},
			key:      "DISPLAY",
			value:    "host.docker.internal:0.0",
			expected: []string{"FOO=bar", "DISPLAY=host.docker.internal:0.0"},
		},
		{
			name:     "add to empty env",
			env:      nil,
			key:      "KEY",
			value:    "val",
			expected: []string{"KEY=val"},
		},
		{
			name:     "prefix of another key is not replaced",
			env:      []string{"DISPLAY_NAME=x"},
			key:      "DISPLAY",
			value:    ":1",
			expected: []string{"DISPLAY_NAME=x", "DISPLAY=:1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SetEnv(tt.env, tt.key, tt.value)
			if diff := cmp.Diff(tt.expected, result); diff != "" {
				t.Errorf("SetEnv mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLookupEnv(t *testing.T) {
	env := []string{"A=1", "DISPLAY=:0", "A=2"}
	if v, ok := LookupEnv(env, "A"); !ok || v != "2" {
		t.Errorf("LookupEnv(A) = %q, %v; want last value 2", v, ok)
	}
	if _, ok := LookupEnv(env, "B"); ok {
		t.Error("LookupEnv(B) reported a value")
	}
}

func TestParseEnvLines(t *testing.T) {
	data := []byte(`# Comment line
GITHUB_TOKEN=ghp_abc123
export DB_URL=postgresql://localhost/db

# Another comment
EMPTY=
SPACED = value
not-an-assignment
`)
	want := []string{
		"GITHUB_TOKEN=ghp_abc123",
		"DB_URL=postgresql://localhost/db",
		"SPACED=value",
	}
	if diff := cmp.Diff(want, ParseEnvLines(data)); diff != "" {
		t.Errorf("ParseEnvLines mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnvLines_Quotes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"double quoted", `API_KEY="abc def"`, []string{"API_KEY=abc def"}},
		{"single quoted", `NAME='x'`, []string{"NAME=x"}},
		{"exported and quoted", `export GREETING="hello world"`, []string{"GREETING=hello world"}},
		{"inner quotes kept", `QUOTE="it's"`, []string{"QUOTE=it's"}},
		{"empty double quotes", `EMPTY=""`, nil},
		{"empty single quotes", `EMPTY=''`, nil},
		{"mismatched quotes kept", `ODD="abc'`, []string{`ODD="abc'`}},
		{"lone quote kept", `Q="`, []string{`Q="`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseEnvLines([]byte(tt.line+"\n"))); diff != "" {
				t.Errorf("ParseEnvLines(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestReadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.env")
	if err := os.WriteFile(path, []byte("API_KEY=secret\n"), 0600); err != nil {
		t.Fatal(err)
	}
	env, err := ReadEnvFile(path)
	if err != nil {
		t.Fatalf("ReadEnvFile error: %v", err)
	}
	if diff := cmp.Diff([]string{"API_KEY=secret"}, env); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for missing file")
	}
}
