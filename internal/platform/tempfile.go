package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// ScriptPerm is applied to generated scripts so a container user other than
// the host owner can read the bind-mounted file.
const ScriptPerm os.FileMode = 0644

// WriteTempScript writes content to a new temp file whose name matches
// pattern (see os.CreateTemp). Line endings are normalized to LF. The
// returned cleanup removes the file and ignores errors.
func WriteTempScript(pattern, content string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", func() {}, fmt.Errorf("creating temp script: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	content = strings.ReplaceAll(content, "\r\n", "\n")
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("writing temp script %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("closing temp script %s: %w", path, err)
	}

	if err := chmod(path, ScriptPerm); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	return path, cleanup, nil
}

// chmod is a no-op on Windows, which has no Unix permission bits.
func chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
