package platform

import (
	"os"
	"path/filepath"
)

// WrapperSuffix is appended to a tool name to form its wrapper script name.
const WrapperSuffix = ".cmd"

// FindWrapper returns the path of <dir>/<name>.cmd when it exists as a
// regular file, or "" otherwise.
func FindWrapper(dir, name string) string {
	if dir == "" {
		return ""
	}
	path := filepath.Join(dir, name+WrapperSuffix)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	return path
}
