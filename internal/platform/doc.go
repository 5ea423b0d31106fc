// Package platform provides small filesystem helpers: temp script files with
// LF line endings and readable permissions, and lookup of per-tool wrapper
// scripts next to the executable.
package platform
