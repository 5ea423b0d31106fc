// Package runtime runs the external programs mcpctl depends on. It defines the
// Runner interface with an os/exec implementation, and typed helpers for the
// npm/npx toolchain (global package version lookup, npx invocations) and for
// running a script inside the docker compose service that hosts the CLIs.
package runtime
