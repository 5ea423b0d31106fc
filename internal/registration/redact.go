package registration

import (
	"strings"

	"go.uber.org/zap"
)

// redactedMask replaces the whole value of a sensitive variable. It needs no
// shell quoting, so it reads plainly inside a logged export script.
const redactedMask = "REDACTED"

// sensitivePatterns are substrings that indicate a value should be redacted.
var sensitivePatterns = []string{"TOKEN", "SECRET", "PASSWORD", "KEY", "CREDENTIAL"}

// IsSensitive reports whether key names a secret (case-insensitive
// substring match against sensitivePatterns).
func IsSensitive(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range sensitivePatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// RedactValue masks value entirely when key is sensitive. No part of the
// secret is kept.
func RedactValue(key, value string) string {
	if IsSensitive(key) {
		return redactedMask
	}
	return value
}

// RedactEnv returns KEY=VALUE entries with sensitive values masked.
func RedactEnv(env []string) []string {
	out := make([]string, len(env))
	for i, e := range env {
		key, value, _ := strings.Cut(e, "=")
		out[i] = key + "=" + RedactValue(key, value)
	}
	return out
}

// redactedEnv is RedactEnv as a log field.
func redactedEnv(env []string) zap.Field {
	return zap.Strings("env", RedactEnv(env))
}

// redactedLine is the invocation line for req with sensitive values masked.
// Everything that logs a command line goes through it, since the real line
// embeds the export script.
func redactedLine(req *Request) string {
	return BuildInvocation(req.Command, RedactEnv(req.Env)).Line
}
