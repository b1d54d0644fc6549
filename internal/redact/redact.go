// Package redact scrubs sensitive material from strings before they are
// logged. Provider errors in particular can echo back the API key or the
// full request URL, and cache backends can leak connection strings.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

var (
	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Provider API keys (OpenAI/Anthropic style prefixes and generic
	// key=value forms)
	providerKeyRegex = regexp.MustCompile(`\bsk-[A-Za-z0-9_\-]{8,}`)
	apiKeyRegex      = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|authorization|bearer)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Standard three-part base64url JWT
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	patterns = map[*regexp.Regexp]string{
		dbConnRegex:      RedactedCredentialPlaceholder,
		providerKeyRegex: RedactedKeyPlaceholder,
		apiKeyRegex:      RedactedKeyPlaceholder,
		jwtTokenRegex:    "[REDACTED_JWT]",
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for pattern, placeholder := range patterns {
		result = pattern.ReplaceAllString(result, placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
