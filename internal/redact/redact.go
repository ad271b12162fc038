// Package redact provides utilities for redacting provider credentials from
// strings before they are logged or shown to the user. API keys travel in
// bearer headers and in Gemini-style key= query parameters; both forms are
// masked down to a recognizable tail so log lines stay correlatable without
// leaking the secret.
package redact

import "regexp"

// Placeholder used when a value is too short to keep a tail.
const RedactedPlaceholder = "****"

var (
	// key= query parameters, as used by the Gemini generateContent URL.
	keyParamRegex = regexp.MustCompile(`(key=)[^&\s]+`)

	// Bearer tokens in Authorization headers echoed into errors or logs.
	bearerRegex = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9_\-.~+/]+`)
)

// Key masks an API key down to its last four characters, e.g. "...3f9a".
// Keys of four characters or fewer are fully masked.
func Key(key string) string {
	if len(key) <= 4 {
		return RedactedPlaceholder
	}
	return "..." + key[len(key)-4:]
}

// URL masks key= query parameters in a URL so request URLs can be logged.
func URL(url string) string {
	return keyParamRegex.ReplaceAllString(url, "${1}"+RedactedPlaceholder)
}

// String masks bearer tokens and key= parameters anywhere in a string.
// Useful for scrubbing transport error text before it reaches the transcript.
func String(s string) string {
	s = keyParamRegex.ReplaceAllString(s, "${1}"+RedactedPlaceholder)
	s = bearerRegex.ReplaceAllString(s, "${1}"+RedactedPlaceholder)
	return s
}
