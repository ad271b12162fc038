// Package llm defines the boundary between the application core and the
// hosted language-model services. It holds the Provider interface the
// platform packages implement, the transport error taxonomy, and the
// retry-with-backoff decorator wrapped around every provider.
package llm

import "context"

// Request is a single chat-completion request, normalized across providers.
type Request struct {
	// System is the system message / system instruction.
	System string

	// User is the user-facing prompt.
	User string

	// Temperature is the sampling temperature. Providers may override it
	// for models that do not support adjustment.
	Temperature float64
}

// Provider generates a completion for a request against one hosted LLM API.
// Implementations live in internal/platform.
type Provider interface {
	// Generate sends the request and returns the reply text.
	// Errors wrap the sentinels in errors.go so callers can classify them.
	Generate(ctx context.Context, req Request) (string, error)

	// ModelName reports the configured model, for message attribution.
	ModelName() string
}
