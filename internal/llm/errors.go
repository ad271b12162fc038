package llm

import "errors"

// Common errors returned by providers. Providers wrap these with request
// detail; callers classify with errors.Is.
var (
	// ErrAPIKeyMissing is returned when no API key is configured for the
	// selected provider.
	ErrAPIKeyMissing = errors.New("API key was not provided")

	// ErrInvalidAPIKey is returned when the provider rejects the key (HTTP 401).
	ErrInvalidAPIKey = errors.New("invalid API key")

	// ErrRateLimited is returned when the provider throttles the request (HTTP 429).
	ErrRateLimited = errors.New("API rate limit exceeded")

	// ErrTimeout is returned when a request attempt exceeds its deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrConnection is returned for transport failures and server-side errors.
	ErrConnection = errors.New("failed to connect to the AI server")

	// ErrMalformedResponse is returned when the provider's reply cannot be parsed.
	ErrMalformedResponse = errors.New("invalid response format")

	// ErrEmptyResponse is returned when the provider replies with no text.
	ErrEmptyResponse = errors.New("the API returned an empty response")

	// ErrContentBlocked is returned when the provider's safety filters block
	// the reply.
	ErrContentBlocked = errors.New("content blocked by safety filters")

	// ErrUnknownProvider is returned by the factory for an unsupported
	// provider type.
	ErrUnknownProvider = errors.New("unsupported provider type")
)

// IsTransient reports whether the error is worth retrying. Connection
// failures, timeouts, and rate limits may resolve on a later attempt; bad
// keys, malformed replies, and blocked content will not.
func IsTransient(err error) bool {
	return errors.Is(err, ErrConnection) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrRateLimited)
}

// Remediation returns the help text shown alongside an error in the chat
// transcript. Every named condition carries user-facing guidance; unknown
// errors get a generic retry hint.
func Remediation(err error) string {
	switch {
	case errors.Is(err, ErrAPIKeyMissing), errors.Is(err, ErrInvalidAPIKey):
		return "Please check your API key in the configuration and ensure it is entered correctly."
	case errors.Is(err, ErrRateLimited):
		return "You're being rate-limited. Please try again later."
	case errors.Is(err, ErrTimeout):
		return "Please check your internet connection and try again."
	case errors.Is(err, ErrConnection):
		return "Please verify your internet connection."
	case errors.Is(err, ErrEmptyResponse):
		return "Please try again. If the issue persists, consider configuring a different model."
	case errors.Is(err, ErrMalformedResponse):
		return "Please try again later. If the issue continues, consider configuring a different model."
	case errors.Is(err, ErrContentBlocked):
		return "The provider refused to answer for this card. Rephrasing the card content may help."
	default:
		return "Please try again later."
	}
}
