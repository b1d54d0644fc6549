package generation

import "errors"

// Errors surfaced by provider selection, credential resolution and
// generation calls.
var (
	// ErrGenerationFailed wraps any failure between a successful credential
	// resolution and a validated exercise set: network errors, non-2xx
	// provider responses, unparsable or schema-violating output. It is never
	// retried; callers that want another attempt issue a new request.
	ErrGenerationFailed = errors.New("exercise generation failed")

	// ErrProviderFailure is returned when the LLM backend call itself fails
	// (transport error or an error response from the vendor).
	ErrProviderFailure = errors.New("provider request failed")

	// ErrMissingCredential is returned when no API key resolves for the
	// selected provider. Surfaced as a request/auth failure, not a
	// generation failure.
	ErrMissingCredential = errors.New("no API key available")

	// ErrUnknownProvider is returned when a request names a provider that
	// is not registered.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrEmptyResponse is returned when a provider call succeeds but yields
	// no usable text payload.
	ErrEmptyResponse = errors.New("provider returned no text content")
)
