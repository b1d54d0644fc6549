package generation

import "fmt"

// Credentials resolves the effective API key for a provider call.
// Precedence: an explicit per-request key, then the provider-specific
// configured credential, then the shared fallback credential.
type Credentials struct {
	// PerProvider maps provider names to configured API keys.
	PerProvider map[string]string

	// Fallback is used when no provider-specific credential exists.
	Fallback string
}

// Resolve returns the API key to use for the named provider, or
// ErrMissingCredential when nothing resolves.
func (c Credentials) Resolve(provider, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if key := c.PerProvider[provider]; key != "" {
		return key, nil
	}
	if c.Fallback != "" {
		return c.Fallback, nil
	}
	return "", fmt.Errorf("%w for provider %q", ErrMissingCredential, provider)
}
