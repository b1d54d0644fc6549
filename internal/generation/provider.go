package generation

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/prompt"
)

// Canonical provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Provider adapts one LLM vendor's request/response shape to the canonical
// prompt/response contract. Implementations build a vendor-specific request
// from the prompt pair and return the first text payload verbatim; they
// never parse or validate the exercise JSON themselves.
type Provider interface {
	// Name returns the canonical provider name used in requests and keys.
	Name() string

	// GenerateRaw sends the prompt pair and returns the raw response text.
	// The exercise type lets adapters that support structured output select
	// the matching response schema; adapters without structural enforcement
	// may ignore it.
	GenerateRaw(ctx context.Context, prompts prompt.Prompts, exerciseType domain.ExerciseType, apiKey string) (string, error)
}

// Registry holds the available providers by name.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider under its own name, replacing any previous
// registration.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
