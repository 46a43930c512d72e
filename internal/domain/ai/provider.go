package ai

import (
	"context"
	"sort"
	"strings"

	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// Provider is a text-generation backend.
type Provider interface {
	Name() string
	// Complete sends a single user prompt and returns the reply text. An empty
	// apiKey selects the provider's server-side key when it has one.
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}

// Registry selects providers by name.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if p != nil {
			r.providers[p.Name()] = p
		}
	}
	return r
}

// Get returns the provider registered as name.
func (r *Registry) Get(ctx context.Context, name string) (Provider, error) {
	p, ok := r.providers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"AI provider is not available: "+name, nil, "b0c2d4e6-8f0a-4b2c-9d7e-9a1b3c5d7f36", map[string]any{"available": r.Names()})
	}
	return p, nil
}

// Names lists the registered providers.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
