package synth

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Registry multiplexes an ordered set of providers behind one contract
// and tracks the currently selected provider. It is the only entry
// point application code should depend on.
//
// The current-provider pointer is the registry's only mutable state.
// Switching it is atomic with respect to concurrent reads, but never
// cancels in-flight calls: a call always completes against the provider
// it started with.
type Registry struct {
	providers map[string]Provider
	order     []string

	mu      sync.RWMutex
	current string
}

// NewRegistry creates a registry from an ordered provider collection.
// The first provider becomes current. Duplicate ids are rejected.
func NewRegistry(providers ...Provider) (*Registry, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	r := &Registry{
		providers: make(map[string]Provider, len(providers)),
		order:     make([]string, 0, len(providers)),
	}
	for _, p := range providers {
		id := p.ID()
		if _, exists := r.providers[id]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProvider, id)
		}
		r.providers[id] = p
		r.order = append(r.order, id)
	}
	r.current = r.order[0]
	return r, nil
}

// CurrentID returns the id of the currently selected provider.
func (r *Registry) CurrentID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Switch selects the provider with the given id. On an unknown id the
// current provider is left unchanged.
func (r *Registry) Switch(id string) error {
	if _, ok := r.providers[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, id)
	}
	r.mu.Lock()
	r.current = id
	r.mu.Unlock()
	return nil
}

// ProviderIDs returns all registered ids in registration order.
func (r *Registry) ProviderIDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Provider returns the provider registered under id.
func (r *Registry) Provider(id string) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// Voices returns the current provider's voice descriptors.
func (r *Registry) Voices() []VoiceDescriptor {
	return r.currentProvider().Voices()
}

// Languages returns the current provider's supported languages.
func (r *Registry) Languages() []LanguageDescriptor {
	return r.currentProvider().Languages()
}

// Synthesize delegates to the current provider, writing the complete
// audio to path.
func (r *Registry) Synthesize(ctx context.Context, req *Request, path string) error {
	return r.currentProvider().Synthesize(ctx, req, path)
}

// Stream delegates to the current provider, returning the complete
// audio as a reader positioned at offset zero.
func (r *Registry) Stream(ctx context.Context, req *Request) (io.ReadCloser, error) {
	return r.currentProvider().Stream(ctx, req)
}

func (r *Registry) currentProvider() Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providers[r.current]
}
