package encoder

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is the addressable collection of encoders. It is built once from
// an injected list of built-in encoders; custom encoders may be added and
// removed afterwards. All methods are safe for concurrent use, and no
// in-flight Encode or Decode ever observes a half-updated registry.
type Registry struct {
	mu       sync.RWMutex
	encoders map[string]Encoder
	builtin  map[string]bool
}

// NewRegistry constructs a registry from the given built-in encoders.
func NewRegistry(builtins []Encoder) (*Registry, error) {
	r := &Registry{
		encoders: make(map[string]Encoder, len(builtins)),
		builtin:  make(map[string]bool, len(builtins)),
	}

	for _, enc := range builtins {
		if enc == nil {
			return nil, fmt.Errorf("cannot register nil encoder")
		}
		id := enc.ID()
		if id == "" {
			return nil, fmt.Errorf("encoder id cannot be empty")
		}
		if _, exists := r.encoders[id]; exists {
			return nil, fmt.Errorf("encoder %s is already registered", id)
		}
		r.encoders[id] = enc
		r.builtin[id] = true
	}

	return r, nil
}

// Get retrieves an encoder by id.
func (r *Registry) Get(id string) (Encoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enc, exists := r.encoders[id]
	return enc, exists
}

// List returns all registered encoders, sorted by id for consistent ordering.
func (r *Registry) List() []Encoder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	encoders := make([]Encoder, 0, len(r.encoders))
	for _, enc := range r.encoders {
		encoders = append(encoders, enc)
	}

	sort.Slice(encoders, func(i, j int) bool {
		return encoders[i].ID() < encoders[j].ID()
	})

	return encoders
}

// ListReversible returns the reversible subset, sorted by id.
func (r *Registry) ListReversible() []Encoder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	encoders := make([]Encoder, 0)
	for _, enc := range r.encoders {
		if enc.Reversible() {
			encoders = append(encoders, enc)
		}
	}

	sort.Slice(encoders, func(i, j int) bool {
		return encoders[i].ID() < encoders[j].ID()
	})

	return encoders
}

// AddCustom registers a user-defined encoder. Built-in ids cannot be
// shadowed.
func (r *Registry) AddCustom(enc Encoder) error {
	if enc == nil {
		return fmt.Errorf("cannot register nil encoder")
	}
	id := enc.ID()
	if id == "" {
		return fmt.Errorf("encoder id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encoders[id]; exists {
		return fmt.Errorf("encoder %s is already registered", id)
	}

	r.encoders[id] = enc
	return nil
}

// RemoveCustom deletes a custom encoder. Removing a built-in or unknown id
// is an error.
func (r *Registry) RemoveCustom(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encoders[id]; !exists {
		return fmt.Errorf("encoder %s is not registered", id)
	}
	if r.builtin[id] {
		return fmt.Errorf("encoder %s is built in and cannot be removed", id)
	}

	delete(r.encoders, id)
	return nil
}
