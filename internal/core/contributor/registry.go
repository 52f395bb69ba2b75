// Package contributor keeps the ordered list of asset contributors.
package contributor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"kilometers.ai/assets/internal/core/asset"
	"kilometers.ai/assets/internal/core/ports"
)

// ErrDuplicateContributor is returned when a name is registered twice
var ErrDuplicateContributor = errors.New("contributor already registered")

// Registry holds contributors in registration order. Registration normally
// happens at startup; reads during serving only take the read lock.
type Registry struct {
	mu           sync.RWMutex
	contributors []ports.Contributor
	names        map[string]struct{}
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]struct{}),
	}
}

// Register appends c to the invocation order
func (r *Registry) Register(c ports.Contributor) error {
	if c == nil {
		return fmt.Errorf("contributor cannot be nil")
	}
	name := c.Name()
	if name == "" {
		return fmt.Errorf("contributor name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.names[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateContributor, name)
	}
	r.names[name] = struct{}{}
	r.contributors = append(r.contributors, c)
	return nil
}

// RegisterFunc registers a plain function under name
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context, c *asset.Collector) error) error {
	if fn == nil {
		return fmt.Errorf("contributor %s: function cannot be nil", name)
	}
	return r.Register(ports.ContributorFunc{ID: name, Fn: fn})
}

// Contributors returns a snapshot of the registered contributors in order
func (r *Registry) Contributors() []ports.Contributor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.contributors)
}

// Len returns the number of registered contributors
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contributors)
}
