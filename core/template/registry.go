// Package template holds intake question templates and the declarative
// mapping from raw answers to canonical calculator inputs.
package template

import (
	"sort"
	"sync"

	"energy-quote/core/types"
)

// Source supplies templates by key. The registry implements it; tests may
// substitute a fake.
type Source interface {
	// GetTemplate returns the template for key, or nil when unknown
	GetTemplate(key string) *types.Template
}

// Registry is a thread-safe template store
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*types.Template
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*types.Template)}
}

// Register adds or replaces a template under its ID
func (r *Registry) Register(t *types.Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := t.ID
	if key == "" {
		key = string(t.Industry)
	}
	r.templates[key] = t
}

// GetTemplate returns the template for key, or nil
func (r *Registry) GetTemplate(key string) *types.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.templates[key]
}

// Keys lists registered template keys, sorted
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.templates))
	for k := range r.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Default is the registry preloaded with the built-in templates
var Default = NewRegistry()
