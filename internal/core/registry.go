package core

import (
	"maps"
	"slices"
	"sync"
)

// Registry maps type tags to renderers. Registration is last-write-wins and
// visible to every lookup that follows it.
type Registry[R any] struct {
	mu      sync.RWMutex
	entries map[string]R
}

func NewRegistry[R any]() *Registry[R] {
	return &Registry[R]{entries: make(map[string]R)}
}

func (r *Registry[R]) Register(typ string, renderer R) {
	r.mu.Lock()
	r.entries[typ] = renderer
	r.mu.Unlock()
}

func (r *Registry[R]) RegisterMany(renderers map[string]R) {
	r.mu.Lock()
	maps.Copy(r.entries, renderers)
	r.mu.Unlock()
}

func (r *Registry[R]) Get(typ string) (R, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.entries[typ]
	return renderer, ok
}

func (r *Registry[R]) Has(typ string) bool {
	_, ok := r.Get(typ)
	return ok
}

func (r *Registry[R]) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.entries))
}
