package fields

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry tracks component factories keyed by kind. Callers can register new
// components or override defaults before freezing it.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]entry
}

type entry struct {
	kind    Kind
	factory Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]entry),
	}
}

// Register associates a factory with a kind. Existing entries are replaced.
func (r *Registry) Register(kind Kind, factory Factory) error {
	key := normalize(kind)
	if key == "" {
		return fmt.Errorf("fields: component kind is required")
	}
	if factory == nil {
		return fmt.Errorf("fields: factory for %q is nil", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[key] = entry{kind: Kind(strings.TrimSpace(string(kind))), factory: factory}
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default
// registry setup.
func (r *Registry) MustRegister(kind Kind, factory Factory) {
	if err := r.Register(kind, factory); err != nil {
		panic(err)
	}
}

// Names returns a sorted slice of registered kinds.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKinds(r.factories)
}

// Freeze snapshots the registry. Later registrations do not affect the
// returned resolver.
func (r *Registry) Freeze() *Resolver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]entry, len(r.factories))
	for key, value := range r.factories {
		snapshot[key] = value
	}
	return &Resolver{factories: snapshot}
}

// Resolver is an immutable kind lookup, safe for concurrent use without
// locking.
type Resolver struct {
	factories map[string]entry
}

// Lookup returns the factory registered for kind. Kinds match case
// insensitively.
func (r *Resolver) Lookup(kind Kind) (Factory, bool) {
	if r == nil {
		return nil, false
	}
	found, ok := r.factories[normalize(kind)]
	if !ok {
		return nil, false
	}
	return found.factory, true
}

// Names returns the sorted kinds the resolver knows.
func (r *Resolver) Names() []string {
	if r == nil {
		return nil
	}
	return sortedKinds(r.factories)
}

func sortedKinds(factories map[string]entry) []string {
	names := make([]string, 0, len(factories))
	for _, value := range factories {
		names = append(names, string(value.kind))
	}
	slices.Sort(names)
	return names
}

func normalize(kind Kind) string {
	return strings.ToLower(strings.TrimSpace(string(kind)))
}
