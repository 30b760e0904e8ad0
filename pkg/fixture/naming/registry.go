package naming

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ErrBlankKey indicates an override was registered with an empty key.
var ErrBlankKey = errors.New("fixture key cannot be blank")

// Registry maps Go types to explicit fixture keys.
// It uses sync.RWMutex since registration happens once and lookups are frequent.
type Registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[reflect.Type]string),
	}
}

// Register sets the fixture key for typ, replacing any earlier override.
// Pointer types are registered under their element type.
func (r *Registry) Register(typ reflect.Type, key string) error {
	if typ == nil {
		return errors.New("type is required")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("register %s: %w", DisplayName(typ), ErrBlankKey)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[indirect(typ)] = key
	return nil
}

// MustRegister registers an override, panicking on error.
func (r *Registry) MustRegister(typ reflect.Type, key string) {
	if err := r.Register(typ, key); err != nil {
		panic(err)
	}
}

// Register sets the fixture key for T in r.
func Register[T any](r *Registry, key string) error {
	return r.Register(reflect.TypeFor[T](), key)
}

// Lookup returns the override for typ and whether one exists.
func (r *Registry) Lookup(typ reflect.Type) (string, bool) {
	if r == nil || typ == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.entries[indirect(typ)]
	return key, ok
}

// Key returns the override for typ, falling back to the derived key.
// A nil registry derives every key.
func (r *Registry) Key(typ reflect.Type) string {
	if key, ok := r.Lookup(typ); ok {
		return key
	}
	return Key(typ)
}

// Delete removes the override for typ.
func (r *Registry) Delete(typ reflect.Type) {
	if typ == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, indirect(typ))
}

// Len returns the number of overrides.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Range calls fn for every override until fn returns false.
//
// Range iterates over a snapshot, so fn may call Register or Delete.
func (r *Registry) Range(fn func(reflect.Type, string) bool) {
	r.mu.RLock()
	snapshot := make(map[reflect.Type]string, len(r.entries))
	for k, v := range r.entries {
		snapshot[k] = v
	}
	r.mu.RUnlock()

	for k, v := range snapshot {
		if !fn(k, v) {
			return
		}
	}
}

func indirect(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}
