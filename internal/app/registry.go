package app

import (
	"sort"
	"sync"

	"github.com/attestlab/attestd/internal/errors"
)

// Registry maps module names to implementations. It is populated by explicit
// registration at startup; lookups of unregistered names surface
// ErrModuleNotFound rather than any dynamic loading.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty module registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register adds a module under its canonical name. Registering a nil module
// or a duplicate name is an error.
func (r *Registry) Register(m Module) error {
	if m == nil {
		return errors.Wrap(errors.ErrEmptyValue, "module is nil")
	}
	name := m.Name()
	if name == "" {
		return errors.Wrap(errors.ErrEmptyValue, "module name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[name]; exists {
		return errors.Wrapf(errors.ErrModuleAlreadyRegistered, "%q", name)
	}
	r.modules[name] = m
	return nil
}

// Resolve returns the module registered under name, or ErrModuleNotFound.
func (r *Registry) Resolve(name string) (Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrModuleNotFound, "%q", name)
	}
	return m, nil
}

// Names returns the registered module names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
