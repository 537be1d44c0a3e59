// Package lazy implements the deferred-binding mechanism behind a lazyml
// namespace: a registry of logical backend names, a process-wide table of
// backend builders keyed by import path, and per-name handles that
// resolve a backend on first genuine use and cache the result for the
// lifetime of the process.
package lazy

import (
	"sort"

	"github.com/YuminosukeSato/lazyml/pkg/errors"
)

// Spec describes one registered backend: its short logical name, the
// import path its builder is registered under, and a one-line summary
// used for introspection output.
type Spec struct {
	Name       string
	ImportPath string
	Summary    string
}

// Registry is a fixed mapping from logical backend names to import
// paths. It is immutable after construction; the set of names a
// namespace exposes never changes at runtime.
type Registry struct {
	specs []Spec
	index map[string]int
}

// NewRegistry builds a Registry from the given specs. Registration order
// is preserved and used by best-effort iteration (ForceLoadAll walks
// entries in this order). Duplicate names return an error.
func NewRegistry(specs []Spec) (*Registry, error) {
	r := &Registry{
		specs: make([]Spec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		if s.Name == "" || s.ImportPath == "" {
			return nil, errors.NewValidationError("spec", "name and import path are required", s)
		}
		if _, dup := r.index[s.Name]; dup {
			return nil, errors.NewValidationError("spec", "duplicate backend name", s.Name)
		}
		r.index[s.Name] = len(r.specs)
		r.specs = append(r.specs, s)
	}
	return r, nil
}

// MustNewRegistry is NewRegistry that panics on error. It is intended
// for package-level default registries built from literals.
func MustNewRegistry(specs []Spec) *Registry {
	r, err := NewRegistry(specs)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the spec for a logical name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	i, ok := r.index[name]
	if !ok {
		return Spec{}, false
	}
	return r.specs[i], true
}

// Names returns all registered logical names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.specs))
	for _, s := range r.specs {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Specs returns the registered specs in registration order.
func (r *Registry) Specs() []Spec {
	out := make([]Spec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Len returns the number of registered backends.
func (r *Registry) Len() int {
	return len(r.specs)
}
