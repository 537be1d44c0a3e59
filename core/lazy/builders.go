package lazy

import (
	"sync"

	"github.com/YuminosukeSato/lazyml/pkg/errors"
)

// Builder constructs a backend engine. Builders run at most once per
// successful resolution of a name; construction is the deferred heavy
// work (loading fonts, probing servers, allocating pools).
type Builder func() (any, error)

var (
	buildersMu sync.RWMutex
	builders   = make(map[string]Builder)
)

// RegisterBuilder makes a backend available under its import path. It is
// intended to be called from a backend package's init function, the way
// database/sql drivers register themselves; linking the package into the
// binary is what "installs" the backend. Registering the same path twice
// or a nil builder panics.
func RegisterBuilder(importPath string, b Builder) {
	buildersMu.Lock()
	defer buildersMu.Unlock()
	if b == nil {
		panic("lazy: RegisterBuilder called with nil builder for " + importPath)
	}
	if _, dup := builders[importPath]; dup {
		panic("lazy: RegisterBuilder called twice for " + importPath)
	}
	builders[importPath] = b
}

// Builders returns the import paths with a registered builder, for
// introspection.
func Builders() []string {
	buildersMu.RLock()
	defer buildersMu.RUnlock()
	paths := make([]string, 0, len(builders))
	for p := range builders {
		paths = append(paths, p)
	}
	return paths
}

// Resolver turns an import path into a live backend engine. The default
// implementation consults the process-wide builders table; tests inject
// counting or failing resolvers to observe resolution behavior.
type Resolver interface {
	Resolve(importPath string) (any, error)
}

// TableResolver resolves import paths against the process-wide builders
// table. A path with no registered builder is "not installed". Panics
// inside builders are converted to errors so a misbehaving backend
// cannot abort best-effort utilities.
type TableResolver struct{}

// Resolve implements Resolver.
func (TableResolver) Resolve(importPath string) (any, error) {
	buildersMu.RLock()
	b, ok := builders[importPath]
	buildersMu.RUnlock()
	if !ok {
		return nil, errors.Newf("no backend registered for import path %q", importPath)
	}

	var target any
	err := errors.SafeExecute("build "+importPath, func() error {
		var buildErr error
		target, buildErr = b()
		return buildErr
	})
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errors.Newf("builder for %q returned a nil engine", importPath)
	}
	return target, nil
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(importPath string) (any, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(importPath string) (any, error) {
	return f(importPath)
}
