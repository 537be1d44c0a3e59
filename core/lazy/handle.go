package lazy

import (
	"reflect"
	"sort"
	"sync"

	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"github.com/YuminosukeSato/lazyml/pkg/log"
)

// Versioner is implemented by backend engines that can report a version
// identifier. Engines without it show up as "Unknown" in version probes.
type Versioner interface {
	Version() string
}

// AttrProvider lets a backend engine answer member lookups directly
// instead of going through reflection. The second return value reports
// whether the member exists.
type AttrProvider interface {
	Attr(name string) (any, bool)
}

// Handle is the deferred placeholder for one logical backend. A handle
// has a two-state lifecycle: Unresolved until the first successful
// Resolve, then Resolved forever. A failed resolution leaves the handle
// Unresolved so a later call retries; failure is never cached.
//
// Handles are safe for concurrent use. The per-handle mutex guarantees
// at most one builder invocation under concurrent first access; losers
// of the race observe the winner's target.
type Handle struct {
	spec     Spec
	resolver Resolver
	logger   log.Logger
	onLoad   func(name string)

	mu       sync.Mutex
	target   any
	resolved bool
}

func newHandle(spec Spec, resolver Resolver, logger log.Logger, onLoad func(string)) *Handle {
	return &Handle{
		spec:     spec,
		resolver: resolver,
		logger:   logger,
		onLoad:   onLoad,
	}
}

// Name returns the logical backend name.
func (h *Handle) Name() string { return h.spec.Name }

// ImportPath returns the import path the handle resolves through.
func (h *Handle) ImportPath() string { return h.spec.ImportPath }

// Resolved reports whether the handle holds a live target.
func (h *Handle) Resolved() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resolved
}

// Resolve returns the backend engine, building it on first call. Every
// attempt emits a notice, not only successes. On failure the returned
// error is a LoadError naming the logical name and the import path, and
// the handle stays Unresolved.
func (h *Handle) Resolve() (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.resolved {
		return h.target, nil
	}

	h.logger.Info("loading backend",
		log.BackendKey, h.spec.Name,
		log.ImportPathKey, h.spec.ImportPath,
	)

	target, err := h.resolver.Resolve(h.spec.ImportPath)
	if err != nil {
		loadErr := errors.NewLoadError(h.spec.Name, h.spec.ImportPath, err)
		h.logger.Warn("backend load failed",
			log.BackendKey, h.spec.Name,
			log.ImportPathKey, h.spec.ImportPath,
			log.OutcomeKey, log.OutcomeFailed,
			"error", loadErr,
		)
		return nil, loadErr
	}

	h.target = target
	h.resolved = true
	if h.onLoad != nil {
		h.onLoad(h.spec.Name)
	}

	h.logger.Info("backend loaded",
		log.BackendKey, h.spec.Name,
		log.ImportPathKey, h.spec.ImportPath,
		log.OutcomeKey, log.OutcomeLoaded,
	)
	return h.target, nil
}

// Attr resolves the backend and looks the named member up on the target.
// Targets implementing AttrProvider are consulted first; otherwise the
// lookup falls back to reflection over exported methods and struct
// fields. An unknown member yields an AttributeError naming the backend.
func (h *Handle) Attr(name string) (any, error) {
	target, err := h.Resolve()
	if err != nil {
		return nil, err
	}

	if ap, ok := target.(AttrProvider); ok {
		if v, ok := ap.Attr(name); ok {
			return v, nil
		}
	}

	v := reflect.ValueOf(target)
	if m := v.MethodByName(name); m.IsValid() {
		return m.Interface(), nil
	}
	elem := v
	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		if f := elem.FieldByName(name); f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	}

	return nil, errors.NewAttributeError(h.spec.Name, name)
}

// Attrs lists the target's exported members for introspection. Unlike
// Attr, a resolution failure is non-fatal here: the result is nil rather
// than an error. The listing is sorted.
func (h *Handle) Attrs() []string {
	target, err := h.Resolve()
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	v := reflect.ValueOf(target)
	t := v.Type()
	for i := 0; i < t.NumMethod(); i++ {
		seen[t.Method(i).Name] = struct{}{}
	}
	elem := v
	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		et := elem.Type()
		for i := 0; i < et.NumField(); i++ {
			f := et.Field(i)
			if f.IsExported() {
				seen[f.Name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
