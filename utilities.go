package lazyml

import (
	"github.com/YuminosukeSato/lazyml/core/lazy"
	"github.com/YuminosukeSato/lazyml/pkg/log"
)

// Version sentinels reported by CheckVersions.
const (
	// VersionUnknown is reported for a backend that resolved but does
	// not expose a version.
	VersionUnknown = "Unknown"
	// VersionNotInstalled is reported for a backend that failed to
	// resolve.
	VersionNotInstalled = "Not installed"
)

// LoadedBackends returns the names that have resolved successfully at
// least once, sorted. Failed attempts never appear.
func (ns *Namespace) LoadedBackends() []string {
	return ns.cache.Loaded()
}

// ForceLoadAll attempts to resolve every registered backend, in
// registration order. A failure never aborts the walk; the returned map
// has one entry per logical name, nil on success.
func (ns *Namespace) ForceLoadAll() map[string]error {
	results := make(map[string]error, ns.registry.Len())
	for _, spec := range ns.registry.Specs() {
		h, ok := ns.cache.Handle(spec.Name)
		if !ok {
			continue
		}
		_, err := h.Resolve()
		results[spec.Name] = err
		if err != nil {
			ns.logger.Warn("warm-up load failed",
				log.BackendKey, spec.Name,
				"error", err,
			)
			continue
		}
		ns.logger.Info("warm-up load succeeded",
			log.BackendKey, spec.Name,
		)
	}
	return results
}

// CheckVersions resolves every registered backend and reports a version
// string per logical name: the engine's own version when it exposes
// one, VersionUnknown when it resolved without one, VersionNotInstalled
// when resolution failed. It never returns an error.
func (ns *Namespace) CheckVersions() map[string]string {
	versions := make(map[string]string, ns.registry.Len())
	for _, spec := range ns.registry.Specs() {
		h, ok := ns.cache.Handle(spec.Name)
		if !ok {
			continue
		}
		target, err := h.Resolve()
		if err != nil {
			versions[spec.Name] = VersionNotInstalled
			continue
		}
		version := VersionUnknown
		if v, ok := target.(lazy.Versioner); ok {
			if s := v.Version(); s != "" {
				version = s
			}
		}
		versions[spec.Name] = version
		ns.logger.Info("backend version",
			log.BackendKey, spec.Name,
			log.VersionKey, version,
		)
	}
	return versions
}

// Package-level utilities over the default namespace.

// LoadedBackends lists the default namespace's resolved backends.
func LoadedBackends() []string { return Default().LoadedBackends() }

// ForceLoadAll warms the default namespace up.
func ForceLoadAll() map[string]error { return Default().ForceLoadAll() }

// CheckVersions reports backend versions for the default namespace.
func CheckVersions() map[string]string { return Default().CheckVersions() }
