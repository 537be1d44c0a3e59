package lazyml

import (
	"github.com/YuminosukeSato/lazyml/core/lazy"
	"github.com/YuminosukeSato/lazyml/pkg/config"
	"github.com/YuminosukeSato/lazyml/pkg/log"
)

// Option configures a Namespace under construction.
type Option func(*Namespace)

// WithConfig sets the namespace configuration and pushes the backend
// sections (plotting size, training defaults, llm provider) to the
// backend packages before anything resolves.
func WithConfig(cfg *config.Config) Option {
	return func(ns *Namespace) {
		if cfg != nil {
			ns.cfg = cfg
			ns.configure = true
		}
	}
}

// WithLogger sets the logger resolution notices are emitted through.
func WithLogger(logger log.Logger) Option {
	return func(ns *Namespace) {
		if logger != nil {
			ns.logger = logger
		}
	}
}

// WithResolver replaces the default table resolver. Tests use this to
// inject counting or failing resolvers.
func WithResolver(r lazy.Resolver) Option {
	return func(ns *Namespace) {
		if r != nil {
			ns.resolver = r
		}
	}
}

// WithRegistry replaces the default backend registry.
func WithRegistry(r *lazy.Registry) Option {
	return func(ns *Namespace) {
		if r != nil {
			ns.registry = r
		}
	}
}
