package lazyml

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	_ "github.com/YuminosukeSato/lazyml/backends/all"
	"github.com/YuminosukeSato/lazyml/backends/boost"
	"github.com/YuminosukeSato/lazyml/backends/frame"
	"github.com/YuminosukeSato/lazyml/backends/learn"
	"github.com/YuminosukeSato/lazyml/backends/llm"
	"github.com/YuminosukeSato/lazyml/backends/neural"
	"github.com/YuminosukeSato/lazyml/backends/plotting"
	"github.com/YuminosukeSato/lazyml/backends/tensor"
	"github.com/YuminosukeSato/lazyml/backends/vision"
	"github.com/YuminosukeSato/lazyml/core/lazy"
	"github.com/YuminosukeSato/lazyml/pkg/config"
	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"github.com/YuminosukeSato/lazyml/pkg/log"
)

// namespaceName is how the namespace identifies itself in
// AttributeError messages.
const namespaceName = "lazyml"

// DefaultRegistry returns the standard eight-backend registry.
func DefaultRegistry() *lazy.Registry {
	return lazy.MustNewRegistry([]lazy.Spec{
		{Name: "tensor", ImportPath: tensor.ImportPath, Summary: "dense matrices (gonum/mat)"},
		{Name: "frame", ImportPath: frame.ImportPath, Summary: "data frames (gota)"},
		{Name: "plot", ImportPath: plotting.ImportPath, Summary: "charts (gonum/plot)"},
		{Name: "learn", ImportPath: learn.ImportPath, Summary: "classical estimators"},
		{Name: "boost", ImportPath: boost.ImportPath, Summary: "gradient boosted trees"},
		{Name: "neural", ImportPath: neural.ImportPath, Summary: "feed-forward networks"},
		{Name: "vision", ImportPath: vision.ImportPath, Summary: "image operations"},
		{Name: "llm", ImportPath: llm.ImportPath, Summary: "hosted language models"},
	})
}

// Namespace is a deferred-binding facade over the registered backends.
// Backends resolve on first use and stay cached for the lifetime of the
// namespace; names never touched are never built.
type Namespace struct {
	id        string
	registry  *lazy.Registry
	resolver  lazy.Resolver
	logger    log.Logger
	cfg       *config.Config
	configure bool

	cache *lazy.Cache
	funcs map[string]any
}

// New creates a namespace. Without options it uses the default
// registry, the process-wide builder table, and the default logger.
func New(opts ...Option) *Namespace {
	ns := &Namespace{
		id:       uuid.NewString(),
		registry: DefaultRegistry(),
		resolver: lazy.TableResolver{},
		logger:   log.Default(),
		cfg:      config.Default(),
	}
	for _, opt := range opts {
		opt(ns)
	}

	if ns.configure {
		applyBackendConfig(ns.cfg)
	}

	ns.logger = ns.logger.With(log.NamespaceIDKey, ns.id)
	ns.cache = lazy.NewCache(ns.registry, ns.resolver, ns.logger)
	ns.funcs = map[string]any{
		"LoadModel":      ns.LoadModel,
		"PreprocessData": ns.PreprocessData,
		"TrainModel":     ns.TrainModel,
		"LoadedBackends": ns.LoadedBackends,
		"ForceLoadAll":   ns.ForceLoadAll,
		"CheckVersions":  ns.CheckVersions,
	}
	return ns
}

// applyBackendConfig pushes the config sections to the backends that
// accept pre-resolution configuration. Engines built earlier keep the
// settings they were built with.
func applyBackendConfig(cfg *config.Config) {
	plotting.Configure(plotting.Config{
		WidthInches:  cfg.Plot.WidthInches,
		HeightInches: cfg.Plot.HeightInches,
	})
	neural.Configure(neural.TrainingConfig{
		Epochs:       cfg.Neural.Epochs,
		BatchSize:    cfg.Neural.BatchSize,
		LearningRate: cfg.Neural.LearningRate,
	})
	boost.Configure(boost.TrainingParams{
		NumIterations: cfg.Boost.NumIterations,
		LearningRate:  cfg.Boost.LearningRate,
		NumLeaves:     cfg.Boost.NumLeaves,
		MaxDepth:      cfg.Boost.MaxDepth,
	})
	llm.Configure(llm.Config{
		Provider:     cfg.LLM.Provider,
		Model:        cfg.LLM.Model,
		APIBase:      cfg.LLM.APIBase,
		APIKey:       cfg.LLM.APIKey,
		ProbeTimeout: time.Duration(cfg.LLM.ProbeTimeoutSeconds) * time.Second,
	})
}

// ID returns the namespace instance id used in its log records.
func (ns *Namespace) ID() string { return ns.id }

// Registry returns the namespace's registry.
func (ns *Namespace) Registry() *lazy.Registry { return ns.registry }

// MemberKind tags what a namespace member is.
type MemberKind int

const (
	// MemberBackend is a deferred backend handle.
	MemberBackend MemberKind = iota
	// MemberFunc is a convenience or utility function.
	MemberFunc
)

// Member is the result of a namespace lookup.
type Member struct {
	Kind   MemberKind
	Name   string
	Handle *lazy.Handle // set for MemberBackend
	Func   any          // set for MemberFunc
}

// Get looks a name up on the namespace. Backend names yield a deferred
// handle with stable identity; convenience and utility names yield the
// function. Anything else is an AttributeError. Looking a backend up
// does not resolve it.
func (ns *Namespace) Get(name string) (Member, error) {
	if h, ok := ns.cache.Handle(name); ok {
		return Member{Kind: MemberBackend, Name: name, Handle: h}, nil
	}
	if fn, ok := ns.funcs[name]; ok {
		return Member{Kind: MemberFunc, Name: name, Func: fn}, nil
	}
	return Member{}, errors.NewAttributeError(namespaceName, name)
}

// Dir lists every name the namespace exposes: all backend names plus
// the convenience and utility functions, sorted. The listing does not
// depend on what has been resolved.
func (ns *Namespace) Dir() []string {
	names := ns.registry.Names()
	for name := range ns.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// handle returns the deferred handle for a backend name.
func (ns *Namespace) handle(name string) (*lazy.Handle, error) {
	h, ok := ns.cache.Handle(name)
	if !ok {
		return nil, errors.NewAttributeError(namespaceName, name)
	}
	return h, nil
}

// resolve resolves a backend by logical name.
func (ns *Namespace) resolve(name string) (any, error) {
	h, err := ns.handle(name)
	if err != nil {
		return nil, err
	}
	return h.Resolve()
}

var (
	defaultOnce sync.Once
	defaultNS   *Namespace
)

// Default returns the process-wide namespace, constructed on first use.
// The package-level convenience functions delegate to it.
func Default() *Namespace {
	defaultOnce.Do(func() {
		defaultNS = New()
	})
	return defaultNS
}

// Get looks a name up on the default namespace.
func Get(name string) (Member, error) { return Default().Get(name) }

// Dir lists the default namespace's members.
func Dir() []string { return Default().Dir() }
