package neural

import (
	"sync"

	"github.com/YuminosukeSato/lazyml/core/lazy"
	"gonum.org/v1/gonum/mat"
)

// ImportPath is the builder key this backend registers under.
const ImportPath = "github.com/YuminosukeSato/lazyml/backends/neural"

const engineVersion = "0.2.0"

var (
	cfgMu  sync.Mutex
	cfgDef = DefaultTrainingConfig()
)

// Configure sets the training defaults the next built engine uses.
func Configure(cfg TrainingConfig) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfgDef = cfg.withDefaults()
}

func init() {
	lazy.RegisterBuilder(ImportPath, func() (any, error) {
		cfgMu.Lock()
		cfg := cfgDef
		cfgMu.Unlock()
		return NewEngine(cfg), nil
	})
}

// Engine builds and trains feed-forward networks.
type Engine struct {
	defaults TrainingConfig
}

// NewEngine creates a neural engine with the given training defaults.
func NewEngine(defaults TrainingConfig) *Engine {
	return &Engine{defaults: defaults.withDefaults()}
}

// Version implements lazy.Versioner.
func (e *Engine) Version() string { return engineVersion }

// Defaults returns the engine's training defaults.
func (e *Engine) Defaults() TrainingConfig { return e.defaults }

// NewNetwork builds an untrained network from layer widths.
func (e *Engine) NewNetwork(sizes []int, loss Loss) (*Sequential, error) {
	return NewSequential(sizes, loss, e.defaults.Seed)
}

// Train builds a network with one hidden layer and fits it with the
// engine's defaults. The loss follows the label shape: a single 0/1
// column still trains with MSE here; pass an explicit network to Fit
// for BCE.
func (e *Engine) Train(X, y mat.Matrix, hidden int) (*Sequential, error) {
	_, inFeatures := X.Dims()
	_, outFeatures := y.Dims()
	if hidden <= 0 {
		hidden = 16
	}

	net, err := NewSequential([]int{inFeatures, hidden, outFeatures}, LossMSE, e.defaults.Seed)
	if err != nil {
		return nil, err
	}
	if err := net.Fit(X, y, e.defaults); err != nil {
		return nil, err
	}
	return net, nil
}
