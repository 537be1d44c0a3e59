package boost

import (
	"sync"

	"github.com/YuminosukeSato/lazyml/core/lazy"
	"gonum.org/v1/gonum/mat"
)

// ImportPath is the builder key this backend registers under.
const ImportPath = "github.com/YuminosukeSato/lazyml/backends/boost"

const engineVersion = "lightgbm-compat 0.2.0"

var (
	cfgMu     sync.Mutex
	cfgParams = DefaultParams()
)

// Configure sets the training defaults the next built engine uses.
func Configure(params TrainingParams) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfgParams = params.withDefaults()
}

func init() {
	lazy.RegisterBuilder(ImportPath, func() (any, error) {
		cfgMu.Lock()
		params := cfgParams
		cfgMu.Unlock()
		return NewEngine(params), nil
	})
}

// Engine exposes training and model loading for gradient boosting.
type Engine struct {
	defaults TrainingParams
}

// NewEngine creates a boosting engine with the given training defaults.
func NewEngine(defaults TrainingParams) *Engine {
	return &Engine{defaults: defaults.withDefaults()}
}

// Version implements lazy.Versioner.
func (e *Engine) Version() string { return engineVersion }

// Defaults returns the engine's training defaults.
func (e *Engine) Defaults() TrainingParams { return e.defaults }

// Train fits an ensemble on X and y with the engine's defaults.
func (e *Engine) Train(X, y mat.Matrix) (*Model, error) {
	return e.TrainWithParams(X, y, e.defaults)
}

// TrainWithParams fits an ensemble with explicit parameters.
func (e *Engine) TrainWithParams(X, y mat.Matrix, params TrainingParams) (*Model, error) {
	trainer := NewTrainer(params)
	if err := trainer.Fit(X, y); err != nil {
		return nil, err
	}
	return trainer.Model(), nil
}

// LoadModel reads a LightGBM text model from path.
func (e *Engine) LoadModel(path string) (*Model, error) {
	return LoadModel(path)
}
