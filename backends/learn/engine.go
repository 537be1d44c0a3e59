// Package learn is the classical-estimator backend: scalers, linear
// regression with scikit-learn JSON interchange, and gob persistence.
package learn

import (
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/lazyml/core/lazy"
	"github.com/YuminosukeSato/lazyml/core/model"
	"github.com/YuminosukeSato/lazyml/pkg/errors"
)

// ImportPath is the builder key this backend registers under.
const ImportPath = "github.com/YuminosukeSato/lazyml/backends/learn"

const engineVersion = "0.2.0"

func init() {
	lazy.RegisterBuilder(ImportPath, func() (any, error) {
		return NewEngine(), nil
	})
}

// Engine exposes the classical estimators.
type Engine struct{}

// NewEngine creates a learn engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Version implements lazy.Versioner.
func (e *Engine) Version() string { return engineVersion }

// NewStandardScaler returns a scaler that centers to zero mean and unit
// variance.
func (e *Engine) NewStandardScaler() *StandardScaler {
	return NewStandardScalerDefault()
}

// NewMinMaxScaler returns a scaler to the [0, 1] range.
func (e *Engine) NewMinMaxScaler() *MinMaxScaler {
	return NewMinMaxScalerDefault()
}

// NewLinearRegression returns an unfitted linear regression model.
func (e *Engine) NewLinearRegression() *LinearRegression {
	return NewLinearRegression()
}

// LoadModel loads a model from path, dispatching on the extension:
// ".json" is a scikit-learn JSON export, ".gob" a native gob model.
func (e *Engine) LoadModel(path string) (model.Predictor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		lr := NewLinearRegression()
		if err := lr.LoadFromSKLearn(path); err != nil {
			return nil, err
		}
		return lr, nil
	case ".gob":
		lr := NewLinearRegression()
		if err := model.LoadModel(lr, path); err != nil {
			return nil, errors.NewModelError("learn.LoadModel", "gob decode failed", err)
		}
		lr.SetFitted()
		return lr, nil
	default:
		return nil, errors.NewValueError("learn.LoadModel",
			"unsupported model file extension: "+filepath.Ext(path))
	}
}
