// Package tensor is the dense-matrix backend. It wraps gonum/mat in a
// small toolkit engine and registers its builder under the package
// import path, so a namespace resolves it on first use.
package tensor

import (
	"math"

	"github.com/YuminosukeSato/lazyml/core/lazy"
	"github.com/YuminosukeSato/lazyml/core/parallel"
	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ImportPath is the builder key this backend registers under.
const ImportPath = "github.com/YuminosukeSato/lazyml/backends/tensor"

// engineVersion tracks the wrapped gonum release.
const engineVersion = "gonum v0.16.0"

// parallelThreshold is the row count above which per-row operations are
// split across workers.
const parallelThreshold = 1000

func init() {
	lazy.RegisterBuilder(ImportPath, func() (any, error) {
		return NewEngine(), nil
	})
}

// Engine is the dense-matrix toolkit.
type Engine struct{}

// NewEngine creates a tensor engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Version implements lazy.Versioner.
func (e *Engine) Version() string { return engineVersion }

// Zeros returns an r×c matrix of zeros.
func (e *Engine) Zeros(r, c int) *mat.Dense {
	return mat.NewDense(r, c, nil)
}

// Eye returns the n×n identity matrix.
func (e *Engine) Eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// FromRows builds a matrix from row slices. All rows must have the same
// length.
func (e *Engine) FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.NewModelError("tensor.FromRows", "empty data", errors.ErrEmptyData)
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for _, row := range rows {
		if len(row) != c {
			return nil, errors.NewDimensionError("tensor.FromRows", c, len(row), 1)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), c, data), nil
}

// MatMul returns a×b.
func (e *Engine) MatMul(a, b mat.Matrix) (*mat.Dense, error) {
	_, ac := a.Dims()
	br, _ := b.Dims()
	if ac != br {
		return nil, errors.NewDimensionError("tensor.MatMul", ac, br, 0)
	}
	var out mat.Dense
	out.Mul(a, b)
	return &out, nil
}

// Mean returns per-column means.
func (e *Engine) Mean(X mat.Matrix) []float64 {
	r, c := X.Dims()
	means := make([]float64, c)
	if r == 0 {
		return means
	}
	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		means[j] = sum / float64(r)
	}
	return means
}

// Std returns per-column population standard deviations.
func (e *Engine) Std(X mat.Matrix) []float64 {
	r, c := X.Dims()
	stds := make([]float64, c)
	if r == 0 {
		return stds
	}
	means := e.Mean(X)
	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			d := X.At(i, j) - means[j]
			sum += d * d
		}
		stds[j] = math.Sqrt(sum / float64(r))
	}
	return stds
}

// Norms returns the L2 norm of each row.
func (e *Engine) Norms(X mat.Matrix) []float64 {
	r, c := X.Dims()
	norms := make([]float64, r)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			var sum float64
			for j := 0; j < c; j++ {
				v := X.At(i, j)
				sum += v * v
			}
			norms[i] = math.Sqrt(sum)
		}
	})
	return norms
}

// NormalizeRows scales every row of X to unit L2 norm. Zero rows are
// left as zeros.
func (e *Engine) NormalizeRows(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	norms := e.Norms(X)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			if norms[i] == 0 {
				continue
			}
			for j := 0; j < c; j++ {
				out.Set(i, j, X.At(i, j)/norms[i])
			}
		}
	})
	return out
}
