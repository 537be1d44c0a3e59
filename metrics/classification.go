package metrics

import (
	"math"

	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Accuracy computes classification accuracy for binary targets. yPred
// holds probabilities or scores; values at or above threshold count as
// the positive class. Both inputs are n×1 matrices.
func Accuracy(yTrue, yPred mat.Matrix, threshold float64) (float64, error) {
	r, c := yTrue.Dims()
	rp, cp := yPred.Dims()

	if r == 0 || c == 0 {
		return 0, errors.NewValueError("Accuracy", "empty matrix")
	}
	if r != rp || c != cp {
		return 0, errors.NewDimensionError("Accuracy", r, rp, 0)
	}
	if c != 1 {
		return 0, errors.NewValueError("Accuracy", "must be a column vector (n×1 matrix)")
	}

	correct := 0
	for i := 0; i < r; i++ {
		label := 0.0
		if yPred.At(i, 0) >= threshold {
			label = 1.0
		}
		if label == yTrue.At(i, 0) {
			correct++
		}
	}

	return float64(correct) / float64(r), nil
}

// LogLoss computes the binary cross-entropy of predicted probabilities.
// Probabilities are clipped away from 0 and 1 so the result is finite.
func LogLoss(yTrue, yPred mat.Matrix) (float64, error) {
	r, c := yTrue.Dims()
	rp, cp := yPred.Dims()

	if r == 0 || c == 0 {
		return 0, errors.NewValueError("LogLoss", "empty matrix")
	}
	if r != rp || c != cp {
		return 0, errors.NewDimensionError("LogLoss", r, rp, 0)
	}
	if c != 1 {
		return 0, errors.NewValueError("LogLoss", "must be a column vector (n×1 matrix)")
	}

	const eps = 1e-15
	var sum float64
	for i := 0; i < r; i++ {
		p := errors.ClipValue(yPred.At(i, 0), eps, 1-eps)
		y := yTrue.At(i, 0)
		sum += y*math.Log(p) + (1-y)*math.Log(1-p)
	}

	return -sum / float64(r), nil
}
