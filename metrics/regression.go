// Package metrics provides evaluation metrics for the lazyml backends:
// regression errors on gonum vectors/matrices and binary classification
// scores. The learn, boost, and neural backends use these for their
// Score methods; the examples use them for reporting.
package metrics

import (
	"math"

	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// checkPair validates that both vectors are non-empty and equal length.
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// MSE computes the mean squared error.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// MSEMatrix computes MSE for column-vector matrices.
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	r, c := yTrue.Dims()
	rp, cp := yPred.Dims()

	if r == 0 || c == 0 {
		return 0, errors.NewValueError("MSEMatrix", "empty matrix")
	}
	if r != rp || c != cp {
		return 0, errors.NewDimensionError("MSEMatrix", r, rp, 0)
	}
	if c != 1 {
		return 0, errors.NewValueError("MSEMatrix", "must be a column vector (n×1 matrix)")
	}

	yTrueVec := mat.NewVecDense(r, nil)
	yPredVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrueVec.SetVec(i, yTrue.At(i, 0))
		yPredVec.SetVec(i, yPred.At(i, 0))
	}
	return MSE(yTrueVec, yPredVec)
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination, 1 - RSS/TSS. A
// target vector with no variance has TSS of zero and is an error.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		truth := yTrue.AtVec(i)
		resid := truth - yPred.AtVec(i)
		tss += (truth - yMean) * (truth - yMean)
		rss += resid * resid
	}

	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}

// MAPE computes the mean absolute percentage error. Entries where yTrue
// is zero are skipped to avoid division by zero.
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	valid := 0
	for i := 0; i < n; i++ {
		truth := yTrue.AtVec(i)
		if truth == 0 {
			continue
		}
		sum += math.Abs(truth-yPred.AtVec(i)) / math.Abs(truth)
		valid++
	}

	if valid == 0 {
		return 0, errors.Newf("MAPE: all yTrue values are zero")
	}
	return (sum / float64(valid)) * 100, nil
}

// ExplainedVarianceScore computes 1 - Var(yTrue - yPred) / Var(yTrue).
// Unlike R², a constant prediction bias does not reduce the score.
func ExplainedVarianceScore(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("ExplainedVarianceScore", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var truthMean, residMean float64
	for i := 0; i < n; i++ {
		truthMean += yTrue.AtVec(i)
		residMean += yTrue.AtVec(i) - yPred.AtVec(i)
	}
	truthMean /= float64(n)
	residMean /= float64(n)

	var truthVar, residVar float64
	for i := 0; i < n; i++ {
		truth := yTrue.AtVec(i)
		resid := truth - yPred.AtVec(i)
		truthVar += (truth - truthMean) * (truth - truthMean)
		residVar += (resid - residMean) * (resid - residMean)
	}
	truthVar /= float64(n)
	residVar /= float64(n)

	if truthVar == 0 {
		return 0, errors.Newf("ExplainedVarianceScore: no variance in yTrue")
	}
	return 1 - residVar/truthVar, nil
}
