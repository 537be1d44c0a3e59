package learn

import (
	"encoding/json"
	"io"
	"os"

	"github.com/YuminosukeSato/lazyml/core/model"
	"github.com/YuminosukeSato/lazyml/core/parallel"
	"github.com/YuminosukeSato/lazyml/metrics"
	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LinearRegression is an ordinary least squares model fitted with the
// normal equations. Coefficients are kept as plain slices so the model
// survives gob round trips.
type LinearRegression struct {
	model.BaseEstimator

	Coef      []float64
	Intercept float64
	NFeatures int
}

// NewLinearRegression creates an unfitted linear regression model.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Fit trains the model by solving w = (X^T X)^{-1} X^T y.
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	lr.NFeatures = c

	// Prepend a column of ones for the intercept term.
	XWithIntercept := mat.NewDense(r, c+1, nil)

	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			XWithIntercept.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				XWithIntercept.Set(i, j+1, X.At(i, j))
			}
		}
	})

	var XT mat.Dense
	XT.CloneFrom(XWithIntercept.T())

	var XTX mat.Dense
	XTX.Mul(&XT, XWithIntercept)

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, yVec)

	weights := mat.NewVecDense(c+1, nil)
	weights.MulVec(&XTXInv, &XTy)

	lr.Intercept = weights.AtVec(0)
	lr.Coef = make([]float64, c)
	for i := 0; i < c; i++ {
		lr.Coef[i] = weights.AtVec(i + 1)
	}

	lr.SetFitted()
	return nil
}

// Predict returns predictions y = X·w + intercept.
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Coef[j]
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// GetWeights returns a copy of the learned coefficients.
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Coef == nil {
		return nil
	}
	weights := make([]float64, len(lr.Coef))
	copy(weights, lr.Coef)
	return weights
}

// GetIntercept returns the learned intercept.
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// Score computes the coefficient of determination R².
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	yTrueVec := mat.NewVecDense(r, nil)
	yPredVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrueVec.SetVec(i, y.At(i, 0))
		yPredVec.SetVec(i, yPred.At(i, 0))
	}

	return metrics.R2Score(yTrueVec, yPredVec)
}

// LoadFromSKLearn loads a model exported from scikit-learn as JSON.
func (lr *LinearRegression) LoadFromSKLearn(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return lr.LoadFromSKLearnReader(file)
}

// LoadFromSKLearnReader loads a scikit-learn JSON model from a Reader.
func (lr *LinearRegression) LoadFromSKLearnReader(r io.Reader) error {
	skModel, err := model.LoadSKLearnModelFromReader(r)
	if err != nil {
		return errors.Wrap(err, "failed to load sklearn model")
	}

	params, err := model.LoadLinearRegressionParams(skModel)
	if err != nil {
		return errors.Wrap(err, "failed to load linear regression params")
	}

	lr.NFeatures = params.NFeatures
	lr.Intercept = params.Intercept
	lr.Coef = make([]float64, len(params.Coefficients))
	copy(lr.Coef, params.Coefficients)

	lr.SetFitted()
	return nil
}

// ExportToSKLearn writes the model in the scikit-learn JSON format.
func (lr *LinearRegression) ExportToSKLearn(filename string) error {
	if !lr.IsFitted() {
		return errors.NewNotFittedError("LinearRegression", "ExportToSKLearn")
	}

	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer file.Close()

	return lr.ExportToSKLearnWriter(file)
}

// ExportToSKLearnWriter writes the scikit-learn JSON format to a Writer.
func (lr *LinearRegression) ExportToSKLearnWriter(w io.Writer) error {
	if !lr.IsFitted() {
		return errors.NewNotFittedError("LinearRegression", "ExportToSKLearnWriter")
	}

	params := model.SKLearnLinearRegressionParams{
		Coefficients: lr.GetWeights(),
		Intercept:    lr.Intercept,
		NFeatures:    lr.NFeatures,
	}

	skModel := model.SKLearnModel{
		ModelSpec: model.SKLearnModelSpec{
			Name:          "LinearRegression",
			FormatVersion: "1.0",
		},
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "failed to marshal params")
	}
	skModel.Params = paramsJSON

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&skModel); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}

	return nil
}

// Save persists the model to a gob file.
func (lr *LinearRegression) Save(path string) error {
	if !lr.IsFitted() {
		return errors.NewNotFittedError("LinearRegression", "Save")
	}
	return model.SaveModel(lr, path)
}
