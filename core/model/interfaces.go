// Package model provides the estimator substrate shared by the lazyml
// backends: the fitted-state base, the estimator interfaces the
// convenience wrappers return, and model persistence (gob and the
// scikit-learn JSON envelope).
package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for trainable models.
type Fitter interface {
	// Fit trains the model on X and y.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that can predict. It is the
// smallest honest type the convenience wrappers can return: every
// trained or loaded model predicts, whatever backend produced it.
type Predictor interface {
	// Predict returns predictions for the rows of X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X mat.Matrix, y mat.Matrix) (float64, error)
}

// Regressor combines the interfaces of regression models.
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// Transformer is the interface for data transformations.
type Transformer interface {
	// Fit learns the parameters of the transformation from X.
	Fit(X mat.Matrix) error

	// Transform applies the learned transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform fits on X and transforms it in one call.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}
