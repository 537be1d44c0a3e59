package lazyml

import (
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/lazyml/backends/neural"
	"github.com/YuminosukeSato/lazyml/core/model"
	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Framework names accepted by LoadModel.
const (
	FrameworkAuto  = "auto"
	FrameworkLearn = "learn"
	FrameworkBoost = "boost"
)

// LoadModel loads a persisted model, resolving only the backend the
// file needs. With framework "auto" (or empty) the extension decides:
// .json and .gob are learn models, .txt and .lgbm are LightGBM text
// models for boost. A bad framework or an unrecognizable extension is a
// ValueError and resolves nothing.
func (ns *Namespace) LoadModel(path, framework string) (model.Predictor, error) {
	switch framework {
	case FrameworkAuto, "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".gob":
			framework = FrameworkLearn
		case ".txt", ".lgbm":
			framework = FrameworkBoost
		default:
			return nil, errors.NewValueError("lazyml.LoadModel",
				"cannot auto-detect framework from extension "+filepath.Ext(path))
		}
	case FrameworkLearn, FrameworkBoost:
	default:
		return nil, errors.NewValueError("lazyml.LoadModel", "unsupported framework: "+framework)
	}

	switch framework {
	case FrameworkLearn:
		engine, err := ns.Learn()
		if err != nil {
			return nil, err
		}
		return engine.LoadModel(path)
	default:
		engine, err := ns.Boost()
		if err != nil {
			return nil, err
		}
		return engine.LoadModel(path)
	}
}

// Preprocessing method names accepted by PreprocessData.
const (
	MethodStandard  = "standard"
	MethodMinMax    = "minmax"
	MethodNormalize = "normalize"
)

// PreprocessData fit-transforms X with the named method: "standard" and
// "minmax" use the learn backend's scalers, "normalize" uses the tensor
// backend's row L2-normalization. An unknown method is a ValueError and
// resolves nothing.
func (ns *Namespace) PreprocessData(X mat.Matrix, method string) (mat.Matrix, error) {
	switch method {
	case MethodStandard:
		engine, err := ns.Learn()
		if err != nil {
			return nil, err
		}
		return engine.NewStandardScaler().FitTransform(X)
	case MethodMinMax:
		engine, err := ns.Learn()
		if err != nil {
			return nil, err
		}
		return engine.NewMinMaxScaler().FitTransform(X)
	case MethodNormalize:
		engine, err := ns.Tensor()
		if err != nil {
			return nil, err
		}
		return engine.NormalizeRows(X), nil
	default:
		return nil, errors.NewValueError("lazyml.PreprocessData", "unknown method: "+method)
	}
}

// Model type names accepted by TrainModel.
const (
	ModelLinear           = "linear"
	ModelGradientBoosting = "gradient_boosting"
	ModelNeuralNetwork    = "neural_network"
)

// TrainModel trains a model of the named type on X and y, resolving
// only the backend that type needs. "neural_network" expects 0/1 labels
// and trains a 64-32-1 network with binary cross entropy. An unknown
// type is a ValueError and resolves nothing.
func (ns *Namespace) TrainModel(X, y mat.Matrix, modelType string) (model.Predictor, error) {
	switch modelType {
	case ModelLinear:
		engine, err := ns.Learn()
		if err != nil {
			return nil, err
		}
		lr := engine.NewLinearRegression()
		if err := lr.Fit(X, y); err != nil {
			return nil, err
		}
		return lr, nil

	case ModelGradientBoosting:
		engine, err := ns.Boost()
		if err != nil {
			return nil, err
		}
		return engine.Train(X, y)

	case ModelNeuralNetwork:
		engine, err := ns.Neural()
		if err != nil {
			return nil, err
		}
		_, inFeatures := X.Dims()
		net, err := engine.NewNetwork([]int{inFeatures, 64, 32, 1}, neural.LossBCE)
		if err != nil {
			return nil, err
		}
		if err := net.Fit(X, y, engine.Defaults()); err != nil {
			return nil, err
		}
		return net, nil

	default:
		return nil, errors.NewValueError("lazyml.TrainModel", "unknown model type: "+modelType)
	}
}

// Package-level wrappers over the default namespace.

// LoadModel loads a model through the default namespace.
func LoadModel(path, framework string) (model.Predictor, error) {
	return Default().LoadModel(path, framework)
}

// PreprocessData preprocesses X through the default namespace.
func PreprocessData(X mat.Matrix, method string) (mat.Matrix, error) {
	return Default().PreprocessData(X, method)
}

// TrainModel trains a model through the default namespace.
func TrainModel(X, y mat.Matrix, modelType string) (model.Predictor, error) {
	return Default().TrainModel(X, y, modelType)
}
