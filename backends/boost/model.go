// Package boost is the gradient boosting backend: a LightGBM-compatible
// tree ensemble with a native trainer and a loader for the text format
// written by LightGBM's save_model().
package boost

import (
	"math"

	"github.com/YuminosukeSato/lazyml/metrics"
	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ObjectiveType selects the loss the ensemble was trained for.
type ObjectiveType string

const (
	// RegressionL2 is squared-error regression.
	RegressionL2 ObjectiveType = "regression"
	// BinaryLogistic is binary classification with a sigmoid output.
	BinaryLogistic ObjectiveType = "binary"
)

// Node is a single node in a decision tree. Leaves have both child
// indices set to -1.
type Node struct {
	LeftChild  int
	RightChild int

	SplitFeature int
	Threshold    float64
	DefaultLeft  bool
	Gain         float64

	LeafValue float64
	LeafCount int
}

// IsLeaf reports whether the node is terminal.
func (n *Node) IsLeaf() bool {
	return n.LeftChild == -1 && n.RightChild == -1
}

// Tree is a single decision tree in the ensemble. Nodes[0] is the root.
type Tree struct {
	TreeIndex     int
	NumLeaves     int
	ShrinkageRate float64
	Nodes         []Node
}

// Predict evaluates the tree for one sample. The shrinkage rate is
// applied here, matching how LightGBM stores leaf values.
func (t *Tree) Predict(features []float64) float64 {
	nodeID := 0
	for nodeID >= 0 && nodeID < len(t.Nodes) {
		node := &t.Nodes[nodeID]
		if node.IsLeaf() {
			return node.LeafValue * t.ShrinkageRate
		}

		value := features[node.SplitFeature]
		if math.IsNaN(value) {
			if node.DefaultLeft {
				nodeID = node.LeftChild
			} else {
				nodeID = node.RightChild
			}
			continue
		}

		if value <= node.Threshold {
			nodeID = node.LeftChild
		} else {
			nodeID = node.RightChild
		}
	}
	return 0.0
}

// Model is a trained gradient boosting ensemble.
type Model struct {
	Objective    ObjectiveType
	NumIteration int
	LearningRate float64
	NumFeatures  int
	InitScore    float64
	Trees        []Tree
	FeatureNames []string

	fitted bool
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		Objective: RegressionL2,
	}
}

// IsFitted reports whether the model holds at least one tree.
func (m *Model) IsFitted() bool {
	return m.fitted && len(m.Trees) > 0
}

// markFitted is called by the trainer and the loader.
func (m *Model) markFitted() {
	m.fitted = true
}

// PredictRow returns the raw ensemble output for one sample, passed
// through the objective's link function.
func (m *Model) PredictRow(features []float64) float64 {
	score := m.InitScore
	for i := range m.Trees {
		score += m.Trees[i].Predict(features)
	}
	if m.Objective == BinaryLogistic {
		return sigmoid(score)
	}
	return score
}

// Predict returns predictions for every row of X as an n×1 matrix.
// For the binary objective the values are probabilities of class 1.
func (m *Model) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("boost.Model", "Predict")
	}

	r, c := X.Dims()
	if m.NumFeatures > 0 && c != m.NumFeatures {
		return nil, errors.NewDimensionError("boost.Predict", m.NumFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	features := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			features[j] = X.At(i, j)
		}
		predictions.Set(i, 0, m.PredictRow(features))
	}
	return predictions, nil
}

// Score evaluates the model on X against y: R² for the regression
// objective, accuracy at a 0.5 threshold for the binary objective.
func (m *Model) Score(X, y mat.Matrix) (float64, error) {
	if !m.IsFitted() {
		return 0, errors.NewNotFittedError("boost.Model", "Score")
	}

	yPred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}

	if m.Objective == BinaryLogistic {
		return metrics.Accuracy(y, yPred, 0.5)
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

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
