package boost

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestTrainerRegression(t *testing.T) {
	// A step function: x < 5 maps to 1, x >= 5 maps to 10.
	n := 20
	data := make([]float64, n)
	labels := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = float64(i)
		if i < 10 {
			labels[i] = 1.0
		} else {
			labels[i] = 10.0
		}
	}
	X := mat.NewDense(n, 1, data)
	y := mat.NewDense(n, 1, labels)

	trainer := NewTrainer(TrainingParams{
		NumIterations: 50,
		LearningRate:  0.3,
		NumLeaves:     4,
		MinDataInLeaf: 2,
		Objective:     string(RegressionL2),
	})
	if err := trainer.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	model := trainer.Model()
	if !model.IsFitted() {
		t.Fatal("model reports not fitted after Fit")
	}
	if model.NumIteration != 50 {
		t.Errorf("NumIteration = %d, want 50", model.NumIteration)
	}

	pred, err := model.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if v := pred.At(0, 0); math.Abs(v-1.0) > 0.5 {
		t.Errorf("prediction at x=0 is %v, want ~1", v)
	}
	if v := pred.At(n-1, 0); math.Abs(v-10.0) > 0.5 {
		t.Errorf("prediction at x=%d is %v, want ~10", n-1, v)
	}
}

func TestTrainerBinary(t *testing.T) {
	// Separable classes along one feature.
	n := 20
	data := make([]float64, n)
	labels := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = float64(i)
		if i >= 10 {
			labels[i] = 1.0
		}
	}
	X := mat.NewDense(n, 1, data)
	y := mat.NewDense(n, 1, labels)

	trainer := NewTrainer(TrainingParams{
		NumIterations: 30,
		LearningRate:  0.3,
		NumLeaves:     4,
		MinDataInLeaf: 2,
		Objective:     string(BinaryLogistic),
	})
	if err := trainer.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	pred, err := trainer.Model().Predict(X)
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}

	// Probabilities must separate the classes and stay in (0, 1).
	for i := 0; i < n; i++ {
		p := pred.At(i, 0)
		if p <= 0 || p >= 1 {
			t.Fatalf("prediction %d = %v, want a probability", i, p)
		}
		if i < 10 && p > 0.5 {
			t.Errorf("sample %d classified positive with p=%v", i, p)
		}
		if i >= 10 && p < 0.5 {
			t.Errorf("sample %d classified negative with p=%v", i, p)
		}
	}

	acc, err := trainer.Model().Score(X, y)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if acc < 0.9 {
		t.Errorf("Score() = %v, want at least 0.9 on separable data", acc)
	}
}

func TestTrainerRejectsBadInput(t *testing.T) {
	trainer := NewTrainer(DefaultParams())

	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	yShort := mat.NewDense(2, 1, []float64{1, 2})
	if err := trainer.Fit(X, yShort); err == nil {
		t.Error("expected row mismatch to be rejected")
	}

	y := mat.NewDense(3, 1, []float64{1, 2, 3})
	bad := NewTrainer(TrainingParams{Objective: "multiclass"})
	if err := bad.Fit(X, y); err == nil {
		t.Error("expected unsupported objective to be rejected")
	}
}

// A minimal two-tree model in the LightGBM text format. Child values
// below zero encode leaves (~leafIndex).
const sampleModelText = `tree
version=v4
objective=regression
max_feature_idx=1
feature_names=f0 f1

Tree=0
num_leaves=2
split_feature=0
threshold=5.0
left_child=-1
right_child=-2
leaf_value=1.0 3.0
leaf_count=5 5
shrinkage=1

Tree=1
num_leaves=2
split_feature=1
threshold=0.5
left_child=-1
right_child=-2
leaf_value=0.5 -0.5
leaf_count=5 5
shrinkage=1

end of trees
`

func TestLoadModelFromReader(t *testing.T) {
	model, err := LoadModelFromReader(strings.NewReader(sampleModelText))
	if err != nil {
		t.Fatalf("LoadModelFromReader() error: %v", err)
	}

	if model.Objective != RegressionL2 {
		t.Errorf("Objective = %q, want regression", model.Objective)
	}
	if model.NumFeatures != 2 {
		t.Errorf("NumFeatures = %d, want 2", model.NumFeatures)
	}
	if len(model.Trees) != 2 {
		t.Fatalf("len(Trees) = %d, want 2", len(model.Trees))
	}
	if !model.IsFitted() {
		t.Fatal("loaded model reports not fitted")
	}

	tests := []struct {
		features []float64
		want     float64
	}{
		{[]float64{2.0, 0.0}, 1.0 + 0.5}, // left, left
		{[]float64{2.0, 1.0}, 1.0 - 0.5}, // left, right
		{[]float64{8.0, 0.0}, 3.0 + 0.5}, // right, left
		{[]float64{8.0, 1.0}, 3.0 - 0.5}, // right, right
	}
	for _, tt := range tests {
		got := model.PredictRow(tt.features)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PredictRow(%v) = %v, want %v", tt.features, got, tt.want)
		}
	}
}

func TestLoadModelRejectsEmpty(t *testing.T) {
	if _, err := LoadModelFromReader(strings.NewReader("tree\nversion=v4\n")); err == nil {
		t.Error("expected model without trees to be rejected")
	}
}

func TestEngineTrainAndPredict(t *testing.T) {
	e := NewEngine(TrainingParams{
		NumIterations: 20,
		LearningRate:  0.5,
		NumLeaves:     4,
		MinDataInLeaf: 1,
	})

	X := mat.NewDense(6, 1, []float64{1, 2, 3, 10, 11, 12})
	y := mat.NewDense(6, 1, []float64{0, 0, 0, 5, 5, 5})

	model, err := e.Train(X, y)
	if err != nil {
		t.Fatalf("Train() error: %v", err)
	}

	pred, err := model.Predict(mat.NewDense(2, 1, []float64{2, 11}))
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if math.Abs(pred.At(0, 0)-0.0) > 0.5 {
		t.Errorf("prediction for low cluster = %v, want ~0", pred.At(0, 0))
	}
	if math.Abs(pred.At(1, 0)-5.0) > 0.5 {
		t.Errorf("prediction for high cluster = %v, want ~5", pred.At(1, 0))
	}
}
