package neural

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestNewSequentialValidation(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		loss  Loss
	}{
		{"too few sizes", []int{4}, LossMSE},
		{"zero width", []int{4, 0, 1}, LossMSE},
		{"unknown loss", []int{4, 2, 1}, Loss("hinge")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSequential(tt.sizes, tt.loss, 1)
			var ve *errors.ValueError
			if !errors.As(err, &ve) {
				t.Errorf("NewSequential() error = %v, want ValueError", err)
			}
		})
	}
}

func TestSequentialOutputActivation(t *testing.T) {
	mse, err := NewSequential([]int{2, 4, 1}, LossMSE, 1)
	if err != nil {
		t.Fatal(err)
	}
	if act := mse.Layers[len(mse.Layers)-1].Activation; act != ActivationIdentity {
		t.Errorf("MSE output activation = %q, want identity", act)
	}

	bce, err := NewSequential([]int{2, 4, 1}, LossBCE, 1)
	if err != nil {
		t.Fatal(err)
	}
	if act := bce.Layers[len(bce.Layers)-1].Activation; act != ActivationSigmoid {
		t.Errorf("BCE output activation = %q, want sigmoid", act)
	}
}

func TestSequentialFitRegression(t *testing.T) {
	// y = x0 + x1, easily learnable.
	X := mat.NewDense(8, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
		0.5, 0.5,
		0.2, 0.8,
		0.9, 0.1,
		0.3, 0.3,
	})
	y := mat.NewDense(8, 1, []float64{0, 1, 1, 2, 1, 1, 1, 0.6})

	net, err := NewSequential([]int{2, 8, 1}, LossMSE, 7)
	if err != nil {
		t.Fatal(err)
	}

	cfg := TrainingConfig{Epochs: 400, BatchSize: 8, LearningRate: 0.01, Seed: 7}
	if err := net.Fit(X, y, cfg); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	loss, err := net.EvaluateLoss(X, y)
	if err != nil {
		t.Fatalf("EvaluateLoss() error: %v", err)
	}
	if loss > 0.05 {
		t.Errorf("training loss = %v, want < 0.05", loss)
	}
}

func TestSequentialFitBinary(t *testing.T) {
	// XOR, the classic non-linear toy problem.
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	y := mat.NewDense(4, 1, []float64{0, 1, 1, 0})

	net, err := NewSequential([]int{2, 8, 1}, LossBCE, 3)
	if err != nil {
		t.Fatal(err)
	}

	cfg := TrainingConfig{Epochs: 2000, BatchSize: 4, LearningRate: 0.05, Seed: 3}
	if err := net.Fit(X, y, cfg); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	pred, err := net.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	want := []float64{0, 1, 1, 0}
	for i := range want {
		p := pred.At(i, 0)
		if p < 0 || p > 1 {
			t.Fatalf("prediction %d = %v, want a probability", i, p)
		}
		if math.Abs(p-want[i]) > 0.5 {
			t.Errorf("prediction %d = %v, want close to %v", i, p, want[i])
		}
	}

	acc, err := net.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if acc < 0.75 {
		t.Errorf("Score() = %v, want at least 0.75 on XOR", acc)
	}
}

func TestSequentialNotFitted(t *testing.T) {
	net, err := NewSequential([]int{2, 1}, LossMSE, 1)
	if err != nil {
		t.Fatal(err)
	}

	_, err = net.Predict(mat.NewDense(1, 2, []float64{1, 2}))
	var nf *errors.NotFittedError
	if !errors.As(err, &nf) {
		t.Errorf("Predict before Fit: error = %v, want NotFittedError", err)
	}
}

func TestSequentialDimensionChecks(t *testing.T) {
	net, err := NewSequential([]int{2, 4, 1}, LossMSE, 1)
	if err != nil {
		t.Fatal(err)
	}

	X := mat.NewDense(3, 3, nil) // 3 features, network expects 2
	y := mat.NewDense(3, 1, nil)
	fitErr := net.Fit(X, y, TrainingConfig{Epochs: 1})
	var dimErr *errors.DimensionError
	if !errors.As(fitErr, &dimErr) {
		t.Errorf("Fit() error = %v, want DimensionError", fitErr)
	}
}

func TestEngineTrain(t *testing.T) {
	e := NewEngine(TrainingConfig{Epochs: 300, BatchSize: 4, LearningRate: 0.01, Seed: 5})

	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	y := mat.NewDense(4, 1, []float64{0, 2, 4, 6})

	net, err := e.Train(X, y, 8)
	if err != nil {
		t.Fatalf("Train() error: %v", err)
	}

	loss, err := net.EvaluateLoss(X, y)
	if err != nil {
		t.Fatal(err)
	}
	if loss > 0.5 {
		t.Errorf("training loss = %v, want < 0.5", loss)
	}
}
