package learn

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1.0, 10.0,
		2.0, 20.0,
		3.0, 30.0,
		4.0, 40.0,
	})

	scaler := NewStandardScalerDefault()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error: %v", err)
	}

	// Each column must have zero mean and unit variance after scaling.
	r, c := XScaled.Dims()
	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += XScaled.At(i, j)
		}
		mean := sum / float64(r)
		if math.Abs(mean) > 1e-9 {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}

		var sumSq float64
		for i := 0; i < r; i++ {
			d := XScaled.At(i, j) - mean
			sumSq += d * d
		}
		std := math.Sqrt(sumSq / float64(r))
		if math.Abs(std-1.0) > 1e-9 {
			t.Errorf("column %d std = %v, want 1", j, std)
		}
	}

	// Round trip through InverseTransform must recover the input.
	XBack, err := scaler.InverseTransform(XScaled)
	if err != nil {
		t.Fatalf("InverseTransform() error: %v", err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.Abs(XBack.At(i, j)-X.At(i, j)) > 1e-9 {
				t.Errorf("round trip [%d,%d] = %v, want %v", i, j, XBack.At(i, j), X.At(i, j))
			}
		}
	}
}

func TestStandardScalerConstantFeature(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{5.0, 5.0, 5.0})

	scaler := NewStandardScalerDefault()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error: %v", err)
	}

	// A constant column must map to zeros, not NaN.
	for i := 0; i < 3; i++ {
		v := XScaled.At(i, 0)
		if math.IsNaN(v) || math.Abs(v) > 1e-9 {
			t.Errorf("scaled[%d] = %v, want 0", i, v)
		}
	}
}

func TestStandardScalerNotFitted(t *testing.T) {
	scaler := NewStandardScalerDefault()
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	_, err := scaler.Transform(X)
	var nf *errors.NotFittedError
	if !errors.As(err, &nf) {
		t.Errorf("Transform before Fit: error = %v, want NotFittedError", err)
	}
}

func TestMinMaxScaler(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1.0, -10.0,
		2.0, 0.0,
		3.0, 10.0,
	})

	scaler := NewMinMaxScalerDefault()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error: %v", err)
	}

	want := [][]float64{
		{0.0, 0.0},
		{0.5, 0.5},
		{1.0, 1.0},
	}
	for i := range want {
		for j := range want[i] {
			if math.Abs(XScaled.At(i, j)-want[i][j]) > 1e-9 {
				t.Errorf("scaled[%d,%d] = %v, want %v", i, j, XScaled.At(i, j), want[i][j])
			}
		}
	}

	XBack, err := scaler.InverseTransform(XScaled)
	if err != nil {
		t.Fatalf("InverseTransform() error: %v", err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(XBack.At(i, j)-X.At(i, j)) > 1e-9 {
				t.Errorf("round trip [%d,%d] = %v, want %v", i, j, XBack.At(i, j), X.At(i, j))
			}
		}
	}
}

func TestMinMaxScalerCustomRange(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{0.0, 10.0})

	scaler := NewMinMaxScaler([2]float64{-1.0, 1.0})
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error: %v", err)
	}

	if math.Abs(XScaled.At(0, 0)-(-1.0)) > 1e-9 {
		t.Errorf("min scaled to %v, want -1", XScaled.At(0, 0))
	}
	if math.Abs(XScaled.At(1, 0)-1.0) > 1e-9 {
		t.Errorf("max scaled to %v, want 1", XScaled.At(1, 0))
	}
}

func TestLinearRegressionFitPredict(t *testing.T) {
	// y = 2x + 1, exactly recoverable by OLS.
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 5, 7, 9})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	weights := lr.GetWeights()
	if len(weights) != 1 || math.Abs(weights[0]-2.0) > 1e-6 {
		t.Errorf("weights = %v, want [2]", weights)
	}
	if math.Abs(lr.GetIntercept()-1.0) > 1e-6 {
		t.Errorf("intercept = %v, want 1", lr.GetIntercept())
	}

	XTest := mat.NewDense(2, 1, []float64{5, 6})
	pred, err := lr.Predict(XTest)
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if math.Abs(pred.At(0, 0)-11.0) > 1e-6 || math.Abs(pred.At(1, 0)-13.0) > 1e-6 {
		t.Errorf("predictions = [%v %v], want [11 13]", pred.At(0, 0), pred.At(1, 0))
	}

	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("R² = %v, want 1", score)
	}
}

func TestLinearRegressionDimensionMismatch(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	y := mat.NewDense(2, 1, []float64{1, 2})

	lr := NewLinearRegression()
	err := lr.Fit(X, y)
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Errorf("Fit() error = %v, want DimensionError", err)
	}
}

func TestLinearRegressionSKLearnRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 1, 2, 1, 3, 2})
	y := mat.NewDense(3, 1, []float64{6, 8, 13})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	var buf bytes.Buffer
	if err := lr.ExportToSKLearnWriter(&buf); err != nil {
		t.Fatalf("ExportToSKLearnWriter() error: %v", err)
	}

	loaded := NewLinearRegression()
	if err := loaded.LoadFromSKLearnReader(&buf); err != nil {
		t.Fatalf("LoadFromSKLearnReader() error: %v", err)
	}

	if !loaded.IsFitted() {
		t.Fatal("loaded model reports not fitted")
	}
	origW := lr.GetWeights()
	loadW := loaded.GetWeights()
	if len(origW) != len(loadW) {
		t.Fatalf("weight length mismatch: %d vs %d", len(origW), len(loadW))
	}
	for i := range origW {
		if math.Abs(origW[i]-loadW[i]) > 1e-12 {
			t.Errorf("weight[%d] = %v, want %v", i, loadW[i], origW[i])
		}
	}
	if math.Abs(lr.GetIntercept()-loaded.GetIntercept()) > 1e-12 {
		t.Errorf("intercept = %v, want %v", loaded.GetIntercept(), lr.GetIntercept())
	}
}

func TestEngineLoadModel(t *testing.T) {
	dir := t.TempDir()

	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{2, 4, 6})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatal(err)
	}

	jsonPath := filepath.Join(dir, "model.json")
	if err := lr.ExportToSKLearn(jsonPath); err != nil {
		t.Fatalf("ExportToSKLearn() error: %v", err)
	}

	gobPath := filepath.Join(dir, "model.gob")
	if err := lr.Save(gobPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	e := NewEngine()

	for _, path := range []string{jsonPath, gobPath} {
		m, err := e.LoadModel(path)
		if err != nil {
			t.Fatalf("LoadModel(%s) error: %v", filepath.Base(path), err)
		}
		pred, err := m.Predict(mat.NewDense(1, 1, []float64{4}))
		if err != nil {
			t.Fatalf("Predict() after LoadModel(%s): %v", filepath.Base(path), err)
		}
		if math.Abs(pred.At(0, 0)-8.0) > 1e-6 {
			t.Errorf("prediction from %s = %v, want 8", filepath.Base(path), pred.At(0, 0))
		}
	}

	if _, err := e.LoadModel(filepath.Join(dir, "model.txt")); err == nil {
		t.Error("expected unsupported extension to be rejected")
	}

	if _, err := os.Stat(jsonPath); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
}
