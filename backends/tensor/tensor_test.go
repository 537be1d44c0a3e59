package tensor

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestFromRows(t *testing.T) {
	e := NewEngine()

	X, err := e.FromRows([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("FromRows() error: %v", err)
	}
	if got := X.At(1, 0); got != 3 {
		t.Errorf("X[1,0] = %v, want 3", got)
	}

	if _, err := e.FromRows([][]float64{{1, 2}, {3}}); err == nil {
		t.Error("expected ragged rows to be rejected")
	}
	if _, err := e.FromRows(nil); err == nil {
		t.Error("expected empty input to be rejected")
	}
}

func TestMatMul(t *testing.T) {
	e := NewEngine()

	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := e.Eye(2)

	out, err := e.MatMul(a, b)
	if err != nil {
		t.Fatalf("MatMul() error: %v", err)
	}
	if !mat.EqualApprox(out, a, 1e-12) {
		t.Error("A × I should equal A")
	}

	bad := mat.NewDense(3, 2, nil)
	if _, err := e.MatMul(a, bad); err == nil {
		t.Error("expected shape mismatch to be rejected")
	}
}

func TestMeanStd(t *testing.T) {
	e := NewEngine()
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})

	means := e.Mean(X)
	if math.Abs(means[0]-2.5) > 1e-12 || math.Abs(means[1]-10) > 1e-12 {
		t.Errorf("Mean() = %v, want [2.5 10]", means)
	}

	stds := e.Std(X)
	if math.Abs(stds[1]) > 1e-12 {
		t.Errorf("Std of a constant column = %v, want 0", stds[1])
	}
}

func TestNormalizeRows(t *testing.T) {
	e := NewEngine()
	X := mat.NewDense(3, 2, []float64{
		3, 4,
		0, 0,
		1, 0,
	})

	out := e.NormalizeRows(X)

	// First row: norm 5.
	if math.Abs(out.At(0, 0)-0.6) > 1e-12 || math.Abs(out.At(0, 1)-0.8) > 1e-12 {
		t.Errorf("row 0 = [%v %v], want [0.6 0.8]", out.At(0, 0), out.At(0, 1))
	}

	// Zero rows stay zero.
	if out.At(1, 0) != 0 || out.At(1, 1) != 0 {
		t.Error("zero row must stay zero")
	}

	// Every non-zero row has unit norm.
	norms := e.Norms(out)
	if math.Abs(norms[0]-1) > 1e-12 || math.Abs(norms[2]-1) > 1e-12 {
		t.Errorf("norms = %v, want unit for non-zero rows", norms)
	}
}
