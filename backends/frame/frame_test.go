package frame

import (
	"math"
	"strings"
	"testing"
)

func sampleRecords() [][]string {
	return [][]string{
		{"age", "income", "city"},
		{"34", "52000.5", "Oslo"},
		{"29", "48000.0", "Bergen"},
		{"41", "61000.25", "Oslo"},
	}
}

func TestFromRecords(t *testing.T) {
	e := NewEngine()

	df, err := e.FromRecords(sampleRecords())
	if err != nil {
		t.Fatalf("FromRecords() error: %v", err)
	}
	if df.Nrow() != 3 || df.Ncol() != 3 {
		t.Errorf("shape = %dx%d, want 3x3", df.Nrow(), df.Ncol())
	}

	if _, err := e.FromRecords([][]string{{"only", "header"}}); err == nil {
		t.Error("expected header-only input to be rejected")
	}
}

func TestReadCSV(t *testing.T) {
	e := NewEngine()

	csv := "x,y\n1,2.5\n3,4.5\n"
	df, err := e.ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if df.Nrow() != 2 {
		t.Errorf("Nrow() = %d, want 2", df.Nrow())
	}
}

func TestSelect(t *testing.T) {
	e := NewEngine()
	df, err := e.FromRecords(sampleRecords())
	if err != nil {
		t.Fatal(err)
	}

	sub, err := e.Select(df, []string{"age"})
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if sub.Ncol() != 1 {
		t.Errorf("Ncol() = %d, want 1", sub.Ncol())
	}

	if _, err := e.Select(df, []string{"no_such_column"}); err == nil {
		t.Error("expected unknown column to be rejected")
	}
}

func TestNumMatrix(t *testing.T) {
	e := NewEngine()
	df, err := e.FromRecords(sampleRecords())
	if err != nil {
		t.Fatal(err)
	}

	X, cols, err := e.NumMatrix(df)
	if err != nil {
		t.Fatalf("NumMatrix() error: %v", err)
	}

	// The string column must be dropped.
	if len(cols) != 2 {
		t.Fatalf("numeric columns = %v, want 2 entries", cols)
	}
	r, c := X.Dims()
	if r != 3 || c != 2 {
		t.Errorf("matrix shape = %dx%d, want 3x2", r, c)
	}

	// Spot check one value.
	var incomeCol int = -1
	for j, name := range cols {
		if name == "income" {
			incomeCol = j
		}
	}
	if incomeCol == -1 {
		t.Fatalf("income column missing from %v", cols)
	}
	if math.Abs(X.At(0, incomeCol)-52000.5) > 1e-9 {
		t.Errorf("X[0,income] = %v, want 52000.5", X.At(0, incomeCol))
	}
}
