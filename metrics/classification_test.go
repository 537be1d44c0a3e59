package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     []float64
		yPred     []float64
		threshold float64
		want      float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     []float64{0, 1, 1, 0},
			yPred:     []float64{0.1, 0.9, 0.8, 0.2},
			threshold: 0.5,
			want:      1.0,
		},
		{
			name:      "half correct",
			yTrue:     []float64{0, 1, 1, 0},
			yPred:     []float64{0.9, 0.9, 0.1, 0.2},
			threshold: 0.5,
			want:      0.5,
		},
		{
			name:      "threshold shifts labels",
			yTrue:     []float64{1, 1},
			yPred:     []float64{0.4, 0.45},
			threshold: 0.3,
			want:      1.0,
		},
		{
			name:      "empty input",
			yTrue:     nil,
			yPred:     nil,
			threshold: 0.5,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var yTrue, yPred mat.Matrix
			if len(tt.yTrue) > 0 {
				yTrue = mat.NewDense(len(tt.yTrue), 1, tt.yTrue)
				yPred = mat.NewDense(len(tt.yPred), 1, tt.yPred)
			} else {
				yTrue = &mat.Dense{}
				yPred = &mat.Dense{}
			}

			got, err := Accuracy(yTrue, yPred, tt.threshold)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogLoss(t *testing.T) {
	yTrue := mat.NewDense(4, 1, []float64{0, 1, 1, 0})
	yPred := mat.NewDense(4, 1, []float64{0.1, 0.9, 0.8, 0.2})

	got, err := LogLoss(yTrue, yPred)
	if err != nil {
		t.Fatalf("LogLoss() error: %v", err)
	}

	// -(log(0.9) + log(0.9) + log(0.8) + log(0.8)) / 4
	want := -(math.Log(0.9) + math.Log(0.9) + math.Log(0.8) + math.Log(0.8)) / 4
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("LogLoss() = %v, want %v", got, want)
	}
}

func TestLogLossClipsExtremes(t *testing.T) {
	yTrue := mat.NewDense(2, 1, []float64{1, 0})
	yPred := mat.NewDense(2, 1, []float64{0, 1}) // maximally wrong

	got, err := LogLoss(yTrue, yPred)
	if err != nil {
		t.Fatalf("LogLoss() error: %v", err)
	}
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("LogLoss() = %v, want a finite value after clipping", got)
	}
}

func TestLogLossDimensionMismatch(t *testing.T) {
	yTrue := mat.NewDense(3, 1, []float64{0, 1, 1})
	yPred := mat.NewDense(2, 1, []float64{0.5, 0.5})

	if _, err := LogLoss(yTrue, yPred); err == nil {
		t.Fatal("expected a dimension error")
	}
}
