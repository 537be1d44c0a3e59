package neural

import (
	"math/rand"

	"github.com/YuminosukeSato/lazyml/core/model"
	"github.com/YuminosukeSato/lazyml/metrics"
	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// TrainingConfig controls Fit.
type TrainingConfig struct {
	Epochs       int
	BatchSize    int
	LearningRate float64
	Seed         int64
}

// DefaultTrainingConfig returns the defaults used when fields are zero.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Epochs:       100,
		BatchSize:    32,
		LearningRate: 0.001,
		Seed:         42,
	}
}

func (c TrainingConfig) withDefaults() TrainingConfig {
	def := DefaultTrainingConfig()
	if c.Epochs <= 0 {
		c.Epochs = def.Epochs
	}
	if c.BatchSize <= 0 {
		c.BatchSize = def.BatchSize
	}
	if c.LearningRate <= 0 {
		c.LearningRate = def.LearningRate
	}
	if c.Seed == 0 {
		c.Seed = def.Seed
	}
	return c
}

// Sequential is a stack of dense layers trained against a single loss.
type Sequential struct {
	model.BaseEstimator

	Layers []*Dense
	Loss   Loss

	rng *rand.Rand
}

// NewSequential builds a network from layer widths. hidden layers use
// ReLU; the output activation follows the loss (sigmoid for BCE,
// identity for MSE).
func NewSequential(sizes []int, loss Loss, seed int64) (*Sequential, error) {
	if len(sizes) < 2 {
		return nil, errors.NewValueError("neural.NewSequential", "need at least input and output sizes")
	}
	for _, s := range sizes {
		if s <= 0 {
			return nil, errors.NewValueError("neural.NewSequential", "layer sizes must be positive")
		}
	}
	switch loss {
	case LossMSE, LossBCE:
	default:
		return nil, errors.NewValueError("neural.NewSequential", "unsupported loss: "+string(loss))
	}

	rng := rand.New(rand.NewSource(seed))
	s := &Sequential{Loss: loss, rng: rng}
	for i := 0; i < len(sizes)-1; i++ {
		activation := ActivationReLU
		if i == len(sizes)-2 {
			if loss == LossBCE {
				activation = ActivationSigmoid
			} else {
				activation = ActivationIdentity
			}
		}
		s.Layers = append(s.Layers, NewDense(sizes[i], sizes[i+1], activation, rng))
	}
	return s, nil
}

// Fit trains the network with mini-batch Adam.
func (s *Sequential) Fit(X, y mat.Matrix, cfg TrainingConfig) error {
	cfg = cfg.withDefaults()

	r, c := X.Dims()
	ry, cy := y.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("neural.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("neural.Fit", r, ry, 0)
	}
	if c != s.Layers[0].InFeatures {
		return errors.NewDimensionError("neural.Fit", s.Layers[0].InFeatures, c, 1)
	}
	if cy != s.Layers[len(s.Layers)-1].OutFeatures {
		return errors.NewDimensionError("neural.Fit", s.Layers[len(s.Layers)-1].OutFeatures, cy, 1)
	}

	XDense := mat.DenseCopyOf(X)
	yDense := mat.DenseCopyOf(y)

	opt := newAdam(cfg.LearningRate)
	order := make([]int, r)
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		s.rng.Shuffle(r, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for start := 0; start < r; start += cfg.BatchSize {
			end := start + cfg.BatchSize
			if end > r {
				end = r
			}
			batchX, batchY := s.gatherBatch(XDense, yDense, order[start:end])

			pred := s.forward(batchX)

			// With identity+MSE and sigmoid+BCE the gradient at the
			// output pre-activation is (pred - y) / n in both cases.
			n := float64(end - start)
			rows, cols := pred.Dims()
			dZ := mat.NewDense(rows, cols, nil)
			for i := 0; i < rows; i++ {
				for j := 0; j < cols; j++ {
					dZ.Set(i, j, (pred.At(i, j)-batchY.At(i, j))/n)
				}
			}

			opt.t++
			grad := dZ
			for l := len(s.Layers) - 1; l >= 0; l-- {
				if l < len(s.Layers)-1 {
					grad = s.Layers[l].preactGradient(grad)
				}
				grad = s.Layers[l].backward(grad, opt)
			}
		}

		// Guard against a diverging run.
		pred := s.forward(XDense)
		loss := lossValue(s.Loss, pred, yDense)
		if err := errors.CheckScalar("neural.Fit", loss, epoch); err != nil {
			return err
		}
	}

	s.SetFitted()
	return nil
}

// Predict runs a forward pass. For BCE networks the outputs are
// probabilities.
func (s *Sequential) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("neural.Sequential", "Predict")
	}
	_, c := X.Dims()
	if c != s.Layers[0].InFeatures {
		return nil, errors.NewDimensionError("neural.Predict", s.Layers[0].InFeatures, c, 1)
	}
	return s.forward(mat.DenseCopyOf(X)), nil
}

// EvaluateLoss computes the training loss on the given data.
func (s *Sequential) EvaluateLoss(X, y mat.Matrix) (float64, error) {
	pred, err := s.Predict(X)
	if err != nil {
		return 0, err
	}
	return lossValue(s.Loss, pred.(*mat.Dense), mat.DenseCopyOf(y)), nil
}

// Score evaluates the network on X against y: accuracy at a 0.5
// threshold for BCE networks, R² for MSE networks. Both expect n×1
// targets.
func (s *Sequential) Score(X, y mat.Matrix) (float64, error) {
	pred, err := s.Predict(X)
	if err != nil {
		return 0, err
	}

	if s.Loss == LossBCE {
		return metrics.Accuracy(y, pred, 0.5)
	}

	r, _ := y.Dims()
	yTrueVec := mat.NewVecDense(r, nil)
	yPredVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrueVec.SetVec(i, y.At(i, 0))
		yPredVec.SetVec(i, pred.At(i, 0))
	}
	return metrics.R2Score(yTrueVec, yPredVec)
}

func (s *Sequential) forward(X *mat.Dense) *mat.Dense {
	out := X
	for _, layer := range s.Layers {
		out = layer.forward(out)
	}
	return out
}

func (s *Sequential) gatherBatch(X, y *mat.Dense, idx []int) (*mat.Dense, *mat.Dense) {
	_, cx := X.Dims()
	_, cy := y.Dims()
	batchX := mat.NewDense(len(idx), cx, nil)
	batchY := mat.NewDense(len(idx), cy, nil)
	for i, sample := range idx {
		for j := 0; j < cx; j++ {
			batchX.Set(i, j, X.At(sample, j))
		}
		for j := 0; j < cy; j++ {
			batchY.Set(i, j, y.At(sample, j))
		}
	}
	return batchX, batchY
}
