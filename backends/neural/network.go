// Package neural is the neural network backend: small feed-forward
// networks trained with mini-batch Adam.
package neural

import (
	"math"
	"math/rand"

	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Activation names a layer's nonlinearity.
type Activation string

const (
	ActivationReLU     Activation = "relu"
	ActivationSigmoid  Activation = "sigmoid"
	ActivationIdentity Activation = "identity"
)

// Loss names the training objective.
type Loss string

const (
	// LossMSE is mean squared error, paired with an identity output.
	LossMSE Loss = "mse"
	// LossBCE is binary cross entropy, paired with a sigmoid output.
	LossBCE Loss = "bce"
)

// Dense is a fully connected layer with a per-layer activation.
type Dense struct {
	InFeatures  int
	OutFeatures int
	Activation  Activation

	// W is OutFeatures×InFeatures, B has one bias per output.
	W *mat.Dense
	B []float64

	// Adam moment estimates.
	mW, vW *mat.Dense
	mB, vB []float64

	// Cached values from the last forward pass.
	input  *mat.Dense
	preact *mat.Dense
}

// NewDense creates a layer with He-style initialization.
func NewDense(in, out int, activation Activation, rng *rand.Rand) *Dense {
	scale := math.Sqrt(2.0 / float64(in))
	weights := make([]float64, out*in)
	for i := range weights {
		weights[i] = rng.NormFloat64() * scale
	}
	return &Dense{
		InFeatures:  in,
		OutFeatures: out,
		Activation:  activation,
		W:           mat.NewDense(out, in, weights),
		B:           make([]float64, out),
		mW:          mat.NewDense(out, in, nil),
		vW:          mat.NewDense(out, in, nil),
		mB:          make([]float64, out),
		vB:          make([]float64, out),
	}
}

// forward computes act(X·Wᵀ + b) for a batch X of shape r×in.
func (d *Dense) forward(X *mat.Dense) *mat.Dense {
	r, _ := X.Dims()

	z := mat.NewDense(r, d.OutFeatures, nil)
	z.Mul(X, d.W.T())
	for i := 0; i < r; i++ {
		for j := 0; j < d.OutFeatures; j++ {
			z.Set(i, j, z.At(i, j)+d.B[j])
		}
	}

	d.input = X
	d.preact = z

	out := mat.NewDense(r, d.OutFeatures, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < d.OutFeatures; j++ {
			out.Set(i, j, activate(d.Activation, z.At(i, j)))
		}
	}
	return out
}

// backward takes dZ (the gradient at the pre-activation of this layer),
// accumulates parameter gradients with one Adam step, and returns the
// gradient with respect to the layer input.
func (d *Dense) backward(dZ *mat.Dense, opt *adam) *mat.Dense {
	r, _ := dZ.Dims()

	dW := mat.NewDense(d.OutFeatures, d.InFeatures, nil)
	dW.Mul(dZ.T(), d.input)

	dB := make([]float64, d.OutFeatures)
	for i := 0; i < r; i++ {
		for j := 0; j < d.OutFeatures; j++ {
			dB[j] += dZ.At(i, j)
		}
	}

	dX := mat.NewDense(r, d.InFeatures, nil)
	dX.Mul(dZ, d.W)

	opt.step(d, dW, dB)
	return dX
}

// preactGradient converts a gradient on the layer output into one on
// the pre-activation, using the cached forward values.
func (d *Dense) preactGradient(dA *mat.Dense) *mat.Dense {
	r, c := dA.Dims()
	dZ := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dZ.Set(i, j, dA.At(i, j)*activateDeriv(d.Activation, d.preact.At(i, j)))
		}
	}
	return dZ
}

func activate(a Activation, x float64) float64 {
	switch a {
	case ActivationReLU:
		if x > 0 {
			return x
		}
		return 0
	case ActivationSigmoid:
		return 1.0 / (1.0 + math.Exp(-x))
	default:
		return x
	}
}

func activateDeriv(a Activation, x float64) float64 {
	switch a {
	case ActivationReLU:
		if x > 0 {
			return 1
		}
		return 0
	case ActivationSigmoid:
		s := 1.0 / (1.0 + math.Exp(-x))
		return s * (1 - s)
	default:
		return 1
	}
}

// adam is the Adam optimizer with the usual defaults.
type adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int
}

func newAdam(lr float64) *adam {
	return &adam{lr: lr, beta1: 0.9, beta2: 0.999, eps: 1e-8}
}

func (a *adam) step(d *Dense, dW *mat.Dense, dB []float64) {
	corr1 := 1 - math.Pow(a.beta1, float64(a.t))
	corr2 := 1 - math.Pow(a.beta2, float64(a.t))

	for i := 0; i < d.OutFeatures; i++ {
		for j := 0; j < d.InFeatures; j++ {
			g := dW.At(i, j)
			m := a.beta1*d.mW.At(i, j) + (1-a.beta1)*g
			v := a.beta2*d.vW.At(i, j) + (1-a.beta2)*g*g
			d.mW.Set(i, j, m)
			d.vW.Set(i, j, v)
			d.W.Set(i, j, d.W.At(i, j)-a.lr*(m/corr1)/(math.Sqrt(v/corr2)+a.eps))
		}
		g := dB[i]
		m := a.beta1*d.mB[i] + (1-a.beta1)*g
		v := a.beta2*d.vB[i] + (1-a.beta2)*g*g
		d.mB[i] = m
		d.vB[i] = v
		d.B[i] -= a.lr * (m / corr1) / (math.Sqrt(v/corr2) + a.eps)
	}
}

// lossValue computes the training loss on predictions already passed
// through the output activation. Probabilities are clipped before the
// logs in BCE.
func lossValue(loss Loss, pred, y *mat.Dense) float64 {
	r, c := pred.Dims()
	n := float64(r * c)

	var total float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			p := pred.At(i, j)
			target := y.At(i, j)
			if loss == LossBCE {
				p = errors.ClipValue(p, 1e-15, 1-1e-15)
				total += -(target*math.Log(p) + (1-target)*math.Log(1-p))
			} else {
				d := p - target
				total += d * d
			}
		}
	}
	return total / n
}
