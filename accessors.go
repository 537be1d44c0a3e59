package lazyml

import (
	"github.com/YuminosukeSato/lazyml/backends/boost"
	"github.com/YuminosukeSato/lazyml/backends/frame"
	"github.com/YuminosukeSato/lazyml/backends/learn"
	"github.com/YuminosukeSato/lazyml/backends/llm"
	"github.com/YuminosukeSato/lazyml/backends/neural"
	"github.com/YuminosukeSato/lazyml/backends/plotting"
	"github.com/YuminosukeSato/lazyml/backends/tensor"
	"github.com/YuminosukeSato/lazyml/backends/vision"
	"github.com/YuminosukeSato/lazyml/pkg/errors"
)

// The typed accessors resolve a backend through its deferred handle and
// assert the engine type. They exist so ordinary Go callers get static
// types instead of going through Get and reflection.

// Tensor resolves the matrix backend.
func (ns *Namespace) Tensor() (*tensor.Engine, error) {
	return resolveAs[*tensor.Engine](ns, "tensor")
}

// Frames resolves the data-frame backend.
func (ns *Namespace) Frames() (*frame.Engine, error) {
	return resolveAs[*frame.Engine](ns, "frame")
}

// Plot resolves the chart backend.
func (ns *Namespace) Plot() (*plotting.Engine, error) {
	return resolveAs[*plotting.Engine](ns, "plot")
}

// Learn resolves the classical-estimator backend.
func (ns *Namespace) Learn() (*learn.Engine, error) {
	return resolveAs[*learn.Engine](ns, "learn")
}

// Boost resolves the gradient boosting backend.
func (ns *Namespace) Boost() (*boost.Engine, error) {
	return resolveAs[*boost.Engine](ns, "boost")
}

// Neural resolves the neural network backend.
func (ns *Namespace) Neural() (*neural.Engine, error) {
	return resolveAs[*neural.Engine](ns, "neural")
}

// Vision resolves the image backend.
func (ns *Namespace) Vision() (*vision.Engine, error) {
	return resolveAs[*vision.Engine](ns, "vision")
}

// LLM resolves the language model backend.
func (ns *Namespace) LLM() (*llm.Engine, error) {
	return resolveAs[*llm.Engine](ns, "llm")
}

func resolveAs[T any](ns *Namespace, name string) (T, error) {
	var zero T
	target, err := ns.resolve(name)
	if err != nil {
		return zero, err
	}
	engine, ok := target.(T)
	if !ok {
		return zero, errors.Newf("backend %q resolved to unexpected type %T", name, target)
	}
	return engine, nil
}

// Package-level accessors over the default namespace.

// Tensor resolves the matrix backend on the default namespace.
func Tensor() (*tensor.Engine, error) { return Default().Tensor() }

// Frames resolves the data-frame backend on the default namespace.
func Frames() (*frame.Engine, error) { return Default().Frames() }

// Plot resolves the chart backend on the default namespace.
func Plot() (*plotting.Engine, error) { return Default().Plot() }

// Learn resolves the classical-estimator backend on the default namespace.
func Learn() (*learn.Engine, error) { return Default().Learn() }

// Boost resolves the gradient boosting backend on the default namespace.
func Boost() (*boost.Engine, error) { return Default().Boost() }

// Neural resolves the neural network backend on the default namespace.
func Neural() (*neural.Engine, error) { return Default().Neural() }

// Vision resolves the image backend on the default namespace.
func Vision() (*vision.Engine, error) { return Default().Vision() }

// LLM resolves the language model backend on the default namespace.
func LLM() (*llm.Engine, error) { return Default().LLM() }
