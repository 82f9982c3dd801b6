// Package activations provides elementwise activation functions and their derivatives.
package activations

import (
	"fmt"
	"math"
)

// Activation is an activation function with derivative.
// Both methods return a new slice with the same length as x.
type Activation interface {
	// Activate computes f(x)
	Activate(x []float64) []float64

	// Derivative computes f'(x)
	Derivative(x []float64) []float64
}

// apply maps f over x into a new slice.
func apply(x []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = f(v)
	}
	return out
}

// ReLU activation function.
type ReLU struct{}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func reluPrime(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// Activate computes max(0, x)
func (r ReLU) Activate(x []float64) []float64 {
	return apply(x, relu)
}

// Derivative returns 1 if x > 0, else 0
func (r ReLU) Derivative(x []float64) []float64 {
	return apply(x, reluPrime)
}

// Sigmoid activation function.
type Sigmoid struct{}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func sigmoidPrime(x float64) float64 {
	sigma := sigmoid(x)
	return sigma * (1 - sigma)
}

// Activate computes 1 / (1 + e^-x)
func (s Sigmoid) Activate(x []float64) []float64 {
	return apply(x, sigmoid)
}

// Derivative computes sigmoid(x) * (1 - sigmoid(x))
func (s Sigmoid) Derivative(x []float64) []float64 {
	return apply(x, sigmoidPrime)
}

// Tanh activation function.
type Tanh struct{}

func tanhPrime(x float64) float64 {
	t := math.Tanh(x)
	return 1 - t*t
}

// Activate computes tanh(x)
func (t Tanh) Activate(x []float64) []float64 {
	return apply(x, math.Tanh)
}

// Derivative computes 1 - tanh(x)^2
func (t Tanh) Derivative(x []float64) []float64 {
	return apply(x, tanhPrime)
}

// LeakyReLU activation function to prevent dying neurons.
type LeakyReLU struct {
	Alpha float64 // Slope for x <= 0
}

// NewLeakyReLU creates a LeakyReLU with the given alpha value.
func NewLeakyReLU(alpha float64) *LeakyReLU {
	return &LeakyReLU{Alpha: alpha}
}

// Activate computes x if x > 0, else alpha*x
func (l *LeakyReLU) Activate(x []float64) []float64 {
	return apply(x, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return l.Alpha * v
	})
}

// Derivative returns 1 if x > 0, else alpha
func (l *LeakyReLU) Derivative(x []float64) []float64 {
	return apply(x, func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return l.Alpha
	})
}

// Funcs pairs an arbitrary vector function with its derivative.
type Funcs struct {
	Fn    func([]float64) []float64
	Deriv func([]float64) []float64
}

// Activate calls Fn.
func (f Funcs) Activate(x []float64) []float64 {
	return f.Fn(x)
}

// Derivative calls Deriv.
func (f Funcs) Derivative(x []float64) []float64 {
	return f.Deriv(x)
}

// Elementwise builds an Activation from a scalar function and its derivative.
func Elementwise(f, df func(float64) float64) Activation {
	return Funcs{
		Fn:    func(x []float64) []float64 { return apply(x, f) },
		Deriv: func(x []float64) []float64 { return apply(x, df) },
	}
}

// DefaultLeakyAlpha is the slope used when "leaky_relu" is parsed by name.
const DefaultLeakyAlpha = 0.01

// Name returns the configuration name of a built-in activation,
// or "" for custom policies.
func Name(act Activation) string {
	switch act.(type) {
	case ReLU, *ReLU:
		return "relu"
	case Sigmoid, *Sigmoid:
		return "sigmoid"
	case Tanh, *Tanh:
		return "tanh"
	case *LeakyReLU:
		return "leaky_relu"
	default:
		return ""
	}
}

// Parse returns the built-in activation registered under name.
func Parse(name string) (Activation, error) {
	switch name {
	case "relu":
		return ReLU{}, nil
	case "sigmoid":
		return Sigmoid{}, nil
	case "tanh":
		return Tanh{}, nil
	case "leaky_relu":
		return NewLeakyReLU(DefaultLeakyAlpha), nil
	default:
		return nil, fmt.Errorf("unknown activation %q", name)
	}
}
