package layer

import (
	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/sgdnet/internal/activations"
	"github.com/FlavioCFOliveira/sgdnet/internal/shape"
)

// Activation applies an elementwise activation function. It has no parameters.
type Activation struct {
	act   activations.Activation
	input []float64
}

// NewActivation wraps an activation policy as a module.
func NewActivation(act activations.Activation) *Activation {
	return &Activation{act: act}
}

// Forward caches x and returns f(x).
func (a *Activation) Forward(x []float64) []float64 {
	a.input = make([]float64, len(x))
	copy(a.input, x)
	out := a.act.Activate(x)
	shape.Check("Activation.Forward", len(x), len(out))
	return out
}

// Backward returns grad * f'(x) for the cached x.
func (a *Activation) Backward(grad []float64) []float64 {
	if a.input == nil {
		panic("Activation.Backward: called before Forward")
	}
	shape.Check("Activation.Backward", len(a.input), len(grad))

	deriv := a.act.Derivative(a.input)
	shape.Check("Activation.Derivative", len(a.input), len(deriv))

	gradIn := make([]float64, len(grad))
	floats.MulTo(gradIn, grad, deriv)
	return gradIn
}

// UpdateParameters is a no-op.
func (a *Activation) UpdateParameters(float64) {}

// Func returns the wrapped activation policy.
func (a *Activation) Func() activations.Activation {
	return a.act
}
