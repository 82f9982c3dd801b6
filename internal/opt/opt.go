// Package opt provides the gradient descent update rule.
package opt

import (
	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/sgdnet/internal/shape"
)

// SGD (Stochastic Gradient Descent) optimizer.
// It is the only update rule: no momentum, no adaptive rates.
type SGD struct {
	LearningRate float64
}

// StepInPlace updates params in-place: params = params - lr * gradients
func (s SGD) StepInPlace(params, gradients []float64) {
	shape.Check("SGD.StepInPlace", len(params), len(gradients))
	floats.AddScaled(params, -s.LearningRate, gradients)
}
