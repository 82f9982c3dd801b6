// Package loss provides loss functions.
package loss

import (
	"fmt"
	"math"

	"github.com/FlavioCFOliveira/sgdnet/internal/shape"
)

// Loss is a loss function with derivative.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64

	// Backward computes the gradient seed fed to the output layer.
	Backward(yPred, yTrue []float64) []float64
}

// BCEEpsilon bounds predictions away from 0 and 1 before taking logarithms.
const BCEEpsilon = 1e-15

// BCELoss (Binary Cross Entropy) loss.
// Requires predictions to be in range [0, 1].
type BCELoss struct{}

// Forward computes binary cross entropy: -(1/n) * sum(y*log(p) + (1-y)*log(1-p))
func (b BCELoss) Forward(yPred, yTrue []float64) float64 {
	shape.Check("BCELoss.Forward", len(yPred), len(yTrue))

	n := len(yPred)
	if n == 0 {
		panic("BCELoss.Forward: empty prediction")
	}
	var sum float64
	for i := 0; i < n; i++ {
		p := math.Max(math.Min(yPred[i], 1-BCEEpsilon), BCEEpsilon)
		t := yTrue[i]
		sum += -(t*math.Log(p) + (1-t)*math.Log(1-p))
	}
	return sum / float64(n)
}

// Backward returns p - y elementwise, the seed the trainer propagates back
// through the whole network. It assumes a sigmoid output unit.
func (b BCELoss) Backward(yPred, yTrue []float64) []float64 {
	shape.Check("BCELoss.Backward", len(yPred), len(yTrue))

	grad := make([]float64, len(yPred))
	for i := range yPred {
		grad[i] = yPred[i] - yTrue[i]
	}
	return grad
}

// MSE (Mean Squared Error) loss.
type MSE struct{}

// Forward computes mean squared error: (1/n) * sum((y_pred - y_true)^2)
func (m MSE) Forward(yPred, yTrue []float64) float64 {
	shape.Check("MSE.Forward", len(yPred), len(yTrue))

	n := len(yPred)
	if n == 0 {
		panic("MSE.Forward: empty prediction")
	}
	var sum float64
	for i := 0; i < n; i++ {
		diff := yPred[i] - yTrue[i]
		sum += diff * diff
	}
	return sum / float64(n)
}

// Backward computes gradient: dL/dy_pred = (2/n) * (y_pred - y_true)
func (m MSE) Backward(yPred, yTrue []float64) []float64 {
	shape.Check("MSE.Backward", len(yPred), len(yTrue))

	n := len(yPred)
	grad := make([]float64, n)
	factor := 2.0 / float64(n)
	for i := 0; i < n; i++ {
		grad[i] = factor * (yPred[i] - yTrue[i])
	}
	return grad
}

// Name returns the configuration name of a built-in loss, or "" otherwise.
func Name(l Loss) string {
	switch l.(type) {
	case BCELoss, *BCELoss:
		return "bce"
	case MSE, *MSE:
		return "mse"
	default:
		return ""
	}
}

// Parse returns the built-in loss registered under name.
func Parse(name string) (Loss, error) {
	switch name {
	case "bce":
		return BCELoss{}, nil
	case "mse":
		return MSE{}, nil
	default:
		return nil, fmt.Errorf("unknown loss %q", name)
	}
}
