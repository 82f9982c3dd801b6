// Package layer provides neural network modules.
package layer

// Module is a differentiable unit of a network.
//
// Forward transforms one sample and caches whatever Backward needs.
// Backward receives the gradient of the loss w.r.t. the module output and
// returns the gradient w.r.t. its input, accumulating parameter gradients
// without touching the parameters themselves. UpdateParameters applies one
// gradient descent step with the accumulated gradients and zeroes them.
type Module interface {
	Forward(x []float64) []float64
	Backward(grad []float64) []float64
	UpdateParameters(learningRate float64)
}

// Parameterized is implemented by modules with trainable parameters.
// Parameters and gradients are flattened weights first, then biases.
type Parameterized interface {
	Params() []float64
	SetParams(params []float64)
	Gradients() []float64
}

// Sized is implemented by modules with fixed input and output sizes.
type Sized interface {
	InSize() int
	OutSize() int
}
