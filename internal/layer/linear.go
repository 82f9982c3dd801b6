package layer

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/sgdnet/internal/opt"
	"github.com/FlavioCFOliveira/sgdnet/internal/shape"
)

// Linear is a fully connected layer computing W*x + b.
type Linear struct {
	// Shape: [out, in]; weight for output i, input j is at (i, j)
	weights *mat.Dense
	biases  *mat.VecDense
	inSize  int
	outSize int

	// Accumulated gradients, same shapes as the parameters
	gradW *mat.Dense
	gradB *mat.VecDense

	// Last forward input, nil until Forward is called
	input *mat.VecDense
}

// NewLinear creates a linear layer. Weights are drawn from N(0, sqrt(2/in))
// using rng, or the global math/rand source when rng is nil; biases start at 0.
func NewLinear(in, out int, rng *rand.Rand) *Linear {
	if in <= 0 || out <= 0 {
		panic(fmt.Sprintf("Linear: sizes must be positive, got in=%d out=%d", in, out))
	}

	normal := rand.NormFloat64
	if rng != nil {
		normal = rng.NormFloat64
	}

	// He initialization
	std := math.Sqrt(2.0 / float64(in))
	weights := make([]float64, out*in)
	for i := range weights {
		weights[i] = normal() * std
	}

	return &Linear{
		weights: mat.NewDense(out, in, weights),
		biases:  mat.NewVecDense(out, nil),
		inSize:  in,
		outSize: out,
		gradW:   mat.NewDense(out, in, nil),
		gradB:   mat.NewVecDense(out, nil),
	}
}

// Forward computes W*x + b and caches x for Backward.
func (l *Linear) Forward(x []float64) []float64 {
	shape.Check("Linear.Forward", l.inSize, len(x))

	l.input = mat.NewVecDense(l.inSize, append([]float64(nil), x...))

	out := mat.NewVecDense(l.outSize, nil)
	out.MulVec(l.weights, l.input)
	out.AddVec(out, l.biases)
	return out.RawVector().Data
}

// Backward accumulates dL/dW += grad * x^T and dL/db += grad,
// and returns dL/dx = W^T * grad.
func (l *Linear) Backward(grad []float64) []float64 {
	shape.Check("Linear.Backward", l.outSize, len(grad))
	if l.input == nil {
		panic("Linear.Backward: called before Forward")
	}

	g := mat.NewVecDense(l.outSize, grad)
	l.gradW.RankOne(l.gradW, 1, g, l.input)
	l.gradB.AddVec(l.gradB, g)

	gradIn := mat.NewVecDense(l.inSize, nil)
	gradIn.MulVec(l.weights.T(), g)
	return gradIn.RawVector().Data
}

// UpdateParameters applies param -= lr * grad and resets the accumulators.
func (l *Linear) UpdateParameters(learningRate float64) {
	sgd := opt.SGD{LearningRate: learningRate}
	sgd.StepInPlace(l.weights.RawMatrix().Data, l.gradW.RawMatrix().Data)
	sgd.StepInPlace(l.biases.RawVector().Data, l.gradB.RawVector().Data)

	l.gradW.Zero()
	l.gradB.Zero()
}

// Params returns all linear layer parameters flattened.
func (l *Linear) Params() []float64 {
	w := l.weights.RawMatrix().Data
	b := l.biases.RawVector().Data
	params := make([]float64, 0, len(w)+len(b))
	params = append(params, w...)
	return append(params, b...)
}

// SetParams updates weights and biases from a flattened slice (in-place).
func (l *Linear) SetParams(params []float64) {
	w := l.weights.RawMatrix().Data
	shape.Check("Linear.SetParams", len(w)+l.outSize, len(params))
	copy(w, params[:len(w)])
	copy(l.biases.RawVector().Data, params[len(w):])
}

// Gradients returns the accumulated gradients flattened.
func (l *Linear) Gradients() []float64 {
	w := l.gradW.RawMatrix().Data
	b := l.gradB.RawVector().Data
	grads := make([]float64, 0, len(w)+len(b))
	grads = append(grads, w...)
	return append(grads, b...)
}

// Weights returns a copy of the weight matrix.
func (l *Linear) Weights() mat.Matrix {
	return mat.DenseCopyOf(l.weights)
}

// Weight gets a single weight at (row, col).
func (l *Linear) Weight(row, col int) float64 {
	return l.weights.At(row, col)
}

// SetWeight sets a single weight at (row, col).
func (l *Linear) SetWeight(row, col int, val float64) {
	l.weights.Set(row, col, val)
}

// Bias gets a single bias.
func (l *Linear) Bias(idx int) float64 {
	return l.biases.AtVec(idx)
}

// SetBias sets a single bias.
func (l *Linear) SetBias(idx int, val float64) {
	l.biases.SetVec(idx, val)
}

// WeightGradient returns the accumulated gradient for weight (row, col).
func (l *Linear) WeightGradient(row, col int) float64 {
	return l.gradW.At(row, col)
}

// BiasGradient returns the accumulated gradient for a bias.
func (l *Linear) BiasGradient(idx int) float64 {
	return l.gradB.AtVec(idx)
}

// InSize returns the input size of the layer.
func (l *Linear) InSize() int {
	return l.inSize
}

// OutSize returns the output size of the layer.
func (l *Linear) OutSize() int {
	return l.outSize
}
