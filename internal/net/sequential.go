// Package net assembles modules into networks and persists them.
package net

import (
	"fmt"
	"io"
	"strings"

	"github.com/FlavioCFOliveira/sgdnet/internal/layer"
	"github.com/FlavioCFOliveira/sgdnet/internal/shape"
)

// Sequential is a module that runs its children in order.
// Adjacent sizes are not validated; a mismatch panics inside the
// offending module on the first Forward or Backward.
type Sequential struct {
	modules []layer.Module
}

// NewSequential creates a new Sequential model.
func NewSequential(modules ...layer.Module) *Sequential {
	return &Sequential{modules: modules}
}

// Add appends a module.
func (s *Sequential) Add(m layer.Module) {
	s.modules = append(s.modules, m)
}

// Modules returns the network's modules.
func (s *Sequential) Modules() []layer.Module {
	return s.modules
}

// Len returns the number of modules.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Forward performs a forward pass through all modules.
func (s *Sequential) Forward(x []float64) []float64 {
	curr := x
	for _, m := range s.modules {
		curr = m.Forward(curr)
	}
	return curr
}

// Backward performs a backward pass through all modules in reverse order and
// returns the gradient w.r.t. the network input.
func (s *Sequential) Backward(grad []float64) []float64 {
	curr := grad
	for i := len(s.modules) - 1; i >= 0; i-- {
		curr = s.modules[i].Backward(curr)
	}
	return curr
}

// UpdateParameters applies one gradient descent step to every module.
func (s *Sequential) UpdateParameters(learningRate float64) {
	for _, m := range s.modules {
		m.UpdateParameters(learningRate)
	}
}

// Params returns all network parameters flattened (copy).
func (s *Sequential) Params() []float64 {
	var params []float64
	for _, m := range s.modules {
		if p, ok := m.(layer.Parameterized); ok {
			params = append(params, p.Params()...)
		}
	}
	return params
}

// SetParams distributes a flattened parameter slice over the modules.
func (s *Sequential) SetParams(params []float64) {
	shape.Check("Sequential.SetParams", len(s.Params()), len(params))

	offset := 0
	for _, m := range s.modules {
		p, ok := m.(layer.Parameterized)
		if !ok {
			continue
		}
		n := len(p.Params())
		p.SetParams(params[offset : offset+n])
		offset += n
	}
}

// Gradients returns all accumulated gradients flattened (copy).
func (s *Sequential) Gradients() []float64 {
	var grads []float64
	for _, m := range s.modules {
		if p, ok := m.(layer.Parameterized); ok {
			grads = append(grads, p.Gradients()...)
		}
	}
	return grads
}

// Summary writes a summary of the network architecture.
func (s *Sequential) Summary(w io.Writer) {
	rule := strings.Repeat("_", 65)
	fmt.Fprintln(w, "Model: Sequential")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-25s %-20s %-10s\n", "Layer (type)", "Output Shape", "Param #")
	fmt.Fprintln(w, strings.Repeat("=", 65))

	totalParams := 0
	for i, m := range s.modules {
		lType := fmt.Sprintf("%T", m)
		if j := strings.LastIndexByte(lType, '.'); j >= 0 {
			lType = lType[j+1:]
		}

		outShape := "(same)"
		if sized, ok := m.(layer.Sized); ok {
			outShape = fmt.Sprintf("(%d)", sized.OutSize())
		}

		params := 0
		if p, ok := m.(layer.Parameterized); ok {
			params = len(p.Params())
		}
		totalParams += params

		fmt.Fprintf(w, "%-25s %-20s %-10d\n", fmt.Sprintf("%s_%d", lType, i), outShape, params)
	}
	fmt.Fprintln(w, strings.Repeat("=", 65))
	fmt.Fprintf(w, "Total params: %d\n", totalParams)
	fmt.Fprintln(w, rule)
}
