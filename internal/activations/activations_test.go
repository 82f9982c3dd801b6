// Package activations provides unit tests for activation functions.
package activations

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// TestReLU tests ReLU activation and derivative.
func TestReLU(t *testing.T) {
	relu := ReLU{}

	tests := []struct {
		input    float64
		expected float64
		deriv    float64
	}{
		{-1.0, 0.0, 0.0}, // Negative -> 0
		{0.0, 0.0, 0.0},  // At zero, derivative is 0 (x must be > 0)
		{1.0, 1.0, 1.0},  // Positive -> identity
		{2.5, 2.5, 1.0},
		{-0.1, 0.0, 0.0},
	}

	for _, tt := range tests {
		out := relu.Activate([]float64{tt.input})
		if !almostEqual(out[0], tt.expected, 1e-12) {
			t.Errorf("ReLU(%v) = %v, want %v", tt.input, out[0], tt.expected)
		}
		d := relu.Derivative([]float64{tt.input})
		if !almostEqual(d[0], tt.deriv, 1e-12) {
			t.Errorf("ReLU'(%v) = %v, want %v", tt.input, d[0], tt.deriv)
		}
	}
}

// TestSigmoid tests Sigmoid activation and derivative.
func TestSigmoid(t *testing.T) {
	sigmoid := Sigmoid{}

	out := sigmoid.Activate([]float64{0, 2, -2})
	if !almostEqual(out[0], 0.5, 1e-12) {
		t.Errorf("Sigmoid(0) = %v, want 0.5", out[0])
	}
	if !almostEqual(out[1], 1/(1+math.Exp(-2)), 1e-12) {
		t.Errorf("Sigmoid(2) = %v", out[1])
	}
	if !almostEqual(out[1]+out[2], 1, 1e-12) {
		t.Errorf("Sigmoid(2)+Sigmoid(-2) = %v, want 1", out[1]+out[2])
	}

	d := sigmoid.Derivative([]float64{0, 2})
	if !almostEqual(d[0], 0.25, 1e-12) {
		t.Errorf("Sigmoid'(0) = %v, want 0.25", d[0])
	}
	if !almostEqual(d[1], out[1]*(1-out[1]), 1e-12) {
		t.Errorf("Sigmoid'(2) = %v, want %v", d[1], out[1]*(1-out[1]))
	}
}

// TestTanh tests Tanh activation and derivative.
func TestTanh(t *testing.T) {
	tanh := Tanh{}
	inputs := []float64{-1.5, 0, 0.5, 3}

	out := tanh.Activate(inputs)
	d := tanh.Derivative(inputs)
	for i, x := range inputs {
		if !almostEqual(out[i], math.Tanh(x), 1e-12) {
			t.Errorf("Tanh(%v) = %v, want %v", x, out[i], math.Tanh(x))
		}
		want := 1 - math.Tanh(x)*math.Tanh(x)
		if !almostEqual(d[i], want, 1e-12) {
			t.Errorf("Tanh'(%v) = %v, want %v", x, d[i], want)
		}
	}
	if d[1] != 1 {
		t.Errorf("Tanh'(0) = %v, want 1", d[1])
	}
}

// TestLeakyReLU tests LeakyReLU activation and derivative.
func TestLeakyReLU(t *testing.T) {
	l := NewLeakyReLU(0.1)

	out := l.Activate([]float64{-2, 3})
	if !almostEqual(out[0], -0.2, 1e-12) || out[1] != 3 {
		t.Errorf("LeakyReLU = %v, want [-0.2 3]", out)
	}
	d := l.Derivative([]float64{-2, 3})
	if d[0] != 0.1 || d[1] != 1 {
		t.Errorf("LeakyReLU' = %v, want [0.1 1]", d)
	}
}

// TestActivateDoesNotMutateInput ensures policies return fresh slices.
func TestActivateDoesNotMutateInput(t *testing.T) {
	for _, act := range []Activation{ReLU{}, Sigmoid{}, Tanh{}, NewLeakyReLU(0.01)} {
		in := []float64{-1, 0.5}
		act.Activate(in)
		act.Derivative(in)
		if in[0] != -1 || in[1] != 0.5 {
			t.Errorf("%T mutated its input: %v", act, in)
		}
	}
}

// TestElementwise tests custom scalar pairs.
func TestElementwise(t *testing.T) {
	square := Elementwise(
		func(x float64) float64 { return x * x },
		func(x float64) float64 { return 2 * x },
	)

	out := square.Activate([]float64{3, -2})
	if out[0] != 9 || out[1] != 4 {
		t.Errorf("square = %v, want [9 4]", out)
	}
	d := square.Derivative([]float64{3, -2})
	if d[0] != 6 || d[1] != -4 {
		t.Errorf("square' = %v, want [6 -4]", d)
	}
	if Name(square) != "" {
		t.Errorf("Name(custom) = %q, want empty", Name(square))
	}
}

// TestParseRoundTrip tests that every built-in name parses back to itself.
func TestParseRoundTrip(t *testing.T) {
	for _, name := range []string{"relu", "sigmoid", "tanh", "leaky_relu"} {
		act, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", name, err)
		}
		if got := Name(act); got != name {
			t.Errorf("Name(Parse(%q)) = %q", name, got)
		}
	}

	if _, err := Parse("softplus"); err == nil {
		t.Error("Parse(softplus) should fail")
	}
}
