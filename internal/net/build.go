package net

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/FlavioCFOliveira/sgdnet/internal/activations"
	"github.com/FlavioCFOliveira/sgdnet/internal/layer"
)

// LayerSpec describes one module in a run configuration.
type LayerSpec struct {
	Type       string `yaml:"type"`
	In         int    `yaml:"in,omitempty"`
	Out        int    `yaml:"out,omitempty"`
	Activation string `yaml:"activation,omitempty"`
}

// Validate checks that the spec describes a buildable module.
func (s LayerSpec) Validate() error {
	switch strings.ToLower(s.Type) {
	case "linear":
		if s.In <= 0 || s.Out <= 0 {
			return fmt.Errorf("linear layer needs positive in/out, got %d/%d", s.In, s.Out)
		}
	case "activation":
		if _, err := activations.Parse(s.Activation); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown layer type %q", s.Type)
	}
	return nil
}

// Build assembles a Sequential from specs. Linear weights are drawn from rng.
// Consecutive linear layers must agree on their sizes.
func Build(specs []LayerSpec, rng *rand.Rand) (*Sequential, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("model has no layers")
	}

	model := NewSequential()
	prevOut := 0
	for i, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}

		switch strings.ToLower(s.Type) {
		case "linear":
			if prevOut != 0 && prevOut != s.In {
				return nil, fmt.Errorf("layer %d: input size %d does not match previous output %d", i, s.In, prevOut)
			}
			model.Add(layer.NewLinear(s.In, s.Out, rng))
			prevOut = s.Out
		case "activation":
			act, err := activations.Parse(s.Activation)
			if err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
			model.Add(layer.NewActivation(act))
		}
	}
	return model, nil
}
