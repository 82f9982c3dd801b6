package net

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/FlavioCFOliveira/sgdnet/internal/activations"
	"github.com/FlavioCFOliveira/sgdnet/internal/layer"
)

// ErrUnsupportedModule is returned when a module cannot be serialized.
var ErrUnsupportedModule = errors.New("unsupported module")

// formatVersion guards against decoding files written by an incompatible layout.
const formatVersion = 1

// LayerConfig holds the configuration needed to reconstruct a module.
type LayerConfig struct {
	Type    string
	InSize  int
	OutSize int
	Params  []float64
	// Activation name for Activation modules
	Activation string
	// Children of a nested Sequential
	Modules []LayerConfig
}

// Save saves the network to a file using gob encoding.
func (s *Sequential) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := s.Encode(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Encode writes the network to an io.Writer using gob encoding.
func (s *Sequential) Encode(w io.Writer) error {
	cfgs, err := extractConfigs(s.modules)
	if err != nil {
		return err
	}

	encoder := gob.NewEncoder(w)
	if err := encoder.Encode(int32(formatVersion)); err != nil {
		return fmt.Errorf("failed to encode version: %w", err)
	}
	if err := encoder.Encode(cfgs); err != nil {
		return fmt.Errorf("failed to encode layers: %w", err)
	}
	return nil
}

// Load loads a network from a file.
func Load(filename string) (*Sequential, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads a network written by Encode.
func Decode(r io.Reader) (*Sequential, error) {
	decoder := gob.NewDecoder(r)

	var version int32
	if err := decoder.Decode(&version); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("unsupported model format version %d", version)
	}

	var cfgs []LayerConfig
	if err := decoder.Decode(&cfgs); err != nil {
		return nil, fmt.Errorf("failed to read layers: %w", err)
	}

	modules, err := createModules(cfgs)
	if err != nil {
		return nil, err
	}
	return NewSequential(modules...), nil
}

func extractConfigs(modules []layer.Module) ([]LayerConfig, error) {
	cfgs := make([]LayerConfig, 0, len(modules))
	for i, m := range modules {
		cfg, err := ExtractLayerConfig(m)
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", i, err)
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

func createModules(cfgs []LayerConfig) ([]layer.Module, error) {
	modules := make([]layer.Module, 0, len(cfgs))
	for i := range cfgs {
		m, err := cfgs[i].CreateLayer()
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", i, err)
		}
		modules = append(modules, m)
	}
	return modules, nil
}

// ExtractLayerConfig extracts the configuration from a module.
func ExtractLayerConfig(m layer.Module) (LayerConfig, error) {
	switch l := m.(type) {
	case *layer.Linear:
		return LayerConfig{
			Type:    "Linear",
			InSize:  l.InSize(),
			OutSize: l.OutSize(),
			Params:  l.Params(),
		}, nil
	case *layer.Activation:
		name := activations.Name(l.Func())
		if name == "" {
			return LayerConfig{}, fmt.Errorf("%w: custom activation %T", ErrUnsupportedModule, l.Func())
		}
		cfg := LayerConfig{Type: "Activation", Activation: name}
		if leaky, ok := l.Func().(*activations.LeakyReLU); ok {
			cfg.Params = []float64{leaky.Alpha}
		}
		return cfg, nil
	case *Sequential:
		children, err := extractConfigs(l.modules)
		if err != nil {
			return LayerConfig{}, err
		}
		return LayerConfig{Type: "Sequential", Modules: children}, nil
	default:
		return LayerConfig{}, fmt.Errorf("%w: %T", ErrUnsupportedModule, m)
	}
}

// CreateLayer creates a new module from the configuration.
func (c *LayerConfig) CreateLayer() (layer.Module, error) {
	switch c.Type {
	case "Linear":
		if c.InSize <= 0 || c.OutSize <= 0 {
			return nil, fmt.Errorf("invalid linear sizes %dx%d", c.InSize, c.OutSize)
		}
		if len(c.Params) != c.InSize*c.OutSize+c.OutSize {
			return nil, fmt.Errorf("linear %dx%d: expected %d params, got %d",
				c.InSize, c.OutSize, c.InSize*c.OutSize+c.OutSize, len(c.Params))
		}
		l := layer.NewLinear(c.InSize, c.OutSize, nil)
		l.SetParams(c.Params)
		return l, nil
	case "Activation":
		act, err := activations.Parse(c.Activation)
		if err != nil {
			return nil, err
		}
		if leaky, ok := act.(*activations.LeakyReLU); ok && len(c.Params) == 1 {
			leaky.Alpha = c.Params[0]
		}
		return layer.NewActivation(act), nil
	case "Sequential":
		children, err := createModules(c.Modules)
		if err != nil {
			return nil, err
		}
		return NewSequential(children...), nil
	default:
		return nil, fmt.Errorf("unsupported layer type: %s", c.Type)
	}
}
