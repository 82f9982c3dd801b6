// Package config loads the YAML run configuration for cmd/sgdnet.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/FlavioCFOliveira/sgdnet/internal/loss"
	"github.com/FlavioCFOliveira/sgdnet/internal/net"
)

// Normalization modes accepted by Data.Normalize.
const (
	NormalizeNone   = "none"
	NormalizeMinMax = "minmax"
	NormalizeZScore = "zscore"
)

// Data describes the dataset of a run.
type Data struct {
	Path      string  `yaml:"path"`
	Target    string  `yaml:"target"`
	TestRatio float64 `yaml:"test_ratio"`
	Normalize string  `yaml:"normalize"`
}

// Config captures the knobs of a training run.
type Config struct {
	Data         Data            `yaml:"data"`
	Model        []net.LayerSpec `yaml:"model"`
	Loss         string          `yaml:"loss"`
	Epochs       int             `yaml:"epochs"`
	LearningRate float64         `yaml:"learning_rate"`
	Seed         int64           `yaml:"seed"`
	LogEvery     int             `yaml:"log_every"`
	LossLog      string          `yaml:"loss_log"`
	Checkpoint   string          `yaml:"checkpoint"`
	Progress     bool            `yaml:"progress"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	DataPath     string
	Target       string
	TestRatio    float64
	Epochs       int
	LearningRate float64
	Seed         int64
}

// Default returns a configuration with everything but the data and model set.
func Default() *Config {
	return &Config{
		Data: Data{
			TestRatio: 0.2,
			Normalize: NormalizeMinMax,
		},
		Loss:         "bce",
		Epochs:       100,
		LearningRate: 0.01,
		Seed:         42,
		LogEvery:     10,
	}
}

// DefaultModel returns a single hidden layer binary classifier for in features.
func DefaultModel(in int) []net.LayerSpec {
	return []net.LayerSpec{
		{Type: "linear", In: in, Out: 16},
		{Type: "activation", Activation: "tanh"},
		{Type: "linear", In: 16, Out: 1},
		{Type: "activation", Activation: "sigmoid"},
	}
}

// Load reads a Config from a YAML file. Fields missing from the file keep
// their Default values. The result is not validated so that overrides can
// still be applied.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r on top of Default. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DataPath != "" {
		c.Data.Path = o.DataPath
	}
	if o.Target != "" {
		c.Data.Target = o.Target
	}
	if o.TestRatio > 0 {
		c.Data.TestRatio = o.TestRatio
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Data.Path == "" {
		return errors.New("data.path must be set")
	}
	if c.Data.Target == "" {
		return errors.New("data.target must be set")
	}
	if c.Data.TestRatio < 0 || c.Data.TestRatio >= 1 {
		return fmt.Errorf("data.test_ratio must be in [0, 1) (got %g)", c.Data.TestRatio)
	}
	switch c.Data.Normalize {
	case "", NormalizeNone, NormalizeMinMax, NormalizeZScore:
	default:
		return fmt.Errorf("data.normalize must be one of none, minmax, zscore (got %q)", c.Data.Normalize)
	}
	if len(c.Model) == 0 {
		return errors.New("model must have at least one layer")
	}
	for i, s := range c.Model {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("model[%d]: %w", i, err)
		}
	}
	if _, err := loss.Parse(c.Loss); err != nil {
		return fmt.Errorf("loss: %w", err)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 10
	}
	return nil
}
