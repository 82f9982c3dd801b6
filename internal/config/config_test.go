package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/sgdnet/internal/net"
)

const sample = `
data:
  path: credit.csv
  target: default
  test_ratio: 0.25
  normalize: zscore
model:
  - {type: linear, in: 3, out: 4}
  - {type: activation, activation: relu}
  - {type: linear, in: 4, out: 1}
  - {type: activation, activation: sigmoid}
loss: bce
epochs: 50
learning_rate: 0.05
seed: 7
loss_log: loss.csv
checkpoint: best.gob
progress: true
`

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, Data{Path: "credit.csv", Target: "default", TestRatio: 0.25, Normalize: NormalizeZScore}, cfg.Data)
	require.Len(t, cfg.Model, 4)
	assert.Equal(t, net.LayerSpec{Type: "linear", In: 3, Out: 4}, cfg.Model[0])
	assert.Equal(t, "relu", cfg.Model[1].Activation)
	assert.Equal(t, 50, cfg.Epochs)
	assert.Equal(t, 0.05, cfg.LearningRate)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "loss.csv", cfg.LossLog)
	assert.Equal(t, "best.gob", cfg.Checkpoint)
	assert.True(t, cfg.Progress)

	// Not in the document, so the default survives
	assert.Equal(t, 10, cfg.LogEvery)

	require.NoError(t, cfg.Validate())
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("epochs: 3\nbatch_size: 32\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "credit.csv", cfg.Data.Path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{
		DataPath:     "other.json",
		Target:       "label",
		Epochs:       5,
		LearningRate: 0.3,
	})

	assert.Equal(t, "other.json", cfg.Data.Path)
	assert.Equal(t, "label", cfg.Data.Target)
	assert.Equal(t, 5, cfg.Epochs)
	assert.Equal(t, 0.3, cfg.LearningRate)

	// Zero values leave the config alone
	assert.Equal(t, 0.2, cfg.Data.TestRatio)
	assert.Equal(t, int64(42), cfg.Seed)
}

func validConfig() *Config {
	cfg := Default()
	cfg.Data.Path = "data.csv"
	cfg.Data.Target = "y"
	cfg.Model = DefaultModel(3)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing path", func(c *Config) { c.Data.Path = "" }},
		{"missing target", func(c *Config) { c.Data.Target = "" }},
		{"negative ratio", func(c *Config) { c.Data.TestRatio = -0.1 }},
		{"ratio of one", func(c *Config) { c.Data.TestRatio = 1 }},
		{"bad normalize", func(c *Config) { c.Data.Normalize = "l2" }},
		{"no model", func(c *Config) { c.Model = nil }},
		{"bad layer", func(c *Config) { c.Model[1].Activation = "gelu" }},
		{"bad loss", func(c *Config) { c.Loss = "hinge" }},
		{"zero epochs", func(c *Config) { c.Epochs = 0 }},
		{"zero learning rate", func(c *Config) { c.LearningRate = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}

func TestValidateDefaultsLogEvery(t *testing.T) {
	cfg := validConfig()
	cfg.LogEvery = 0
	cfg.Data.Normalize = ""

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.LogEvery)
}
