package net

import (
	"bytes"
	"encoding/csv"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/sgdnet/internal/activations"
	"github.com/FlavioCFOliveira/sgdnet/internal/layer"
)

func testModel(seed int64) *Sequential {
	rng := rand.New(rand.NewSource(seed))
	return NewSequential(
		layer.NewLinear(3, 4, rng),
		layer.NewActivation(activations.NewLeakyReLU(0.2)),
		NewSequential(layer.NewLinear(4, 2, rng), layer.NewActivation(activations.Tanh{})),
		layer.NewLinear(2, 1, rng),
		layer.NewActivation(activations.Sigmoid{}),
	)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	model := testModel(1)

	var buf bytes.Buffer
	require.NoError(t, model.Encode(&buf))

	loaded, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, model.Params(), loaded.Params())
	assert.Equal(t, model.Len(), loaded.Len())

	input := []float64{0.5, -1, 2}
	assert.Equal(t, model.Forward(input), loaded.Forward(input))

	leaky := loaded.Modules()[1].(*layer.Activation).Func().(*activations.LeakyReLU)
	assert.Equal(t, 0.2, leaky.Alpha)
}

func TestSaveLoad(t *testing.T) {
	model := testModel(2)
	path := filepath.Join(t.TempDir(), "model.gob")

	require.NoError(t, model.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.Params(), loaded.Params())

	_, err = Load(filepath.Join(t.TempDir(), "missing.gob"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeCustomActivationFails(t *testing.T) {
	custom := activations.Elementwise(func(x float64) float64 { return x }, func(float64) float64 { return 1 })
	model := NewSequential(layer.NewActivation(custom))

	err := model.Encode(&bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnsupportedModule)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not a model")))
	assert.Error(t, err)
}

func TestCreateLayerValidation(t *testing.T) {
	bad := []LayerConfig{
		{Type: "Linear", InSize: 2, OutSize: 1, Params: []float64{1}},
		{Type: "Linear", InSize: 0, OutSize: 1},
		{Type: "Activation", Activation: "softsign"},
		{Type: "Conv2D"},
	}
	for _, cfg := range bad {
		_, err := cfg.CreateLayer()
		assert.Error(t, err, "%+v", cfg)
	}
}

func TestBuild(t *testing.T) {
	specs := []LayerSpec{
		{Type: "linear", In: 2, Out: 3},
		{Type: "activation", Activation: "tanh"},
		{Type: "Linear", In: 3, Out: 1},
		{Type: "activation", Activation: "sigmoid"},
	}

	model, err := Build(specs, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 4, model.Len())
	assert.Len(t, model.Forward([]float64{1, 2}), 1)

	other, err := Build(specs, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, model.Params(), other.Params())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		specs []LayerSpec
	}{
		{"empty", nil},
		{"unknown type", []LayerSpec{{Type: "dropout"}}},
		{"bad sizes", []LayerSpec{{Type: "linear", In: 0, Out: 2}}},
		{"bad activation", []LayerSpec{{Type: "activation", Activation: "swish"}}},
		{"chain mismatch", []LayerSpec{{Type: "linear", In: 2, Out: 3}, {Type: "linear", In: 4, Out: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.specs, nil)
			assert.Error(t, err)
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := Logger{Interval: 2, Out: log.New(&buf, "", 0)}

	logger.Update(0.5, 1)
	logger.Update(0.25, 2)

	assert.Equal(t, "Epoch 2: loss = 0.250000\n", buf.String())
}

func TestModelCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.gob")
	model := testModel(3)
	cp := NewModelCheckpoint(path, model)

	cp.Update(0.5, 1)
	require.NoError(t, cp.Err())
	require.FileExists(t, path)
	saved := model.Params()

	// A worse epoch must not overwrite the checkpoint
	model.SetParams(make([]float64, len(saved)))
	cp.Update(0.9, 2)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded.Params())
	assert.Equal(t, 0.5, cp.BestLoss())
}

func TestModelCheckpointIgnoresNaN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.gob")
	model := testModel(4)
	cp := NewModelCheckpoint(path, model)

	cp.Update(0.5, 1)
	saved := model.Params()

	// A diverged epoch followed by a worse one must keep the first save
	model.SetParams(make([]float64, len(saved)))
	cp.Update(math.NaN(), 2)
	cp.Update(0.9, 3)

	assert.Equal(t, 0.5, cp.BestLoss())
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded.Params())
}

func TestCSVLogger(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "loss.csv")

	logger, err := OpenCSVLogger(filename, false)
	require.NoError(t, err)
	logger.Update(0.5, 1)
	logger.Update(0.4, 2)
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	// Appending keeps the existing header
	logger, err = OpenCSVLogger(filename, true)
	require.NoError(t, err)
	logger.Update(0.3, 3)
	require.NoError(t, logger.Close())

	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"epoch", "loss", "time_seconds"}, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "0.500000", records[1][1])
	assert.Equal(t, "3", records[3][0])
}
