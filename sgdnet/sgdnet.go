// Package sgdnet is the public entry point to the training framework.
package sgdnet

import (
	"math/rand"

	"github.com/FlavioCFOliveira/sgdnet/internal/activations"
	"github.com/FlavioCFOliveira/sgdnet/internal/data"
	"github.com/FlavioCFOliveira/sgdnet/internal/event"
	"github.com/FlavioCFOliveira/sgdnet/internal/layer"
	"github.com/FlavioCFOliveira/sgdnet/internal/loss"
	"github.com/FlavioCFOliveira/sgdnet/internal/net"
	"github.com/FlavioCFOliveira/sgdnet/internal/train"
)

// Re-export common types and functions for easier access
type (
	Model      = net.Sequential
	Module     = layer.Module
	Activation = activations.Activation
	Loss       = loss.Loss
	Trainer    = train.Trainer
	Result     = train.Result
	Publisher  = train.Publisher
	Frame      = data.Frame
	Iterator   = data.Iterator
	LayerSpec  = net.LayerSpec
)

// Sentinel errors
var (
	ErrEmptyDataset = train.ErrEmptyDataset
	ErrExhausted    = data.ErrExhausted
)

// Model creation
func NewSequential(modules ...Module) *Model {
	return net.NewSequential(modules...)
}

func Build(specs []LayerSpec, rng *rand.Rand) (*Model, error) {
	return net.Build(specs, rng)
}

// Layers
func Linear(in, out int, rng *rand.Rand) *layer.Linear {
	return layer.NewLinear(in, out, rng)
}

func ActivationLayer(act Activation) *layer.Activation {
	return layer.NewActivation(act)
}

// Activations
var (
	ReLU    = activations.ReLU{}
	Sigmoid = activations.Sigmoid{}
	Tanh    = activations.Tanh{}
)

func LeakyReLU(alpha float64) Activation {
	return activations.NewLeakyReLU(alpha)
}

// CustomActivation builds a policy from a scalar function and its derivative.
func CustomActivation(f, df func(float64) float64) Activation {
	return activations.Elementwise(f, df)
}

// Losses
var (
	BCELoss = loss.BCELoss{}
	MSE     = loss.MSE{}
)

// Training
func NewTrainer(model Module, l Loss, epochs int, pub Publisher) *Trainer {
	return train.New(model, l, epochs, pub)
}

func NewLossPublisher() *event.LossPublisher {
	return event.NewLossPublisher()
}

// Callbacks
func Logger(interval int) net.Logger {
	return net.Logger{Interval: interval}
}

func ModelCheckpoint(filename string, model *Model) *net.ModelCheckpoint {
	return net.NewModelCheckpoint(filename, model)
}

// Data
func LoadData(filename string) (*Frame, error) {
	return data.Load(filename)
}

func NewSliceIterator(rows [][]float64) *data.SliceIterator {
	return data.NewSliceIterator(rows)
}

func TrainTestSplit(x, y *Frame, testRatio float64, rng *rand.Rand) (trainX, testX, trainY, testY *Frame, err error) {
	return data.TrainTestSplit(x, y, testRatio, rng)
}

// Model Persistence
func Load(filename string) (*Model, error) {
	return net.Load(filename)
}
