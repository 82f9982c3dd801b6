package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/FlavioCFOliveira/sgdnet/internal/activations"
	"github.com/FlavioCFOliveira/sgdnet/internal/data"
	"github.com/FlavioCFOliveira/sgdnet/internal/event"
	"github.com/FlavioCFOliveira/sgdnet/internal/layer"
	"github.com/FlavioCFOliveira/sgdnet/internal/loss"
	"github.com/FlavioCFOliveira/sgdnet/internal/net"
	"github.com/FlavioCFOliveira/sgdnet/internal/train"
)

func main() {
	fmt.Println("=== XOR Training Example ===")

	// XOR cannot be solved by a single-layer perceptron
	// but can be solved with one hidden layer
	in := 2
	hidden := 4
	out := 1

	fmt.Printf("Network architecture: %d-%d-%d\n", in, hidden, out)
	fmt.Println("Activation functions: Tanh (hidden), Sigmoid (output)")
	fmt.Println("Loss function: BCE")
	fmt.Println("Optimizer: SGD with learning rate 0.1")

	rng := rand.New(rand.NewSource(42))
	network := net.NewSequential(
		layer.NewLinear(in, hidden, rng),
		layer.NewActivation(activations.Tanh{}),
		layer.NewLinear(hidden, out, rng),
		layer.NewActivation(activations.Sigmoid{}),
	)

	trainX := [][]float64{
		{0, 0},
		{0, 1},
		{1, 0},
		{1, 1},
	}
	trainY := [][]float64{
		{0},
		{1},
		{1},
		{0},
	}

	pub := event.NewLossPublisher()
	pub.Events().Subscribe(event.LossUpdated, net.Logger{Interval: 500}.Update)

	trainer := train.New(network, loss.BCELoss{}, 5000, pub)
	x, y := data.NewSliceIterator(trainX), data.NewSliceIterator(trainY)
	if err := trainer.Train(x, y, 0.1); err != nil {
		log.Fatalf("training failed: %v", err)
	}

	fmt.Println("\nTesting trained network:")
	for i := range trainX {
		pred := network.Forward(trainX[i])
		fmt.Printf("Input: %v, Predicted: %.4f, Target: %v\n", trainX[i], pred[0], trainY[i][0])
	}

	res, err := trainer.Test(x, y)
	if err != nil {
		log.Fatalf("evaluation failed: %v", err)
	}
	fmt.Printf("Loss: %.6f, Accuracy: %.0f%%\n", res.Loss, res.Accuracy*100)

	// Round trip through disk and compare predictions
	path := filepath.Join(os.TempDir(), "xor_network.gob")
	if err := network.Save(path); err != nil {
		log.Fatalf("save: %v", err)
	}
	defer os.Remove(path)

	loaded, err := net.Load(path)
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	for i := range trainX {
		a := network.Forward(trainX[i])[0]
		b := loaded.Forward(trainX[i])[0]
		if math.Abs(a-b) > 1e-12 {
			log.Fatalf("loaded network disagrees on %v: %.6f vs %.6f", trainX[i], a, b)
		}
	}
	fmt.Printf("Saved and reloaded %s, predictions match\n", path)
}
