// Package main - Fraud Detection using a feed-forward network.
// Generates a synthetic transaction CSV, loads it back through the data
// package and trains a binary classifier with per-sample SGD.
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/FlavioCFOliveira/sgdnet/internal/data"
	"github.com/FlavioCFOliveira/sgdnet/internal/event"
	"github.com/FlavioCFOliveira/sgdnet/internal/loss"
	"github.com/FlavioCFOliveira/sgdnet/internal/net"
	"github.com/FlavioCFOliveira/sgdnet/internal/train"
)

var header = []string{
	"Amount", "TimeOfDay", "DaysSince", "TransactionFreq",
	"IsInternational", "IsHighRiskCat", "HasRecentFraud", "FraudLabel",
}

func main() {
	fmt.Println("=============================================================")
	fmt.Println("  SGDNet - Bank Fraud Detection")
	fmt.Println("=============================================================")

	rng := rand.New(rand.NewSource(42))
	dir, err := os.MkdirTemp("", "fraud")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	fmt.Println("\n--- Step 1: Generating Fraud Detection Data ---")
	dataPath := filepath.Join(dir, "fraud_data.csv")
	if err := writeFraudCSV(dataPath, 5000, rng); err != nil {
		log.Fatalf("write data: %v", err)
	}

	fmt.Println("\n--- Step 2: Loading and Preparing Data ---")
	frame, err := data.LoadCSV(dataPath)
	if err != nil {
		log.Fatalf("load data: %v", err)
	}
	labels, err := frame.Column("FraudLabel")
	if err != nil {
		log.Fatalf("target: %v", err)
	}
	if err := frame.DropColumns("FraudLabel"); err != nil {
		log.Fatalf("target: %v", err)
	}
	frame.Normalize()

	trainX, testX, trainY, testY, err := data.TrainTestSplit(frame, labels, 0.2, rng)
	if err != nil {
		log.Fatalf("split: %v", err)
	}
	fmt.Printf("Training samples: %d\n", trainX.Len())
	fmt.Printf("Testing samples: %d\n", testX.Len())

	fmt.Println("\n--- Step 3: Training ---")
	network, err := net.Build([]net.LayerSpec{
		{Type: "linear", In: frame.Width(), Out: 16},
		{Type: "activation", Activation: "tanh"},
		{Type: "linear", In: 16, Out: 8},
		{Type: "activation", Activation: "tanh"},
		{Type: "linear", In: 8, Out: 1},
		{Type: "activation", Activation: "sigmoid"},
	}, rng)
	if err != nil {
		log.Fatalf("build: %v", err)
	}
	network.Summary(os.Stdout)

	pub := event.NewLossPublisher()
	pub.Events().Subscribe(event.LossUpdated, net.Logger{Interval: 5}.Update)

	trainer := train.New(network, loss.BCELoss{}, 20, pub)
	if err := trainer.Train(trainX.Iterator(), trainY.Iterator(), 0.05); err != nil {
		log.Fatalf("training failed: %v", err)
	}

	fmt.Println("\n--- Step 4: Evaluating Model ---")
	res, err := trainer.Test(testX.Iterator(), testY.Iterator())
	if err != nil {
		log.Fatalf("evaluation failed: %v", err)
	}
	fmt.Printf("Test Loss: %.6f\n", res.Loss)
	fmt.Printf("Test Accuracy: %.2f%%\n", res.Accuracy*100)

	c := confusion(network, testX, testY)
	fmt.Printf("Confusion Matrix (%d samples):\n", res.Samples)
	fmt.Printf("  True Positive:  %d\n", c.tp)
	fmt.Printf("  False Positive: %d\n", c.fp)
	fmt.Printf("  True Negative:  %d\n", c.tn)
	fmt.Printf("  False Negative: %d\n", c.fn)
	if c.tp+c.fp > 0 {
		fmt.Printf("  Precision: %.2f%%\n", float64(c.tp)/float64(c.tp+c.fp)*100)
	}
	if c.tp+c.fn > 0 {
		fmt.Printf("  Recall: %.2f%%\n", float64(c.tp)/float64(c.tp+c.fn)*100)
	}
}

type counts struct {
	tp, fp, tn, fn int
}

func confusion(model *net.Sequential, x, y *data.Frame) counts {
	var c counts
	rows, targets := x.Rows(), y.Rows()
	for i := range rows {
		pred := model.Forward(rows[i])[0] >= train.DecisionThreshold
		actual := targets[i][0] == 1
		switch {
		case pred && actual:
			c.tp++
		case pred && !actual:
			c.fp++
		case !pred && !actual:
			c.tn++
		default:
			c.fn++
		}
	}
	return c
}

// writeFraudCSV writes count synthetic transactions. Fraud has high amounts,
// night hours, new cards and is mostly international.
func writeFraudCSV(filename string, count int, rng *rand.Rand) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}

	flag := func(p float64) float64 {
		if rng.Float64() < p {
			return 1
		}
		return 0
	}

	for i := 0; i < count; i++ {
		var row []float64
		// 30% fraud rate
		if rng.Float64() < 0.3 {
			row = []float64{
				5000 + rng.Float64()*15000,
				rng.Float64() * 6,
				float64(10 + rng.Intn(60)),
				0.05 + rng.Float64()*0.15,
				flag(0.7), flag(0.6), flag(0.25),
				1,
			}
		} else {
			row = []float64{
				10 + rng.Float64()*400,
				7 + rng.Float64()*14,
				float64(365 + rng.Intn(2*365)),
				0.3 + rng.Float64()*0.4,
				flag(0.15), flag(0.1), flag(0.02),
				0,
			}
		}

		record := make([]string, len(row))
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
