// Command sgdnet trains a feed-forward network on a tabular dataset.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"

	"github.com/google/uuid"

	"github.com/FlavioCFOliveira/sgdnet/internal/config"
	"github.com/FlavioCFOliveira/sgdnet/internal/data"
	"github.com/FlavioCFOliveira/sgdnet/internal/event"
	"github.com/FlavioCFOliveira/sgdnet/internal/loss"
	"github.com/FlavioCFOliveira/sgdnet/internal/net"
	"github.com/FlavioCFOliveira/sgdnet/internal/progress"
	"github.com/FlavioCFOliveira/sgdnet/internal/train"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config")
	dataPath := flag.String("data", "", "Override dataset path (.csv or .json)")
	target := flag.String("target", "", "Override target column")
	epochs := flag.Int("epochs", 0, "Number of training epochs")
	lr := flag.Float64("lr", 0, "Learning rate")
	seed := flag.Int64("seed", 0, "PRNG seed")
	testRatio := flag.Float64("test-ratio", 0, "Fraction of rows held out for testing")

	flag.Parse()

	runID := uuid.NewString()
	log.SetPrefix("[" + runID[:8] + "] ")

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	cfg.ApplyOverrides(config.Overrides{
		DataPath:     *dataPath,
		Target:       *target,
		TestRatio:    *testRatio,
		Epochs:       *epochs,
		LearningRate: *lr,
		Seed:         *seed,
	})

	if cfg.Data.Path == "" {
		log.Fatalf("no dataset: set data.path in the config or pass -data")
	}

	frame, err := data.Load(cfg.Data.Path)
	if err != nil {
		log.Fatalf("failed to load data: %v", err)
	}
	log.Printf("run %s", runID)
	log.Printf("loaded %d rows x %d columns from %s", frame.Len(), frame.Width(), cfg.Data.Path)

	if len(cfg.Model) == 0 {
		cfg.Model = config.DefaultModel(frame.Width() - 1)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	y, err := frame.Column(cfg.Data.Target)
	if err != nil {
		log.Fatalf("target: %v", err)
	}
	if err := frame.DropColumns(cfg.Data.Target); err != nil {
		log.Fatalf("target: %v", err)
	}

	switch cfg.Data.Normalize {
	case config.NormalizeMinMax:
		frame.Normalize()
	case config.NormalizeZScore:
		frame.Standardize()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	trainX, testX, trainY, testY, err := data.TrainTestSplit(frame, y, cfg.Data.TestRatio, rng)
	if err != nil {
		log.Fatalf("split: %v", err)
	}
	log.Printf("train samples: %d, test samples: %d", trainX.Len(), testX.Len())

	model, err := net.Build(cfg.Model, rng)
	if err != nil {
		log.Fatalf("build model: %v", err)
	}
	model.Summary(os.Stdout)

	lossFn, err := loss.Parse(cfg.Loss)
	if err != nil {
		log.Fatalf("loss: %v", err)
	}

	pub := event.NewLossPublisher()
	events := pub.Events()
	if cfg.Progress {
		events.Subscribe(event.LossUpdated, progress.NewDisplay(os.Stdout, "Training "+cfg.Data.Path, cfg.Epochs).Update)
	} else {
		events.Subscribe(event.LossUpdated, net.Logger{Interval: cfg.LogEvery}.Update)
	}

	if cfg.LossLog != "" {
		csvLog, err := net.OpenCSVLogger(cfg.LossLog, false)
		if err != nil {
			log.Fatalf("loss log: %v", err)
		}
		defer csvLog.Close()
		events.Subscribe(event.LossUpdated, csvLog.Update)
	}

	var checkpoint *net.ModelCheckpoint
	if cfg.Checkpoint != "" {
		checkpoint = net.NewModelCheckpoint(cfg.Checkpoint, model)
		events.Subscribe(event.LossUpdated, checkpoint.Update)
	}

	trainer := train.New(model, lossFn, cfg.Epochs, pub)
	if err := trainer.Train(trainX.Iterator(), trainY.Iterator(), cfg.LearningRate); err != nil {
		log.Fatalf("training failed: %v", err)
	}
	if checkpoint != nil && checkpoint.Err() != nil {
		log.Fatalf("checkpoint: %v", checkpoint.Err())
	}

	if testX.Len() == 0 {
		log.Printf("test_ratio is 0, skipping evaluation")
		return
	}

	res, err := trainer.Test(testX.Iterator(), testY.Iterator())
	if err != nil {
		log.Fatalf("evaluation failed: %v", err)
	}
	log.Printf("Test Loss: %.6f", res.Loss)
	log.Printf("Test Accuracy: %.2f%%", res.Accuracy*100)
}
