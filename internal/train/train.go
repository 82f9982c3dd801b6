// Package train drives per-sample gradient descent over a module.
package train

import (
	"errors"
	"fmt"

	"github.com/FlavioCFOliveira/sgdnet/internal/data"
	"github.com/FlavioCFOliveira/sgdnet/internal/layer"
	"github.com/FlavioCFOliveira/sgdnet/internal/loss"
	"github.com/FlavioCFOliveira/sgdnet/internal/shape"
)

// ErrEmptyDataset is returned when a data source yields no samples.
var ErrEmptyDataset = errors.New("train: empty dataset")

// DecisionThreshold is the prediction value at or above which a sample is
// classified as 1.
const DecisionThreshold = 0.5

// Publisher receives the mean loss of every finished epoch.
type Publisher interface {
	Publish(loss float64, epoch int)
}

// Result summarizes a Test pass.
type Result struct {
	Loss     float64
	Accuracy float64
	Samples  int
}

// Trainer owns the training loop for one model.
type Trainer struct {
	model     layer.Module
	loss      loss.Loss
	epochs    int
	publisher Publisher
}

// New creates a Trainer. A nil publisher discards epoch losses.
func New(model layer.Module, l loss.Loss, epochs int, pub Publisher) *Trainer {
	return &Trainer{
		model:     model,
		loss:      l,
		epochs:    epochs,
		publisher: pub,
	}
}

// Epochs returns the configured number of epochs.
func (t *Trainer) Epochs() int {
	return t.epochs
}

// Train runs the configured number of epochs over (x, y). Parameters are
// updated after every sample. Only the first output and target element
// take part in the loss.
func (t *Trainer) Train(x, y data.Iterator, learningRate float64) (err error) {
	defer shape.Recover(&err)

	x.Reset()
	y.Reset()
	if !x.HasMore() || !y.HasMore() {
		return ErrEmptyDataset
	}

	for epoch := 1; epoch <= t.epochs; epoch++ {
		x.Reset()
		y.Reset()

		var total float64
		count := 0
		for x.HasMore() && y.HasMore() {
			pred, target, err := t.step(x, y)
			if err != nil {
				return fmt.Errorf("epoch %d: %w", epoch, err)
			}

			total += t.loss.Forward(pred, target)
			t.model.Backward(t.loss.Backward(pred, target))
			t.model.UpdateParameters(learningRate)
			count++
		}

		if t.publisher != nil {
			t.publisher.Publish(total/float64(count), epoch)
		}
	}
	return nil
}

// Test evaluates the model on (x, y) without updating it.
func (t *Trainer) Test(x, y data.Iterator) (res Result, err error) {
	defer shape.Recover(&err)

	x.Reset()
	y.Reset()

	var total float64
	correct := 0
	for x.HasMore() && y.HasMore() {
		pred, target, err := t.step(x, y)
		if err != nil {
			return Result{}, err
		}

		total += t.loss.Forward(pred, target)
		label := 0.0
		if pred[0] >= DecisionThreshold {
			label = 1
		}
		if label == target[0] {
			correct++
		}
		res.Samples++
	}

	if res.Samples == 0 {
		return Result{}, ErrEmptyDataset
	}
	res.Loss = total / float64(res.Samples)
	res.Accuracy = float64(correct) / float64(res.Samples)
	return res, nil
}

// step pulls one sample and target and runs the forward pass. It returns the
// single-element prediction and target the loss is computed on.
func (t *Trainer) step(x, y data.Iterator) ([]float64, []float64, error) {
	sample, err := x.Next()
	if err != nil {
		return nil, nil, err
	}
	target, err := y.Next()
	if err != nil {
		return nil, nil, err
	}
	if len(target) == 0 {
		return nil, nil, errors.New("empty target vector")
	}

	pred := t.model.Forward(sample)
	if len(pred) == 0 {
		return nil, nil, errors.New("model produced an empty prediction")
	}
	return pred[:1], target[:1], nil
}
