package net

import (
	"log"
	"math"
)

// Logger logs training progress every Interval epochs.
// Its Update method matches event.Listener.
type Logger struct {
	Interval int
	// Out defaults to the standard logger.
	Out *log.Logger
}

func (c Logger) Update(loss float64, epoch int) {
	if c.Interval <= 0 || epoch%c.Interval != 0 {
		return
	}
	out := c.Out
	if out == nil {
		out = log.Default()
	}
	out.Printf("Epoch %d: loss = %.6f", epoch, loss)
}

// ModelCheckpoint saves the model after every epoch if it's the best so far.
type ModelCheckpoint struct {
	Filename string

	model    *Sequential
	bestLoss float64
	err      error
}

func NewModelCheckpoint(filename string, model *Sequential) *ModelCheckpoint {
	return &ModelCheckpoint{
		Filename: filename,
		model:    model,
		bestLoss: math.MaxFloat64,
	}
}

func (c *ModelCheckpoint) Update(loss float64, epoch int) {
	// NaN never compares less, so a diverged epoch is not saved
	if !(loss < c.bestLoss) {
		return
	}
	c.bestLoss = loss
	if err := c.model.Save(c.Filename); err != nil {
		c.err = err
		log.Printf("checkpoint: epoch %d: %v", epoch, err)
		return
	}
	log.Printf("checkpoint: epoch %d loss %.6f is new best, saved to %s", epoch, loss, c.Filename)
}

// BestLoss returns the lowest loss seen so far.
func (c *ModelCheckpoint) BestLoss() float64 {
	return c.bestLoss
}

// Err returns the last save error, if any.
func (c *ModelCheckpoint) Err() error {
	return c.err
}
