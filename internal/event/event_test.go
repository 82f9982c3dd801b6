package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerNotifyOrder(t *testing.T) {
	m := NewManager()
	var calls []string

	m.Subscribe("a", func(loss float64, epoch int) { calls = append(calls, "first") })
	m.Subscribe("a", func(loss float64, epoch int) { calls = append(calls, "second") })
	m.Subscribe("b", func(loss float64, epoch int) { calls = append(calls, "other") })

	m.Notify("a", 0.5, 1)

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestManagerUnsubscribe(t *testing.T) {
	m := NewManager()
	count := 0
	m.Subscribe(LossUpdated, func(float64, int) { count++ })

	m.Unsubscribe(LossUpdated)
	m.Notify(LossUpdated, 1, 1)
	m.Notify("unknown", 1, 1)

	assert.Zero(t, count)
}

func TestManagerZeroValue(t *testing.T) {
	var m Manager
	got := 0
	m.Subscribe("x", func(float64, int) { got++ })
	m.Notify("x", 0, 0)

	assert.Equal(t, 1, got)
}

func TestLossPublisher(t *testing.T) {
	p := NewLossPublisher()

	var seen []EpochLoss
	p.Events().Subscribe(LossUpdated, func(loss float64, epoch int) {
		seen = append(seen, EpochLoss{Loss: loss, Epoch: epoch})
	})

	p.Publish(0.7, 1)
	p.Publish(0.4, 2)

	want := []EpochLoss{{Loss: 0.7, Epoch: 1}, {Loss: 0.4, Epoch: 2}}
	require.Equal(t, want, p.Losses())
	assert.Equal(t, want, seen)

	// Losses returns a copy
	losses := p.Losses()
	losses[0].Loss = 99
	assert.Equal(t, 0.7, p.Losses()[0].Loss)
}
