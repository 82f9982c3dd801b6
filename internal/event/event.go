// Package event provides a small observer registry for training progress.
package event

// LossUpdated is the event published after every training epoch.
const LossUpdated = "loss_updated"

// Listener receives a loss value and the epoch it belongs to.
type Listener func(loss float64, epoch int)

// Manager dispatches notifications to listeners keyed by event type.
// It is not safe for concurrent use.
type Manager struct {
	listeners map[string][]Listener
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{listeners: make(map[string][]Listener)}
}

// Subscribe adds a listener for eventType.
func (m *Manager) Subscribe(eventType string, l Listener) {
	if m.listeners == nil {
		m.listeners = make(map[string][]Listener)
	}
	m.listeners[eventType] = append(m.listeners[eventType], l)
}

// Unsubscribe removes every listener registered for eventType.
func (m *Manager) Unsubscribe(eventType string) {
	delete(m.listeners, eventType)
}

// Notify calls the listeners of eventType in subscription order.
func (m *Manager) Notify(eventType string, loss float64, epoch int) {
	for _, l := range m.listeners[eventType] {
		l(loss, epoch)
	}
}

// EpochLoss is one entry of the training log.
type EpochLoss struct {
	Loss  float64
	Epoch int
}

// LossPublisher records per-epoch losses and notifies LossUpdated listeners.
type LossPublisher struct {
	events *Manager
	losses []EpochLoss
}

// NewLossPublisher creates a publisher with its own Manager.
func NewLossPublisher() *LossPublisher {
	return &LossPublisher{events: NewManager()}
}

// Publish appends the loss to the log and notifies subscribers.
func (p *LossPublisher) Publish(loss float64, epoch int) {
	p.losses = append(p.losses, EpochLoss{Loss: loss, Epoch: epoch})
	p.events.Notify(LossUpdated, loss, epoch)
}

// Losses returns a copy of the recorded losses in publication order.
func (p *LossPublisher) Losses() []EpochLoss {
	out := make([]EpochLoss, len(p.losses))
	copy(out, p.losses)
	return out
}

// Events returns the manager used for subscriptions.
func (p *LossPublisher) Events() *Manager {
	return p.events
}
