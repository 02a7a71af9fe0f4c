// Package connectivity tracks the platform network signal. The flag is
// advisory: it routes a login submission at the moment it is made and never
// aborts requests already in flight.
package connectivity

import "sync"

// Status is the last reported network state.
type Status int

const (
	Online Status = iota
	Offline
)

func (s Status) String() string {
	if s == Offline {
		return "offline"
	}
	return "online"
}

// Monitor holds the latest connectivity signal pushed by the platform bridge
// and fans changes out to subscribers (offline badge, sync indicator).
type Monitor struct {
	mu     sync.RWMutex
	status Status
	subs   map[chan Status]struct{}
}

// NewMonitor creates a Monitor with the given initial state.
func NewMonitor(initial Status) *Monitor {
	return &Monitor{status: initial, subs: make(map[chan Status]struct{})}
}

// Update records a new signal and notifies subscribers when it changed.
func (m *Monitor) Update(status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if status == m.status {
		return
	}
	m.status = status
	for ch := range m.subs {
		select {
		case ch <- status:
		default:
			// slow subscriber; it will read Status() when it catches up
		}
	}
}

// Status returns the last reported state.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Subscribe registers a buffered channel that receives status changes until
// Unsubscribe is called with it.
func (m *Monitor) Subscribe() chan Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan Status, 1)
	m.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a channel registered with Subscribe.
func (m *Monitor) Unsubscribe(ch chan Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subs, ch)
}
