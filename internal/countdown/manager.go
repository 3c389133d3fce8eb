package countdown

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one tick of a running countdown. Completed events are terminal:
// the countdown for that timer id has stopped after emitting one.
type Event struct {
	TimerID   uuid.UUID
	Remaining int
	Completed bool
}

// Manager runs at most one countdown goroutine per timer id. Countdowns
// decrement once per interval and emit events on a shared channel; the
// manager never touches persistence.
type Manager struct {
	mu       sync.Mutex
	running  map[uuid.UUID]*countdown
	events   chan Event
	interval time.Duration
}

type countdown struct {
	stop     chan struct{}
	stopOnce sync.Once
}

func (c *countdown) halt() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func NewManager() *Manager {
	return NewManagerWithInterval(time.Second)
}

func NewManagerWithInterval(interval time.Duration) *Manager {
	return &Manager{
		running:  make(map[uuid.UUID]*countdown),
		events:   make(chan Event, 64),
		interval: interval,
	}
}

func (m *Manager) Events() <-chan Event {
	return m.events
}

// Start begins a countdown for the timer id. A countdown already running
// for the same id is stopped first, so only one decrement stream exists
// per id. A non-positive remaining completes immediately.
func (m *Manager) Start(timerID uuid.UUID, remaining int) {
	m.mu.Lock()
	if prev, ok := m.running[timerID]; ok {
		prev.halt()
	}
	c := &countdown{stop: make(chan struct{})}
	m.running[timerID] = c
	m.mu.Unlock()

	go m.run(timerID, remaining, c)
}

// Stop cancels the countdown for the timer id. Stopping an id with no
// running countdown is a no-op.
func (m *Manager) Stop(timerID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.running[timerID]; ok {
		c.halt()
		delete(m.running, timerID)
	}
}

// Running reports whether a countdown is active for the timer id.
func (m *Manager) Running(timerID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.running[timerID]
	return ok
}

func (m *Manager) run(timerID uuid.UUID, remaining int, c *countdown) {
	defer m.finish(timerID, c)

	if remaining <= 0 {
		m.emit(Event{TimerID: timerID, Remaining: 0, Completed: true}, c)
		return
	}

	tick := time.NewTicker(m.interval)
	defer tick.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-tick.C:
			remaining--
			if remaining <= 0 {
				m.emit(Event{TimerID: timerID, Remaining: 0, Completed: true}, c)
				return
			}
			m.emit(Event{TimerID: timerID, Remaining: remaining}, c)
		}
	}
}

func (m *Manager) emit(ev Event, c *countdown) {
	select {
	case m.events <- ev:
	case <-c.stop:
	}
}

func (m *Manager) finish(timerID uuid.UUID, c *countdown) {
	c.halt()
	m.mu.Lock()
	if m.running[timerID] == c {
		delete(m.running, timerID)
	}
	m.mu.Unlock()
}
