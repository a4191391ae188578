package gameloop

import (
	"sync"
	"time"
)

// ManualTime is a TimeSource that only moves when told to. Use it for tests,
// replays and headless simulations that must not depend on the wall clock.
type ManualTime struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualTime creates a ManualTime positioned at start.
func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{now: start}
}

// Now returns the current manual instant.
func (m *ManualTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set moves the manual instant to t, which may be earlier than the current one.
func (m *ManualTime) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the manual instant forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
