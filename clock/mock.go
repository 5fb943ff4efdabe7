package clock

import (
	"sync"
	"time"
)

// Mock provides a controllable Clock for testing
// Sleep advances mocked time by the requested duration plus a configurable overshoot
type Mock struct {
	mu          sync.RWMutex
	currentTime time.Time
	overshoot   time.Duration
	sleeps      []time.Duration
}

// NewMock creates a new mock clock at the given start time
func NewMock(startTime time.Time) *Mock {
	return &Mock{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current time for the mock
func (m *Mock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// SetOvershoot sets how far every positive Sleep overruns its request
func (m *Mock) SetOvershoot(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overshoot = d
}

// Sleep records the request and advances time by d plus overshoot; d <= 0 only records
func (m *Mock) Sleep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sleeps = append(m.sleeps, d)
	if d <= 0 {
		return
	}
	m.currentTime = m.currentTime.Add(d + m.overshoot)
}

// Sleeps returns a copy of every requested sleep duration in call order
func (m *Mock) Sleeps() []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]time.Duration, len(m.sleeps))
	copy(out, m.sleeps)
	return out
}
