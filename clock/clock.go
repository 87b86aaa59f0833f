// Package clock provides wall-clock access and frame pacing for the control loop.
package clock

import (
	"sync"
	"time"
)

// Clock is the time source used by controllers
// Sleep is the only blocking call the control loop makes
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Real provides the system time with monotonic clock readings
type Real struct{}

// NewReal creates a new monotonic time provider
func NewReal() Real {
	return Real{}
}

// Now returns the current time with monotonic clock reading
func (Real) Now() time.Time {
	return time.Now()
}

// Sleep blocks the calling goroutine for d
func (Real) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Mock provides a controllable time source for testing
// Sleep advances the mocked time instead of blocking
type Mock struct {
	mu          sync.RWMutex
	currentTime time.Time
	slept       time.Duration
}

// NewMock creates a new mock clock with the given start time
func NewMock(start time.Time) *Mock {
	return &Mock{currentTime: start}
}

// Now returns the current mocked time
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Set sets the current time for the mock
func (m *Mock) Set(t time.Time) {
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

// Sleep advances the mocked time by d and records the total
func (m *Mock) Sleep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
	m.slept += d
}

// Slept returns the cumulative duration passed to Sleep
func (m *Mock) Slept() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.slept
}
