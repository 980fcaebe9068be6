// Package clock supplies creation timestamps.
package clock

import (
	"sync"
	"time"
)

// Precision is the finest resolution every supported store keeps. Spanner
// and Postgres store microseconds, so timestamps are truncated to it before
// they are persisted and a read returns what was written.
const Precision = time.Microsecond

// Clock is an interface for time operations to enable testability.
type Clock interface {
	Now() time.Time
}

// RealClock reads system time in UTC at storage precision.
type RealClock struct{}

// NewRealClock creates a new RealClock.
func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(Precision)
}

// MockClock is a test clock. It is safe for concurrent use.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
}

// NewMockClock creates a new MockClock starting at the given time.
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{current: startTime}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Set sets the mock current time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.current = t
	m.mu.Unlock()
}

// Advance moves the mock clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.current = m.current.Add(d)
	m.mu.Unlock()
}
