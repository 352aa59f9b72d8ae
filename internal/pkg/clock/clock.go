// Package clock supplies the current time to use cases. Every reading is UTC
// and truncated to Precision so that a value written to Spanner reads back
// equal to the one the domain saw.
package clock

import (
	"sync"
	"time"
)

// Precision is the finest timestamp resolution Spanner keeps.
const Precision = time.Microsecond

type Clock interface {
	Now() time.Time
}

// Normalize converts t to the form every Clock returns.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(Precision)
}

// RealClock reads the system time.
type RealClock struct{}

func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time {
	return Normalize(time.Now())
}

// MockClock is a settable clock for tests. It is safe to read from handler
// goroutines while the test moves it.
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{current: Normalize(start)}
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Normalize(t)
}

// Advance moves the clock forward by d (backwards when d is negative).
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Normalize(m.current.Add(d))
}
