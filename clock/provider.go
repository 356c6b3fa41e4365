package clock

import (
	"sync"
	"time"
)

// Provider is a source of wall time
type Provider interface {
	Now() time.Time
}

// SystemProvider reads the monotonic system clock
type SystemProvider struct{}

// Now returns time.Now
func (SystemProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually driven Provider for tests and headless runs
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider creates a mock starting at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// SetTime jumps to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the mock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
