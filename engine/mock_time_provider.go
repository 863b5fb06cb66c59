package engine

import (
	"sync"
	"time"
)

// MockTimeProvider provides a controllable time source for testing
// With a non-zero step every Now call advances the clock, giving a fixed frame dt
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
	step        time.Duration
}

// NewMockTimeProvider creates a mock time provider at startTime advancing step per reading
func NewMockTimeProvider(startTime time.Time, step time.Duration) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
		step:        step,
	}
}

// Now returns the current mocked time, then advances it by step
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.currentTime
	m.currentTime = m.currentTime.Add(m.step)
	return t
}

// Peek returns the current mocked time without advancing
func (m *MockTimeProvider) Peek() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
