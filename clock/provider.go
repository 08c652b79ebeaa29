package clock

import (
	"sync"
	"time"
)

// TimeProvider abstracts the wall clock for frame loops
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads time.Now, which carries a monotonic reading
type MonotonicTimeProvider struct{}

// Now returns the current time
func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a mock starting at startTime
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance moves the mocked time forward
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// MaxFrameDelta caps a single frame delta so a stalled process does not
// dump a burst of accumulated time into the timers
const MaxFrameDelta = 250 * time.Millisecond

// FrameClock turns successive provider readings into frame deltas
type FrameClock struct {
	provider TimeProvider
	last     time.Time
}

// NewFrameClock starts measuring from the provider's current time
func NewFrameClock(provider TimeProvider) *FrameClock {
	if provider == nil {
		provider = MonotonicTimeProvider{}
	}
	return &FrameClock{provider: provider, last: provider.Now()}
}

// Delta returns time since the previous call, clamped to [0, MaxFrameDelta]
func (c *FrameClock) Delta() time.Duration {
	now := c.provider.Now()
	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		return MaxFrameDelta
	}
	return dt
}
