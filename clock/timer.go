// Package clock provides the frame-delta driven timers that schedule snake
// moves and food spawns, plus the time sources frontends derive deltas from
package clock

import "time"

// Mode selects whether a timer stops after its first firing
type Mode uint8

const (
	Once Mode = iota
	Repeating
)

// Timer accumulates elapsed time against a fixed period
// It is driven entirely by the deltas passed to Tick
type Timer struct {
	period   time.Duration
	mode     Mode
	elapsed  time.Duration
	paused   bool
	finished bool
}

// NewTimer creates a running timer; period must be positive
func NewTimer(period time.Duration, mode Mode) *Timer {
	if period <= 0 {
		panic("clock: non-positive timer period")
	}
	return &Timer{period: period, mode: mode}
}

// Tick advances the timer by dt and reports whether it fired during this call
// A repeating timer keeps the overflow modulo the period and fires at most once
// per call, so a long frame never yields more than one move
func (t *Timer) Tick(dt time.Duration) bool {
	if t.paused || dt <= 0 {
		return false
	}
	if t.mode == Once && t.finished {
		return false
	}

	t.elapsed += dt
	if t.elapsed < t.period {
		return false
	}

	switch t.mode {
	case Repeating:
		t.elapsed %= t.period
	default:
		t.elapsed = t.period
		t.finished = true
	}
	return true
}

// Pause freezes the accumulator
func (t *Timer) Pause() {
	t.paused = true
}

// Resume continues accumulating from where Pause left off
func (t *Timer) Resume() {
	t.paused = false
}

// Paused reports the pause flag
func (t *Timer) Paused() bool {
	return t.paused
}

// Finished reports whether a Once timer has fired and not been reset
func (t *Timer) Finished() bool {
	return t.finished
}

// Reset rewinds elapsed time and clears the finished flag; pause state is kept
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
}

// Elapsed returns accumulated time in the current period
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Period returns the configured period
func (t *Timer) Period() time.Duration {
	return t.period
}

// Remaining returns time left until the next firing
func (t *Timer) Remaining() time.Duration {
	if t.finished {
		return 0
	}
	return t.period - t.elapsed
}
