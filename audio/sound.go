// Package audio plays the short cues emitted by the game session
package audio

import (
	"sync"

	"github.com/lixenwraith/snake/grid"
)

// Sound identifies a cue
type Sound uint8

const (
	SoundUp Sound = iota
	SoundDown
	SoundLeft
	SoundRight
	SoundEat
	SoundDie
	soundCount
)

var soundNames = [soundCount]string{"up", "down", "left", "right", "eat", "die"}

func (s Sound) String() string {
	if s < soundCount {
		return soundNames[s]
	}
	return "unknown"
}

// Sink receives cues; Play must not block the frame loop
type Sink interface {
	Play(s Sound)
}

// Nop discards every cue
type Nop struct{}

func (Nop) Play(Sound) {}

// Recorder keeps every cue it receives, for tests and replays
type Recorder struct {
	mu     sync.Mutex
	sounds []Sound
}

// Play records s
func (r *Recorder) Play(s Sound) {
	r.mu.Lock()
	r.sounds = append(r.sounds, s)
	r.mu.Unlock()
}

// Sounds returns a copy of the recorded cues in order
func (r *Recorder) Sounds() []Sound {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sound, len(r.sounds))
	copy(out, r.sounds)
	return out
}

// Count returns how many times s was played
func (r *Recorder) Count(s Sound) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, v := range r.sounds {
		if v == s {
			n++
		}
	}
	return n
}

// Reset forgets recorded cues
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.sounds = r.sounds[:0]
	r.mu.Unlock()
}

// ParseSound resolves a cue name such as "eat"
func ParseSound(name string) (Sound, bool) {
	for i, n := range soundNames {
		if n == name {
			return Sound(i), true
		}
	}
	return 0, false
}

// DirectionSound returns the cue for a heading change
func DirectionSound(d grid.Direction) Sound {
	switch d {
	case grid.Up:
		return SoundUp
	case grid.Down:
		return SoundDown
	case grid.Left:
		return SoundLeft
	default:
		return SoundRight
	}
}
