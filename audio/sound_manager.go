package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// SoundManager synthesizes cues and mixes them onto the speaker
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	sampleRate  beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a manager; nothing is played until Initialize succeeds
func NewSoundManager(cfg Config) *SoundManager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	cfg.Volume = ClampVolume(cfg.Volume)
	return &SoundManager{
		cfg:        cfg,
		sampleRate: beep.SampleRate(cfg.SampleRate),
		mixer:      &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(sm.sampleRate, sm.sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether the speaker is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play queues s on the mixer; a no-op before Initialize or when muted
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || s >= soundCount {
		return
	}

	streamer, err := sm.build(s)
	if err != nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// Cleanup silences the mixer
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// build renders the note sequence for s at the configured volume
func (sm *SoundManager) build(s Sound) (beep.Streamer, error) {
	notes := cues[s]
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		count := sm.sampleRate.N(n.dur)
		var src beep.Streamer
		if n.freq == 0 {
			src = NewNoiseGenerator(sm.sampleRate)
		} else {
			tone, err := generators.SineTone(sm.sampleRate, n.freq)
			if err != nil {
				return nil, fmt.Errorf("%s tone %.0fHz: %w", s, n.freq, err)
			}
			src = tone
		}
		parts = append(parts, NewEnvelope(sm.sampleRate, beep.Take(count, src), count))
	}
	return sm.volume(beep.Seq(parts...)), nil
}

func (sm *SoundManager) volume(s beep.Streamer) beep.Streamer {
	if sm.cfg.Volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(sm.cfg.Volume), Silent: false}
}
