package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
)

// TestSoundManagerGracefulDegradation verifies playback is safe without a speaker
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(DefaultConfig())

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	for s := SoundUp; s < soundCount; s++ {
		sm.Play(s)
	}
	sm.Play(Sound(200))
	sm.Cleanup()

	if sm.Initialized() {
		t.Error("Expected uninitialized manager")
	}
}

// TestSoundManagerInitialization may fail on machines without an audio device
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(DefaultConfig())

	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should be a no-op, got %v", err)
	}
	sm.Play(SoundEat)
	sm.Cleanup()
}

func TestDisabledManagerNeverOpensSpeaker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	sm := NewSoundManager(cfg)

	if err := sm.Initialize(); err != nil {
		t.Fatalf("Disabled initialize should not fail: %v", err)
	}
	if sm.Initialized() {
		t.Error("Disabled manager reported initialized")
	}
}

func drain(s beep.Streamer) (count int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		count += n
		if !ok || n == 0 {
			return count, peak
		}
	}
}

func TestCueLengths(t *testing.T) {
	sm := NewSoundManager(DefaultConfig())

	for s := SoundUp; s < soundCount; s++ {
		st, err := sm.build(s)
		if err != nil {
			t.Fatalf("%s: build failed: %v", s, err)
		}

		want := 0
		for _, n := range cues[s] {
			want += sm.sampleRate.N(n.dur)
		}
		got, peak := drain(st)
		if got != want {
			t.Errorf("%s: expected %d samples, got %d", s, want, got)
		}
		if peak == 0 || peak > 1 {
			t.Errorf("%s: peak amplitude %f out of range", s, peak)
		}
		t.Logf("✓ %s: %d samples", s, got)
	}
}

func TestMutedVolumeIsSilent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Volume = 0
	sm := NewSoundManager(cfg)

	st, err := sm.build(SoundDie)
	if err != nil {
		t.Fatal(err)
	}
	if _, peak := drain(st); peak != 0 {
		t.Errorf("Expected silence, peak %f", peak)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var sink Sink = &r

	sink.Play(SoundEat)
	sink.Play(SoundUp)
	sink.Play(SoundEat)

	if r.Count(SoundEat) != 2 {
		t.Errorf("Expected 2 eat cues, got %d", r.Count(SoundEat))
	}
	got := r.Sounds()
	if len(got) != 3 || got[1] != SoundUp {
		t.Errorf("Unexpected sequence %v", got)
	}
	r.Reset()
	if len(r.Sounds()) != 0 {
		t.Error("Reset kept cues")
	}
}

func TestSoundNames(t *testing.T) {
	want := map[Sound]string{
		SoundUp: "up", SoundDown: "down", SoundLeft: "left",
		SoundRight: "right", SoundEat: "eat", SoundDie: "die",
	}
	for s, name := range want {
		if s.String() != name {
			t.Errorf("Expected %q, got %q", name, s.String())
		}
	}
	if Sound(99).String() != "unknown" {
		t.Error("Expected unknown for out of range")
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {3, 1},
	}
	for _, tt := range tests {
		if got := ClampVolume(tt.in); got != tt.want {
			t.Errorf("ClampVolume(%v) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}
