package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// note is one tone in a cue
type note struct {
	freq float64
	dur  time.Duration
}

// cues maps each sound to its tone sequence; a zero frequency is noise
var cues = [soundCount][]note{
	SoundUp:    {{freq: 660, dur: 45 * time.Millisecond}},
	SoundDown:  {{freq: 440, dur: 45 * time.Millisecond}},
	SoundLeft:  {{freq: 520, dur: 45 * time.Millisecond}},
	SoundRight: {{freq: 580, dur: 45 * time.Millisecond}},
	SoundEat: {
		{freq: 880, dur: 50 * time.Millisecond},
		{freq: 1320, dur: 70 * time.Millisecond},
	},
	SoundDie: {
		{freq: 330, dur: 90 * time.Millisecond},
		{freq: 220, dur: 90 * time.Millisecond},
		{freq: 0, dur: 250 * time.Millisecond},
	},
}

// EnvelopeStreamer applies a linear attack and release to a finite streamer
type EnvelopeStreamer struct {
	src     beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

// NewEnvelope wraps src, which must yield exactly total samples
func NewEnvelope(sr beep.SampleRate, src beep.Streamer, total int) *EnvelopeStreamer {
	edge := sr.N(5 * time.Millisecond)
	if edge*2 > total {
		edge = total / 2
	}
	return &EnvelopeStreamer{src: src, total: total, attack: edge, release: edge}
}

func (e *EnvelopeStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.src.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		switch {
		case e.pos < e.attack:
			gain = float64(e.pos) / float64(e.attack)
		case e.pos >= e.total-e.release:
			gain = float64(e.total-e.pos) / float64(e.release)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *EnvelopeStreamer) Err() error {
	return e.src.Err()
}

// NoiseGenerator produces exponentially decaying white noise
type NoiseGenerator struct {
	sr    beep.SampleRate
	pos   int
	decay float64
	rng   *rand.Rand
}

// NewNoiseGenerator creates a noise burst that halves roughly every 60ms
func NewNoiseGenerator(sr beep.SampleRate) *NoiseGenerator {
	return &NoiseGenerator{
		sr:    sr,
		decay: math.Ln2 / (0.06 * float64(sr)),
		rng:   rand.New(rand.NewSource(1)),
	}
}

func (g *NoiseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := (g.rng.Float64()*2 - 1) * 0.4 * math.Exp(-g.decay*float64(g.pos))
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseGenerator) Err() error {
	return nil
}
