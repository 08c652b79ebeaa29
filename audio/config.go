package audio

// Config controls the speaker output
type Config struct {
	Enabled    bool
	Volume     float64 // 0.0 to 1.0
	SampleRate int
}

// DefaultConfig returns enabled audio at 80% volume, 44.1kHz
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Volume:     0.8,
		SampleRate: 44100,
	}
}

// ClampVolume limits v to [0, 1]
func ClampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
