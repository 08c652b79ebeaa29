package config

import (
	"strconv"
	"time"
)

// Environment variable names
const (
	EnvAudioEnabled = "SNAKE_AUDIO_ENABLED"
	EnvMasterVolume = "SNAKE_MASTER_VOLUME"
	EnvMoveInterval = "SNAKE_MOVE_INTERVAL"
	EnvFoodPolicy   = "SNAKE_FOOD_POLICY"
	EnvSeed         = "SNAKE_SEED"
)

// ApplyEnv overlays environment values read through getenv, normally os.Getenv
// Unparsable values are ignored and the previous setting is kept
func (c *Config) ApplyEnv(getenv func(string) string) {
	if enabled := getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Audio.Enabled = val
		}
	}

	// 0-100, clamped
	if volume := getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.Audio.Volume = min(max(val, 0), 100)
		}
	}

	if interval := getenv(EnvMoveInterval); interval != "" {
		if val, err := time.ParseDuration(interval); err == nil && val > 0 {
			c.Timing.MoveInterval.Duration = val
		}
	}

	if policy := getenv(EnvFoodPolicy); policy != "" {
		c.Food.Policy = policy
	}

	if seed := getenv(EnvSeed); seed != "" {
		if val, err := strconv.ParseUint(seed, 10, 64); err == nil {
			c.Food.Seed = val
		}
	}
}
