// Package config loads game settings from defaults, a TOML file and the
// environment
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/snake/audio"
	"github.com/lixenwraith/snake/food"
	"github.com/lixenwraith/snake/grid"
	"github.com/lixenwraith/snake/snake"
)

// Duration decodes TOML strings such as "150ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type PlayfieldConfig struct {
	Width    int `toml:"width"`
	Height   int `toml:"height"`
	CellSize int `toml:"cell_size"`
}

type TimingConfig struct {
	MoveInterval Duration `toml:"move_interval"`
	FoodDelay    Duration `toml:"food_delay"`
}

type FoodConfig struct {
	Policy      string `toml:"policy"`
	RetryBudget int    `toml:"retry_budget"`
	MaxItems    int    `toml:"max_items"`
	Seed        uint64 `toml:"seed"` // 0 = time based
}

type RulesConfig struct {
	FailState bool `toml:"fail_state"`
}

type AudioConfig struct {
	Enabled    bool `toml:"enabled"`
	Volume     int  `toml:"volume"` // 0-100
	SampleRate int  `toml:"sample_rate"`
}

type FSMConfig struct {
	Path string `toml:"path"`
}

// Config is the full settings tree
type Config struct {
	Playfield PlayfieldConfig `toml:"playfield"`
	Timing    TimingConfig    `toml:"timing"`
	Food      FoodConfig      `toml:"food"`
	Rules     RulesConfig     `toml:"rules"`
	Audio     AudioConfig     `toml:"audio"`
	FSM       FSMConfig       `toml:"fsm"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Playfield: PlayfieldConfig{Width: 900, Height: 600, CellSize: 30},
		Timing: TimingConfig{
			MoveInterval: Duration{150 * time.Millisecond},
			FoodDelay:    Duration{time.Second},
		},
		Food: FoodConfig{
			Policy:      "single",
			RetryBudget: food.DefaultRetryBudget,
			MaxItems:    5,
		},
		Audio: AudioConfig{Enabled: true, Volume: 80, SampleRate: 44100},
	}
}

// Load returns defaults overlaid with the TOML file at path, if any
// Unknown keys are rejected
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate reports every invalid field
func (c *Config) Validate() error {
	var errs []error
	if c.Playfield.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("playfield.cell_size must be positive, got %d", c.Playfield.CellSize))
	} else {
		if c.Playfield.Width < c.Playfield.CellSize {
			errs = append(errs, fmt.Errorf("playfield.width %d is smaller than one cell", c.Playfield.Width))
		}
		if c.Playfield.Height < c.Playfield.CellSize {
			errs = append(errs, fmt.Errorf("playfield.height %d is smaller than one cell", c.Playfield.Height))
		}
		if err := snake.CheckLayout(snake.DefaultLayout, snake.DefaultFacing, c.Bounds()); err != nil {
			errs = append(errs, fmt.Errorf("playfield %dx%d too small for the start layout: %w", c.Playfield.Width, c.Playfield.Height, err))
		}
	}
	if c.Timing.MoveInterval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("timing.move_interval must be positive, got %s", c.Timing.MoveInterval))
	}
	if c.Timing.FoodDelay.Duration <= 0 {
		errs = append(errs, fmt.Errorf("timing.food_delay must be positive, got %s", c.Timing.FoodDelay))
	}
	if _, err := food.ParsePolicy(c.Food.Policy); err != nil {
		errs = append(errs, fmt.Errorf("food.policy: %w", err))
	}
	if c.Food.RetryBudget <= 0 {
		errs = append(errs, fmt.Errorf("food.retry_budget must be positive, got %d", c.Food.RetryBudget))
	}
	if c.Food.MaxItems <= 0 {
		errs = append(errs, fmt.Errorf("food.max_items must be positive, got %d", c.Food.MaxItems))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		errs = append(errs, fmt.Errorf("audio.volume must be 0-100, got %d", c.Audio.Volume))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	return errors.Join(errs...)
}

// Bounds derives the legal cell range from the playfield
func (c *Config) Bounds() grid.Bounds {
	p := c.Playfield
	return grid.BoundsFor(float32(p.Width), float32(p.Height), float32(p.CellSize))
}

// FoodPolicy returns the parsed policy; call Validate first
func (c *Config) FoodPolicy() food.Policy {
	p, _ := food.ParsePolicy(c.Food.Policy)
	return p
}

// AudioSettings converts to the audio package form
func (c *Config) AudioSettings() audio.Config {
	return audio.Config{
		Enabled:    c.Audio.Enabled,
		Volume:     audio.ClampVolume(float64(c.Audio.Volume) / 100.0),
		SampleRate: c.Audio.SampleRate,
	}
}
