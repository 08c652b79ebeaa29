package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/snake/food"
	"github.com/lixenwraith/snake/grid"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snake.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Defaults should validate: %v", err)
	}
	if cfg.Bounds() != (grid.Bounds{X: 15, Y: 10}) {
		t.Errorf("Expected bounds 15x10, got %+v", cfg.Bounds())
	}
	if cfg.Timing.MoveInterval.Duration != 150*time.Millisecond {
		t.Errorf("Expected 150ms, got %s", cfg.Timing.MoveInterval)
	}
	if cfg.Timing.FoodDelay.Duration != time.Second {
		t.Errorf("Expected 1s, got %s", cfg.Timing.FoodDelay)
	}
	if cfg.FoodPolicy() != food.Single {
		t.Errorf("Expected single policy, got %s", cfg.FoodPolicy())
	}
	a := cfg.AudioSettings()
	if !a.Enabled || a.Volume != 0.8 || a.SampleRate != 44100 {
		t.Errorf("Unexpected audio settings %+v", a)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[playfield]
width = 300
height = 240
cell_size = 20

[timing]
move_interval = "80ms"
food_delay = "2s"

[food]
policy = "periodic"
max_items = 3
seed = 1234

[rules]
fail_state = true

[audio]
enabled = false

[fsm]
path = "graph.toml"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.Bounds() != (grid.Bounds{X: 7, Y: 6}) {
		t.Errorf("Expected bounds 7x6, got %+v", cfg.Bounds())
	}
	if cfg.Timing.MoveInterval.Duration != 80*time.Millisecond || cfg.Timing.FoodDelay.Duration != 2*time.Second {
		t.Errorf("Unexpected timing %+v", cfg.Timing)
	}
	if cfg.FoodPolicy() != food.Periodic || cfg.Food.MaxItems != 3 || cfg.Food.Seed != 1234 {
		t.Errorf("Unexpected food %+v", cfg.Food)
	}
	// Unset keys keep defaults
	if cfg.Food.RetryBudget != food.DefaultRetryBudget || cfg.Audio.Volume != 80 {
		t.Errorf("Defaults lost: %+v %+v", cfg.Food, cfg.Audio)
	}
	if !cfg.Rules.FailState || cfg.Audio.Enabled || cfg.FSM.Path != "graph.toml" {
		t.Errorf("Unexpected rules/audio/fsm %+v %+v %+v", cfg.Rules, cfg.Audio, cfg.FSM)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"unknown key", "[food]\nflavour = \"apple\"", "unknown keys"},
		{"bad duration", "[timing]\nmove_interval = \"soon\"", "invalid duration"},
		{"syntax", "[playfield\nwidth = 1", "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := Default()
	cfg.Playfield.CellSize = 0
	cfg.Timing.MoveInterval.Duration = 0
	cfg.Timing.FoodDelay.Duration = -time.Second
	cfg.Food.Policy = "burst"
	cfg.Food.RetryBudget = 0
	cfg.Food.MaxItems = 0
	cfg.Audio.Volume = 101
	cfg.Audio.SampleRate = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, field := range []string{
		"cell_size", "move_interval", "food_delay", "food.policy",
		"retry_budget", "max_items", "audio.volume", "sample_rate",
	} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Expected %s in %v", field, err)
		}
	}

	cfg = Default()
	cfg.Playfield.Width = 10
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "width") {
		t.Errorf("Expected width error, got %v", err)
	}

	// 180/2/30 = 3 cells each way; the start body sits at x=-5..-7
	cfg = Default()
	cfg.Playfield.Width, cfg.Playfield.Height = 180, 180
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "start layout") {
		t.Errorf("Expected start layout error, got %v", err)
	}

	// Smallest width whose bounds hold the body and the first move: X=7
	cfg = Default()
	cfg.Playfield.Width = 14 * 30
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected 420 wide playfield to pass, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAudioEnabled: "false",
		EnvMasterVolume: "150",
		EnvMoveInterval: "100ms",
		EnvFoodPolicy:   "periodic",
		EnvSeed:         "42",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.Audio.Enabled {
		t.Error("Expected audio disabled")
	}
	if cfg.Audio.Volume != 100 {
		t.Errorf("Expected volume clamped to 100, got %d", cfg.Audio.Volume)
	}
	if cfg.Timing.MoveInterval.Duration != 100*time.Millisecond {
		t.Errorf("Expected 100ms, got %s", cfg.Timing.MoveInterval)
	}
	if cfg.Food.Policy != "periodic" || cfg.Food.Seed != 42 {
		t.Errorf("Unexpected food %+v", cfg.Food)
	}
}

func TestApplyEnvIgnoresGarbage(t *testing.T) {
	env := map[string]string{
		EnvAudioEnabled: "maybe",
		EnvMasterVolume: "loud",
		EnvMoveInterval: "-5ms",
		EnvSeed:         "-1",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	want := Default()
	if cfg.Audio != want.Audio || cfg.Timing != want.Timing || cfg.Food != want.Food {
		t.Errorf("Garbage env changed config: %+v", cfg)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatal(err)
	}
	if d.Duration != 90*time.Second {
		t.Errorf("Expected 90s, got %s", d.Duration)
	}
	out, _ := d.MarshalText()
	if string(out) != "1m30s" {
		t.Errorf("Expected 1m30s, got %s", out)
	}
}
