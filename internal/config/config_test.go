package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/neon-snake/internal/snake"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultSnakeConfig()
	var embedded SnakeConfig
	if err := yaml.Unmarshal(DefaultYAML(), &embedded); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if embedded != cfg {
		t.Errorf("embedded defaults = %+v, expected %+v", embedded, cfg)
	}
}

func TestDefaultEngineRules(t *testing.T) {
	got := DefaultSnakeConfig().Engine()
	if got != snake.DefaultConfig() {
		t.Errorf("Engine() = %+v, expected %+v", got, snake.DefaultConfig())
	}
}

func TestLoadSnakeCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("grid:\n  surface: 300\nspeed:\n  initial_ms: 180\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() error = %v", err)
	}
	if cfg.Extent() != 15 {
		t.Errorf("Extent() = %d, expected 15", cfg.Extent())
	}
	if cfg.Speed.InitialMS != 180 || cfg.Speed.MinMS != 100 {
		t.Errorf("Speed = %+v, expected initial 180 with default floor", cfg.Speed)
	}
	if cfg.Scoring.FoodReward != 10 {
		t.Errorf("FoodReward = %d, expected default 10", cfg.Scoring.FoodReward)
	}
}

func TestLoadSnakeErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnake(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadSnake() with missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("grid: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(bad); err == nil {
		t.Error("LoadSnake() with malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("speed:\n  initial_ms: 50\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadSnake() with initial below floor error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SnakeConfig)
		wantErr bool
	}{
		{"defaults", func(*SnakeConfig) {}, false},
		{"zero cell size", func(c *SnakeConfig) { c.Grid.CellSize = 0 }, true},
		{"tiny board", func(c *SnakeConfig) { c.Grid.Surface = 60 }, true},
		{"zero floor", func(c *SnakeConfig) { c.Speed.MinMS = 0 }, true},
		{"negative reward", func(c *SnakeConfig) { c.Scoring.FoodReward = -1 }, true},
		{"zero popup life", func(c *SnakeConfig) { c.Effects.PopupLife = 0 }, true},
		{"negative swipe", func(c *SnakeConfig) { c.Input.SwipeThreshold = -1 }, true},
		{"unknown difficulty", func(c *SnakeConfig) { c.Difficulty = "insane" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplySnakePreset(t *testing.T) {
	for _, preset := range Presets {
		t.Run(string(preset), func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			ApplySnakePreset(&cfg, preset)
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s produces invalid config: %v", preset, err)
			}
			if cfg.Difficulty != preset {
				t.Errorf("Difficulty = %s, expected %s", cfg.Difficulty, preset)
			}
		})
	}

	cfg := DefaultSnakeConfig()
	ApplySnakePreset(&cfg, DifficultyFixed)
	if cfg.Speed.StepMS != 0 {
		t.Errorf("fixed preset StepMS = %d, expected 0", cfg.Speed.StepMS)
	}
	if cfg.Speed.InitialMS != 200 {
		t.Errorf("fixed preset InitialMS = %d, expected 200", cfg.Speed.InitialMS)
	}
}

func TestParseDifficulty(t *testing.T) {
	if p, err := ParseDifficulty(" Hard "); err != nil || p != DifficultyHard {
		t.Errorf("ParseDifficulty(Hard) = %q, %v", p, err)
	}
	if _, err := ParseDifficulty(""); err == nil {
		t.Error("ParseDifficulty(\"\") should fail")
	}
	if _, err := ParseDifficulty("insane"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseDifficulty(insane) error = %v, expected ErrInvalidConfig", err)
	}
}

func TestSpeedLevel(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		current  time.Duration
		expected float64
	}{
		{200 * ms, 0},
		{150 * ms, 0.5},
		{100 * ms, 1},
		{90 * ms, 1},
	}
	for _, tc := range tests {
		if got := SpeedLevel(200*ms, 100*ms, tc.current); got != tc.expected {
			t.Errorf("SpeedLevel(%v) = %v, expected %v", tc.current, got, tc.expected)
		}
	}
	if got := SpeedLevel(100*ms, 100*ms, 100*ms); got != 0 {
		t.Errorf("SpeedLevel with no range = %v, expected 0", got)
	}
}
