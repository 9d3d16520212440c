// Package config provides YAML-based configuration loading and difficulty
// presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/neon-snake/internal/effects"
	"github.com/vovakirdan/neon-snake/internal/snake"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Difficulty DifficultyPreset `yaml:"difficulty"`
	Grid       GridConfig       `yaml:"grid"`
	Speed      SpeedConfig      `yaml:"speed"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Effects    EffectsConfig    `yaml:"effects"`
	Input      InputConfig      `yaml:"input"`
}

// GridConfig sizes the board. The number of cells per side is
// Surface / CellSize; effects are positioned in surface units.
type GridConfig struct {
	Surface  int `yaml:"surface"`
	CellSize int `yaml:"cell_size"`
}

// SpeedConfig defines the tick interval curve in milliseconds.
type SpeedConfig struct {
	InitialMS int `yaml:"initial_ms"`
	StepMS    int `yaml:"step_ms"` // Reduction per food
	MinMS     int `yaml:"min_ms"`
}

// ScoringConfig defines rewards.
type ScoringConfig struct {
	FoodReward int `yaml:"food_reward"`
}

// EffectsConfig tunes particle bursts and score popups.
type EffectsConfig struct {
	BurstSize     int     `yaml:"burst_size"`
	ParticleLife  int     `yaml:"particle_life"`
	ParticleSpeed float64 `yaml:"particle_speed"`
	HueBase       float64 `yaml:"hue_base"`
	HueRange      float64 `yaml:"hue_range"`
	PopupLife     int     `yaml:"popup_life"`
	PopupDrift    float64 `yaml:"popup_drift"`
}

// InputConfig tunes pointer input.
type InputConfig struct {
	SwipeThreshold float64 `yaml:"swipe_threshold"` // In board cells
}

// Extent returns the number of cells per side.
func (c SnakeConfig) Extent() int {
	return snake.GridForSurface(c.Grid.Surface, c.Grid.CellSize).Extent()
}

// Engine converts the configuration into engine rules.
func (c SnakeConfig) Engine() snake.Config {
	return snake.Config{
		Extent:          c.Extent(),
		InitialInterval: time.Duration(c.Speed.InitialMS) * time.Millisecond,
		IntervalStep:    time.Duration(c.Speed.StepMS) * time.Millisecond,
		MinInterval:     time.Duration(c.Speed.MinMS) * time.Millisecond,
		FoodReward:      c.Scoring.FoodReward,
	}
}

// EffectsTuning converts the configuration into effects tuning.
func (c SnakeConfig) EffectsTuning() effects.Config {
	return effects.Config{
		BurstSize:     c.Effects.BurstSize,
		ParticleLife:  c.Effects.ParticleLife,
		ParticleSpeed: c.Effects.ParticleSpeed,
		HueBase:       c.Effects.HueBase,
		HueRange:      c.Effects.HueRange,
		PopupLife:     c.Effects.PopupLife,
		PopupDrift:    c.Effects.PopupDrift,
	}
}

// Validate checks the whole configuration.
func (c SnakeConfig) Validate() error {
	if c.Grid.CellSize <= 0 {
		return fmt.Errorf("config: cell_size must be positive: %w", ErrInvalidConfig)
	}
	if c.Input.SwipeThreshold < 0 {
		return fmt.Errorf("config: swipe_threshold must not be negative: %w", ErrInvalidConfig)
	}
	if !c.Difficulty.Valid() {
		return fmt.Errorf("config: unknown difficulty %q: %w", c.Difficulty, ErrInvalidConfig)
	}
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("config: %v: %w", err, ErrInvalidConfig)
	}
	if err := c.EffectsTuning().Validate(); err != nil {
		return fmt.Errorf("config: %v: %w", err, ErrInvalidConfig)
	}
	return nil
}
