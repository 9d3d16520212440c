package config

import (
	"fmt"
	"strings"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// Valid reports whether p names a known preset. The empty preset is valid
// and means the configured speed curve is used as-is.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}

// Description is the one-line menu text for a preset.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Slow start, gentle speed-up"
	case DifficultyNormal:
		return "200ms ticks, 5ms faster per food"
	case DifficultyHard:
		return "Fast start, low speed floor"
	case DifficultyFixed:
		return "Constant speed, no progression"
	default:
		return ""
	}
}

// ParseDifficulty converts a flag value into a preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" || !p.Valid() {
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed): %w", s, ErrInvalidConfig)
	}
	return p, nil
}

// ApplySnakePreset modifies the speed curve based on a difficulty preset.
// Normal keeps whatever the loaded configuration says.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	cfg.Difficulty = preset
	switch preset {
	case DifficultyEasy:
		cfg.Speed.InitialMS = 250
		cfg.Speed.StepMS = 4
		cfg.Speed.MinMS = 150
	case DifficultyHard:
		cfg.Speed.InitialMS = 150
		cfg.Speed.StepMS = 5
		cfg.Speed.MinMS = 60
	case DifficultyFixed:
		cfg.Speed.StepMS = 0
		cfg.Speed.MinMS = min(cfg.Speed.MinMS, cfg.Speed.InitialMS)
	}
}

// SpeedLevel returns how far the interval has progressed from the initial
// value towards the floor, from 0.0 to 1.0.
func SpeedLevel(initial, floor, current time.Duration) float64 {
	if initial <= floor {
		return 0
	}
	return clampF(float64(initial-current)/float64(initial-floor), 0.0, 1.0)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
