package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration: a 400 unit
// surface of 20 unit cells, 200ms ticks shrinking by 5ms per food to 100ms.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Difficulty: DifficultyNormal,
		Grid: GridConfig{
			Surface:  400,
			CellSize: 20,
		},
		Speed: SpeedConfig{
			InitialMS: 200,
			StepMS:    5,
			MinMS:     100,
		},
		Scoring: ScoringConfig{
			FoodReward: 10,
		},
		Effects: EffectsConfig{
			BurstSize:     8,
			ParticleLife:  30,
			ParticleSpeed: 8,
			HueBase:       170,
			HueRange:      60,
			PopupLife:     60,
			PopupDrift:    2,
		},
		Input: InputConfig{
			SwipeThreshold: 1.5, // 30 surface units
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
