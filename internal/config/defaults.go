package config

import (
	_ "embed"
)

//go:embed defaults/catcher.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// It mirrors defaults/catcher.yaml and is the last fallback of Load.
func DefaultConfig() Config {
	return Config{
		Catalog: []ItemKindConfig{
			{ID: "apple", Glyph: "🍎", Color: "red", Score: 100, BaseSpeed: 3, Weight: 0.45},
			{ID: "grape", Glyph: "🍇", Color: "magenta", Score: 300, BaseSpeed: 5, Weight: 0.25},
			{ID: "bomb", Glyph: "💣", Color: "gray", Score: 0, BaseSpeed: 4, Weight: 0.20, Hazard: true},
			{ID: "golden", Glyph: "🍏", Color: "bright_yellow", Score: 1000, BaseSpeed: 7, Weight: 0.10, Special: true},
		},
		Spawn: SpawnConfig{
			InitialInterval: 60,
			Decrement:       0.1,
			MinInterval:     20,
			MultiplierScale: 0.5,
		},
		Field: FieldConfig{
			Width:         600,
			Height:        600,
			SpawnY:        -50,
			DespawnY:      650,
			CaptureTop:    500,
			CaptureBottom: 580,
		},
		Scoring: ScoringConfig{
			SpecialSpeedFactor: 1.2,
			MaxSpeedMultiplier: 8.0,
		},
		Particles: ParticleConfig{
			Count:   15,
			Glyph:   "🪙",
			Color:   "yellow",
			SpreadX: 10,
			Lift:    10,
			Kick:    5,
			Gravity: 0.5,
			Life:    60,
		},
		Stabilizer: StabilizerConfig{
			Window:    3,
			Threshold: 0.7,
		},
		Input: InputConfig{
			OverrideTicks: 180, // 3 seconds at 60fps
			Labels: LabelConfig{
				Left:   "Left",
				Center: "Center",
				Right:  "Right",
			},
		},
		Session: SessionConfig{
			DurationSeconds: 60,
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
