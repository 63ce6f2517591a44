package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown or empty strings yield ""
// which leaves the config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables the cadence ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Spawn.InitialInterval *= 1.25
		cfg.Spawn.MinInterval *= 1.5
		cfg.Scoring.SpecialSpeedFactor = 1.1
		cfg.Input.OverrideTicks = cfg.Input.OverrideTicks * 3 / 2
	case DifficultyHard:
		cfg.Spawn.InitialInterval *= 0.75
		cfg.Spawn.MinInterval *= 0.75
		cfg.Spawn.Decrement *= 2
		cfg.Scoring.SpecialSpeedFactor = 1.3
	case DifficultyFixed:
		cfg.Spawn.Decrement = 0
	}
}
