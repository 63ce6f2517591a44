// Package config provides YAML-based configuration loading, validation and
// difficulty presets for the catcher.
package config

// Config contains every tunable constant of a catcher session.
// Catalog probabilities and physics constants are configuration, not contract.
type Config struct {
	Catalog    []ItemKindConfig `yaml:"catalog"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Field      FieldConfig      `yaml:"field"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Particles  ParticleConfig   `yaml:"particles"`
	Stabilizer StabilizerConfig `yaml:"stabilizer"`
	Input      InputConfig      `yaml:"input"`
	Session    SessionConfig    `yaml:"session"`
}

// ItemKindConfig describes one falling item kind and its spawn weight.
type ItemKindConfig struct {
	ID        string  `yaml:"id"`
	Glyph     string  `yaml:"glyph"`
	Color     string  `yaml:"color"`
	Score     int     `yaml:"score"`
	BaseSpeed float64 `yaml:"base_speed"` // Field units per tick before the speed multiplier
	Weight    float64 `yaml:"weight"`     // Relative spawn probability
	Hazard    bool    `yaml:"hazard"`
	Special   bool    `yaml:"special"`
}

// SpawnConfig defines the spawn cadence and its difficulty ramp (in ticks).
type SpawnConfig struct {
	InitialInterval float64 `yaml:"initial_interval"`
	Decrement       float64 `yaml:"decrement"`        // Interval reduction per spawn
	MinInterval     float64 `yaml:"min_interval"`     // Floor for the interval
	MultiplierScale float64 `yaml:"multiplier_scale"` // Cadence divisor is max(1, speed * scale)
}

// FieldConfig defines the play field geometry in field units (y grows down).
type FieldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	SpawnY        float64 `yaml:"spawn_y"`
	DespawnY      float64 `yaml:"despawn_y"`
	CaptureTop    float64 `yaml:"capture_top"`    // Exclusive
	CaptureBottom float64 `yaml:"capture_bottom"` // Exclusive
}

// ScoringConfig defines the special-item speed ramp.
type ScoringConfig struct {
	SpecialSpeedFactor float64 `yaml:"special_speed_factor"`
	MaxSpeedMultiplier float64 `yaml:"max_speed_multiplier"`
}

// ParticleConfig defines the burst emitted when a special item is caught.
type ParticleConfig struct {
	Count   int     `yaml:"count"`
	Glyph   string  `yaml:"glyph"`
	Color   string  `yaml:"color"`
	SpreadX float64 `yaml:"spread_x"` // Horizontal velocity range, symmetric around zero
	Lift    float64 `yaml:"lift"`     // Random upward velocity range
	Kick    float64 `yaml:"kick"`     // Constant extra upward velocity
	Gravity float64 `yaml:"gravity"`
	Life    int     `yaml:"life"` // Ticks
}

// StabilizerConfig defines the classifier smoothing window.
type StabilizerConfig struct {
	Window    int     `yaml:"window"`
	Threshold float64 `yaml:"threshold"`
}

// InputConfig defines keyboard priority and classifier label mapping.
type InputConfig struct {
	OverrideTicks int         `yaml:"override_ticks"`
	Labels        LabelConfig `yaml:"labels"`
}

// LabelConfig maps classifier class names to lanes.
type LabelConfig struct {
	Left   string `yaml:"left"`
	Center string `yaml:"center"`
	Right  string `yaml:"right"`
}

// SessionConfig defines the session countdown.
type SessionConfig struct {
	DurationSeconds int `yaml:"duration_seconds"`
}
