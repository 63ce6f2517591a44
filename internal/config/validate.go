package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate reports every field that would put the simulation into a
// degenerate state (zero cadence, shrinking multiplier, empty catalog...).
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if len(c.Catalog) == 0 {
		fail("catalog is empty")
	}
	seen := make(map[string]bool, len(c.Catalog))
	var total float64
	for i, k := range c.Catalog {
		if k.ID == "" {
			fail("catalog[%d]: id is required", i)
		} else if seen[k.ID] {
			fail("catalog[%d]: duplicate id %q", i, k.ID)
		}
		seen[k.ID] = true
		if !(k.BaseSpeed > 0) {
			fail("catalog[%d]: base_speed must be > 0, got %v", i, k.BaseSpeed)
		}
		if k.Weight < 0 || math.IsNaN(k.Weight) {
			fail("catalog[%d]: weight must be >= 0, got %v", i, k.Weight)
		}
		if k.Hazard && k.Special {
			fail("catalog[%d]: %q cannot be both hazard and special", i, k.ID)
		}
		total += k.Weight
	}
	if len(c.Catalog) > 0 && !(total > 0) {
		fail("catalog weights must sum to > 0")
	}

	if !(c.Spawn.MinInterval > 0) {
		fail("spawn.min_interval must be > 0, got %v", c.Spawn.MinInterval)
	}
	if c.Spawn.InitialInterval < c.Spawn.MinInterval {
		fail("spawn.initial_interval (%v) must be >= min_interval (%v)", c.Spawn.InitialInterval, c.Spawn.MinInterval)
	}
	if c.Spawn.Decrement < 0 {
		fail("spawn.decrement must be >= 0, got %v", c.Spawn.Decrement)
	}
	if !(c.Spawn.MultiplierScale > 0) {
		fail("spawn.multiplier_scale must be > 0, got %v", c.Spawn.MultiplierScale)
	}

	f := c.Field
	if !(f.Width > 0) || !(f.Height > 0) {
		fail("field size must be positive, got %vx%v", f.Width, f.Height)
	}
	if !(f.CaptureTop < f.CaptureBottom) {
		fail("field.capture_top (%v) must be < capture_bottom (%v)", f.CaptureTop, f.CaptureBottom)
	}
	if f.SpawnY >= f.CaptureTop {
		fail("field.spawn_y (%v) must be above capture_top (%v)", f.SpawnY, f.CaptureTop)
	}
	if f.DespawnY < f.CaptureBottom {
		fail("field.despawn_y (%v) must be >= capture_bottom (%v)", f.DespawnY, f.CaptureBottom)
	}

	if !(c.Scoring.SpecialSpeedFactor > 1) {
		fail("scoring.special_speed_factor must be > 1, got %v", c.Scoring.SpecialSpeedFactor)
	}
	if c.Scoring.MaxSpeedMultiplier < 1 {
		fail("scoring.max_speed_multiplier must be >= 1, got %v", c.Scoring.MaxSpeedMultiplier)
	}

	if c.Particles.Count < 0 {
		fail("particles.count must be >= 0, got %d", c.Particles.Count)
	}
	if c.Particles.Life <= 0 {
		fail("particles.life must be > 0, got %d", c.Particles.Life)
	}

	if c.Stabilizer.Window < 1 {
		fail("stabilizer.window must be >= 1, got %d", c.Stabilizer.Window)
	}
	if c.Stabilizer.Threshold < 0 || c.Stabilizer.Threshold > 1 {
		fail("stabilizer.threshold must be in [0,1], got %v", c.Stabilizer.Threshold)
	}

	if c.Input.OverrideTicks < 0 {
		fail("input.override_ticks must be >= 0, got %d", c.Input.OverrideTicks)
	}
	l := c.Input.Labels
	if l.Left == "" || l.Center == "" || l.Right == "" {
		fail("input.labels must name all three lanes")
	} else if l.Left == l.Center || l.Left == l.Right || l.Center == l.Right {
		fail("input.labels must be distinct, got %q/%q/%q", l.Left, l.Center, l.Right)
	}

	if c.Session.DurationSeconds <= 0 {
		fail("session.duration_seconds must be > 0, got %d", c.Session.DurationSeconds)
	}

	return errors.Join(errs...)
}
