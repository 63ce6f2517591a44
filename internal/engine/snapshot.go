package engine

import (
	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
)

// ItemView is the render-facing copy of a falling item.
type ItemView struct {
	KindID string
	Glyph  string
	Color  core.Color
	Lane   core.Lane
	Y      float64
}

// ParticleView is the render-facing copy of a particle.
type ParticleView struct {
	Glyph        string
	Color        core.Color
	Position     core.Vec2
	LifeFraction float64
}

// Snapshot is a read-only copy of session state for renderers.
// Mutating it never affects the session.
type Snapshot struct {
	Tick              uint64
	Lane              core.Lane
	Score             int
	TimeRemaining     int
	SpeedMultiplier   float64
	Phase             Phase
	EndReason         EndReason
	OverrideRemaining int
	Items             []ItemView
	Particles         []ParticleView
	Field             config.FieldConfig
}

// Snapshot copies the current session. Before the first Start it returns
// an idle snapshot with the basket centred.
func (c *Clock) Snapshot() Snapshot {
	snap := Snapshot{
		Lane:            core.LaneCenter,
		SpeedMultiplier: 1,
		TimeRemaining:   c.cfg.Session.DurationSeconds,
		Field:           c.cfg.Field,
	}
	s := c.session
	if s == nil {
		return snap
	}

	snap.Tick = s.tick
	snap.Lane = s.Player.Lane
	snap.Score = s.Player.Score
	snap.TimeRemaining = s.Player.TimeRemaining
	snap.SpeedMultiplier = s.Player.SpeedMultiplier
	snap.Phase = s.Player.Phase
	snap.EndReason = s.endReason
	snap.OverrideRemaining = s.Arbiter.OverrideRemaining()

	snap.Items = make([]ItemView, 0, len(s.Items))
	for _, it := range s.Items {
		snap.Items = append(snap.Items, ItemView{
			KindID: it.Kind.ID,
			Glyph:  it.Kind.Glyph,
			Color:  it.Kind.Color,
			Lane:   it.Lane,
			Y:      it.Y,
		})
	}

	ps := s.Particles.Particles()
	snap.Particles = make([]ParticleView, 0, len(ps))
	for _, p := range ps {
		snap.Particles = append(snap.Particles, ParticleView{
			Glyph:        p.Glyph,
			Color:        p.Color,
			Position:     p.Position,
			LifeFraction: p.LifeFraction(),
		})
	}
	return snap
}
