package engine

import (
	"math"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
)

// Outcome is what CollisionResolver.Resolve did to a session in one tick.
type Outcome struct {
	Captured     []FallingItem
	Missed       int
	HazardCaught bool
	Events       []Event
}

// CollisionResolver advances items and resolves captures against the basket.
type CollisionResolver struct {
	field     config.FieldConfig
	scoring   config.ScoringConfig
	burstSize int
}

// NewCollisionResolver creates a resolver for the given geometry and scoring.
func NewCollisionResolver(field config.FieldConfig, scoring config.ScoringConfig, burstSize int) *CollisionResolver {
	return &CollisionResolver{
		field:     field,
		scoring:   scoring,
		burstSize: burstSize,
	}
}

// InCaptureBand reports whether y lies strictly inside the basket's vertical extent.
func (r *CollisionResolver) InCaptureBand(y float64) bool {
	return y > r.field.CaptureTop && y < r.field.CaptureBottom
}

// Resolve moves every item by FallSpeed*SpeedMultiplier and resolves each
// exactly once, newest item first: captured items are removed and scored,
// items past the despawn line are dropped without penalty. A hazard capture
// stops resolution immediately; older items are left untouched.
func (r *CollisionResolver) Resolve(s *Session) Outcome {
	var out Outcome
	lane := s.Player.Lane
	gone := make([]bool, len(s.Items))

	for i := len(s.Items) - 1; i >= 0; i-- {
		item := &s.Items[i]
		item.Y += item.FallSpeed * s.Player.SpeedMultiplier

		if r.InCaptureBand(item.Y) && item.Lane == lane {
			out.Captured = append(out.Captured, *item)
			gone[i] = true
			if item.Kind.IsHazard {
				out.HazardCaught = true
				break
			}
			r.score(s, *item, &out)
			continue
		}

		if item.Y > r.field.DespawnY {
			out.Missed++
			gone[i] = true
		}
	}

	kept := s.Items[:0]
	for i, item := range s.Items {
		if !gone[i] {
			kept = append(kept, item)
		}
	}
	for i := len(kept); i < len(s.Items); i++ {
		s.Items[i] = FallingItem{}
	}
	s.Items = kept
	return out
}

func (r *CollisionResolver) score(s *Session, item FallingItem, out *Outcome) {
	s.Player.Score += item.Kind.ScoreValue
	out.Events = append(out.Events, ScoreChangedEvent{Score: s.Player.Score})

	if !item.Kind.IsSpecial {
		return
	}

	maxMult := math.Max(1, r.scoring.MaxSpeedMultiplier)
	if next := math.Min(maxMult, s.Player.SpeedMultiplier*r.scoring.SpecialSpeedFactor); next > s.Player.SpeedMultiplier {
		s.Player.SpeedMultiplier = next
	}

	origin := core.Vec2{X: item.Lane.Center(r.field.Width), Y: item.Y}
	s.Particles.SpawnBurst(origin, r.burstSize)
	out.Events = append(out.Events, BurstEvent{Origin: origin, Count: r.burstSize})
}
