package engine

import (
	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
)

// InputArbiter merges keyboard and pose intent into one desired lane.
// A key press wins for a fixed number of ticks, during which stabilized
// pose signals are ignored.
type InputArbiter struct {
	lane          core.Lane
	override      int // Ticks of keyboard priority left
	overrideTicks int
	labels        map[string]core.Lane
}

// NewInputArbiter creates an arbiter with the basket in the centre lane.
func NewInputArbiter(overrideTicks int, labels config.LabelConfig) *InputArbiter {
	if overrideTicks < 0 {
		overrideTicks = 0
	}
	return &InputArbiter{
		lane:          core.LaneCenter,
		overrideTicks: overrideTicks,
		labels: map[string]core.Lane{
			labels.Left:   core.LaneLeft,
			labels.Center: core.LaneCenter,
			labels.Right:  core.LaneRight,
		},
	}
}

// OnKeyIntent moves the lane and restarts keyboard priority.
// Left/Right are relative and clamped; Center is absolute.
func (a *InputArbiter) OnKeyIntent(d core.Direction) {
	switch d {
	case core.DirectionLeft:
		a.lane = core.ClampLane(int(a.lane) - 1)
	case core.DirectionRight:
		a.lane = core.ClampLane(int(a.lane) + 1)
	case core.DirectionCenter:
		a.lane = core.LaneCenter
	default:
		return
	}
	a.override = a.overrideTicks
}

// OnStableSignal applies a stabilized pose label as an absolute lane.
// Returns false when the signal was ignored (keyboard priority, no signal,
// or an unknown label).
func (a *InputArbiter) OnStableSignal(label string) bool {
	if a.override > 0 {
		return false
	}
	lane, ok := a.labels[label]
	if !ok || label == "" {
		return false
	}
	a.lane = lane
	return true
}

// Tick decrements keyboard priority.
func (a *InputArbiter) Tick() {
	if a.override > 0 {
		a.override--
	}
}

// Lane returns the desired lane.
func (a *InputArbiter) Lane() core.Lane {
	return a.lane
}

// OverrideRemaining returns the ticks of keyboard priority left.
func (a *InputArbiter) OverrideRemaining() int {
	return a.override
}
