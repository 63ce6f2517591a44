// Package core provides fundamental types and utilities for the catcher.
// It contains no terminal or transport dependencies so the simulation stays
// pure and testable.
package core

// Lane is one of the three discrete horizontal positions shared by the
// basket and falling items.
type Lane int

// Lane positions, left to right.
const (
	LaneLeft   Lane = 0
	LaneCenter Lane = 1
	LaneRight  Lane = 2
)

// LaneCount is the number of lanes on the field.
const LaneCount = 3

// ClampLane restricts any integer to a valid lane.
func ClampLane(v int) Lane {
	return Lane(Clamp(v, int(LaneLeft), int(LaneRight)))
}

// Valid reports whether l is inside {0,1,2}.
func (l Lane) Valid() bool {
	return l >= LaneLeft && l <= LaneRight
}

// String returns a human-readable lane name.
func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "Left"
	case LaneCenter:
		return "Center"
	case LaneRight:
		return "Right"
	default:
		return "Invalid"
	}
}

// Center returns the horizontal centre of the lane on a field of the given width.
func (l Lane) Center(fieldWidth float64) float64 {
	laneW := fieldWidth / LaneCount
	return laneW*float64(ClampLane(int(l))) + laneW/2
}

// Vec2 is a point or velocity in field coordinates (y grows downward).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
