package core

import "testing"

func TestClampLane(t *testing.T) {
	tests := []struct {
		in       int
		expected Lane
	}{
		{-5, LaneLeft},
		{0, LaneLeft},
		{1, LaneCenter},
		{2, LaneRight},
		{3, LaneRight},
		{100, LaneRight},
	}

	for _, tc := range tests {
		result := ClampLane(tc.in)
		if result != tc.expected {
			t.Errorf("ClampLane(%d) = %v, expected %v", tc.in, result, tc.expected)
		}
		if !result.Valid() {
			t.Errorf("ClampLane(%d) produced invalid lane %d", tc.in, result)
		}
	}
}

func TestLaneCenter(t *testing.T) {
	tests := []struct {
		lane     Lane
		expected float64
	}{
		{LaneLeft, 100},
		{LaneCenter, 300},
		{LaneRight, 500},
	}

	for _, tc := range tests {
		t.Run(tc.lane.String(), func(t *testing.T) {
			if got := tc.lane.Center(600); got != tc.expected {
				t.Errorf("Center(600) = %f, expected %f", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{DirectionLeft, DirectionRight, DirectionCenter} {
		if got := ParseDirection(d.String()); got != d {
			t.Errorf("ParseDirection(%q) = %v, expected %v", d.String(), got, d)
		}
	}
	if got := ParseDirection("Up"); got != DirectionNone {
		t.Errorf("ParseDirection(\"Up\") = %v, expected None", got)
	}
}

func TestRuntimeConfigNormalized(t *testing.T) {
	got := RuntimeConfig{ScreenW: -1, TickRate: 0, Seed: 9}.Normalized()
	want := RuntimeConfig{ScreenW: DefaultScreenW, ScreenH: DefaultScreenH, TickRate: DefaultTickRate, Seed: 9}
	if got != want {
		t.Errorf("Normalized() = %+v, want %+v", got, want)
	}

	keep := RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 30}
	if got := keep.Normalized(); got != keep {
		t.Errorf("Normalized() changed valid config: %+v", got)
	}
}
