package pose

import (
	"math"
	"testing"
)

func frame(label string, p float64) []Sample {
	return []Sample{{Label: label, Probability: p}}
}

func TestStabilizerMajorityOverridesInstantWinner(t *testing.T) {
	s := NewStabilizer(3, 0.7)

	s.Submit(frame("Left", 0.9))
	s.Submit(frame("Left", 0.8))
	got := s.Submit(frame("Right", 0.95))

	if got.Label != "Left" {
		t.Errorf("tick 3 label = %q, expected majority %q", got.Label, "Left")
	}
	if got.Probability != 0.95 {
		t.Errorf("tick 3 probability = %v, expected instant 0.95", got.Probability)
	}
}

func TestStabilizerColdStartPassthrough(t *testing.T) {
	s := NewStabilizer(3, 0.7)

	got := s.Submit(frame("Center", 0.3))

	if got.Label != "Center" || got.Probability != 0.3 {
		t.Errorf("cold start = %+v, expected {Center 0.3}", got)
	}
}

func TestStabilizerLowConfidenceSuppresses(t *testing.T) {
	s := NewStabilizer(3, 0.7)

	s.Submit(frame("Left", 0.9))
	s.Submit(frame("Left", 0.9))
	got := s.Submit(frame("Left", 0.5))

	if got.Confident() {
		t.Errorf("low instant probability should suppress the label, got %q", got.Label)
	}
	if got.Probability != 0.5 {
		t.Errorf("probability = %v, expected instant 0.5", got.Probability)
	}
}

func TestStabilizerWindowBounded(t *testing.T) {
	s := NewStabilizer(3, 0.7)

	for i := 0; i < 10; i++ {
		s.Submit(frame("Left", 0.9))
		if s.Len() > s.Window() {
			t.Fatalf("history length %d exceeds window %d", s.Len(), s.Window())
		}
	}

	// Oldest entries are evicted: three Rights fully replace the Lefts
	s.Submit(frame("Right", 0.9))
	s.Submit(frame("Right", 0.9))
	got := s.Submit(frame("Right", 0.9))
	if got.Label != "Right" {
		t.Errorf("label after eviction = %q, expected Right", got.Label)
	}
}

func TestStabilizerTieBreakFirstSeen(t *testing.T) {
	s := NewStabilizer(4, 0.5)

	s.Submit(frame("Right", 0.9))
	s.Submit(frame("Left", 0.9))
	s.Submit(frame("Left", 0.9))
	got := s.Submit(frame("Right", 0.9))

	if got.Label != "Right" {
		t.Errorf("tie should go to first-seen label Right, got %q", got.Label)
	}
}

func TestStabilizerInstantWinner(t *testing.T) {
	s := NewStabilizer(1, 0.5)

	got := s.Submit([]Sample{
		{Label: "Left", Probability: 0.2},
		{Label: "Center", Probability: 0.7},
		{Label: "Right", Probability: 0.1},
	})

	if got.Label != "Center" || got.Probability != 0.7 {
		t.Errorf("Submit() = %+v, expected {Center 0.7}", got)
	}
}

func TestStabilizerMalformedFrames(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
	}{
		{"nil", nil},
		{"empty", []Sample{}},
		{"nan", []Sample{{Label: "Left", Probability: math.NaN()}}},
		{"zero", []Sample{{Label: "Left", Probability: 0}}},
		{"negative", []Sample{{Label: "Left", Probability: -3}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStabilizer(3, 0.7)
			got := s.Submit(tc.samples)
			if got.Confident() || got.Probability != 0 {
				t.Errorf("Submit(%v) = %+v, expected no signal", tc.samples, got)
			}
			if s.Len() != 1 {
				t.Errorf("malformed frame should still take a slot, len = %d", s.Len())
			}
		})
	}
}

func TestStabilizerClampsProbability(t *testing.T) {
	s := NewStabilizer(1, 0.5)
	got := s.Submit(frame("Left", 4))
	if got.Probability != 1 {
		t.Errorf("probability = %v, expected clamp to 1", got.Probability)
	}
}

func TestStabilizerReset(t *testing.T) {
	s := NewStabilizer(3, 0.7)
	s.Submit(frame("Left", 0.9))
	s.Submit(frame("Left", 0.9))
	s.Submit(frame("Left", 0.9))

	s.Reset()

	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d, expected 0", s.Len())
	}
	got := s.Submit(frame("Center", 0.3))
	if got.Label != "Center" {
		t.Errorf("after Reset the stabilizer should be cold again, got %q", got.Label)
	}
}
