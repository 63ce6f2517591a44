package feed

import (
	"context"
	"math/rand"
	"time"

	"github.com/vovakirdan/pose-catcher/internal/pose"
	"github.com/vovakirdan/pose-catcher/internal/registry"
)

func init() {
	registry.Register("sim", "seeded synthetic classifier that wanders between lanes",
		func(opts registry.Options) (registry.Feed, error) {
			return NewSynthetic(opts.Labels, opts.Seed, opts.Rate), nil
		})
}

// Synthetic imitates a noisy classifier: it holds a target label for a
// random dwell, reports it with high but jittery confidence, and now and
// then emits a spurious frame where another label wins.
type Synthetic struct {
	labels []string
	rng    *rand.Rand
	rate   int

	target int
	dwell  int // Frames left on the current target
}

// NewSynthetic creates a synthetic feed. Labels default to Left/Center/Right.
func NewSynthetic(labels []string, seed int64, rate int) *Synthetic {
	if len(labels) == 0 {
		labels = []string{"Left", "Center", "Right"}
	}
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Synthetic{
		labels: labels,
		rng:    rand.New(rand.NewSource(seed)),
		rate:   rate,
		target: len(labels) / 2,
	}
}

// Next produces one frame. Deterministic for a given seed.
func (s *Synthetic) Next() []pose.Sample {
	if s.dwell <= 0 {
		s.target = s.rng.Intn(len(s.labels))
		s.dwell = s.rate + s.rng.Intn(2*s.rate) // 1-3 seconds
	}
	s.dwell--

	winner := s.target
	confidence := 0.75 + s.rng.Float64()*0.25
	switch r := s.rng.Float64(); {
	case r < 0.08 && len(s.labels) > 1:
		// Spurious frame: another label briefly wins
		winner = (s.target + 1 + s.rng.Intn(len(s.labels)-1)) % len(s.labels)
	case r < 0.15:
		// Hesitant frame: right label, low confidence
		confidence = 0.4 + s.rng.Float64()*0.25
	}

	samples := make([]pose.Sample, len(s.labels))
	rest := (1 - confidence) / float64(max(len(s.labels)-1, 1))
	for i, label := range s.labels {
		p := rest
		if i == winner {
			p = confidence
		}
		samples[i] = pose.Sample{Label: label, Probability: p}
	}
	return samples
}

// Run emits frames at the configured rate until ctx is cancelled.
func (s *Synthetic) Run(ctx context.Context, deliver registry.Deliver) error {
	ticker := time.NewTicker(frameInterval(s.rate))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			deliver(s.Next())
		}
	}
}
