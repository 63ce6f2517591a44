package pose

import "math"

// Stabilizer smooths classifier submissions over a bounded window.
//
// Each submission contributes its instant winner (highest probability) to
// the window. Until the window is full the instant winner is passed through.
// Afterwards the majority label of the window is returned, unless the
// instant probability is below the threshold, in which case the label is
// NoSignal. A single noisy frame cannot flip the output; a sustained
// low-confidence run suppresses it.
type Stabilizer struct {
	window    int
	threshold float64
	history   []Sample // oldest first, len <= window
}

// NewStabilizer creates a stabilizer. A window below 1 is treated as 1.
func NewStabilizer(window int, threshold float64) *Stabilizer {
	if window < 1 {
		window = 1
	}
	return &Stabilizer{
		window:    window,
		threshold: threshold,
		history:   make([]Sample, 0, window),
	}
}

// Submit feeds one classifier frame and returns the stabilized signal.
// An empty or fully malformed frame counts as a probability-0 sample with
// no label; it still occupies a history slot.
func (s *Stabilizer) Submit(samples []Sample) Signal {
	winner := instantWinner(samples)
	s.push(winner)

	if len(s.history) < s.window {
		return Signal{Label: winner.Label, Probability: winner.Probability}
	}

	label := s.majority()
	if winner.Probability < s.threshold {
		label = NoSignal
	}
	return Signal{Label: label, Probability: winner.Probability}
}

// Reset clears the history. Used on session restart.
func (s *Stabilizer) Reset() {
	s.history = s.history[:0]
}

// Len returns the number of samples currently in the window.
func (s *Stabilizer) Len() int {
	return len(s.history)
}

// Window returns the configured window size.
func (s *Stabilizer) Window() int {
	return s.window
}

func (s *Stabilizer) push(sample Sample) {
	if len(s.history) == s.window {
		copy(s.history, s.history[1:])
		s.history = s.history[:len(s.history)-1]
	}
	s.history = append(s.history, sample)
}

// majority returns the most frequent label in the window.
// Ties go to the label first seen scanning from the oldest entry.
func (s *Stabilizer) majority() string {
	order := make([]string, 0, len(s.history))
	counts := make(map[string]int, len(s.history))
	for _, h := range s.history {
		if _, ok := counts[h.Label]; !ok {
			order = append(order, h.Label)
		}
		counts[h.Label]++
	}

	best, bestCount := NoSignal, 0
	for _, label := range order {
		if counts[label] > bestCount {
			best, bestCount = label, counts[label]
		}
	}
	return best
}

// instantWinner picks the highest-probability sample of a frame.
// NaN probabilities are skipped and the rest clamped to [0,1]; the first
// sample wins ties.
func instantWinner(samples []Sample) Sample {
	var winner Sample
	for _, sm := range samples {
		p := sm.Probability
		if math.IsNaN(p) {
			continue
		}
		p = math.Max(0, math.Min(1, p))
		if p > winner.Probability {
			winner = Sample{Label: sm.Label, Probability: p}
		}
	}
	return winner
}
