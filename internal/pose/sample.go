// Package pose turns noisy per-frame classifier output into a stable
// discrete control signal.
package pose

// Sample is one class probability reported by the pose classifier.
// JSON field names follow the classifier's own output format.
type Sample struct {
	Label       string  `json:"className"`
	Probability float64 `json:"probability"`
}

// Signal is the stabilized classifier output for one submission.
// An empty Label means no confident signal.
type Signal struct {
	Label       string
	Probability float64
}

// NoSignal is the sentinel label for "no confident signal".
const NoSignal = ""

// Confident reports whether the signal carries a label.
func (s Signal) Confident() bool {
	return s.Label != NoSignal
}
