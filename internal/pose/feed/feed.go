// Package feed provides pose classifier sources: a WebSocket endpoint for a
// browser or sidecar classifier, a JSON-lines reader for recorded sessions and
// a seeded synthetic classifier for headless play.
//
// Each source registers itself with the registry under a short ID.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/pose-catcher/internal/pose"
)

// DefaultRate is the frame rate of generated and replayed feeds.
const DefaultRate = 30

// ErrNoSamples is returned for a frame that carries no samples array at
// all, such as null or an object without "predictions". An empty array is
// a valid frame.
var ErrNoSamples = errors.New("feed: frame has no samples")

// DecodeJSON parses one classifier frame. Both a bare array of samples and
// an object with a "predictions" array are accepted. An empty array decodes
// to an empty, non-nil frame so the stabilizer still counts it.
func DecodeJSON(data []byte) ([]pose.Sample, error) {
	var samples []pose.Sample
	if err := json.Unmarshal(data, &samples); err == nil {
		if samples == nil {
			return nil, ErrNoSamples
		}
		return samples, nil
	}

	var wrapped struct {
		Predictions *[]pose.Sample `json:"predictions"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("feed: decode frame: %w", err)
	}
	if wrapped.Predictions == nil || *wrapped.Predictions == nil {
		return nil, ErrNoSamples
	}
	return *wrapped.Predictions, nil
}

func frameInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = DefaultRate
	}
	return time.Second / time.Duration(rate)
}
