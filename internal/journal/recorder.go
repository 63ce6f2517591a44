// Package journal records the inputs of a session with the frame they were
// applied at, and replays them headlessly to reproduce the outcome.
package journal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
	"github.com/vovakirdan/pose-catcher/internal/engine"
	"github.com/vovakirdan/pose-catcher/internal/pose"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

// Entry kinds.
const (
	KindKey       = "key"
	KindPose      = "pose"
	KindCountdown = "countdown"
)

type keyPayload struct {
	Dir string `json:"dir"`
}

type countdownPayload struct {
	Remaining int `json:"remaining"`
}

// Recorder collects the journal of one session. It observes the clock for
// countdown seconds; the host reports key and pose inputs as it applies them.
type Recorder struct {
	run     storage.Run
	entries []storage.Entry
	done    bool
}

// NewRecorder starts a journal for a session played with cfg.
func NewRecorder(cfg config.Config, seed int64, preset, source string, now time.Time) *Recorder {
	r := &Recorder{
		run: storage.Run{
			ID:         uuid.NewString(),
			Seed:       seed,
			Preset:     preset,
			PoseSource: source,
			StartedAt:  now,
		},
	}
	if data, err := config.Marshal(cfg); err == nil {
		r.run.Config = string(data)
	}
	return r
}

// ID returns the run ID.
func (r *Recorder) ID() string {
	return r.run.ID
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	return len(r.entries)
}

// Key records a keyboard intent applied after frame tick.
func (r *Recorder) Key(tick uint64, d core.Direction) {
	if d == core.DirectionNone {
		return
	}
	r.add(tick, KindKey, keyPayload{Dir: d.String()})
}

// Pose records a classifier frame submitted after frame tick.
func (r *Recorder) Pose(tick uint64, samples []pose.Sample) {
	r.add(tick, KindPose, samples)
}

// OnEvent implements engine.Observer.
func (r *Recorder) OnEvent(ev engine.Event) {
	switch e := ev.(type) {
	case engine.CountdownEvent:
		r.add(e.Tick, KindCountdown, countdownPayload{Remaining: e.Remaining})
	case engine.TerminalEvent:
		r.done = true
	}
}

// Done reports whether the session has ended; later inputs are not recorded.
func (r *Recorder) Done() bool {
	return r.done
}

// Finish seals the journal with the final state of the session.
func (r *Recorder) Finish(snap engine.Snapshot, now time.Time) (storage.Run, []storage.Entry) {
	r.done = true
	run := r.run
	run.EndedAt = now
	run.FinalScore = snap.Score
	run.EndReason = snap.EndReason.String()
	run.Ticks = snap.Tick
	return run, r.entries
}

func (r *Recorder) add(tick uint64, kind string, payload any) {
	if r.done {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	r.entries = append(r.entries, storage.Entry{
		Seq:     len(r.entries),
		Tick:    tick,
		Kind:    kind,
		Payload: string(data),
	})
}
