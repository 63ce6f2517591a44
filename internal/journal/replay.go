package journal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
	"github.com/vovakirdan/pose-catcher/internal/engine"
	"github.com/vovakirdan/pose-catcher/internal/pose"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

// ErrReplayMismatch is returned when a replay does not reproduce the recorded outcome.
var ErrReplayMismatch = errors.New("journal: replay diverged from recording")

// Result is the outcome of a replay.
type Result struct {
	Score  int
	Reason engine.EndReason
	Ticks  uint64
	Events int // Entries applied
}

// RunConfig returns the config a run was played with. Runs recorded without
// one fall back to fallback.
func RunConfig(run storage.Run, fallback config.Config) (config.Config, error) {
	if run.Config == "" {
		return fallback, nil
	}
	cfg, err := config.Parse([]byte(run.Config))
	if err != nil {
		return fallback, fmt.Errorf("journal: run %s: bad config: %w", run.ID, err)
	}
	return cfg, nil
}

// Replay re-simulates a run on virtual time and compares the outcome with
// the recording. The returned Result is valid even when err wraps
// ErrReplayMismatch.
func Replay(cfg config.Config, run storage.Run, entries []storage.Entry, opts ...engine.Option) (Result, error) {
	clock := engine.NewClock(cfg, engine.NewManualScheduler(), nil, opts...)
	s := clock.Start(run.Seed)

	advanceTo := func(tick uint64) {
		for s.Active() && s.Tick() < tick {
			clock.Tick()
		}
	}

	var res Result
	for _, e := range entries {
		advanceTo(e.Tick)
		if !s.Active() {
			break
		}
		if err := apply(clock, e); err != nil {
			return res, fmt.Errorf("journal: run %s entry %d: %w", run.ID, e.Seq, err)
		}
		res.Events++
	}
	advanceTo(run.Ticks)
	if s.Active() && engine.ParseEndReason(run.EndReason) == engine.EndReasonStopped {
		clock.Stop()
	}

	snap := clock.Snapshot()
	res.Score = snap.Score
	res.Reason = snap.EndReason
	res.Ticks = snap.Tick

	if res.Score != run.FinalScore || res.Reason.String() != run.EndReason || res.Ticks != run.Ticks {
		return res, fmt.Errorf("%w: got score %d %s at tick %d, recorded score %d %s at tick %d",
			ErrReplayMismatch, res.Score, res.Reason, res.Ticks, run.FinalScore, run.EndReason, run.Ticks)
	}
	return res, nil
}

func apply(clock *engine.Clock, e storage.Entry) error {
	switch e.Kind {
	case KindKey:
		var p keyPayload
		if err := json.Unmarshal([]byte(e.Payload), &p); err != nil {
			return fmt.Errorf("decode key: %w", err)
		}
		clock.OnKeyIntent(core.ParseDirection(p.Dir))
	case KindPose:
		var samples []pose.Sample
		if err := json.Unmarshal([]byte(e.Payload), &samples); err != nil {
			return fmt.Errorf("decode pose: %w", err)
		}
		clock.OnClassifierSample(samples)
	case KindCountdown:
		clock.CountdownTick()
	default:
		return fmt.Errorf("unknown entry kind %q", e.Kind)
	}
	return nil
}
