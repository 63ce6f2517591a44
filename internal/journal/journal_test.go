package journal

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
	"github.com/vovakirdan/pose-catcher/internal/engine"
	"github.com/vovakirdan/pose-catcher/internal/pose/feed"
	"github.com/vovakirdan/pose-catcher/internal/storage"
)

// playRecorded drives a session the way the TUI does: pose frames and keys
// between ticks, one countdown second every 60 ticks. stopAt > 0 stops the
// session after that many ticks.
func playRecorded(t *testing.T, cfg config.Config, seed int64, stopAt int) (storage.Run, []storage.Entry) {
	t.Helper()

	rec := NewRecorder(cfg, seed, "normal", "sim", time.Now())
	sched := engine.NewManualScheduler()
	clock := engine.NewClock(cfg, sched, rec)
	s := clock.Start(seed)
	syn := feed.NewSynthetic(nil, seed, 30)
	keys := []core.Direction{core.DirectionLeft, core.DirectionRight, core.DirectionCenter, core.DirectionRight}

	for i := 0; s.Active(); i++ {
		if i%2 == 0 {
			samples := syn.Next()
			rec.Pose(s.Tick(), samples)
			clock.OnClassifierSample(samples)
		}
		if i%250 == 0 {
			d := keys[(i/250)%len(keys)]
			rec.Key(s.Tick(), d)
			clock.OnKeyIntent(d)
		}
		clock.Tick()
		if i%60 == 59 {
			sched.Advance(time.Second)
		}
		if stopAt > 0 && i+1 == stopAt {
			clock.Stop()
		}
	}
	return rec.Finish(clock.Snapshot(), time.Now())
}

func TestReplayReproducesRun(t *testing.T) {
	cfg := config.DefaultConfig()

	for _, seed := range []int64{1, 2, 3, 42} {
		run, entries := playRecorded(t, cfg, seed, 0)
		if len(entries) == 0 {
			t.Fatalf("seed %d: no entries recorded", seed)
		}

		res, err := Replay(cfg, run, entries)
		if err != nil {
			t.Fatalf("seed %d: Replay() error: %v", seed, err)
		}
		if res.Score != run.FinalScore || res.Reason.String() != run.EndReason {
			t.Errorf("seed %d: replay %d/%s, recorded %d/%s", seed, res.Score, res.Reason, run.FinalScore, run.EndReason)
		}
	}
}

func TestReplayStoppedRun(t *testing.T) {
	cfg := config.DefaultConfig()
	// Without hazards the session can only end by the stop
	cfg.Catalog[2].Weight = 0

	run, entries := playRecorded(t, cfg, 9, 500)
	if run.EndReason != "stopped" || run.Ticks != 500 {
		t.Fatalf("recorded %s at tick %d, want stopped at 500", run.EndReason, run.Ticks)
	}

	if _, err := Replay(cfg, run, entries); err != nil {
		t.Errorf("Replay() error: %v", err)
	}
}

func TestReplayTimeUp(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Catalog[2].Weight = 0
	cfg.Session.DurationSeconds = 5

	run, entries := playRecorded(t, cfg, 4, 0)
	if run.EndReason != "time_up" || run.Ticks != 300 {
		t.Fatalf("recorded %s at tick %d, want time_up at 300", run.EndReason, run.Ticks)
	}

	countdowns := 0
	for _, e := range entries {
		if e.Kind == KindCountdown {
			countdowns++
		}
	}
	if countdowns != 5 {
		t.Errorf("recorded %d countdown entries, want 5", countdowns)
	}

	if _, err := Replay(cfg, run, entries); err != nil {
		t.Errorf("Replay() error: %v", err)
	}
}

func TestReplayDetectsMismatch(t *testing.T) {
	cfg := config.DefaultConfig()
	run, entries := playRecorded(t, cfg, 5, 0)

	run.FinalScore += 100
	if _, err := Replay(cfg, run, entries); !errors.Is(err, ErrReplayMismatch) {
		t.Errorf("Replay() error = %v, want ErrReplayMismatch", err)
	}
}

func TestReplayRejectsUnknownEntry(t *testing.T) {
	cfg := config.DefaultConfig()
	run := storage.Run{ID: "x", Seed: 1, Ticks: 10, EndReason: "stopped"}
	entries := []storage.Entry{{Seq: 0, Tick: 2, Kind: "teleport", Payload: "{}"}}

	_, err := Replay(cfg, run, entries)
	if err == nil || errors.Is(err, ErrReplayMismatch) {
		t.Errorf("Replay() error = %v, want decode error", err)
	}
}

func TestRecorderIgnoresInputAfterEnd(t *testing.T) {
	rec := NewRecorder(config.DefaultConfig(), 1, "", "", time.Now())
	rec.Key(1, core.DirectionLeft)
	rec.Key(1, core.DirectionNone)
	rec.OnEvent(engine.TerminalEvent{FinalScore: 0, Reason: engine.EndReasonHazard})
	rec.Key(2, core.DirectionRight)

	if rec.Len() != 1 {
		t.Errorf("Len = %d, want 1", rec.Len())
	}
	if !rec.Done() {
		t.Error("recorder should be done after the terminal event")
	}
}

func TestRunThroughStore(t *testing.T) {
	cfg := config.DefaultConfig()
	config.ApplyPreset(&cfg, config.DifficultyHard)
	run, entries := playRecorded(t, cfg, 11, 0)

	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if err := store.SaveRun(run, entries); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	loaded, err := store.Run(run.ID)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	loadedEntries, err := store.RunEntries(run.ID)
	if err != nil {
		t.Fatalf("RunEntries() failed: %v", err)
	}

	// The stored config, not the defaults, drives the replay
	replayCfg, err := RunConfig(loaded, config.DefaultConfig())
	if err != nil {
		t.Fatalf("RunConfig() failed: %v", err)
	}
	if replayCfg.Spawn.Decrement != cfg.Spawn.Decrement {
		t.Errorf("stored Decrement = %v, want %v", replayCfg.Spawn.Decrement, cfg.Spawn.Decrement)
	}
	if _, err := Replay(replayCfg, loaded, loadedEntries); err != nil {
		t.Errorf("Replay() after store round trip: %v", err)
	}
}
