package engine

import (
	"math"
	"testing"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
)

func newTestClock(cfg config.Config, obs Observer) (*Clock, *ManualScheduler) {
	sched := NewManualScheduler()
	c := NewClock(cfg, sched, obs, WithRandSource(func(int64) RandSource {
		return &scriptedRand{floats: []float64{0.5}}
	}))
	return c, sched
}

func TestResolveCapture(t *testing.T) {
	c, _ := newTestClock(config.DefaultConfig(), nil)
	s := c.Start(1)
	apple := mustKind(t, c, "apple")

	s.Items = []FallingItem{
		item(apple, core.LaneCenter, 498), // 501: inside band, basket lane
		item(apple, core.LaneLeft, 498),   // inside band, wrong lane
		item(apple, core.LaneCenter, 497), // 500: band is open at the top
	}
	out := c.resolver.Resolve(s)

	if len(out.Captured) != 1 {
		t.Fatalf("captured %d items, want 1", len(out.Captured))
	}
	if s.Player.Score != 100 {
		t.Errorf("Score = %d, want 100", s.Player.Score)
	}
	if len(s.Items) != 2 {
		t.Errorf("%d items left, want 2", len(s.Items))
	}
	if len(out.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(out.Events))
	}
	if ev, ok := out.Events[0].(ScoreChangedEvent); !ok || ev.Score != 100 {
		t.Errorf("event = %#v, want ScoreChangedEvent{100}", out.Events[0])
	}
}

func TestResolveMissDespawns(t *testing.T) {
	c, _ := newTestClock(config.DefaultConfig(), nil)
	s := c.Start(1)
	apple := mustKind(t, c, "apple")

	s.Items = []FallingItem{
		item(apple, core.LaneLeft, 648),   // 651: past despawn line
		item(apple, core.LaneLeft, 646),   // 649: still on screen
		item(apple, core.LaneCenter, 600), // below the basket, no capture
	}
	out := c.resolver.Resolve(s)

	if out.Missed != 1 {
		t.Errorf("Missed = %d, want 1", out.Missed)
	}
	if s.Player.Score != 0 {
		t.Errorf("Score = %d, misses must not be penalized", s.Player.Score)
	}
	if len(s.Items) != 2 {
		t.Errorf("%d items left, want 2", len(s.Items))
	}
}

func TestResolveAppliesSpeedMultiplier(t *testing.T) {
	c, _ := newTestClock(config.DefaultConfig(), nil)
	s := c.Start(1)
	apple := mustKind(t, c, "apple")

	s.Player.SpeedMultiplier = 2
	s.Items = []FallingItem{item(apple, core.LaneLeft, 0)}
	c.resolver.Resolve(s)

	if s.Items[0].Y != 6 {
		t.Errorf("Y = %v, want 6", s.Items[0].Y)
	}
	if s.Items[0].FallSpeed != apple.BaseSpeed {
		t.Error("FallSpeed must stay at the base speed")
	}
}

func TestResolveSpecial(t *testing.T) {
	c, _ := newTestClock(config.DefaultConfig(), nil)
	s := c.Start(1)
	golden := mustKind(t, c, "golden")

	s.Items = []FallingItem{item(golden, core.LaneCenter, 495)}
	out := c.resolver.Resolve(s)

	if s.Player.Score != 1000 {
		t.Errorf("Score = %d, want 1000", s.Player.Score)
	}
	if math.Abs(s.Player.SpeedMultiplier-1.2) > 1e-9 {
		t.Errorf("SpeedMultiplier = %v, want 1.2", s.Player.SpeedMultiplier)
	}
	if s.Particles.Len() != 15 {
		t.Errorf("%d particles, want 15", s.Particles.Len())
	}
	if len(out.Events) != 2 {
		t.Fatalf("got %d events, want score and burst", len(out.Events))
	}
	burst, ok := out.Events[1].(BurstEvent)
	if !ok {
		t.Fatalf("second event = %#v, want BurstEvent", out.Events[1])
	}
	if burst.Origin.X != 300 || burst.Origin.Y != 502 {
		t.Errorf("burst origin = %+v, want {300 502}", burst.Origin)
	}
}

func TestResolveMultiplierCap(t *testing.T) {
	c, _ := newTestClock(config.DefaultConfig(), nil)
	s := c.Start(1)
	golden := mustKind(t, c, "golden")

	s.Player.SpeedMultiplier = 7.9
	s.Items = []FallingItem{item(golden, core.LaneCenter, 500-golden.BaseSpeed*7.9+1)}
	c.resolver.Resolve(s)

	if s.Player.SpeedMultiplier != 8 {
		t.Errorf("SpeedMultiplier = %v, want capped at 8", s.Player.SpeedMultiplier)
	}
}

func TestResolveHazardStopsResolution(t *testing.T) {
	c, _ := newTestClock(config.DefaultConfig(), nil)
	s := c.Start(1)
	bomb := mustKind(t, c, "bomb")
	apple := mustKind(t, c, "apple")

	s.Player.Score = 700
	s.Items = []FallingItem{
		item(apple, core.LaneCenter, 498), // older
		item(bomb, core.LaneCenter, 498),  // newer, resolved first
	}
	out := c.resolver.Resolve(s)

	if !out.HazardCaught {
		t.Fatal("hazard not caught")
	}
	if s.Player.Score != 700 {
		t.Errorf("Score = %d, hazard must not change it", s.Player.Score)
	}
	if len(s.Items) != 1 || s.Items[0].Y != 498 || s.Items[0].Kind != apple {
		t.Errorf("items after hazard = %+v, want the apple untouched", s.Items)
	}
}

func TestResolveNewestItemFirst(t *testing.T) {
	c, _ := newTestClock(config.DefaultConfig(), nil)
	s := c.Start(1)
	bomb := mustKind(t, c, "bomb")
	apple := mustKind(t, c, "apple")

	s.Items = []FallingItem{
		item(bomb, core.LaneCenter, 498),  // older
		item(apple, core.LaneCenter, 498), // newer, scored before the bomb
	}
	out := c.resolver.Resolve(s)

	if !out.HazardCaught {
		t.Fatal("hazard not caught")
	}
	if s.Player.Score != 100 {
		t.Errorf("Score = %d, want the newer apple scored first", s.Player.Score)
	}
	if len(out.Captured) != 2 || out.Captured[0].Kind != apple || out.Captured[1].Kind != bomb {
		t.Errorf("captured = %+v, want apple then bomb", out.Captured)
	}
	if len(s.Items) != 0 {
		t.Errorf("%d items left, want 0", len(s.Items))
	}
}

func TestResolveKeepsSpawnOrder(t *testing.T) {
	c, _ := newTestClock(config.DefaultConfig(), nil)
	s := c.Start(1)
	apple := mustKind(t, c, "apple")
	grape := mustKind(t, c, "grape")

	s.Items = []FallingItem{
		item(apple, core.LaneLeft, 10),
		item(grape, core.LaneCenter, 498), // caught
		item(grape, core.LaneRight, 20),
	}
	c.resolver.Resolve(s)

	if len(s.Items) != 2 || s.Items[0].Kind != apple || s.Items[1].Lane != core.LaneRight {
		t.Errorf("items = %+v, want oldest first with the capture removed", s.Items)
	}
}

func TestHazardEndsSession(t *testing.T) {
	var log eventLog
	c, sched := newTestClock(config.DefaultConfig(), &log)
	s := c.Start(1)
	bomb := mustKind(t, c, "bomb")

	s.Player.Score = 400
	s.Items = []FallingItem{item(bomb, core.LaneCenter, 498)}
	res := c.Tick()

	if res.Phase != PhaseGameOver || s.EndReason() != EndReasonHazard {
		t.Fatalf("phase %v reason %v, want game over by hazard", res.Phase, s.EndReason())
	}
	terms := log.terminals()
	if len(terms) != 1 || terms[0].FinalScore != 400 || terms[0].Reason != EndReasonHazard {
		t.Errorf("terminal events = %+v", terms)
	}
	if sched.Active() != 0 {
		t.Errorf("%d timers still active after game over", sched.Active())
	}
}
