package engine

import (
	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
)

// scriptedRand replays fixed values, repeating the last one when exhausted.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[min(r.fi, len(r.floats)-1)]
	r.fi++
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[min(r.ii, len(r.ints)-1)]
	r.ii++
	return v % n
}

// applesOnly returns the default config with a single harmless item kind.
func applesOnly() config.Config {
	cfg := config.DefaultConfig()
	cfg.Catalog = []config.ItemKindConfig{cfg.Catalog[0]}
	cfg.Catalog[0].Weight = 1
	return cfg
}

type eventLog struct {
	events []Event
}

func (l *eventLog) OnEvent(ev Event) {
	l.events = append(l.events, ev)
}

func (l *eventLog) terminals() []TerminalEvent {
	var out []TerminalEvent
	for _, ev := range l.events {
		if t, ok := ev.(TerminalEvent); ok {
			out = append(out, t)
		}
	}
	return out
}

func mustKind(t interface{ Fatalf(string, ...any) }, c *Clock, id string) *ItemKind {
	k, ok := c.Catalog().Lookup(id)
	if !ok {
		t.Fatalf("kind %q not in catalog", id)
	}
	return k
}

func item(kind *ItemKind, lane core.Lane, y float64) FallingItem {
	return FallingItem{Lane: lane, Y: y, Kind: kind, FallSpeed: kind.BaseSpeed}
}
