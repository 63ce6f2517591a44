package engine

import "github.com/vovakirdan/pose-catcher/internal/core"

// Event is something that happened during a tick or countdown step.
type Event interface {
	engineEvent()
}

// ScoreChangedEvent is emitted after every scoring capture.
type ScoreChangedEvent struct {
	Score int
}

func (ScoreChangedEvent) engineEvent() {}

// BurstEvent is emitted when a special capture spawns a particle burst.
type BurstEvent struct {
	Origin core.Vec2
	Count  int
}

func (BurstEvent) engineEvent() {}

// CountdownEvent is emitted once per countdown second, after the decrement.
// Tick is the session frame count at which it fired.
type CountdownEvent struct {
	Tick      uint64
	Remaining int
}

func (CountdownEvent) engineEvent() {}

// TerminalEvent is emitted exactly once per session, on entry to GameOver.
type TerminalEvent struct {
	FinalScore int
	Reason     EndReason
}

func (TerminalEvent) engineEvent() {}

// EndReason describes why a session ended.
type EndReason int

const (
	EndReasonNone    EndReason = iota
	EndReasonTimeUp            // Countdown reached zero
	EndReasonHazard            // A hazard item was caught
	EndReasonStopped           // Session stopped or superseded
)

func (r EndReason) String() string {
	switch r {
	case EndReasonNone:
		return "none"
	case EndReasonTimeUp:
		return "time_up"
	case EndReasonHazard:
		return "hazard"
	case EndReasonStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ParseEndReason maps a stored reason string back to its value.
func ParseEndReason(s string) EndReason {
	switch s {
	case "time_up":
		return EndReasonTimeUp
	case "hazard":
		return EndReasonHazard
	case "stopped":
		return EndReasonStopped
	default:
		return EndReasonNone
	}
}

// Observer receives every event the clock emits, including those raised by
// the countdown outside of Tick.
type Observer interface {
	OnEvent(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

// OnEvent calls f(ev).
func (f ObserverFunc) OnEvent(ev Event) {
	f(ev)
}

type nopObserver struct{}

func (nopObserver) OnEvent(Event) {}
