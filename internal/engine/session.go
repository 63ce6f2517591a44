package engine

import (
	"github.com/vovakirdan/pose-catcher/internal/core"
	"github.com/vovakirdan/pose-catcher/internal/pose"
)

// Phase is the session state machine: Active -> GameOver (terminal).
// PhaseIdle is the zero value before the first Start.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// PlayerState holds the HUD-facing state of a session.
type PlayerState struct {
	Lane            core.Lane
	Score           int
	SpeedMultiplier float64 // >= 1, never decreases within a session
	TimeRemaining   int     // Seconds
	Phase           Phase
}

// Session is the explicit context of one game: player state, items in
// flight, particles and per-session input/spawn state. Every engine
// operation takes the session it acts on; a superseded session is never
// touched again.
type Session struct {
	Seed      int64
	Player    PlayerState
	Items     []FallingItem
	Particles *ParticleSystem
	Arbiter   *InputArbiter
	Spawner   *ItemSpawner

	tick        uint64
	sinceSpawn  float64
	pending     *pose.Signal // Latest stabilized signal, applied on the next tick
	endReason   EndReason
	inputClosed bool
	terminated  bool // Terminal event already emitted
}

// Tick returns the number of frames simulated.
func (s *Session) Tick() uint64 {
	return s.tick
}

// EndReason returns why the session ended, or EndReasonNone while active.
func (s *Session) EndReason() EndReason {
	return s.endReason
}

// Active reports whether the session still accepts ticks and input.
func (s *Session) Active() bool {
	return s.Player.Phase == PhaseActive
}
