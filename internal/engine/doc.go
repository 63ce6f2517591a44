// Package engine implements the per-frame catcher simulation: spawning,
// movement, collision, scoring, the difficulty ramp, particle effects and
// the session countdown.
//
// Three entry points mutate a session: Clock.Tick (once per frame),
// the countdown timer (once per second, via an injected Scheduler) and
// Clock.OnClassifierSample (whenever the pose collaborator has a frame).
// The host guarantees these never overlap; nothing here locks.
//
// Once a session reaches PhaseGameOver every entry point is a no-op and the
// final Snapshot stays readable.
package engine
