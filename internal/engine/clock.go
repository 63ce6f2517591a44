package engine

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
	"github.com/vovakirdan/pose-catcher/internal/pose"
)

// TickResult reports what happened during one Clock.Tick.
type TickResult struct {
	Tick     uint64
	Spawned  bool
	Captured int
	Missed   int
	Phase    Phase
	Events   []Event
}

// Option configures a Clock.
type Option func(*Clock)

// WithLogger sets the logger used for session lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(c *Clock) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRandSource overrides how a session's random source is built from its seed.
func WithRandSource(fn func(seed int64) RandSource) Option {
	return func(c *Clock) {
		if fn != nil {
			c.newRand = fn
		}
	}
}

// Clock orchestrates sessions: the per-frame tick, the one-second countdown
// and the Active -> GameOver transition.
type Clock struct {
	cfg        config.Config
	catalog    *Catalog
	resolver   *CollisionResolver
	stabilizer *pose.Stabilizer
	scheduler  Scheduler
	observer   Observer
	logger     *log.Logger
	newRand    func(seed int64) RandSource

	session *Session
	timer   Timer
}

// NewClock creates a clock. A nil scheduler defaults to a ManualScheduler,
// a nil observer discards events.
func NewClock(cfg config.Config, sched Scheduler, obs Observer, opts ...Option) *Clock {
	if sched == nil {
		sched = NewManualScheduler()
	}
	if obs == nil {
		obs = nopObserver{}
	}
	c := &Clock{
		cfg:        cfg,
		catalog:    NewCatalog(cfg.Catalog),
		resolver:   NewCollisionResolver(cfg.Field, cfg.Scoring, cfg.Particles.Count),
		stabilizer: pose.NewStabilizer(cfg.Stabilizer.Window, cfg.Stabilizer.Threshold),
		scheduler:  sched,
		observer:   obs,
		logger:     log.New(io.Discard),
		newRand: func(seed int64) RandSource {
			return rand.New(rand.NewSource(seed))
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the configuration the clock was built with.
func (c *Clock) Config() config.Config {
	return c.cfg
}

// Catalog returns the item catalog.
func (c *Clock) Catalog() *Catalog {
	return c.catalog
}

// Session returns the current session, or nil before the first Start.
func (c *Clock) Session() *Session {
	return c.session
}

// Start begins a new session and its countdown. A session still running is
// stopped first, so a stale timer can never fire into the new one.
func (c *Clock) Start(seed int64) *Session {
	c.Stop()

	rng := c.newRand(seed)
	s := &Session{
		Seed: seed,
		Player: PlayerState{
			Lane:            core.LaneCenter,
			SpeedMultiplier: 1.0,
			TimeRemaining:   c.cfg.Session.DurationSeconds,
			Phase:           PhaseActive,
		},
		Items:     make([]FallingItem, 0, 16),
		Particles: NewParticleSystem(c.cfg.Particles, rng),
		Arbiter:   NewInputArbiter(c.cfg.Input.OverrideTicks, c.cfg.Input.Labels),
		Spawner:   NewItemSpawner(c.catalog, c.cfg.Spawn, c.cfg.Field.SpawnY, rng),
	}
	c.session = s
	c.stabilizer.Reset()
	c.StartTimer()

	c.logger.Info("session started", "seed", seed, "duration", s.Player.TimeRemaining)
	return s
}

// StartTimer (re)starts the countdown for the current session.
// Any running countdown is cancelled first.
func (c *Clock) StartTimer() {
	c.StopTimer()
	s := c.session
	if s == nil || !s.Active() {
		return
	}
	c.timer = c.scheduler.Every(time.Second, func() {
		c.countdown(s)
	})
}

// StopTimer cancels the countdown. Safe to call repeatedly.
func (c *Clock) StopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// CountdownTick advances the countdown by one second, as the timer would.
func (c *Clock) CountdownTick() {
	c.countdown(c.session)
}

func (c *Clock) countdown(s *Session) {
	if s == nil || s != c.session || !s.Active() {
		return
	}
	s.Player.TimeRemaining--
	if s.Player.TimeRemaining < 0 {
		s.Player.TimeRemaining = 0
	}
	c.emit(nil, CountdownEvent{Tick: s.tick, Remaining: s.Player.TimeRemaining})
	if s.Player.TimeRemaining == 0 {
		c.finish(s, EndReasonTimeUp, nil)
	}
}

// Tick advances the current session by one frame: keyboard priority and
// pending pose signal, spawn, move/collide, particles. No-op unless active.
func (c *Clock) Tick() TickResult {
	s := c.session
	if s == nil || !s.Active() {
		return c.idleResult()
	}

	s.tick++
	res := TickResult{Tick: s.tick}

	// 1. Input arbitration
	s.Arbiter.Tick()
	if s.pending != nil {
		s.Arbiter.OnStableSignal(s.pending.Label)
		s.pending = nil
	}
	s.Player.Lane = s.Arbiter.Lane()

	// 2. Spawning
	s.sinceSpawn++
	if item, ok := s.Spawner.MaybeSpawn(s.sinceSpawn, s.Player.SpeedMultiplier); ok {
		s.Items = append(s.Items, item)
		s.sinceSpawn = 0
		res.Spawned = true
	}

	// 3. Movement and collision
	out := c.resolver.Resolve(s)
	res.Captured = len(out.Captured)
	res.Missed = out.Missed
	for _, ev := range out.Events {
		c.emit(&res, ev)
		if b, ok := ev.(BurstEvent); ok {
			c.logger.Debug("special caught", "score", s.Player.Score, "speed", s.Player.SpeedMultiplier, "origin_y", b.Origin.Y)
		}
	}
	if out.HazardCaught {
		c.finish(s, EndReasonHazard, &res)
		res.Phase = s.Player.Phase
		return res
	}

	// 4. Particles
	s.Particles.Advance()

	res.Phase = s.Player.Phase
	return res
}

// Stop ends the current session: cancels the countdown, closes input and
// emits the terminal event if it was still active. The snapshot stays
// readable. Calling Stop again has no effect.
func (c *Clock) Stop() {
	c.StopTimer()
	s := c.session
	if s == nil {
		return
	}
	s.inputClosed = true
	s.pending = nil
	c.finish(s, EndReasonStopped, nil)
}

// OnKeyIntent forwards a keyboard intent to the arbiter.
func (c *Clock) OnKeyIntent(d core.Direction) {
	s := c.session
	if s == nil || s.inputClosed || !s.Active() {
		return
	}
	s.Arbiter.OnKeyIntent(d)
	s.Player.Lane = s.Arbiter.Lane()
}

// OnClassifierSample pushes one classifier frame through the stabilizer.
// A confident result is applied to the arbiter on the next tick.
func (c *Clock) OnClassifierSample(samples []pose.Sample) pose.Signal {
	s := c.session
	if s == nil || s.inputClosed || !s.Active() {
		return pose.Signal{}
	}
	sig := c.stabilizer.Submit(samples)
	if sig.Confident() {
		s.pending = &sig
	}
	return sig
}

func (c *Clock) finish(s *Session, reason EndReason, res *TickResult) {
	if s.Player.Phase == PhaseGameOver {
		return
	}
	s.Player.Phase = PhaseGameOver
	s.endReason = reason
	s.inputClosed = true
	s.pending = nil
	if s == c.session {
		c.StopTimer()
	}

	if s.terminated {
		return
	}
	s.terminated = true
	c.logger.Info("session over", "reason", reason, "score", s.Player.Score, "ticks", s.tick)
	c.emit(res, TerminalEvent{FinalScore: s.Player.Score, Reason: reason})
}

func (c *Clock) emit(res *TickResult, ev Event) {
	if res != nil {
		res.Events = append(res.Events, ev)
	}
	c.observer.OnEvent(ev)
}

func (c *Clock) idleResult() TickResult {
	if c.session == nil {
		return TickResult{Phase: PhaseIdle}
	}
	return TickResult{Tick: c.session.tick, Phase: c.session.Player.Phase}
}
