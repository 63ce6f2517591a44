// Package tui provides the Bubble Tea integration for the catcher.
// It handles the terminal UI loop, input mapping and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pose-catcher/internal/core"
	"github.com/vovakirdan/pose-catcher/internal/engine"
)

// TickMsg is sent to trigger a simulation frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// timerMsg fires a teaScheduler timer.
type timerMsg struct {
	id uint64
}

// teaScheduler implements engine.Scheduler on top of tea.Tick, so timer
// callbacks run inside Update like every other message and never race
// with the frame tick. Messages for stopped timers are dropped.
type teaScheduler struct {
	nextID  uint64
	timers  map[uint64]*teaTimer
	pending []tea.Cmd
}

type teaTimer struct {
	id       uint64
	interval time.Duration
	fn       func()
	sched    *teaScheduler
}

func (t *teaTimer) Stop() {
	delete(t.sched.timers, t.id)
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{timers: make(map[uint64]*teaTimer)}
}

// Every registers fn. The first tick is armed by the next Drain.
func (s *teaScheduler) Every(interval time.Duration, fn func()) engine.Timer {
	if interval <= 0 {
		interval = time.Millisecond
	}
	s.nextID++
	t := &teaTimer{id: s.nextID, interval: interval, fn: fn, sched: s}
	s.timers[t.id] = t
	s.pending = append(s.pending, s.arm(t))
	return t
}

// Drain returns the commands for timers registered since the last call.
func (s *teaScheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Fire runs the timer's callback and re-arms it. Returns nil for timers
// that were stopped, before or during the callback.
func (s *teaScheduler) Fire(id uint64) tea.Cmd {
	t, ok := s.timers[id]
	if !ok {
		return nil
	}
	t.fn()
	if _, ok := s.timers[id]; !ok {
		return nil
	}
	return s.arm(t)
}

// Active returns the number of live timers.
func (s *teaScheduler) Active() int {
	return len(s.timers)
}

func (s *teaScheduler) arm(t *teaTimer) tea.Cmd {
	id := t.id
	return tea.Tick(t.interval, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	})
}
