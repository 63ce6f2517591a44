package engine

import "time"

// Timer is a handle to a periodic callback. Stop is idempotent.
type Timer interface {
	Stop()
}

// Scheduler runs a callback periodically. Implementations must deliver
// callbacks on the same logical thread as Tick (never concurrently).
type Scheduler interface {
	Every(interval time.Duration, fn func()) Timer
}

// ManualScheduler is a virtual-time Scheduler: callbacks fire only when
// Advance is called. Used by tests and headless replay.
type ManualScheduler struct {
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	interval time.Duration
	next     time.Duration
	fn       func()
	stopped  bool
}

func (t *manualTimer) Stop() {
	t.stopped = true
}

// NewManualScheduler creates a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every registers fn to run every interval of virtual time.
// Non-positive intervals are treated as one nanosecond.
func (m *ManualScheduler) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	t := &manualTimer{
		interval: interval,
		next:     m.now + interval,
		fn:       fn,
	}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves virtual time forward by d, firing due callbacks in time
// order. Timers stopped or created by a callback are honoured immediately.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.next
		next.next += next.interval
		next.fn()
	}
	m.now = target
	m.compact()
}

// Now returns the current virtual time.
func (m *ManualScheduler) Now() time.Duration {
	return m.now
}

// Active returns the number of timers that have not been stopped.
func (m *ManualScheduler) Active() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (m *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.stopped || t.next > target {
			continue
		}
		if best == nil || t.next < best.next {
			best = t
		}
	}
	return best
}

func (m *ManualScheduler) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.timers); i++ {
		m.timers[i] = nil
	}
	m.timers = live
}
