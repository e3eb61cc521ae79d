package clock

import "time"

// Manual is a deterministic Scheduler driven by Advance. Callbacks run
// synchronously inside Advance, in deadline order.
type Manual struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

// NewManual returns a scheduler whose clock starts at zero.
func NewManual() *Manual {
	return &Manual{}
}

type manualTimer struct {
	gate
	m        *Manual
	deadline time.Duration
	seq      uint64
	fn       func()
}

func (t *manualTimer) Stop() bool {
	if !t.stop() {
		return false
	}
	t.m.drop(t)
	return true
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.seq++
	t := &manualTimer{m: m, deadline: m.now + max(d, 0), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that comes due,
// including timers scheduled by callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.next(target)
		if next == nil {
			break
		}
		m.drop(next)
		m.now = next.deadline
		if next.fire() {
			next.fn()
		}
	}
	m.now = target
}

// Elapsed returns the total time advanced so far.
func (m *Manual) Elapsed() time.Duration {
	return m.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int {
	return len(m.timers)
}

func (m *Manual) next(limit time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.deadline > limit {
			continue
		}
		if best == nil || t.deadline < best.deadline || (t.deadline == best.deadline && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *Manual) drop(target *manualTimer) {
	for i, t := range m.timers {
		if t == target {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}
