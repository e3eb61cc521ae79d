package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/toasty/internal/clock"
)

// timerMsg fires the scheduler timer with the same id.
type timerMsg struct {
	id uint64
}

// scheduler turns Notifier timers into tea.Tick commands so their callbacks
// run inside Update like every other event.
type scheduler struct {
	next    uint64
	timers  map[uint64]*teaTimer
	pending []tea.Cmd
}

var _ clock.Scheduler = (*scheduler)(nil)

type teaTimer struct {
	s    *scheduler
	id   uint64
	fn   func()
	done bool
}

func (t *teaTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	delete(t.s.timers, t.id)
	return true
}

func newScheduler() *scheduler {
	return &scheduler{timers: make(map[uint64]*teaTimer)}
}

// AfterFunc implements clock.Scheduler. The tick command is queued until the
// next drain.
func (s *scheduler) AfterFunc(d time.Duration, fn func()) clock.Timer {
	s.next++
	t := &teaTimer{s: s, id: s.next, fn: fn}
	s.timers[t.id] = t
	id := t.id
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
	return t
}

// fire runs a timer that has not been stopped.
func (s *scheduler) fire(id uint64) {
	t, ok := s.timers[id]
	if !ok {
		return
	}
	delete(s.timers, id)
	t.done = true
	t.fn()
}

// drain returns the ticks queued since the last call.
func (s *scheduler) drain() tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
