package tui

import (
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/notify"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(config.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, keys string) Model {
	for _, r := range keys {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// fireNext fires the oldest pending timer.
func fireNext(t *testing.T, m Model) Model {
	t.Helper()
	ids := make([]uint64, 0, len(m.sched.timers))
	for id := range m.sched.timers {
		ids = append(ids, id)
	}
	require.NotEmpty(t, ids, "no pending timers")
	m, _ = send(m, timerMsg{id: slices.Min(ids)})
	return m
}

func hasEvent(m Model, substr string) bool {
	return slices.ContainsFunc(m.Events(), func(line string) bool {
		return strings.Contains(line, substr)
	})
}

func TestSpawnEachKind(t *testing.T) {
	m := press(newTestModel(t), "iswec")

	active := m.Notifier().Active()
	require.Len(t, active, 5)
	for i, kind := range notify.Kinds() {
		assert.Equal(t, kind, active[i].Kind)
	}
	assert.Contains(t, m.View(), "A new version is available")
	assert.Contains(t, m.View(), "[ Yes ]")
}

func TestTimersDriveExit(t *testing.T) {
	m := press(newTestModel(t), "i")
	require.Len(t, m.sched.timers, 1)
	note := m.Notifier().Active()[0]

	m = fireNext(t, m)
	assert.Equal(t, notify.StateExiting, note.State())
	assert.False(t, note.Container.ClassList().Contains(notify.ClassVisible))

	m = fireNext(t, m)
	assert.Equal(t, 0, m.Notifier().Len())
	assert.True(t, hasEvent(m, "removed info"))
	assert.True(t, hasEvent(m, notify.EventRemoved))
}

func TestConfirmationHasNoTimer(t *testing.T) {
	m := press(newTestModel(t), "c")
	assert.Equal(t, 1, m.Notifier().Len())
	assert.Empty(t, m.sched.timers)
}

func TestHoverPausesAndResumes(t *testing.T) {
	m := press(newTestModel(t), "w")
	note := m.Notifier().Active()[0]
	p := place(m.Notifier().Document(), m.width, m.height, nil)[0]

	m, _ = send(m, tea.MouseMsg{X: p.left + 1, Y: p.top + 1, Action: tea.MouseActionMotion})
	assert.Equal(t, notify.StatePaused, note.State())
	assert.Empty(t, m.sched.timers)
	assert.Contains(t, m.View(), "(hover)")

	m, _ = send(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	assert.Equal(t, notify.StateActive, note.State())
	assert.Len(t, m.sched.timers, 1)
}

func TestClickInvokesAction(t *testing.T) {
	m := press(newTestModel(t), "c")
	note := m.Notifier().Active()[0]
	p := place(m.Notifier().Document(), m.width, m.height, nil)[0]
	require.Len(t, p.buttons, 2)
	yes := p.buttons[0]

	m, _ = send(m, tea.MouseMsg{X: yes.start, Y: yes.row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.True(t, hasEvent(m, `clicked "Yes"`))
	assert.Equal(t, notify.StateExiting, note.State())
	assert.Equal(t, notify.ReasonAction, note.Reason())

	m = fireNext(t, m)
	assert.Equal(t, 0, m.Notifier().Len())
}

func TestClickOutsideButtonDoesNothing(t *testing.T) {
	m := press(newTestModel(t), "c")
	note := m.Notifier().Active()[0]
	p := place(m.Notifier().Document(), m.width, m.height, nil)[0]

	_, _ = send(m, tea.MouseMsg{X: p.left + 1, Y: p.top + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, notify.StateMounted, note.State())
}

func TestOlderCardsMoveUp(t *testing.T) {
	m := press(newTestModel(t), "iii")
	places := place(m.Notifier().Document(), m.width, m.height, nil)
	require.Len(t, places, 3)

	assert.Less(t, places[0].top, places[1].top)
	assert.Less(t, places[1].top, places[2].top)
	assert.Equal(t, m.height-footerLines-places[2].height, places[2].top)
}

func TestDismissAllKey(t *testing.T) {
	m := press(newTestModel(t), "icx")
	for _, note := range m.Notifier().Active() {
		assert.Equal(t, notify.StateExiting, note.State())
	}
	assert.True(t, hasEvent(m, "dismissed 2"))
}

func TestInvalidKindIsReported(t *testing.T) {
	m := press(newTestModel(t), "b")
	assert.Equal(t, 0, m.Notifier().Len())
	assert.True(t, hasEvent(m, "rejected"))
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestScheduler(t *testing.T) {
	s := newScheduler()
	assert.Nil(t, s.drain())

	ran := 0
	timer := s.AfterFunc(time.Second, func() { ran++ })
	assert.NotNil(t, s.drain())

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	s.fire(1)
	assert.Equal(t, 0, ran)

	s.AfterFunc(time.Second, func() { ran++ })
	s.fire(2)
	s.fire(2)
	assert.Equal(t, 1, ran)
}
