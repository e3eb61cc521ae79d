// Package tui provides the BubbleTea-based notification playground. It runs
// a real Notifier inside the bubbletea update loop and draws its document in
// the terminal.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/notify"
)

// maxEvents is how many lines of the event log stay on screen.
const maxEvents = 8

var samples = map[notify.Kind][]string{
	notify.KindInfo:         {"A new version is available", "3 files synced", "Backup scheduled for 02:00"},
	notify.KindSuccess:      {"Settings saved", "Upload complete", "Deployed to staging"},
	notify.KindWarning:      {"Disk is 90% full", "Battery low", "Certificate expires in 7 days"},
	notify.KindError:        {"Connection lost", "Build failed", "Permission denied"},
	notify.KindConfirmation: {"Delete 12 items?", "Restart now to finish updating?", "Discard unsaved changes?"},
}

// eventLog is shared by the model copies and the notifier callbacks.
type eventLog struct {
	lines []string
}

func (l *eventLog) add(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
	if len(l.lines) > maxEvents {
		l.lines = l.lines[len(l.lines)-maxEvents:]
	}
}

// Model is the playground TUI model.
type Model struct {
	notifier *notify.Notifier
	sched    *scheduler
	events   *eventLog

	keys KeyMap
	help help.Model

	width   int
	height  int
	ready   bool
	hovered *dom.Element
	spawned int
}

// New creates a playground model with its own document and notifier.
func New(cfg *config.Config, logger *slog.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	sched := newScheduler()
	events := &eventLog{}
	n := notify.New(dom.New(cellMeasurer{}), sched, cfg.NotifyConfig(), logger)
	n.SetErrorHandler(func(err error) {
		events.add("rejected: %v", err)
	})
	n.OnRemoved(func(note *notify.Notification, reason notify.Reason) {
		events.add("removed %s %s (%s)", note.Kind, shortID(note.ID), reason)
	})
	n.Document().AddEventListener(notify.EventRemoved, func(dom.Event) {
		events.add("%s, %d left", notify.EventRemoved, n.Len())
	})

	return Model{
		notifier: n,
		sched:    sched,
		events:   events,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

// Notifier returns the notifier driving the playground.
func (m Model) Notifier() *notify.Notifier {
	return m.notifier
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m = m.handleMouse(msg)
		return m, m.sched.drain()

	case timerMsg:
		m.sched.fire(msg.id)
		return m, m.sched.drain()
	}
	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Info):
		m.spawn(notify.KindInfo)
	case key.Matches(msg, m.keys.Success):
		m.spawn(notify.KindSuccess)
	case key.Matches(msg, m.keys.Warning):
		m.spawn(notify.KindWarning)
	case key.Matches(msg, m.keys.Error):
		m.spawn(notify.KindError)
	case key.Matches(msg, m.keys.Confirmation):
		m.spawn(notify.KindConfirmation, m.action("Yes"), m.action("No"))
	case key.Matches(msg, m.keys.WithActions):
		kinds := notify.Kinds()
		m.spawn(kinds[m.spawned%len(kinds)], m.action("Open"), m.action("Later"))
	case key.Matches(msg, m.keys.Invalid):
		m.notifier.Create(notify.Kind("bogus"), "this kind does not exist")
	case key.Matches(msg, m.keys.DismissAll):
		count := m.notifier.DismissAll()
		m.events.add("dismissed %d", count)
	default:
		return m, nil
	}
	return m, m.sched.drain()
}

func (m *Model) spawn(kind notify.Kind, actions ...notify.Action) {
	options := samples[kind]
	message := options[m.spawned%len(options)]
	m.spawned++
	if note := m.notifier.Create(kind, message, actions...); note != nil {
		m.events.add("mounted %s %s", kind, shortID(note.ID))
	}
}

func (m Model) action(label string) notify.Action {
	events := m.events
	return notify.Action{
		Label: label,
		Callback: func(container *dom.Element) {
			id, _ := container.Data(notify.DataNotificationID)
			events.add("clicked %q on %s", label, shortID(id))
		},
	}
}

// handleMouse turns motion into pointer enter/leave on the card under the
// cursor and left clicks into button clicks.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	places := place(m.notifier.Document(), m.width, m.height, m.hovered)
	target, onCard := hit(places, msg.X, msg.Y)

	var over *dom.Element
	if onCard {
		over = target.el
	}
	if over != m.hovered {
		if m.hovered != nil {
			m.hovered.DispatchEvent(dom.Event{Type: dom.EventPointerLeave})
		}
		if over != nil {
			over.DispatchEvent(dom.Event{Type: dom.EventPointerEnter})
		}
		m.hovered = over
	}

	if onCard && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if btn, ok := target.button(msg.X, msg.Y); ok {
			btn.DispatchEvent(dom.Event{Type: dom.EventClick})
		}
	}
	return m
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	rows := make([]string, m.height)
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render("toasty playground")
	rows[0] = header + mutedStyle.Render(fmt.Sprintf("  %d on screen", m.notifier.Len()))
	for i, line := range m.events.lines {
		if i+2 < len(rows) {
			rows[i+2] = mutedStyle.Render(line)
		}
	}

	for _, p := range place(m.notifier.Document(), m.width, m.height, m.hovered) {
		for i, line := range strings.Split(p.card, "\n") {
			row := p.top + i
			if row < 0 || row >= m.height-footerLines {
				continue
			}
			rows[row] = strings.Repeat(" ", p.left) + line
		}
	}

	if m.height > 0 {
		rows[m.height-1] = m.help.View(m.keys)
	}
	return strings.Join(rows, "\n")
}

// Events returns the event log, oldest first.
func (m Model) Events() []string {
	return append([]string(nil), m.events.lines...)
}

func shortID(id string) string {
	if len(id) > 6 {
		return id[len(id)-6:]
	}
	return id
}

// Run starts the playground.
func Run(cfg *config.Config, logger *slog.Logger) error {
	p := tea.NewProgram(New(cfg, logger), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
