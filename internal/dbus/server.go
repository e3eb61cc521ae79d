package dbus

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/notify"
)

// DefaultCallTimeout bounds how long a bus call waits for the event loop.
const DefaultCallTimeout = 5 * time.Second

// Poster queues fn on the goroutine that owns the notifier. It reports false
// if fn will never run.
type Poster func(fn func()) bool

// Server implements the io.github.jmylchreest.Toasty interface on top of a
// Notifier. Bus methods arrive on godbus goroutines and are forwarded
// through the Poster.
type Server struct {
	notifier *notify.Notifier
	post     Poster
	logger   *slog.Logger
	timeout  time.Duration

	// emit sends a signal; tests replace it.
	emit func(name string, args ...any) error

	mu        sync.Mutex
	conn      *dbus.Conn
	running   bool
	listeners []dom.Listener
}

// NewServer creates a server for n. It subscribes to the notifier's removal
// hooks, so it must be called on the notifier's event loop.
func NewServer(n *notify.Notifier, post Poster, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		notifier: n,
		post:     post,
		logger:   logger,
		timeout:  DefaultCallTimeout,
	}
	s.emit = s.emitOnBus

	s.listeners = append(s.listeners,
		n.OnRemoved(func(note *notify.Notification, reason notify.Reason) {
			s.signal(SignalNotificationRemoved, note.ID, reason.String())
		}),
		n.Document().AddEventListener(notify.EventRemoved, func(dom.Event) {
			s.signal(SignalNotificationsRemoved)
		}),
	)
	return s
}

// SetCallTimeout overrides DefaultCallTimeout.
func (s *Server) SetCallTimeout(d time.Duration) {
	s.timeout = d
}

// Start connects to the session bus, exports the object and claims BusName.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := conn.Export(s, Path, Interface); err != nil {
		return fmt.Errorf("failed to export toasty interface: %w", err)
	}

	node := &introspect.Node{
		Name: string(Path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: toastyMethods(),
				Signals: toastySignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), Path, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspection: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken (is another toastyd running?)", BusName)
	}

	s.conn = conn
	s.running = true
	s.logger.Info("D-Bus service started", "bus_name", BusName, "path", Path)
	return nil
}

// Stop releases the bus name. Notifier hooks stay registered until Close.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if _, err := s.conn.ReleaseName(BusName); err != nil {
		s.logger.Warn("failed to release bus name", "error", err)
	}
	s.conn = nil
	s.logger.Info("D-Bus service stopped")
	return nil
}

// Close removes the notifier hooks. Call it on the event loop.
func (s *Server) Close() {
	for _, l := range s.listeners {
		l.Remove()
	}
	s.listeners = nil
}

// Create shows a notification. Each action label becomes a button that emits
// ActionInvoked when clicked.
// D-Bus method: Create(s kind, s message, as actions) -> s id
func (s *Server) Create(kind, message string, actions []string) (string, *dbus.Error) {
	s.logger.Debug("Create called", "kind", kind, "actions", len(actions))

	acts := make([]notify.Action, len(actions))
	for i, label := range actions {
		acts[i] = notify.Action{Label: label, Callback: s.actionCallback(label)}
	}

	var (
		id        string
		createErr error
	)
	if err := s.do(func() {
		note, err := s.notifier.TryCreate(notify.Kind(kind), message, acts...)
		if err != nil {
			createErr = err
			return
		}
		id = note.ID
	}); err != nil {
		return "", errorFor(err)
	}
	if createErr != nil {
		return "", errorFor(createErr)
	}
	return id, nil
}

// Dismiss starts the exit of a notification.
// D-Bus method: Dismiss(s id) -> b ok
func (s *Server) Dismiss(id string) (bool, *dbus.Error) {
	var ok bool
	if err := s.do(func() { ok = s.notifier.Dismiss(id) }); err != nil {
		return false, errorFor(err)
	}
	s.logger.Debug("Dismiss called", "id", id, "ok", ok)
	return ok, nil
}

// DismissAll starts the exit of every live notification.
// D-Bus method: DismissAll()
func (s *Server) DismissAll() *dbus.Error {
	var count int
	if err := s.do(func() { count = s.notifier.DismissAll() }); err != nil {
		return errorFor(err)
	}
	s.logger.Debug("DismissAll called", "dismissed", count)
	return nil
}

// List returns the notifications still on screen, oldest first.
// D-Bus method: List() -> a(ssssx)
func (s *Server) List() ([]Entry, *dbus.Error) {
	var entries []Entry
	if err := s.do(func() {
		active := s.notifier.Active()
		entries = make([]Entry, 0, len(active))
		for _, note := range active {
			entries = append(entries, entryFor(note))
		}
	}); err != nil {
		return nil, errorFor(err)
	}
	return entries, nil
}

func (s *Server) actionCallback(label string) func(*dom.Element) {
	return func(container *dom.Element) {
		id, _ := container.Data(notify.DataNotificationID)
		s.signal(SignalActionInvoked, id, label)
	}
}

// do runs fn on the event loop and waits for it. A call that times out
// before fn started is abandoned: fn never runs, so a caller told
// Unavailable can retry without duplicating the work. Once fn started, do
// waits for it.
func (s *Server) do(fn func()) error {
	var (
		mu        sync.Mutex
		started   bool
		abandoned bool
	)
	done := make(chan struct{})
	if !s.post(func() {
		mu.Lock()
		if abandoned {
			mu.Unlock()
			return
		}
		started = true
		mu.Unlock()

		defer close(done)
		fn()
	}) {
		return ErrUnavailable
	}

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-timer.C:
	}

	mu.Lock()
	if started {
		mu.Unlock()
		<-done
		return nil
	}
	abandoned = true
	mu.Unlock()
	return fmt.Errorf("%w: call timed out after %s", ErrUnavailable, s.timeout)
}

func (s *Server) signal(name string, args ...any) {
	if err := s.emit(name, args...); err != nil {
		s.logger.Warn("failed to emit signal", "signal", name, "error", err)
		return
	}
	s.logger.Debug("emitted signal", "signal", name)
}

func (s *Server) emitOnBus(name string, args ...any) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	// Nothing is listening before Start.
	if conn == nil {
		return nil
	}
	if err := conn.Emit(Path, Interface+"."+name, args...); err != nil {
		return fmt.Errorf("failed to emit %s signal: %w", name, err)
	}
	return nil
}

func toastyMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Create",
			Args: []introspect.Arg{
				{Name: "kind", Type: "s", Direction: "in"},
				{Name: "message", Type: "s", Direction: "in"},
				{Name: "actions", Type: "as", Direction: "in"},
				{Name: "id", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "Dismiss",
			Args: []introspect.Arg{
				{Name: "id", Type: "s", Direction: "in"},
				{Name: "ok", Type: "b", Direction: "out"},
			},
		},
		{
			Name: "DismissAll",
		},
		{
			Name: "List",
			Args: []introspect.Arg{
				{Name: "notifications", Type: "a(ssssx)", Direction: "out"},
			},
		},
	}
}

func toastySignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: SignalNotificationRemoved,
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
				{Name: "reason", Type: "s"},
			},
		},
		{
			Name: SignalActionInvoked,
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
				{Name: "label", Type: "s"},
			},
		},
		{
			Name: SignalNotificationsRemoved,
		},
	}
}
