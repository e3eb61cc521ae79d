package notify

import (
	"log/slog"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/toasty/internal/clock"
	"github.com/jmylchreest/toasty/internal/dom"
)

// Class names shared with the themes.
const (
	ClassNotification = "notification"
	ClassMessage      = "message"
	ClassAction       = "action"
	ClassVisible      = "visible"
)

// Data attribute keys.
const (
	DataNotificationID = "notification-id"
	DataActionID       = "action-id"
)

// EventRemoved is dispatched on the document, without detail, every time a
// notification finishes its exit and leaves the document.
const EventRemoved = "notifications:removed"

// MountedFunc is called after a notification is shown.
type MountedFunc func(n *Notification)

// RemovedFunc is called after a notification left the document.
type RemovedFunc func(n *Notification, reason Reason)

// Notifier creates toast notifications in a document and manages their
// timers. It is not safe for concurrent use: call it from the event loop that
// drives the scheduler and the document.
type Notifier struct {
	doc     *dom.Document
	sched   clock.Scheduler
	logger  *slog.Logger
	config  Config
	onError ErrorHandler

	active []*Notification // mount order, oldest first
	byID   map[string]*Notification

	mounted hookList[MountedFunc]
	removed hookList[RemovedFunc]
}

// New creates a Notifier drawing into doc. A nil doc gets a fresh document
// and a nil logger falls back to slog.Default.
func New(doc *dom.Document, sched clock.Scheduler, cfg Config, logger *slog.Logger) *Notifier {
	if doc == nil {
		doc = dom.New(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		doc:    doc,
		sched:  sched,
		logger: logger,
		config: cfg.withDefaults(),
		byID:   make(map[string]*Notification),
	}
}

// Document returns the document the notifier draws into.
func (n *Notifier) Document() *dom.Document {
	return n.doc
}

// Config returns the active configuration.
func (n *Notifier) Config() Config {
	return n.config
}

// UpdateConfig replaces the configuration. Notifications that are already
// mounted keep the dismiss duration they were created with.
func (n *Notifier) UpdateConfig(cfg Config) {
	n.config = cfg.withDefaults()
	n.logger.Debug("notifier config updated",
		"dismiss_after", n.config.DismissAfter,
		"max_actions", n.config.MaxActions,
		"pause_on_hover", !n.config.DisablePauseOnHover,
	)
}

// SetErrorHandler sets the callback that receives rejected Create calls in
// addition to the error log line.
func (n *Notifier) SetErrorHandler(h ErrorHandler) {
	n.onError = h
}

// OnMounted registers fn to run after each notification is shown.
func (n *Notifier) OnMounted(fn MountedFunc) dom.Listener {
	return n.mounted.add(fn)
}

// OnRemoved registers fn to run after each notification leaves the document.
func (n *Notifier) OnRemoved(fn RemovedFunc) dom.Listener {
	return n.removed.add(fn)
}

// Info shows an info notification.
func (n *Notifier) Info(message string, actions ...Action) *Notification {
	return n.Create(KindInfo, message, actions...)
}

// Success shows a success notification.
func (n *Notifier) Success(message string, actions ...Action) *Notification {
	return n.Create(KindSuccess, message, actions...)
}

// Warning shows a warning notification.
func (n *Notifier) Warning(message string, actions ...Action) *Notification {
	return n.Create(KindWarning, message, actions...)
}

// Error shows an error notification.
func (n *Notifier) Error(message string, actions ...Action) *Notification {
	return n.Create(KindError, message, actions...)
}

// Confirmation shows a notification that stays until one of its actions is
// clicked.
func (n *Notifier) Confirmation(message string, actions ...Action) *Notification {
	return n.Create(KindConfirmation, message, actions...)
}

// Create mounts a notification of the given kind. An unknown kind or invalid
// actions are reported through the error log and the error handler; the
// document is left untouched and nil is returned.
func (n *Notifier) Create(kind Kind, message string, actions ...Action) *Notification {
	note, _ := n.TryCreate(kind, message, actions...)
	return note
}

// TryCreate is Create for callers that relay the rejection themselves. The
// error is still reported as in Create.
func (n *Notifier) TryCreate(kind Kind, message string, actions ...Action) (*Notification, error) {
	if !kind.Valid() {
		err := &InvalidKindError{Kind: string(kind)}
		n.report(err)
		return nil, err
	}
	if err := validateActions(actions, n.config.MaxActions); err != nil {
		n.report(err)
		return nil, err
	}

	note := &Notification{
		ID:           ulid.Make().String(),
		Kind:         kind,
		Message:      message,
		Actions:      slices.Clone(actions),
		CreatedAt:    time.Now(),
		dismissAfter: n.config.DismissAfter,
	}
	note.Container = n.build(note)

	// Existing notifications move up before the new one joins the set.
	n.stack(n.doc.GetElementsByClassName(ClassNotification), stackStep(n.doc.Measure(note.Container)))
	note.Container.SetPixels("bottom", 0)

	n.doc.Body().AppendChild(note.Container)
	note.Container.ClassList().Add(ClassVisible)

	n.active = append(n.active, note)
	n.byID[note.ID] = note

	if kind.AutoDismiss() {
		note.state = StateActive
		n.startTimer(note)
	} else {
		note.state = StateMounted
	}

	note.listeners = append(note.listeners,
		note.Container.AddEventListener(dom.EventPointerEnter, func(dom.Event) { n.pause(note) }),
		note.Container.AddEventListener(dom.EventPointerLeave, func(dom.Event) { n.resume(note) }),
	)

	n.logger.Debug("notification mounted",
		"id", note.ID,
		"kind", kind,
		"actions", len(actions),
		"active", len(n.active),
	)

	n.mounted.each(func(fn MountedFunc) { fn(note) })
	return note, nil
}

// build creates the detached container with its message and buttons.
func (n *Notifier) build(note *Notification) *dom.Element {
	container := n.doc.CreateElement("div")
	container.ClassList().Add(ClassNotification, string(note.Kind))
	container.SetData(DataNotificationID, note.ID)

	msg := n.doc.CreateElement("span")
	msg.ClassList().Add(ClassMessage)
	msg.AppendText(note.Message)
	container.AppendChild(msg)

	for _, action := range note.Actions {
		btn := n.doc.CreateElement("button")
		btn.ClassList().Add(ClassAction)
		btn.SetData(DataActionID, newActionID())
		btn.AppendText(action.Label)
		container.AppendChild(btn)

		note.listeners = append(note.listeners,
			btn.AddEventListenerOnce(dom.EventClick, func(dom.Event) { n.invoke(note, action) }),
		)
	}
	return container
}

// invoke runs the action callback and then starts the exit. A callback that
// dismisses its own notification wins, so the reason is then dismissed.
func (n *Notifier) invoke(note *Notification, action Action) {
	if !note.Live() {
		return
	}
	n.logger.Debug("notification action invoked", "id", note.ID, "label", action.Label)
	if action.Callback != nil {
		action.Callback(note.Container)
	}
	n.exit(note, ReasonAction)
}

func (n *Notifier) pause(note *Notification) {
	if !note.Kind.AutoDismiss() || n.config.DisablePauseOnHover || note.state != StateActive {
		return
	}
	n.stopTimer(note)
	note.state = StatePaused
}

// resume restarts a paused countdown. It ignores DisablePauseOnHover so a
// notification paused before a config change still leaves.
func (n *Notifier) resume(note *Notification) {
	if note.state != StatePaused {
		return
	}
	n.startTimer(note)
	note.state = StateActive
}

// startTimer replaces any pending dismiss timer with a fresh one.
func (n *Notifier) startTimer(note *Notification) {
	n.stopTimer(note)
	var timer clock.Timer
	timer = n.sched.AfterFunc(note.dismissAfter, func() {
		if note.dismissTimer != timer {
			return
		}
		note.dismissTimer = nil
		n.exit(note, ReasonExpired)
	})
	note.dismissTimer = timer
}

func (n *Notifier) stopTimer(note *Notification) {
	if note.dismissTimer != nil {
		note.dismissTimer.Stop()
		note.dismissTimer = nil
	}
}

// exit starts the exit transition. Once started it cannot be cancelled and
// further triggers are ignored.
func (n *Notifier) exit(note *Notification, reason Reason) {
	if !note.Live() {
		return
	}
	n.stopTimer(note)
	note.state = StateExiting
	note.reason = reason
	note.Container.ClassList().Remove(ClassVisible)
	note.exitTimer = n.sched.AfterFunc(ExitTransition, func() { n.remove(note) })
}

func (n *Notifier) remove(note *Notification) {
	if note.state == StateRemoved {
		return
	}
	note.state = StateRemoved
	note.exitTimer = nil
	for _, l := range note.listeners {
		l.Remove()
	}
	note.listeners = nil
	note.Container.Remove()

	if i := slices.Index(n.active, note); i >= 0 {
		n.active = slices.Delete(n.active, i, i+1)
	}
	delete(n.byID, note.ID)

	if !n.config.DisableReflow {
		n.stack(n.doc.GetElementsByClassName(ClassNotification), 0)
	}

	n.logger.Debug("notification removed",
		"id", note.ID,
		"kind", note.Kind,
		"reason", note.reason,
		"active", len(n.active),
	)

	n.doc.DispatchEvent(dom.Event{Type: EventRemoved})
	n.removed.each(func(fn RemovedFunc) { fn(note, note.reason) })
}

// Dismiss starts the exit of a live notification. It reports false if the id
// is unknown or the notification is already leaving.
func (n *Notifier) Dismiss(id string) bool {
	note, ok := n.byID[id]
	if !ok || !note.Live() {
		return false
	}
	n.exit(note, ReasonDismissed)
	return true
}

// DismissAll starts the exit of every live notification.
func (n *Notifier) DismissAll() int {
	count := 0
	for _, note := range slices.Clone(n.active) {
		if note.Live() {
			n.exit(note, ReasonDismissed)
			count++
		}
	}
	return count
}

// Get returns a notification that is still in the document.
func (n *Notifier) Get(id string) (*Notification, bool) {
	note, ok := n.byID[id]
	return note, ok
}

// Active returns the notifications still in the document, oldest first.
func (n *Notifier) Active() []*Notification {
	return slices.Clone(n.active)
}

// Len returns the number of notifications still in the document.
func (n *Notifier) Len() int {
	return len(n.active)
}

func (n *Notifier) report(err error) {
	n.logger.Error("notification rejected", "error", err)
	if n.onError != nil {
		n.onError(err)
	}
}
