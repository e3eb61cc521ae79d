package dbus

import (
	"errors"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/toasty/internal/notify"
)

const (
	// Interface is the toasty interface name.
	Interface = "io.github.jmylchreest.Toasty"
	// Path is the toasty object path.
	Path = dbus.ObjectPath("/io/github/jmylchreest/Toasty")
	// BusName is the bus name the daemon claims.
	BusName = "io.github.jmylchreest.Toasty"
)

// Signal names.
const (
	SignalNotificationRemoved  = "NotificationRemoved"
	SignalActionInvoked        = "ActionInvoked"
	SignalNotificationsRemoved = "NotificationsRemoved"
)

// Error names returned for rejected calls.
const (
	ErrorInvalidKind    = Interface + ".Error.InvalidKind"
	ErrorTooManyActions = Interface + ".Error.TooManyActions"
	ErrorInvalidAction  = Interface + ".Error.InvalidAction"
	ErrorUnavailable    = Interface + ".Error.Unavailable"
)

var (
	// ErrNotFound is returned by Client.Dismiss when the id is unknown or the
	// notification is already leaving.
	ErrNotFound = errors.New("notification not found")

	// ErrUnavailable is returned when the daemon's event loop did not run a
	// call in time.
	ErrUnavailable = errors.New("notifier unavailable")
)

// Entry is one row of List. It travels as (ssssx).
type Entry struct {
	ID      string
	Kind    string
	Message string
	State   string
	Created int64 // unix milliseconds
}

// CreatedAt returns Created as a time.
func (e Entry) CreatedAt() time.Time {
	return time.UnixMilli(e.Created)
}

func entryFor(n *notify.Notification) Entry {
	return Entry{
		ID:      n.ID,
		Kind:    string(n.Kind),
		Message: n.Message,
		State:   n.State().String(),
		Created: n.CreatedAt.UnixMilli(),
	}
}

// Outcome is how a waited-on notification left the screen.
type Outcome struct {
	ID     string
	Reason string
	// Action is the label of the clicked button, if any.
	Action string
}

// errorFor converts a notifier rejection into a named D-Bus error.
func errorFor(err error) *dbus.Error {
	var (
		kindErr   *notify.InvalidKindError
		tooMany   *notify.TooManyActionsError
		actionErr *notify.InvalidActionError
	)
	switch {
	case errors.As(err, &kindErr):
		return dbus.NewError(ErrorInvalidKind, []any{err.Error()})
	case errors.As(err, &tooMany):
		return dbus.NewError(ErrorTooManyActions, []any{err.Error()})
	case errors.As(err, &actionErr):
		return dbus.NewError(ErrorInvalidAction, []any{err.Error()})
	case errors.Is(err, ErrUnavailable):
		return dbus.NewError(ErrorUnavailable, []any{err.Error()})
	default:
		return dbus.MakeFailedError(err)
	}
}

// remoteError extracts the name and message of an error reply.
func remoteError(err error) (name, message string, ok bool) {
	var ptr *dbus.Error
	if errors.As(err, &ptr) {
		return ptr.Name, firstString(ptr.Body), true
	}
	var val dbus.Error
	if errors.As(err, &val) {
		return val.Name, firstString(val.Body), true
	}
	return "", "", false
}

func firstString(body []any) string {
	if len(body) == 0 {
		return ""
	}
	s, _ := body[0].(string)
	return s
}
