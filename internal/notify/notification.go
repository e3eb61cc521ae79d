package notify

import (
	"time"

	"github.com/jmylchreest/toasty/internal/clock"
	"github.com/jmylchreest/toasty/internal/dom"
)

// State is a notification's position in its lifecycle.
type State int

const (
	// StateMounted is a confirmation on screen. It has no dismiss timer.
	StateMounted State = iota
	// StateActive is on screen with a running dismiss timer.
	StateActive
	// StatePaused is on screen with the timer cancelled while hovered.
	StatePaused
	// StateExiting has lost the visible class and waits for the exit transition.
	StateExiting
	// StateRemoved is no longer in the document.
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StateMounted:
		return "mounted"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateExiting:
		return "exiting"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Reason records why a notification left.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonExpired means the dismiss timer fired.
	ReasonExpired
	// ReasonAction means one of its action buttons was clicked.
	ReasonAction
	// ReasonDismissed means the host closed it through Dismiss or DismissAll.
	ReasonDismissed
)

func (r Reason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonAction:
		return "action"
	case ReasonDismissed:
		return "dismissed"
	default:
		return "none"
	}
}

// Notification is one mounted toast. Its fields must only be read on the
// event loop that owns the Notifier.
type Notification struct {
	ID        string
	Kind      Kind
	Message   string
	Actions   []Action
	Container *dom.Element
	CreatedAt time.Time

	state        State
	reason       Reason
	dismissAfter time.Duration
	dismissTimer clock.Timer
	exitTimer    clock.Timer
	listeners    []dom.Listener
}

// State returns the current lifecycle state.
func (n *Notification) State() State {
	return n.state
}

// Reason returns why the notification is leaving, or ReasonNone.
func (n *Notification) Reason() Reason {
	return n.reason
}

// HasTimer reports whether a dismiss timer is pending.
func (n *Notification) HasTimer() bool {
	return n.dismissTimer != nil
}

// Live reports whether the notification is on screen and not yet leaving.
func (n *Notification) Live() bool {
	return n.state != StateExiting && n.state != StateRemoved
}

// ActionLabels returns the labels of the attached actions.
func (n *Notification) ActionLabels() []string {
	labels := make([]string, len(n.Actions))
	for i, a := range n.Actions {
		labels[i] = a.Label
	}
	return labels
}
