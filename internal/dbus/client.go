package dbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Client calls the toasty daemon over the session bus.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Connect opens a private session bus connection.
func Connect() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{
		conn: conn,
		obj:  conn.Object(BusName, Path),
	}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Create shows a notification and returns its id.
func (c *Client) Create(ctx context.Context, kind, message string, actions []string) (string, error) {
	if actions == nil {
		actions = []string{}
	}
	var id string
	err := c.obj.CallWithContext(ctx, Interface+".Create", 0, kind, message, actions).Store(&id)
	if err != nil {
		return "", callError("create notification", err)
	}
	return id, nil
}

// Dismiss starts the exit of id. It returns ErrNotFound if the daemon does
// not know id or it is already leaving.
func (c *Client) Dismiss(ctx context.Context, id string) error {
	var ok bool
	if err := c.obj.CallWithContext(ctx, Interface+".Dismiss", 0, id).Store(&ok); err != nil {
		return callError("dismiss notification", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// DismissAll starts the exit of every notification.
func (c *Client) DismissAll(ctx context.Context) error {
	if err := c.obj.CallWithContext(ctx, Interface+".DismissAll", 0).Err; err != nil {
		return callError("dismiss notifications", err)
	}
	return nil
}

// List returns the notifications on screen, oldest first.
func (c *Client) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.obj.CallWithContext(ctx, Interface+".List", 0).Store(&entries); err != nil {
		return nil, callError("list notifications", err)
	}
	return entries, nil
}

// Subscribe starts receiving toasty signals. Subscribe before Create when the
// outcome of the new notification is needed, so no signal is missed.
func (c *Client) Subscribe() (*Subscription, error) {
	opts := []dbus.MatchOption{
		dbus.WithMatchInterface(Interface),
		dbus.WithMatchObjectPath(Path),
	}
	if err := c.conn.AddMatchSignal(opts...); err != nil {
		return nil, fmt.Errorf("failed to add signal match: %w", err)
	}
	ch := make(chan *dbus.Signal, 16)
	c.conn.Signal(ch)
	return &Subscription{conn: c.conn, opts: opts, ch: ch}, nil
}

// Subscription delivers toasty signals to Wait.
type Subscription struct {
	conn *dbus.Conn
	opts []dbus.MatchOption
	ch   chan *dbus.Signal
}

// Wait blocks until the notification id is removed and reports how it left.
func (s *Subscription) Wait(ctx context.Context, id string) (Outcome, error) {
	out := Outcome{ID: id}
	for {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case sig, ok := <-s.ch:
			if !ok {
				return out, errors.New("signal channel closed")
			}
			if track(sig, &out) {
				return out, nil
			}
		}
	}
}

// Close stops the subscription.
func (s *Subscription) Close() error {
	s.conn.RemoveSignal(s.ch)
	if err := s.conn.RemoveMatchSignal(s.opts...); err != nil {
		return fmt.Errorf("failed to remove signal match: %w", err)
	}
	return nil
}

// track folds sig into out and reports whether out.ID has been removed.
func track(sig *dbus.Signal, out *Outcome) bool {
	if sig == nil || len(sig.Body) < 2 {
		return false
	}
	id, _ := sig.Body[0].(string)
	if id != out.ID {
		return false
	}
	value, _ := sig.Body[1].(string)

	switch sig.Name {
	case Interface + "." + SignalActionInvoked:
		out.Action = value
	case Interface + "." + SignalNotificationRemoved:
		out.Reason = value
		return true
	}
	return false
}

// callError keeps the daemon's message for rejected calls.
func callError(op string, err error) error {
	if name, msg, ok := remoteError(err); ok {
		switch name {
		case "org.freedesktop.DBus.Error.ServiceUnknown", "org.freedesktop.DBus.Error.NameHasNoOwner":
			return fmt.Errorf("failed to %s: toastyd is not running", op)
		}
		if msg != "" {
			return fmt.Errorf("failed to %s: %s", op, msg)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
