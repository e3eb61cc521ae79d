// Package dbus exposes the notifier on the session bus as
// io.github.jmylchreest.Toasty. The Server runs inside the daemon and
// forwards every call onto the notifier's event loop. The Client is used by
// the toasty CLI to create, dismiss and list notifications and to wait for
// their outcome.
package dbus
