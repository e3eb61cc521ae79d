package display

import (
	"sync/atomic"
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/toasty/internal/clock"
)

// Scheduler runs timer callbacks on the GLib main loop, the same loop that
// delivers GTK input, so the Notifier never needs locking.
type Scheduler struct{}

var _ clock.Scheduler = Scheduler{}

type sourceTimer struct {
	stopped atomic.Bool
	fired   atomic.Bool
}

// Stop prevents the callback from running. The GLib source stays attached
// until its deadline and then returns without calling fn.
func (t *sourceTimer) Stop() bool {
	if t.fired.Load() {
		return false
	}
	return t.stopped.CompareAndSwap(false, true)
}

// AfterFunc implements clock.Scheduler.
func (Scheduler) AfterFunc(d time.Duration, fn func()) clock.Timer {
	t := &sourceTimer{}
	ms := max(d.Milliseconds(), 0)
	glib.TimeoutAdd(uint(ms), func() bool {
		if t.stopped.Load() || !t.fired.CompareAndSwap(false, true) {
			return false
		}
		fn()
		return false
	})
	return t
}

// Post queues fn on the GLib main loop. It matches dbus.Poster.
func Post(fn func()) bool {
	glib.IdleAdd(fn)
	return true
}
