// Package clock schedules callbacks onto a single event loop.
//
// Everything that touches a dom.Document runs on one goroutine: timer
// callbacks are posted back to the loop instead of running on the runtime's
// timer goroutine.
package clock

import (
	"sync/atomic"
	"time"
)

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it already fired or was stopped.
	Stop() bool
}

// Scheduler runs fn after d has elapsed, on the caller's event loop.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

// gate makes Stop authoritative even when the callback is already queued.
type gate struct {
	state atomic.Int32
}

func (g *gate) fire() bool {
	return g.state.CompareAndSwap(timerPending, timerFired)
}

func (g *gate) stop() bool {
	return g.state.CompareAndSwap(timerPending, timerStopped)
}
