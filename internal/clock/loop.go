package clock

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrLoopStopped is returned when work is posted to a stopped loop.
var ErrLoopStopped = errors.New("event loop stopped")

// Loop runs posted functions one at a time on a dedicated goroutine.
type Loop struct {
	logger *slog.Logger
	queue  chan func()

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewLoop creates a loop with room for buffer queued functions.
func NewLoop(buffer int, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		logger: logger,
		queue:  make(chan func(), buffer),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Run executes posted functions until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.doneCh)
	l.logger.Debug("event loop started")

	for {
		select {
		case fn := <-l.queue:
			fn()
		case <-l.stopCh:
			l.logger.Debug("event loop stopped")
			return nil
		case <-ctx.Done():
			l.logger.Debug("event loop cancelled")
			return ctx.Err()
		}
	}
}

// Stop ends Run. Queued functions that have not started are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.doneCh
}

// Post queues fn. It blocks while the queue is full and reports false if the
// loop stopped first.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopCh:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.stopCh:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrLoopStopped
	}
	select {
	case <-done:
		return nil
	case <-l.stopCh:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AfterFunc implements Scheduler. fn runs on the loop.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.fire() {
				fn()
			}
		})
	})
	return t
}

type loopTimer struct {
	gate
	timer *time.Timer
}

func (t *loopTimer) Stop() bool {
	if !t.stop() {
		return false
	}
	t.timer.Stop()
	return true
}
