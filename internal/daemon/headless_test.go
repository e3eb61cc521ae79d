package daemon

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/notify"
)

type nopSink struct{}

func (nopSink) Play(string) error    { return nil }
func (nopSink) Preload(string) error { return nil }
func (nopSink) SetVolume(float64)    {}
func (nopSink) ClearCache()          {}

// startHeadless builds a headless daemon without a bus and runs its loop.
func startHeadless(t *testing.T, level *slog.LevelVar) *Headless {
	t.Helper()
	h := NewHeadless(config.DefaultConfig(), Options{Level: level}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.build(nopSink{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = h.loop.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-h.loop.Done()
	})
	return h
}

// onLoop runs fn on the daemon loop and waits for it.
func onLoop(t *testing.T, h *Headless, fn func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, h.loop.Do(ctx, fn))
}

// activeCount is safe to call from Eventually's goroutine.
func activeCount(h *Headless) int {
	n := -1
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = h.loop.Do(ctx, func() { n = h.notifier.Len() })
	return n
}

func TestHeadless_NoticesReachNotifier(t *testing.T) {
	h := startHeadless(t, nil)

	h.notices.NotifyConfigReloaded()

	require.Eventually(t, func() bool { return activeCount(h) == 1 }, time.Second, 10*time.Millisecond)

	onLoop(t, h, func() {
		note := h.notifier.Active()[0]
		assert.Equal(t, notify.KindSuccess, note.Kind)
		assert.Equal(t, "Configuration reloaded", note.Message)
	})
}

func TestHeadless_ApplyConfig(t *testing.T) {
	level := new(slog.LevelVar)
	h := startHeadless(t, level)

	cfg := config.DefaultConfig()
	cfg.Notifier.DismissAfter = config.Duration(10 * time.Second)
	cfg.Log.Level = "debug"

	onLoop(t, h, func() { h.applyConfig(cfg) })

	onLoop(t, h, func() {
		assert.Equal(t, 10*time.Second, h.notifier.Config().DismissAfter)
	})
	assert.Equal(t, slog.LevelDebug, level.Level())
}

func TestHeadless_TimersRunOnLoop(t *testing.T) {
	h := startHeadless(t, nil)

	cfg := config.DefaultConfig()
	cfg.Notifier.DismissAfter = config.Duration(20 * time.Millisecond)
	onLoop(t, h, func() {
		h.notifier.UpdateConfig(cfg.NotifyConfig())
		h.notifier.Info("short lived")
	})

	require.Eventually(t, func() bool { return activeCount(h) == 0 }, 2*time.Second, 10*time.Millisecond)
}
