package daemon

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jmylchreest/toasty/internal/audio"
	"github.com/jmylchreest/toasty/internal/clock"
	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/dbus"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/notify"
)

// Headless runs the Notifier and the D-Bus service on a clock.Loop with no
// display attached. Clients see the same methods and signals as with the GTK
// daemon, and audio cues still play.
type Headless struct {
	opts   Options
	logger *slog.Logger
	cfg    *config.Config

	loop     *clock.Loop
	notifier *notify.Notifier
	audio    *audio.Manager
	server   *dbus.Server
	watcher  *config.Watcher
	notices  *Notices
	sound    dom.Listener
}

// NewHeadless creates a headless daemon for cfg.
func NewHeadless(cfg *config.Config, opts Options, logger *slog.Logger) *Headless {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Headless{
		opts:    opts,
		logger:  logger,
		cfg:     cfg,
		notices: NewNotices(logger),
	}
}

// build creates the loop and the components that live on it.
func (h *Headless) build(sink audio.Sink) {
	h.loop = clock.NewLoop(0, h.logger)
	h.notifier = notify.New(dom.New(nil), h.loop, h.cfg.NotifyConfig(), h.logger)

	if sink != nil {
		h.audio = audio.NewManagerWithSink(h.cfg, sink, h.logger)
	} else {
		h.audio = audio.NewManager(h.cfg, h.logger)
	}
	h.sound = h.audio.Attach(h.notifier)

	h.notices.SetShowHandler(func(kind notify.Kind, message string) {
		h.loop.Post(func() { h.notifier.Create(kind, message) })
	})
}

// Run serves until ctx is cancelled and returns the exit status.
func (h *Headless) Run(ctx context.Context) int {
	h.logger.Info("starting toastyd", "version", h.opts.Version, "headless", true)

	h.build(nil)
	go h.audio.Preload()

	h.server = dbus.NewServer(h.notifier, h.loop.Post, h.logger)
	if err := h.server.Start(); err != nil {
		h.logger.Error("failed to start D-Bus service", "error", err)
		h.shutdown()
		return 1
	}
	h.startConfigWatcher()
	h.logger.Info("toastyd ready", "bus_name", dbus.BusName)

	err := h.loop.Run(ctx)
	h.shutdown()
	if err != nil && !errors.Is(err, context.Canceled) {
		h.logger.Error("event loop failed", "error", err)
		return 1
	}
	h.logger.Info("toastyd stopped")
	return 0
}

func (h *Headless) startConfigWatcher() {
	if h.opts.ConfigPath == "" {
		return
	}
	w, err := config.NewWatcher(h.opts.ConfigPath, h.cfg, h.logger)
	if err != nil {
		h.logger.Warn("failed to create config watcher", "error", err)
		return
	}
	w.SetReloadCallback(func(cfg *config.Config) {
		h.loop.Post(func() { h.applyConfig(cfg) })
	})
	w.SetErrorCallback(h.notices.NotifyConfigError)
	if err := w.Start(); err != nil {
		h.logger.Warn("failed to start config watcher", "error", err)
		return
	}
	h.watcher = w
}

// applyConfig runs on the loop.
func (h *Headless) applyConfig(cfg *config.Config) {
	h.cfg = cfg
	h.notifier.UpdateConfig(cfg.NotifyConfig())
	h.audio.UpdateConfig(cfg)

	if h.opts.Level != nil {
		if level, err := cfg.LogLevel(); err == nil {
			h.opts.Level.Set(level)
		}
	}

	h.logger.Info("config reloaded")
	h.notices.NotifyConfigReloaded()
}

func (h *Headless) shutdown() {
	if h.watcher != nil {
		h.watcher.Stop()
	}
	if h.server != nil {
		_ = h.server.Stop()
		h.server.Close()
	}
	if h.sound != nil {
		h.sound.Remove()
	}
	if h.audio != nil {
		h.audio.Close()
	}
	if h.loop != nil {
		h.loop.Stop()
	}
}
