package daemon

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/toasty/internal/audio"
	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/dbus"
	"github.com/jmylchreest/toasty/internal/display"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/notify"
	"github.com/jmylchreest/toasty/internal/theme"
)

// AppID is the GTK application id of toastyd.
const AppID = "io.github.jmylchreest.toastyd"

// Options configures a Daemon.
type Options struct {
	// ConfigPath is the file watched for hot reload.
	ConfigPath string
	// Version is reported in logs.
	Version string
	// Level, if set, follows [log] level on reload.
	Level *slog.LevelVar
}

// Daemon owns every toastyd component. Apart from Run, all methods execute
// on the GTK main loop.
type Daemon struct {
	opts   Options
	logger *slog.Logger
	cfg    *config.Config

	app      *adw.Application
	notifier *notify.Notifier
	renderer *display.Renderer
	themes   *theme.Loader
	audio    *audio.Manager
	server   *dbus.Server
	watcher  *config.Watcher
	notices  *Notices
	sound    dom.Listener

	running atomic.Bool
}

// New creates a daemon for cfg.
func New(cfg *config.Config, opts Options, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Daemon{
		opts:    opts,
		logger:  logger,
		cfg:     cfg,
		notices: NewNotices(logger),
	}
}

// Run starts the GTK application and blocks until it exits or ctx is
// cancelled. It returns the application's exit status.
func (d *Daemon) Run(ctx context.Context) int {
	d.logger.Info("starting toastyd", "version", d.opts.Version)

	d.app = adw.NewApplication(AppID, 0)
	d.app.ConnectActivate(d.activate)
	d.app.ConnectShutdown(d.shutdown)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			d.logger.Info("shutting down", "reason", context.Cause(ctx))
			glib.IdleAdd(func() { d.app.Quit() })
		case <-stop:
		}
	}()

	status := d.app.Run([]string{os.Args[0]})
	if status != 0 {
		d.logger.Error("application exited with error", "status", status)
	} else {
		d.logger.Info("toastyd stopped")
	}
	return status
}

func (d *Daemon) activate() {
	if d.running.Load() {
		d.logger.Warn("application already running")
		return
	}
	d.running.Store(true)

	d.themes = theme.NewLoader(d.logger)
	if err := d.themes.LoadTheme(d.cfg.Theme.Name); err != nil {
		d.logger.Warn("failed to load theme", "theme", d.cfg.Theme.Name, "error", err)
	}
	d.themes.Apply(nil)
	d.themes.StartHotReload()

	d.renderer = display.NewRenderer(&d.app.Application, d.cfg, d.logger)
	doc := dom.New(nil)
	d.renderer.Attach(doc)
	d.notifier = notify.New(doc, display.Scheduler{}, d.cfg.NotifyConfig(), d.logger)

	d.audio = audio.NewManager(d.cfg, d.logger)
	d.sound = d.audio.Attach(d.notifier)
	go d.audio.Preload()

	d.notices.SetShowHandler(func(kind notify.Kind, message string) {
		display.Post(func() { d.notifier.Create(kind, message) })
	})

	d.server = dbus.NewServer(d.notifier, display.Post, d.logger)
	if err := d.server.Start(); err != nil {
		d.logger.Error("failed to start D-Bus service", "error", err)
		d.app.Quit()
		return
	}

	d.startConfigWatcher()

	// No window exists until the first notification.
	d.app.Hold()
	d.logger.Info("toastyd ready", "bus_name", dbus.BusName)
}

func (d *Daemon) startConfigWatcher() {
	if d.opts.ConfigPath == "" {
		return
	}
	w, err := config.NewWatcher(d.opts.ConfigPath, d.cfg, d.logger)
	if err != nil {
		d.logger.Warn("failed to create config watcher", "error", err)
		return
	}
	w.SetReloadCallback(func(cfg *config.Config) {
		glib.IdleAdd(func() { d.applyConfig(cfg) })
	})
	w.SetErrorCallback(d.notices.NotifyConfigError)
	if err := w.Start(); err != nil {
		d.logger.Warn("failed to start config watcher", "error", err)
		return
	}
	d.watcher = w
}

// applyConfig pushes a reloaded config into every component.
func (d *Daemon) applyConfig(cfg *config.Config) {
	previous := d.cfg
	d.cfg = cfg

	d.notifier.UpdateConfig(cfg.NotifyConfig())
	d.renderer.UpdateConfig(cfg)
	d.audio.UpdateConfig(cfg)

	if d.opts.Level != nil {
		if level, err := cfg.LogLevel(); err == nil {
			d.opts.Level.Set(level)
		}
	}

	if cfg.Theme.Name != previous.Theme.Name {
		if err := d.themes.LoadTheme(cfg.Theme.Name); err != nil {
			d.logger.Warn("failed to load new theme", "theme", cfg.Theme.Name, "error", err)
			d.notices.NotifyThemeError(err)
		} else {
			d.themes.Apply(nil)
			d.themes.StartHotReload()
			d.notices.NotifyThemeReloaded(cfg.Theme.Name)
		}
	}

	d.logger.Info("config reloaded")
	d.notices.NotifyConfigReloaded()
}

func (d *Daemon) shutdown() {
	if !d.running.Load() {
		return
	}
	d.logger.Info("application shutting down")

	if d.watcher != nil {
		d.watcher.Stop()
	}
	if d.themes != nil {
		d.themes.StopHotReload()
	}
	if d.server != nil {
		_ = d.server.Stop()
		d.server.Close()
	}
	if d.sound != nil {
		d.sound.Remove()
	}
	if d.audio != nil {
		d.audio.Close()
	}
	if d.renderer != nil {
		d.renderer.CloseAll()
	}
	d.running.Store(false)
}
