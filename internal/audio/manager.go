package audio

import (
	"log/slog"
	"maps"
	"os"
	"sync"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/notify"
)

// Sink plays a resolved sound file. *Player is the real one.
type Sink interface {
	Play(path string) error
	Preload(path string) error
	SetVolume(volume float64)
	ClearCache()
}

// Manager maps notification kinds to sounds and plays them on mount.
type Manager struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	sink    Sink
	enabled bool
	sounds  map[notify.Kind]string

	// play runs the sink off the caller's goroutine; tests replace it.
	play func(path string)
}

// NewManager creates a manager playing through a new Player.
func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return NewManagerWithSink(cfg, NewPlayer(logger), logger)
}

// NewManagerWithSink creates a manager playing through sink.
func NewManagerWithSink(cfg *config.Config, sink Sink, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		logger: logger,
		sink:   sink,
		sounds: make(map[notify.Kind]string),
	}
	m.play = func(path string) {
		go func() {
			if err := m.sink.Play(path); err != nil {
				m.logger.Warn("failed to play sound", "path", path, "error", err)
			}
		}()
	}
	m.UpdateConfig(cfg)
	return m
}

// UpdateConfig reloads volume and per-kind sounds. Missing or unsupported
// files are logged and skipped.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	sounds := make(map[notify.Kind]string)
	for _, kind := range notify.Kinds() {
		path := cfg.SoundFor(kind)
		if path == "" {
			continue
		}
		if !Supported(path) {
			m.logger.Warn("unsupported sound file", "kind", kind, "path", path)
			continue
		}
		if _, err := os.Stat(path); err != nil {
			m.logger.Warn("sound file not found", "kind", kind, "path", path)
			continue
		}
		sounds[kind] = path
	}

	m.mu.Lock()
	m.enabled = cfg.Audio.Enabled
	m.sounds = sounds
	m.mu.Unlock()

	m.sink.ClearCache()
	m.sink.SetVolume(float64(cfg.Audio.Volume) / 100.0)
	m.logger.Debug("audio config loaded", "enabled", cfg.Audio.Enabled, "sounds", len(sounds))
}

// Preload decodes every configured sound.
func (m *Manager) Preload() {
	for _, path := range m.Sounds() {
		if err := m.sink.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound", "path", path, "error", err)
		}
	}
}

// Sounds returns the resolved sound per kind.
func (m *Manager) Sounds() map[notify.Kind]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.sounds)
}

// PlayFor plays the sound for kind. It reports whether a sound was started.
func (m *Manager) PlayFor(kind notify.Kind) bool {
	m.mu.RLock()
	path, ok := m.sounds[kind]
	enabled := m.enabled
	m.mu.RUnlock()

	if !enabled || !ok {
		return false
	}
	m.play(path)
	return true
}

// Attach plays a cue for every notification n shows.
func (m *Manager) Attach(n *notify.Notifier) dom.Listener {
	return n.OnMounted(func(note *notify.Notification) {
		m.PlayFor(note.Kind)
	})
}

// Close releases the sink if it holds a device.
func (m *Manager) Close() {
	if c, ok := m.sink.(interface{ Close() }); ok {
		c.Close()
	}
}
