package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toasty/internal/notify"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 4000*time.Millisecond, cfg.Notifier.DismissAfter.Duration())
	assert.Equal(t, 2, cfg.Notifier.MaxActions)
	assert.True(t, cfg.Notifier.PauseOnHover)
	assert.True(t, cfg.Notifier.ReflowOnRemove)
	assert.Equal(t, "bottom-right", cfg.Display.Position)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.False(t, cfg.Audio.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_MatchesNotifier(t *testing.T) {
	assert.Equal(t, notify.DefaultConfig(), DefaultConfig().NotifyConfig())
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/toasty.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toasty.toml")

	content := `
[notifier]
dismiss_after = "2s"
max_actions = 1
pause_on_hover = false
reflow_on_remove = false

[display]
position = "top-left"
offset_x = 4
width = 420
opacity = 0.9

[theme]
name = "minimal"
color_scheme = "dark"

[audio]
enabled = true
volume = 50

[audio.sounds]
error = "/usr/share/sounds/error.oga"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Notifier.DismissAfter.Duration())
	assert.Equal(t, 1, cfg.Notifier.MaxActions)
	assert.False(t, cfg.Notifier.PauseOnHover)
	assert.False(t, cfg.Notifier.ReflowOnRemove)
	assert.Equal(t, "top-left", cfg.Display.Position)
	assert.True(t, Position(cfg.Display.Position).IsTop())
	assert.Equal(t, 4, cfg.Display.OffsetX)
	assert.Equal(t, 16, cfg.Display.OffsetY)
	assert.Equal(t, 420, cfg.Display.Width)
	assert.Equal(t, "minimal", cfg.Theme.Name)
	assert.Equal(t, "dark", cfg.Theme.ColorScheme)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, "/usr/share/sounds/error.oga", cfg.SoundFor(notify.KindError))
	assert.Empty(t, cfg.SoundFor(notify.KindInfo))

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	nc := cfg.NotifyConfig()
	assert.Equal(t, 2*time.Second, nc.DismissAfter)
	assert.Equal(t, 1, nc.MaxActions)
	assert.True(t, nc.DisablePauseOnHover)
	assert.True(t, nc.DisableReflow)
}

func TestLoad_DurationAsMilliseconds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toasty.toml")
	require.NoError(t, os.WriteFile(path, []byte("[notifier]\ndismiss_after = \"1500\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.Notifier.DismissAfter.Duration())
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toasty.toml")
	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero dismiss", func(c *Config) { c.Notifier.DismissAfter = 0 }},
		{"too many actions", func(c *Config) { c.Notifier.MaxActions = 3 }},
		{"bad position", func(c *Config) { c.Display.Position = "middle" }},
		{"narrow", func(c *Config) { c.Display.Width = 10 }},
		{"opacity", func(c *Config) { c.Display.Opacity = 1.5 }},
		{"color scheme", func(c *Config) { c.Theme.ColorScheme = "sepia" }},
		{"volume", func(c *Config) { c.Audio.Volume = 101 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "toasty.toml")

	cfg := DefaultConfig()
	cfg.Notifier.DismissAfter = Duration(6 * time.Second)
	cfg.Audio.Sounds.Success = "/tmp/ding.wav"

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSoundFor_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Audio.Sounds.Warning = "~/sounds/warn.wav"
	assert.Equal(t, filepath.Join(home, "sounds", "warn.wav"), cfg.SoundFor(notify.KindWarning))
}

func TestPath_UsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/toasty/toasty.toml", Path())
}

func TestWatcher_Reloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toasty.toml")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := NewWatcher(path, nil, logger)
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)

	reloaded := make(chan *Config, 4)
	failed := make(chan error, 4)
	w.SetReloadCallback(func(cfg *Config) { reloaded <- cfg })
	w.SetErrorCallback(func(err error) { failed <- err })

	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[notifier]\ndismiss_after = \"3s\"\n"), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 3*time.Second, cfg.Notifier.DismissAfter.Duration())
		assert.Same(t, cfg, w.Current())
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	require.NoError(t, os.WriteFile(path, []byte("[display]\nposition = \"nowhere\"\n"), 0644))

	select {
	case err := <-failed:
		assert.Contains(t, err.Error(), "nowhere")
		assert.Equal(t, 3*time.Second, w.Current().Notifier.DismissAfter.Duration())
	case <-time.After(5 * time.Second):
		t.Fatal("invalid config was not reported")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "toasty.toml"), nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	w.Stop()
	w.Stop()
}
