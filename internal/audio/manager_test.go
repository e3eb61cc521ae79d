package audio

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toasty/internal/clock"
	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/notify"
)

type fakeSink struct {
	played  []string
	volume  float64
	cleared int
}

func (f *fakeSink) Play(path string) error    { f.played = append(f.played, path); return nil }
func (f *fakeSink) Preload(path string) error { return nil }
func (f *fakeSink) SetVolume(v float64)       { f.volume = v }
func (f *fakeSink) ClearCache()               { f.cleared++ }

func newTestManager(t *testing.T, cfg *config.Config) (*Manager, *fakeSink) {
	t.Helper()
	sink := &fakeSink{}
	m := NewManagerWithSink(cfg, sink, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.play = func(path string) { _ = sink.Play(path) }
	return m, sink
}

func writeSound(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0644))
	return path
}

func TestManager_ResolvesSounds(t *testing.T) {
	errSound := writeSound(t, "error.wav")

	cfg := config.DefaultConfig()
	cfg.Audio.Enabled = true
	cfg.Audio.Volume = 40
	cfg.Audio.Sounds.Error = errSound
	cfg.Audio.Sounds.Info = "/nonexistent/info.wav"
	cfg.Audio.Sounds.Success = writeSound(t, "success.flac")

	m, sink := newTestManager(t, cfg)

	assert.Equal(t, map[notify.Kind]string{notify.KindError: errSound}, m.Sounds())
	assert.InDelta(t, 0.4, sink.volume, 1e-9)
	assert.Equal(t, 1, sink.cleared)
}

func TestManager_PlayFor(t *testing.T) {
	warn := writeSound(t, "warn.ogg")
	cfg := config.DefaultConfig()
	cfg.Audio.Enabled = true
	cfg.Audio.Sounds.Warning = warn

	m, sink := newTestManager(t, cfg)

	assert.True(t, m.PlayFor(notify.KindWarning))
	assert.False(t, m.PlayFor(notify.KindInfo))
	assert.Equal(t, []string{warn}, sink.played)
}

func TestManager_Disabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Audio.Enabled = false
	cfg.Audio.Sounds.Warning = writeSound(t, "warn.wav")

	m, sink := newTestManager(t, cfg)

	assert.False(t, m.PlayFor(notify.KindWarning))
	assert.Empty(t, sink.played)
}

func TestManager_AttachPlaysOnMount(t *testing.T) {
	success := writeSound(t, "ok.mp3")
	cfg := config.DefaultConfig()
	cfg.Audio.Enabled = true
	cfg.Audio.Sounds.Success = success

	m, sink := newTestManager(t, cfg)
	n := notify.New(dom.New(nil), clock.NewManual(), notify.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	handle := m.Attach(n)
	n.Success("saved")
	n.Info("no sound")
	n.Create(notify.Kind("bogus"), "rejected")
	handle.Remove()
	n.Success("detached")

	assert.Equal(t, []string{success}, sink.played)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("/a/b.WAV"))
	assert.True(t, Supported("b.ogg"))
	assert.True(t, Supported("b.mp3"))
	assert.False(t, Supported("b.flac"))
	assert.False(t, Supported("noext"))
}

func TestPlayer_UnsupportedFormat(t *testing.T) {
	p := NewPlayer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := p.Play("/tmp/sound.flac")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPlayer_Volume(t *testing.T) {
	p := NewPlayer(nil)
	p.SetVolume(2)
	assert.Equal(t, 1.0, p.Volume())
	p.SetVolume(-1)
	assert.Equal(t, 0.0, p.Volume())
	assert.InDelta(t, -1.0, gainExponent(0.5), 1e-9)
}
