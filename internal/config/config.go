// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/toasty/internal/notify"
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "4s", "1m", "1h30m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '4s', '1m', '1h30m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the toasty configuration.
// Loaded from ~/.config/toasty/toasty.toml
type Config struct {
	Notifier NotifierConfig `toml:"notifier"`
	Display  DisplayConfig  `toml:"display"`
	Theme    ThemeConfig    `toml:"theme"`
	Audio    AudioConfig    `toml:"audio"`
	Log      LogConfig      `toml:"log"`
}

// NotifierConfig tunes notification lifetime and layout.
type NotifierConfig struct {
	DismissAfter   Duration `toml:"dismiss_after"` // e.g. "4s" or 4000
	MaxActions     int      `toml:"max_actions"`
	PauseOnHover   bool     `toml:"pause_on_hover"`
	ReflowOnRemove bool     `toml:"reflow_on_remove"`
}

// DisplayConfig contains popup placement for the GTK daemon.
type DisplayConfig struct {
	Position string  `toml:"position"` // "bottom-right", "top-left", etc.
	OffsetX  int     `toml:"offset_x"` // Pixels from screen edge
	OffsetY  int     `toml:"offset_y"` // Pixels from screen edge
	Width    int     `toml:"width"`    // Popup width in pixels
	Monitor  int     `toml:"monitor"`  // 0 = default, 1+ = specific monitor
	Opacity  float64 `toml:"opacity"`  // 0.0-1.0
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name        string `toml:"name"`         // Theme name without .css extension
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
}

// AudioConfig contains audio settings.
type AudioConfig struct {
	Enabled bool        `toml:"enabled"`
	Volume  int         `toml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds"`
}

// SoundConfig holds a sound file path per notification kind.
type SoundConfig struct {
	Info         string `toml:"info"`
	Success      string `toml:"success"`
	Warning      string `toml:"warning"`
	Error        string `toml:"error"`
	Confirmation string `toml:"confirmation"`
}

// LogConfig controls the default log level. The --log-level flag wins.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// Position represents the screen corner notifications stack from.
type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopRight     Position = "top-right"
	PositionTopCenter    Position = "top-center"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomCenter Position = "bottom-center"
)

// ValidPositions returns all valid position values.
func ValidPositions() []Position {
	return []Position{
		PositionTopLeft,
		PositionTopRight,
		PositionTopCenter,
		PositionBottomLeft,
		PositionBottomRight,
		PositionBottomCenter,
	}
}

// IsTop reports whether notifications grow downward from the top edge.
func (p Position) IsTop() bool {
	return strings.HasPrefix(string(p), "top-")
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Notifier: NotifierConfig{
			DismissAfter:   Duration(notify.DefaultDismissAfter),
			MaxActions:     notify.DefaultMaxActions,
			PauseOnHover:   true,
			ReflowOnRemove: true,
		},
		Display: DisplayConfig{
			Position: string(PositionBottomRight),
			OffsetX:  16,
			OffsetY:  16,
			Width:    360,
			Monitor:  0,
			Opacity:  1.0,
		},
		Theme: ThemeConfig{
			Name:        "default",
			ColorScheme: string(ColorSchemeSystem),
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the toasty config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "toasty")
}

// Path returns the path to the config file.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "toasty.toml")
}

// Load loads configuration from path, or from Path() if path is empty.
// Returns the default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path, or to Path() if path is empty.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = Path()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Notifier.DismissAfter.Duration() <= 0 {
		return fmt.Errorf("dismiss_after must be positive, got %s", c.Notifier.DismissAfter.Duration())
	}
	if c.Notifier.MaxActions < 1 || c.Notifier.MaxActions > notify.DefaultMaxActions {
		return fmt.Errorf("max_actions must be between 1 and %d, got %d", notify.DefaultMaxActions, c.Notifier.MaxActions)
	}

	if !slices.Contains(ValidPositions(), Position(c.Display.Position)) {
		return fmt.Errorf("invalid position %q, must be one of: %v", c.Display.Position, ValidPositions())
	}
	if c.Display.Width < 100 || c.Display.Width > 1000 {
		return fmt.Errorf("width must be between 100 and 1000, got %d", c.Display.Width)
	}
	if c.Display.Opacity < 0 || c.Display.Opacity > 1 {
		return fmt.Errorf("opacity must be between 0.0 and 1.0, got %v", c.Display.Opacity)
	}

	if !slices.Contains(ValidColorSchemes(), ColorScheme(c.Theme.ColorScheme)) {
		return fmt.Errorf("invalid color_scheme %q, must be one of: %v", c.Theme.ColorScheme, ValidColorSchemes())
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// NotifyConfig converts the [notifier] section for notify.New.
func (c *Config) NotifyConfig() notify.Config {
	return notify.Config{
		DismissAfter:        c.Notifier.DismissAfter.Duration(),
		MaxActions:          c.Notifier.MaxActions,
		DisablePauseOnHover: !c.Notifier.PauseOnHover,
		DisableReflow:       !c.Notifier.ReflowOnRemove,
	}
}

// LogLevel parses the [log] level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// SoundFor returns the sound file configured for kind, with ~ expanded.
func (c *Config) SoundFor(kind notify.Kind) string {
	var path string
	switch kind {
	case notify.KindInfo:
		path = c.Audio.Sounds.Info
	case notify.KindSuccess:
		path = c.Audio.Sounds.Success
	case notify.KindWarning:
		path = c.Audio.Sounds.Warning
	case notify.KindError:
		path = c.Audio.Sounds.Error
	case notify.KindConfirmation:
		path = c.Audio.Sounds.Confirmation
	}
	return expandPath(path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
