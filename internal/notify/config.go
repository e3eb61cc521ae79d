package notify

import "time"

const (
	// DefaultDismissAfter is how long a notification stays before it starts
	// to leave on its own.
	DefaultDismissAfter = 4000 * time.Millisecond

	// ExitTransition is the time between dropping the visible class and
	// removing the container. Themes animate the exit over the same period.
	// It is independent of the dismiss duration.
	ExitTransition = 200 * time.Millisecond

	// DefaultMaxActions is the number of action buttons a notification may carry.
	DefaultMaxActions = 2
)

// Config tunes one Notifier. The zero value is the default behaviour: 4000ms
// dismiss, two actions, pause on hover and reflow after removal.
type Config struct {
	DismissAfter        time.Duration
	MaxActions          int
	DisablePauseOnHover bool
	DisableReflow       bool // keep the remaining notifications in place after a removal
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		DismissAfter: DefaultDismissAfter,
		MaxActions:   DefaultMaxActions,
	}
}

func (c Config) withDefaults() Config {
	if c.DismissAfter <= 0 {
		c.DismissAfter = DefaultDismissAfter
	}
	if c.MaxActions <= 0 {
		c.MaxActions = DefaultMaxActions
	}
	return c
}
