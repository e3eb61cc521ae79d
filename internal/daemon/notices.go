package daemon

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/toasty/internal/notify"
)

// DefaultNoticeInterval is how long a notice key stays quiet after it fired.
const DefaultNoticeInterval = 5 * time.Second

// Notices shows toastyd's own events (config reloads, theme errors) as
// toasts through the same Notifier clients use. Repeats of a key are
// rate-limited.
type Notices struct {
	mu     sync.Mutex
	logger *slog.Logger

	show func(kind notify.Kind, message string)
	now  func() time.Time

	last        map[string]time.Time
	minInterval time.Duration
	enabled     bool
}

// NewNotices creates a rate-limited notice sender.
func NewNotices(logger *slog.Logger) *Notices {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notices{
		logger:      logger,
		now:         time.Now,
		last:        make(map[string]time.Time),
		minInterval: DefaultNoticeInterval,
		enabled:     true,
	}
}

// SetShowHandler sets the function that displays a notice. The daemon points
// it at the Notifier on the GTK main loop.
func (n *Notices) SetShowHandler(show func(kind notify.Kind, message string)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.show = show
}

// SetEnabled enables or disables notices.
func (n *Notices) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between notices with the same key.
func (n *Notices) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify shows message unless key fired within the minimum interval. It
// reports whether the notice was shown.
func (n *Notices) Notify(key string, kind notify.Kind, message string) bool {
	n.mu.Lock()
	if !n.enabled {
		n.mu.Unlock()
		return false
	}
	if n.show == nil {
		n.mu.Unlock()
		n.logger.Debug("notice skipped: no handler", "key", key)
		return false
	}

	now := n.now()
	if last, ok := n.last[key]; ok && now.Sub(last) < n.minInterval {
		n.mu.Unlock()
		n.logger.Debug("notice rate-limited", "key", key)
		return false
	}
	n.last[key] = now
	show := n.show
	n.mu.Unlock()

	n.logger.Debug("showing notice", "key", key, "kind", kind)
	show(kind, message)
	return true
}

// NotifyConfigReloaded announces a successful config reload.
func (n *Notices) NotifyConfigReloaded() {
	n.Notify("config-reload", notify.KindSuccess, "Configuration reloaded")
}

// NotifyConfigError reports a config file that failed to load.
func (n *Notices) NotifyConfigError(err error) {
	n.Notify("config-error", notify.KindWarning, "Configuration not reloaded: "+err.Error())
}

// NotifyThemeReloaded announces a theme switch.
func (n *Notices) NotifyThemeReloaded(name string) {
	n.Notify("theme-reload", notify.KindInfo, "Theme '"+name+"' loaded")
}

// NotifyThemeError reports a theme that failed to load.
func (n *Notices) NotifyThemeError(err error) {
	n.Notify("theme-error", notify.KindError, "Failed to load theme: "+err.Error())
}
