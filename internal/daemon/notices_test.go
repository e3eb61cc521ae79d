package daemon

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/toasty/internal/notify"
)

type shown struct {
	kind    notify.Kind
	message string
}

func newTestNotices() (*Notices, *[]shown, *time.Time) {
	n := NewNotices(slog.New(slog.NewTextHandler(io.Discard, nil)))
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return now }
	var got []shown
	n.SetShowHandler(func(kind notify.Kind, message string) {
		got = append(got, shown{kind, message})
	})
	return n, &got, &now
}

func TestNotices_RateLimitsPerKey(t *testing.T) {
	n, got, now := newTestNotices()

	assert.True(t, n.Notify("a", notify.KindInfo, "first"))
	assert.False(t, n.Notify("a", notify.KindInfo, "again"))
	assert.True(t, n.Notify("b", notify.KindInfo, "other key"))

	*now = now.Add(DefaultNoticeInterval)
	assert.True(t, n.Notify("a", notify.KindInfo, "later"))

	assert.Equal(t, []shown{
		{notify.KindInfo, "first"},
		{notify.KindInfo, "other key"},
		{notify.KindInfo, "later"},
	}, *got)
}

func TestNotices_MinInterval(t *testing.T) {
	n, got, now := newTestNotices()
	n.SetMinInterval(time.Second)

	n.Notify("a", notify.KindInfo, "1")
	*now = now.Add(time.Second)
	n.Notify("a", notify.KindInfo, "2")

	assert.Len(t, *got, 2)
}

func TestNotices_Disabled(t *testing.T) {
	n, got, _ := newTestNotices()
	n.SetEnabled(false)

	assert.False(t, n.Notify("a", notify.KindInfo, "x"))
	assert.Empty(t, *got)
}

func TestNotices_NoHandler(t *testing.T) {
	n := NewNotices(nil)
	assert.False(t, n.Notify("a", notify.KindInfo, "x"))
}

func TestNotices_Helpers(t *testing.T) {
	n, got, _ := newTestNotices()

	n.NotifyConfigReloaded()
	n.NotifyConfigError(errors.New("bad position"))
	n.NotifyThemeReloaded("minimal")
	n.NotifyThemeError(errors.New("missing"))

	assert.Equal(t, []shown{
		{notify.KindSuccess, "Configuration reloaded"},
		{notify.KindWarning, "Configuration not reloaded: bad position"},
		{notify.KindInfo, "Theme 'minimal' loaded"},
		{notify.KindError, "Failed to load theme: missing"},
	}, *got)
}
