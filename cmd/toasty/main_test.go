package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toasty/internal/dbus"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/notify"
)

func TestSnapshotDocument_Fresh(t *testing.T) {
	doc := snapshotDocument(notify.DefaultConfig(), 0)

	containers := doc.GetElementsByClassName(notify.ClassNotification)
	require.Len(t, containers, 6)
	for _, el := range containers {
		assert.True(t, el.ClassList().Contains(notify.ClassVisible))
	}

	out, err := dom.HTML(doc.Body())
	require.NoError(t, err)
	assert.Contains(t, out, `class="notification confirmation visible"`)
	assert.Contains(t, out, "Delete 12 items?")
	assert.Equal(t, 4, strings.Count(out, `<button class="action"`))
}

func TestSnapshotDocument_Exiting(t *testing.T) {
	doc := snapshotDocument(notify.DefaultConfig(), notify.DefaultDismissAfter)

	containers := doc.GetElementsByClassName(notify.ClassNotification)
	require.Len(t, containers, 6)
	for _, el := range containers {
		confirm := el.ClassList().Contains(string(notify.KindConfirmation))
		assert.Equal(t, confirm, el.ClassList().Contains(notify.ClassVisible))
	}
}

func TestSnapshotDocument_Removed(t *testing.T) {
	doc := snapshotDocument(notify.DefaultConfig(), notify.DefaultDismissAfter+notify.ExitTransition)

	containers := doc.GetElementsByClassName(notify.ClassNotification)
	require.Len(t, containers, 1)
	assert.True(t, containers[0].ClassList().Contains(string(notify.KindConfirmation)))

	bottom, ok := containers[0].Pixels("bottom")
	require.True(t, ok)
	assert.Zero(t, bottom)
}

func TestOutcomeText(t *testing.T) {
	assert.Equal(t, "Yes", outcomeText(dbus.Outcome{ID: "a", Reason: "action", Action: "Yes"}))
	assert.Equal(t, "expired", outcomeText(dbus.Outcome{ID: "a", Reason: "expired"}))
}

func TestKindCommand(t *testing.T) {
	c := kindCommand(notify.KindWarning, "warning")
	assert.Equal(t, "warning <message>", c.Use)
	assert.Contains(t, c.Short, "warning")
	assert.Error(t, c.Args(c, nil))
	assert.NoError(t, c.Args(c, []string{"Battery", "low"}))
}
