package display

import (
	"log/slog"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"

	"github.com/jmylchreest/toasty/internal/config"
)

// Margins are the layer-shell margins for one popup.
type Margins struct {
	Horizontal int // from the left or right edge; unused for centered positions
	Vertical   int // from the top or bottom edge
}

// StackMargins converts a notification's stacking offset into margins for the
// configured position. Offsets grow away from the anchored edge, so for top
// positions the stack grows downward.
func StackMargins(cfg config.DisplayConfig, offset float64) Margins {
	return Margins{
		Horizontal: cfg.OffsetX,
		Vertical:   cfg.OffsetY + int(offset+0.5),
	}
}

// monitorFor returns the monitor to display popups on.
// Config values:
// - 0: compositor default (returns nil)
// - 1+: specific monitor (1-indexed), falling back to the first one
func monitorFor(display *gdk.Display, n int, logger *slog.Logger) *gdk.Monitor {
	if display == nil || n == 0 {
		return nil
	}

	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		logger.Warn("no monitors available")
		return nil
	}

	index := uint(n - 1)
	if index >= monitors.NItems() {
		logger.Warn("configured monitor not available, using first",
			"configured", n,
			"available", monitors.NItems(),
		)
		index = 0
	}
	return wrapMonitor(monitors.Item(index))
}

// wrapMonitor wraps a glib.Object as a gdk.Monitor; gotk4 does not export
// its own wrapper.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
