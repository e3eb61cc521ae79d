package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/notify"
)

// Popup is the layer-shell window mirroring one notification container.
type Popup struct {
	element *dom.Element
	window  *gtk.Window
	box     *gtk.Box
	config  config.DisplayConfig
	scheme  config.ColorScheme
	logger  *slog.Logger

	offset float64
	closed bool
}

// newContent builds the widget tree for a notification container: a label
// for the message and one button per action. Button clicks are dispatched
// back onto the matching elements.
func newContent(el *dom.Element, width int) *gtk.Box {
	box := gtk.NewBox(gtk.OrientationVertical, 6)
	box.SetSizeRequest(width, -1)

	var buttons *gtk.Box
	for _, child := range el.Children() {
		switch {
		case child.ClassList().Contains(notify.ClassMessage):
			lbl := gtk.NewLabel(child.TextContent())
			lbl.SetUseMarkup(false)
			lbl.AddCSSClass(notify.ClassMessage)
			lbl.SetXAlign(0)
			lbl.SetWrap(true)
			lbl.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
			lbl.SetMaxWidthChars(50)
			box.Append(lbl)

		case child.ClassList().Contains(notify.ClassAction):
			if buttons == nil {
				buttons = gtk.NewBox(gtk.OrientationHorizontal, 6)
				buttons.SetHAlign(gtk.AlignEnd)
			}
			target := child
			btn := gtk.NewButtonWithLabel(target.TextContent())
			btn.AddCSSClass(notify.ClassAction)
			btn.ConnectClicked(func() {
				target.DispatchEvent(dom.Event{Type: dom.EventClick})
			})
			buttons.Append(btn)
		}
	}
	if buttons != nil {
		box.Append(buttons)
	}

	syncClasses(box, el)
	return box
}

// syncClasses replaces the widget's classes with the element's.
func syncClasses(box *gtk.Box, el *dom.Element) {
	box.SetCSSClasses(el.ClassList().Values())
}

func newPopup(app *gtk.Application, el *dom.Element, box *gtk.Box, cfg *config.Config, logger *slog.Logger) *Popup {
	p := &Popup{
		element: el,
		box:     box,
		config:  cfg.Display,
		scheme:  config.ColorScheme(cfg.Theme.ColorScheme),
		logger:  logger,
	}

	p.window = gtk.NewWindow()
	p.window.SetApplication(app)
	p.window.SetDecorated(false)
	p.window.SetResizable(false)
	p.window.AddCSSClass("toasty")
	p.window.SetDefaultSize(cfg.Display.Width, -1)

	layershell.InitForWindow(p.window)
	layershell.SetLayer(p.window, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(p.window, 0)
	layershell.SetKeyboardMode(p.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(p.window, "toasty-notification")

	if monitor := monitorFor(gdk.DisplayGetDefault(), cfg.Display.Monitor, logger); monitor != nil {
		layershell.SetMonitor(p.window, monitor)
	}

	p.applyClasses()
	p.window.SetChild(box)
	p.connectSignals()
	return p
}

func (p *Popup) connectSignals() {
	motion := gtk.NewEventControllerMotion()
	motion.ConnectEnter(func(x, y float64) {
		p.element.DispatchEvent(dom.Event{Type: dom.EventPointerEnter})
	})
	motion.ConnectLeave(func() {
		p.element.DispatchEvent(dom.Event{Type: dom.EventPointerLeave})
	})
	p.window.AddController(motion)
}

// applyClasses syncs the element classes and adds the renderer-only ones.
func (p *Popup) applyClasses() {
	syncClasses(p.box, p.element)
	p.box.AddCSSClass(colorSchemeClass(p.scheme))
	if p.config.Opacity < 1.0 {
		p.box.AddCSSClass("translucent")
	}
}

// Show presents the popup at its stacking offset.
func (p *Popup) Show(offset float64) {
	p.offset = offset
	p.updateAnchorPosition()
	p.window.Present()
}

// Move updates the stacking offset.
func (p *Popup) Move(offset float64) {
	if p.closed || p.offset == offset {
		return
	}
	p.offset = offset
	p.updateAnchorPosition()
}

// UpdateConfig applies new display settings to a live popup.
func (p *Popup) UpdateConfig(cfg *config.Config) {
	p.config = cfg.Display
	p.scheme = config.ColorScheme(cfg.Theme.ColorScheme)
	p.applyClasses()
	p.updateAnchorPosition()
}

// Close destroys the window.
func (p *Popup) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.window.Close()
}

// updateAnchorPosition sets the layer-shell anchors and margins for the
// configured corner.
func (p *Popup) updateAnchorPosition() {
	pos := config.Position(p.config.Position)
	m := StackMargins(p.config, p.offset)

	for _, edge := range []layershell.LayerShellEdge{
		layershell.LayerShellEdgeTop,
		layershell.LayerShellEdgeBottom,
		layershell.LayerShellEdgeLeft,
		layershell.LayerShellEdgeRight,
	} {
		layershell.SetAnchor(p.window, edge, false)
	}

	vertical := layershell.LayerShellEdgeBottom
	if pos.IsTop() {
		vertical = layershell.LayerShellEdgeTop
	}
	layershell.SetAnchor(p.window, vertical, true)
	layershell.SetMargin(p.window, vertical, m.Vertical)

	switch pos {
	case config.PositionTopLeft, config.PositionBottomLeft:
		layershell.SetAnchor(p.window, layershell.LayerShellEdgeLeft, true)
		layershell.SetMargin(p.window, layershell.LayerShellEdgeLeft, m.Horizontal)
	case config.PositionTopRight, config.PositionBottomRight:
		layershell.SetAnchor(p.window, layershell.LayerShellEdgeRight, true)
		layershell.SetMargin(p.window, layershell.LayerShellEdgeRight, m.Horizontal)
	}
}

// colorSchemeClass returns "light" or "dark" based on config or the system
// preference reported by libadwaita.
func colorSchemeClass(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		if adw.StyleManagerGetDefault().Dark() {
			return "dark"
		}
		return "light"
	}
}
