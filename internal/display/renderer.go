package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/notify"
)

// Renderer is a dom.Observer that keeps one popup per mounted notification.
// It also measures containers before they mount so the Notifier can stack
// them with real widget heights. All methods run on the GTK main loop.
type Renderer struct {
	app    *gtk.Application
	config *config.Config
	logger *slog.Logger

	popups   map[*dom.Element]*Popup
	prepared map[*dom.Element]*gtk.Box // measured but not yet mounted
	fallback dom.Measurer
}

var (
	_ dom.Observer = (*Renderer)(nil)
	_ dom.Measurer = (*Renderer)(nil)
)

// NewRenderer creates a renderer for app.
func NewRenderer(app *gtk.Application, cfg *config.Config, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Renderer{
		app:      app,
		config:   cfg,
		logger:   logger,
		popups:   make(map[*dom.Element]*Popup),
		prepared: make(map[*dom.Element]*gtk.Box),
		fallback: dom.DefaultMeasurer(),
	}
}

// Attach registers the renderer as observer and measurer of doc.
func (r *Renderer) Attach(doc *dom.Document) dom.Listener {
	doc.SetMeasurer(r)
	return doc.AddObserver(r)
}

// Height implements dom.Measurer by building the container's widgets and
// asking GTK for their natural height at the configured width. The widgets
// are kept for Mounted.
func (r *Renderer) Height(el *dom.Element) float64 {
	if !isContainer(el) {
		return r.fallback.Height(el)
	}
	var box *gtk.Box
	if p, ok := r.popups[el]; ok {
		box = p.box
	} else if b, ok := r.prepared[el]; ok {
		box = b
	} else {
		box = newContent(el, r.config.Display.Width)
		r.prepared[el] = box
	}
	_, natural, _, _ := box.Measure(gtk.OrientationVertical, r.config.Display.Width)
	if natural <= 0 {
		return r.fallback.Height(el)
	}
	return float64(natural)
}

// Mounted implements dom.Observer.
func (r *Renderer) Mounted(el *dom.Element) {
	if !isContainer(el) {
		return
	}
	box, ok := r.prepared[el]
	if ok {
		delete(r.prepared, el)
	} else {
		box = newContent(el, r.config.Display.Width)
	}

	p := newPopup(r.app, el, box, r.config, r.logger)
	r.popups[el] = p
	offset, _ := el.Pixels("bottom")
	p.Show(offset)

	r.logger.Debug("showed popup",
		"element", el.String(),
		"offset", offset,
		"active_popups", len(r.popups),
	)
}

// Removed implements dom.Observer.
func (r *Renderer) Removed(el *dom.Element) {
	delete(r.prepared, el)
	p, ok := r.popups[el]
	if !ok {
		return
	}
	delete(r.popups, el)
	p.Close()
}

// ClassChanged implements dom.Observer. Dropping the visible class starts
// the theme's exit transition.
func (r *Renderer) ClassChanged(el *dom.Element) {
	if p, ok := r.popups[el]; ok {
		p.applyClasses()
	}
}

// StyleChanged implements dom.Observer.
func (r *Renderer) StyleChanged(el *dom.Element) {
	p, ok := r.popups[el]
	if !ok {
		return
	}
	if offset, ok := el.Pixels("bottom"); ok {
		p.Move(offset)
	}
}

// UpdateConfig applies new display settings to every live popup.
func (r *Renderer) UpdateConfig(cfg *config.Config) {
	r.config = cfg
	for _, p := range r.popups {
		p.UpdateConfig(cfg)
	}
	r.logger.Debug("renderer config updated", "position", cfg.Display.Position, "popups", len(r.popups))
}

// Count returns the number of open popups.
func (r *Renderer) Count() int {
	return len(r.popups)
}

// CloseAll closes every popup without touching the document.
func (r *Renderer) CloseAll() {
	for el, p := range r.popups {
		p.Close()
		delete(r.popups, el)
	}
	clear(r.prepared)
}

func isContainer(el *dom.Element) bool {
	return el.ClassList().Contains(notify.ClassNotification)
}
