package notify

import "github.com/jmylchreest/toasty/internal/dom"

// stackStep is the vertical space one notification of height h occupies: its
// own height plus a quarter of it as margin.
func stackStep(h float64) float64 {
	return h + h/4
}

// stack sets the bottom offset of each container, newest first. The newest
// sits at base and every older one sits above all the newer ones.
// containers must be in document order, oldest first.
func (n *Notifier) stack(containers []*dom.Element, base float64) {
	offset := base
	for i := len(containers) - 1; i >= 0; i-- {
		c := containers[i]
		c.SetPixels("bottom", offset)
		offset += stackStep(n.doc.Measure(c))
	}
}

// Offsets returns the bottom offset of every notification still in the
// document, oldest first.
func (n *Notifier) Offsets() []float64 {
	out := make([]float64, 0, len(n.active))
	for _, note := range n.active {
		v, _ := note.Container.Pixels("bottom")
		out = append(out, v)
	}
	return out
}
