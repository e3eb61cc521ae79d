package dom

import (
	"strings"
	"unicode/utf8"
)

// Measurer reports the rendered height of an element.
type Measurer interface {
	Height(el *Element) float64
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(el *Element) float64

// Height calls f.
func (f MeasurerFunc) Height(el *Element) float64 { return f(el) }

// TextMeasurer estimates height from wrapped text. It is used when no
// renderer is attached and by tests.
type TextMeasurer struct {
	Padding      float64 // top and bottom padding, each
	LineHeight   float64
	CharsPerLine int
	ButtonRow    float64 // extra height when the element holds buttons
}

// DefaultMeasurer matches the default theme metrics.
func DefaultMeasurer() TextMeasurer {
	return TextMeasurer{
		Padding:      12,
		LineHeight:   20,
		CharsPerLine: 40,
		ButtonRow:    32,
	}
}

// Height implements Measurer.
func (m TextMeasurer) Height(el *Element) float64 {
	lines := 0
	hasButton := false
	el.walk(func(n *Element) {
		if n.tag == "button" {
			hasButton = true
		}
		if n.isText && !insideButton(n) {
			lines += m.wrappedLines(n.text)
		}
	})
	if lines == 0 {
		lines = 1
	}

	h := 2*m.Padding + float64(lines)*m.LineHeight
	if hasButton {
		h += m.ButtonRow
	}
	return h
}

func (m TextMeasurer) wrappedLines(s string) int {
	width := m.CharsPerLine
	if width <= 0 {
		width = 40
	}
	n := 0
	for _, para := range strings.Split(s, "\n") {
		runes := utf8.RuneCountInString(para)
		n += max(1, (runes+width-1)/width)
	}
	return n
}

func insideButton(n *Element) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p.tag == "button" {
			return true
		}
	}
	return false
}
