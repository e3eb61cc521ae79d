package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/toasty/internal/dom"
	"github.com/jmylchreest/toasty/internal/notify"
)

const (
	cardWidth   = 40 // including the border
	cardMargin  = 2  // columns kept free on the right edge
	buttonGap   = 1
	footerLines = 1
)

var kindColors = map[notify.Kind]lipgloss.Color{
	notify.KindInfo:         lipgloss.Color("12"),
	notify.KindSuccess:      lipgloss.Color("10"),
	notify.KindWarning:      lipgloss.Color("11"),
	notify.KindError:        lipgloss.Color("9"),
	notify.KindConfirmation: lipgloss.Color("13"),
}

var (
	buttonStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// kindOf returns the kind class of a container.
func kindOf(el *dom.Element) notify.Kind {
	for _, class := range el.ClassList().Values() {
		if k := notify.Kind(class); k.Valid() {
			return k
		}
	}
	return notify.KindInfo
}

func buttonLabel(label string) string {
	return "[ " + label + " ]"
}

// renderCard draws a notification container. Cards without the visible class
// are drawn faint for the length of the exit transition.
func renderCard(el *dom.Element, hovered bool) string {
	kind := kindOf(el)
	color := kindColors[kind]

	var lines []string
	title := lipgloss.NewStyle().Bold(true).Foreground(color).Render(strings.ToUpper(string(kind)))
	if hovered {
		title += mutedStyle.Render("  (hover)")
	}
	lines = append(lines, title)

	if msg := el.FirstByClass(notify.ClassMessage); msg != nil {
		lines = append(lines, msg.TextContent())
	}

	if buttons := el.QuerySelectorAllByClass(notify.ClassAction); len(buttons) > 0 {
		labels := make([]string, len(buttons))
		for i, b := range buttons {
			labels[i] = buttonStyle.Render(buttonLabel(b.TextContent()))
		}
		lines = append(lines, strings.Join(labels, strings.Repeat(" ", buttonGap)))
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(cardWidth - 2)
	if hovered {
		style = style.BorderStyle(lipgloss.ThickBorder())
	}
	if !el.ClassList().Contains(notify.ClassVisible) {
		style = style.Faint(true)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// cellMeasurer measures containers in terminal rows.
type cellMeasurer struct{}

func (cellMeasurer) Height(el *dom.Element) float64 {
	return float64(lipgloss.Height(renderCard(el, false)))
}

// hitBox is a clickable button cell range on one row.
type hitBox struct {
	el         *dom.Element
	row        int
	start, end int // end is exclusive
}

// placement is where a card is drawn on screen.
type placement struct {
	el      *dom.Element
	card    string
	top     int
	left    int
	width   int
	height  int
	buttons []hitBox
}

func (p placement) contains(x, y int) bool {
	return x >= p.left && x < p.left+p.width && y >= p.top && y < p.top+p.height
}

// place positions every container from the bottom right of a width x height
// screen using its bottom offset, oldest first.
func place(doc *dom.Document, width, height int, hovered *dom.Element) []placement {
	containers := doc.GetElementsByClassName(notify.ClassNotification)
	out := make([]placement, 0, len(containers))
	for _, el := range containers {
		card := renderCard(el, el == hovered)
		offset, _ := el.Pixels("bottom")
		p := placement{
			el:     el,
			card:   card,
			width:  lipgloss.Width(card),
			height: lipgloss.Height(card),
		}
		p.left = max(width-p.width-cardMargin, 0)
		p.top = height - footerLines - int(math.Round(offset)) - p.height

		// Buttons sit on the last content row, after the border and padding.
		col := p.left + 2
		row := p.top + p.height - 2
		for _, b := range el.QuerySelectorAllByClass(notify.ClassAction) {
			w := lipgloss.Width(buttonLabel(b.TextContent()))
			p.buttons = append(p.buttons, hitBox{el: b, row: row, start: col, end: col + w})
			col += w + buttonGap
		}
		out = append(out, p)
	}
	return out
}

// hit returns the top-most card under (x, y), newest first.
func hit(places []placement, x, y int) (placement, bool) {
	for i := len(places) - 1; i >= 0; i-- {
		if places[i].contains(x, y) {
			return places[i], true
		}
	}
	return placement{}, false
}

// button returns the action button under (x, y) inside p.
func (p placement) button(x, y int) (*dom.Element, bool) {
	for _, b := range p.buttons {
		if y == b.row && x >= b.start && x < b.end {
			return b.el, true
		}
	}
	return nil, false
}
