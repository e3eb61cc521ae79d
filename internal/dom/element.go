package dom

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Element is a node in the document tree. Text nodes are elements with an
// empty tag whose content is never interpreted as markup.
type Element struct {
	doc      *Document
	tag      string
	text     string
	isText   bool
	classes  ClassList
	dataset  map[string]string
	style    map[string]string
	parent   *Element
	children []*Element

	listeners listenerSet
}

func newElement(doc *Document, tag string) *Element {
	el := &Element{
		doc:     doc,
		tag:     strings.ToLower(tag),
		dataset: make(map[string]string),
		style:   make(map[string]string),
	}
	el.classes.owner = el
	return el
}

// Tag returns the lower-case tag name, or "" for text nodes.
func (e *Element) Tag() string { return e.tag }

// IsText reports whether e is a text node.
func (e *Element) IsText() bool { return e.isText }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// ClassList returns the element's class list.
func (e *Element) ClassList() *ClassList { return &e.classes }

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a snapshot of the child nodes.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// SetData sets a data attribute (data-<key>).
func (e *Element) SetData(key, value string) {
	e.dataset[key] = value
}

// Data returns a data attribute and whether it is set.
func (e *Element) Data(key string) (string, bool) {
	v, ok := e.dataset[key]
	return v, ok
}

// Dataset returns a copy of all data attributes.
func (e *Element) Dataset() map[string]string {
	return maps.Clone(e.dataset)
}

// SetStyle sets an inline style property. An empty value removes it.
func (e *Element) SetStyle(prop, value string) {
	old, had := e.style[prop]
	if value == "" {
		if !had {
			return
		}
		delete(e.style, prop)
	} else {
		if had && old == value {
			return
		}
		e.style[prop] = value
	}
	if e.IsConnected() {
		e.doc.notify(func(o Observer) { o.StyleChanged(e) })
	}
}

// Style returns an inline style property.
func (e *Element) Style(prop string) string {
	return e.style[prop]
}

// Styles returns a copy of the inline style properties.
func (e *Element) Styles() map[string]string {
	return maps.Clone(e.style)
}

// SetPixels sets prop to a whole number of pixels.
func (e *Element) SetPixels(prop string, v float64) {
	e.SetStyle(prop, FormatPixels(v))
}

// Pixels parses prop as a pixel length.
func (e *Element) Pixels(prop string) (float64, bool) {
	return ParsePixels(e.style[prop])
}

// AppendChild moves child under e. Appending into a connected subtree
// reports the child as mounted.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	if child.parent != nil {
		child.detach()
	}
	child.parent = e
	e.children = append(e.children, child)
	if e.IsConnected() {
		e.doc.notify(func(o Observer) { o.Mounted(child) })
	}
}

// AppendText appends a text node holding s verbatim.
func (e *Element) AppendText(s string) *Element {
	t := e.doc.CreateTextNode(s)
	e.AppendChild(t)
	return t
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	if e.isText {
		return e.text
	}
	var sb strings.Builder
	for _, c := range e.children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// Remove detaches e from its parent. Removing a connected element reports it
// to observers.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	wasConnected := e.IsConnected()
	e.detach()
	if wasConnected {
		e.doc.notify(func(o Observer) { o.Removed(e) })
	}
}

func (e *Element) detach() {
	p := e.parent
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// IsConnected reports whether e is attached to its document's body.
func (e *Element) IsConnected() bool {
	for n := e; n != nil; n = n.parent {
		if n == e.doc.body {
			return true
		}
	}
	return false
}

// QuerySelectorAllByClass returns descendants carrying class, in tree order.
func (e *Element) QuerySelectorAllByClass(class string) []*Element {
	var out []*Element
	e.walk(func(n *Element) {
		if n != e && n.classes.Contains(class) {
			out = append(out, n)
		}
	})
	return out
}

// FirstByClass returns the first descendant carrying class, or nil.
func (e *Element) FirstByClass(class string) *Element {
	if found := e.QuerySelectorAllByClass(class); len(found) > 0 {
		return found[0]
	}
	return nil
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		c.walk(fn)
	}
}

// AddEventListener registers fn for events of type typ dispatched on e.
func (e *Element) AddEventListener(typ string, fn func(Event)) Listener {
	return e.listeners.add(typ, fn, false)
}

// AddEventListenerOnce registers fn for the first event of type typ only.
func (e *Element) AddEventListenerOnce(typ string, fn func(Event)) Listener {
	return e.listeners.add(typ, fn, true)
}

// ListenerCount returns the number of handlers registered for typ.
func (e *Element) ListenerCount(typ string) int {
	return e.listeners.count(typ)
}

// DispatchEvent delivers ev to e's listeners. Events do not bubble.
func (e *Element) DispatchEvent(ev Event) {
	ev.Target = e
	e.listeners.dispatch(ev)
}

// String is used in log lines.
func (e *Element) String() string {
	if e.isText {
		return fmt.Sprintf("#text(%q)", e.text)
	}
	if e.classes.Len() == 0 {
		return "<" + e.tag + ">"
	}
	return "<" + e.tag + "." + strings.Join(e.classes.classes, ".") + ">"
}

func (e *Element) classesChanged() {
	if e.IsConnected() {
		e.doc.notify(func(o Observer) { o.ClassChanged(e) })
	}
}

// FormatPixels renders v rounded to whole pixels, e.g. "42px".
func FormatPixels(v float64) string {
	return strconv.Itoa(int(math.Round(v))) + "px"
}

// ParsePixels parses values like "42px" or "42".
func ParsePixels(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
