package dom

// Observer is told about changes to the connected part of the tree.
// Mounted and Removed are reported for the subtree root only.
type Observer interface {
	Mounted(el *Element)
	Removed(el *Element)
	ClassChanged(el *Element)
	StyleChanged(el *Element)
}

// Document owns a body element and the document-level listeners.
type Document struct {
	body      *Element
	listeners listenerSet
	observers []*observerEntry
	measurer  Measurer
}

type observerEntry struct {
	doc     *Document
	obs     Observer
	removed bool
}

func (o *observerEntry) Remove() {
	if o.removed {
		return
	}
	o.removed = true
	for i, e := range o.doc.observers {
		if e == o {
			o.doc.observers = append(o.doc.observers[:i], o.doc.observers[i+1:]...)
			return
		}
	}
}

// New creates an empty document. A nil measurer selects DefaultMeasurer.
func New(measurer Measurer) *Document {
	if measurer == nil {
		measurer = DefaultMeasurer()
	}
	d := &Document{measurer: measurer}
	d.body = newElement(d, "body")
	return d
}

// Body returns the root element.
func (d *Document) Body() *Element {
	return d.body
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) *Element {
	return newElement(d, tag)
}

// CreateTextNode returns a detached text node holding s verbatim.
func (d *Document) CreateTextNode(s string) *Element {
	t := newElement(d, "")
	t.isText = true
	t.text = s
	return t
}

// GetElementsByClassName returns every connected element carrying class,
// in tree order. The result is a snapshot.
func (d *Document) GetElementsByClassName(class string) []*Element {
	return d.body.QuerySelectorAllByClass(class)
}

// AddEventListener registers fn for document-level events of type typ.
func (d *Document) AddEventListener(typ string, fn func(Event)) Listener {
	return d.listeners.add(typ, fn, false)
}

// DispatchEvent delivers ev to document-level listeners.
func (d *Document) DispatchEvent(ev Event) {
	d.listeners.dispatch(ev)
}

// AddObserver registers o for tree changes.
func (d *Document) AddObserver(o Observer) Listener {
	e := &observerEntry{doc: d, obs: o}
	d.observers = append(d.observers, e)
	return e
}

// SetMeasurer swaps the height measurer, typically once a renderer is ready.
func (d *Document) SetMeasurer(m Measurer) {
	if m == nil {
		m = DefaultMeasurer()
	}
	d.measurer = m
}

// Measure returns the rendered height of el in pixels.
func (d *Document) Measure(el *Element) float64 {
	return d.measurer.Height(el)
}

func (d *Document) notify(fn func(Observer)) {
	if len(d.observers) == 0 {
		return
	}
	snapshot := make([]*observerEntry, len(d.observers))
	copy(snapshot, d.observers)
	for _, e := range snapshot {
		if !e.removed {
			fn(e.obs)
		}
	}
}
