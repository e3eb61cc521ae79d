package dom

// Event types dispatched on elements by renderers.
const (
	EventClick        = "click"
	EventPointerEnter = "pointerenter"
	EventPointerLeave = "pointerleave"
)

// Event is delivered to listeners registered for its Type.
type Event struct {
	Type   string
	Target *Element // nil for document-level events
	Detail any
}

// Listener is a registration handle. Remove detaches the handler; calling it
// more than once is a no-op.
type Listener interface {
	Remove()
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func()

// Remove calls f.
func (f ListenerFunc) Remove() { f() }

type listenerEntry struct {
	set     *listenerSet
	typ     string
	fn      func(Event)
	once    bool
	removed bool
}

func (e *listenerEntry) Remove() {
	if e.removed {
		return
	}
	e.removed = true
	e.set.drop(e)
}

// listenerSet keeps handlers in registration order.
type listenerSet struct {
	entries []*listenerEntry
}

func (s *listenerSet) add(typ string, fn func(Event), once bool) Listener {
	e := &listenerEntry{set: s, typ: typ, fn: fn, once: once}
	s.entries = append(s.entries, e)
	return e
}

func (s *listenerSet) drop(target *listenerEntry) {
	for i, e := range s.entries {
		if e == target {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// dispatch runs every handler registered for ev.Type. Handlers added while
// dispatching are not called for the current event; handlers removed while
// dispatching are skipped.
func (s *listenerSet) dispatch(ev Event) int {
	matched := make([]*listenerEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.typ == ev.Type {
			matched = append(matched, e)
		}
	}

	called := 0
	for _, e := range matched {
		if e.removed {
			continue
		}
		if e.once {
			e.Remove()
		}
		e.fn(ev)
		called++
	}
	return called
}

func (s *listenerSet) count(typ string) int {
	n := 0
	for _, e := range s.entries {
		if e.typ == typ {
			n++
		}
	}
	return n
}

func (s *listenerSet) clear() {
	for _, e := range s.entries {
		e.removed = true
	}
	s.entries = nil
}
