package notify

// hookList is an ordered set of callbacks with removal handles.
type hookList[F any] struct {
	entries []*hookEntry[F]
}

type hookEntry[F any] struct {
	list    *hookList[F]
	fn      F
	removed bool
}

func (e *hookEntry[F]) Remove() {
	if e.removed {
		return
	}
	e.removed = true
	for i, x := range e.list.entries {
		if x == e {
			e.list.entries = append(e.list.entries[:i], e.list.entries[i+1:]...)
			return
		}
	}
}

func (l *hookList[F]) add(fn F) *hookEntry[F] {
	e := &hookEntry[F]{list: l, fn: fn}
	l.entries = append(l.entries, e)
	return e
}

func (l *hookList[F]) each(call func(F)) {
	snapshot := make([]*hookEntry[F], len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		if !e.removed {
			call(e.fn)
		}
	}
}
