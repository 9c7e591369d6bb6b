package pointer

type rawListener struct {
	id ListenerID
	fn RawHandler
}

// Registry is listener bookkeeping for Surface implementations. Listeners of
// one kind are called in registration order.
type Registry struct {
	byKind [rawKindCount][]rawListener
	kindOf map[ListenerID]RawKind
	nextID ListenerID
}

// Listen registers fn for kind.
func (r *Registry) Listen(kind RawKind, fn RawHandler) ListenerID {
	if r.kindOf == nil {
		r.kindOf = make(map[ListenerID]RawKind)
	}
	r.nextID++
	id := r.nextID
	r.byKind[kind] = append(r.byKind[kind], rawListener{id: id, fn: fn})
	r.kindOf[id] = kind
	return id
}

// Unlisten removes a listener. Unknown ids are ignored.
func (r *Registry) Unlisten(id ListenerID) {
	kind, ok := r.kindOf[id]
	if !ok {
		return
	}
	delete(r.kindOf, id)
	s := r.byKind[kind]
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = rawListener{}
			r.byKind[kind] = s[:len(s)-1]
			return
		}
	}
}

// Count returns how many listeners are registered across all kinds.
func (r *Registry) Count() int {
	return len(r.kindOf)
}

// Dispatch delivers ev to every listener of its kind and reports whether any
// of them asked for the default gesture to be suppressed.
func (r *Registry) Dispatch(ev *RawEvent) bool {
	if ev.Kind < 0 || ev.Kind >= rawKindCount {
		return false
	}
	// Copy so a listener may unregister itself mid-dispatch.
	ls := append([]rawListener(nil), r.byKind[ev.Kind]...)
	for _, l := range ls {
		l.fn(ev)
	}
	return ev.PreventDefault
}
