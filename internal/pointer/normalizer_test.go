package pointer

import "testing"

// fakeSurface is a Surface positioned at (ox, oy) in client space.
type fakeSurface struct {
	Registry
	ox, oy float64
}

func (s *fakeSurface) Origin() (float64, float64) { return s.ox, s.oy }

func (s *fakeSurface) mouse(kind RawKind, x, y float64) *RawEvent {
	ev := &RawEvent{Kind: kind, ClientX: x, ClientY: y}
	s.Dispatch(ev)
	return ev
}

func (s *fakeSurface) touch(kind RawKind, touches, changed []Contact) *RawEvent {
	ev := &RawEvent{Kind: kind, Touches: touches, Changed: changed}
	s.Dispatch(ev)
	return ev
}

type recorded struct {
	phase string
	ev    Event
}

type recorder struct {
	events []recorded
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnStart: func(e Event) { r.events = append(r.events, recorded{"start", e}) },
		OnMove:  func(e Event) { r.events = append(r.events, recorded{"move", e}) },
		OnEnd:   func(e Event) { r.events = append(r.events, recorded{"end", e}) },
	}
}

func (r *recorder) count(phase string) int {
	n := 0
	for _, e := range r.events {
		if e.phase == phase {
			n++
		}
	}
	return n
}

func touchAt(id int, x, y float64) Contact {
	return Contact{ID: id, ClientX: x, ClientY: y}
}

func TestNormalizer_MouseDragSequence(t *testing.T) {
	s := &fakeSurface{ox: 10, oy: 20}
	rec := &recorder{}
	n := New(s, rec.callbacks())

	s.mouse(MouseMove, 50, 50) // not dragging yet
	s.mouse(MouseDown, 60, 70)
	s.mouse(MouseMove, 65, 75)
	s.mouse(MouseUp, 70, 80)
	s.mouse(MouseMove, 90, 90)

	if len(rec.events) != 3 {
		t.Fatalf("expected start/move/end, got %d events: %+v", len(rec.events), rec.events)
	}
	want := []recorded{
		{"start", Event{X: 50, Y: 50, ID: 0, Source: SourceMouse}},
		{"move", Event{X: 55, Y: 55, ID: 0, Source: SourceMouse}},
		{"end", Event{X: 60, Y: 60, ID: 0, Source: SourceMouse}},
	}
	for i, w := range want {
		if rec.events[i] != w {
			t.Fatalf("event %d: expected %+v, got %+v", i, w, rec.events[i])
		}
	}
	if n.State() != Idle {
		t.Fatalf("expected idle after mouse up, got %s", n.State())
	}
}

func TestNormalizer_MouseLeaveEndsDrag(t *testing.T) {
	s := &fakeSurface{}
	rec := &recorder{}
	n := New(s, rec.callbacks())

	s.mouse(MouseDown, 5, 5)
	s.mouse(MouseLeave, -1, 5)
	s.mouse(MouseUp, -3, 5)

	if rec.count("end") != 1 {
		t.Fatalf("expected exactly one end, got %d", rec.count("end"))
	}
	if n.State() != Idle {
		t.Fatalf("expected idle, got %s", n.State())
	}
}

func TestNormalizer_TouchDragScenario(t *testing.T) {
	s := &fakeSurface{}
	rec := &recorder{}
	New(s, rec.callbacks())

	s.touch(TouchStart, []Contact{touchAt(7, 100, 100)}, nil)
	s.touch(TouchMove, []Contact{touchAt(7, 120, 108)}, nil)
	s.touch(TouchMove, []Contact{touchAt(7, 150, 120)}, nil)
	s.touch(TouchEnd, nil, []Contact{touchAt(7, 150, 120)})

	if rec.count("start") != 1 || rec.count("end") != 1 {
		t.Fatalf("expected one start and one end, got start=%d end=%d", rec.count("start"), rec.count("end"))
	}
	if rec.count("move") < 1 {
		t.Fatal("expected at least one move")
	}
	first := rec.events[0]
	if first.phase != "start" || first.ev.X != 100 || first.ev.Y != 100 {
		t.Fatalf("expected start at (100,100), got %+v", first)
	}
	lastMove := rec.events[len(rec.events)-2]
	if lastMove.phase != "move" || lastMove.ev.X != 150 || lastMove.ev.Y != 120 {
		t.Fatalf("expected final move at (150,120), got %+v", lastMove)
	}
	end := rec.events[len(rec.events)-1]
	if end.phase != "end" || end.ev.X != 150 || end.ev.Y != 120 {
		t.Fatalf("expected end at (150,120), got %+v", end)
	}
	if end.ev.Source != SourceTouch || end.ev.ID != 7 {
		t.Fatalf("expected touch source with id 7, got %+v", end.ev)
	}
}

func TestNormalizer_SecondTouchIgnored(t *testing.T) {
	s := &fakeSurface{}
	rec := &recorder{}
	n := New(s, rec.callbacks())

	s.touch(TouchStart, []Contact{touchAt(1, 10, 10)}, nil)
	s.touch(TouchStart, []Contact{touchAt(1, 10, 10), touchAt(2, 200, 200)}, nil)

	if rec.count("start") != 1 {
		t.Fatalf("second contact must not start, got %d starts", rec.count("start"))
	}
	if id, ok := n.ActiveTouchID(); !ok || id != 1 {
		t.Fatalf("expected active touch 1, got %d (active=%v)", id, ok)
	}

	// Ending the ignored contact changes nothing.
	s.touch(TouchEnd, []Contact{touchAt(1, 10, 10)}, []Contact{touchAt(2, 200, 200)})
	if rec.count("end") != 0 || n.State() != TouchDragging {
		t.Fatalf("ending a foreign contact should be a no-op, ends=%d state=%s", rec.count("end"), n.State())
	}
}

func TestNormalizer_FirstContactAdopted(t *testing.T) {
	s := &fakeSurface{}
	rec := &recorder{}
	New(s, rec.callbacks())

	s.touch(TouchStart, []Contact{touchAt(4, 30, 40), touchAt(5, 90, 90)}, nil)
	if len(rec.events) != 1 || rec.events[0].ev.ID != 4 {
		t.Fatalf("expected start from first contact (id 4), got %+v", rec.events)
	}
}

func TestNormalizer_MouseSuppressedDuringTouch(t *testing.T) {
	s := &fakeSurface{}
	rec := &recorder{}
	New(s, rec.callbacks())

	s.touch(TouchStart, []Contact{touchAt(3, 10, 10)}, nil)
	s.mouse(MouseDown, 50, 50)
	s.mouse(MouseMove, 60, 60)
	s.mouse(MouseUp, 60, 60)
	if rec.count("start") != 1 || rec.events[0].ev.Source != SourceTouch {
		t.Fatalf("mouse must not start during a touch drag, events=%+v", rec.events)
	}
	if rec.count("end") != 0 {
		t.Fatalf("mouse up must not end a touch drag, events=%+v", rec.events)
	}

	s.touch(TouchEnd, nil, []Contact{touchAt(3, 12, 12)})
	s.mouse(MouseDown, 50, 50)
	if rec.count("start") != 2 {
		t.Fatalf("mouse down after touch end should start, got %d starts", rec.count("start"))
	}
	if last := rec.events[len(rec.events)-1]; last.ev.Source != SourceMouse {
		t.Fatalf("expected mouse start, got %+v", last)
	}
}

func TestNormalizer_StaleTouchMoveIgnored(t *testing.T) {
	s := &fakeSurface{}
	rec := &recorder{}
	New(s, rec.callbacks())

	s.touch(TouchStart, []Contact{touchAt(9, 10, 10)}, nil)
	s.touch(TouchMove, []Contact{touchAt(11, 30, 30)}, nil)
	if rec.count("move") != 0 {
		t.Fatalf("move for an unknown contact should be ignored, got %d", rec.count("move"))
	}
}

func TestNormalizer_TouchCancelEndsDrag(t *testing.T) {
	s := &fakeSurface{}
	rec := &recorder{}
	n := New(s, rec.callbacks())

	s.touch(TouchStart, []Contact{touchAt(2, 10, 10)}, nil)
	s.touch(TouchCancel, nil, []Contact{touchAt(2, 15, 15)})
	if rec.count("end") != 1 || n.State() != Idle {
		t.Fatalf("cancel should end the drag, ends=%d state=%s", rec.count("end"), n.State())
	}
}

func TestNormalizer_TouchSuppressesDefaultGesture(t *testing.T) {
	s := &fakeSurface{}
	New(s, Callbacks{})

	if ev := s.touch(TouchStart, []Contact{touchAt(1, 1, 1)}, nil); !ev.PreventDefault {
		t.Fatal("touch start should prevent the default gesture")
	}
	if ev := s.touch(TouchMove, []Contact{touchAt(1, 2, 2)}, nil); !ev.PreventDefault {
		t.Fatal("touch move should prevent the default gesture")
	}
	if ev := s.mouse(MouseDown, 1, 1); ev.PreventDefault {
		t.Fatal("mouse input should not prevent defaults")
	}
}

func TestNormalizer_DestroyIdempotent(t *testing.T) {
	s := &fakeSurface{}
	rec := &recorder{}
	n := New(s, rec.callbacks())
	if s.Count() != 8 {
		t.Fatalf("expected 8 listeners, got %d", s.Count())
	}

	n.Destroy()
	n.Destroy()
	if s.Count() != 0 {
		t.Fatalf("expected all listeners removed, %d left", s.Count())
	}
	s.mouse(MouseDown, 1, 1)
	s.touch(TouchStart, []Contact{touchAt(1, 1, 1)}, nil)
	if len(rec.events) != 0 {
		t.Fatalf("destroyed normalizer must not fire, got %+v", rec.events)
	}
}

func TestRegistry_UnlistenKeepsOthers(t *testing.T) {
	var r Registry
	var calls []int
	a := r.Listen(MouseDown, func(*RawEvent) { calls = append(calls, 1) })
	r.Listen(MouseDown, func(*RawEvent) { calls = append(calls, 2) })
	r.Unlisten(a)
	r.Unlisten(a)
	r.Dispatch(&RawEvent{Kind: MouseDown})
	if len(calls) != 1 || calls[0] != 2 {
		t.Fatalf("expected only the second listener to run, got %v", calls)
	}
}
