package pointer

// State is the normalizer's drag state.
type State int

const (
	Idle State = iota
	MouseDragging
	TouchDragging
)

func (s State) String() string {
	switch s {
	case MouseDragging:
		return "mouse_dragging"
	case TouchDragging:
		return "touch_dragging"
	default:
		return "idle"
	}
}

// Normalizer tracks at most one active pointer. Touch wins: once a touch drag
// is engaged, mouse input is dropped until it ends. Extra simultaneous
// touches are ignored.
type Normalizer struct {
	surface   Surface
	cb        Callbacks
	state     State
	touchID   int
	listeners []ListenerID
}

// New attaches a normalizer to surface.
func New(surface Surface, cb Callbacks) *Normalizer {
	n := &Normalizer{surface: surface, cb: cb}
	n.listeners = []ListenerID{
		surface.Listen(MouseDown, n.mouseDown),
		surface.Listen(MouseMove, n.mouseMove),
		surface.Listen(MouseUp, n.mouseUp),
		surface.Listen(MouseLeave, n.mouseUp),
		surface.Listen(TouchStart, n.touchStart),
		surface.Listen(TouchMove, n.touchMove),
		surface.Listen(TouchEnd, n.touchEnd),
		surface.Listen(TouchCancel, n.touchEnd),
	}
	return n
}

// State returns the current drag state.
func (n *Normalizer) State() State { return n.state }

// ActiveTouchID returns the tracked touch identifier while touch dragging.
func (n *Normalizer) ActiveTouchID() (int, bool) {
	return n.touchID, n.state == TouchDragging
}

// Destroy removes every listener from the surface. Safe to call repeatedly.
func (n *Normalizer) Destroy() {
	for _, id := range n.listeners {
		n.surface.Unlisten(id)
	}
	n.listeners = nil
	n.state = Idle
}

func (n *Normalizer) mouseDown(ev *RawEvent) {
	if n.state != Idle {
		return
	}
	n.state = MouseDragging
	fire(n.cb.OnStart, n.mouseEvent(ev))
}

func (n *Normalizer) mouseMove(ev *RawEvent) {
	if n.state != MouseDragging {
		return
	}
	fire(n.cb.OnMove, n.mouseEvent(ev))
}

// mouseUp handles both button release and the cursor leaving the surface.
func (n *Normalizer) mouseUp(ev *RawEvent) {
	if n.state != MouseDragging {
		return
	}
	n.state = Idle
	fire(n.cb.OnEnd, n.mouseEvent(ev))
}

func (n *Normalizer) touchStart(ev *RawEvent) {
	ev.PreventDefault = true
	if n.state != Idle || len(ev.Touches) == 0 {
		return
	}
	c := ev.Touches[0]
	n.state = TouchDragging
	n.touchID = c.ID
	fire(n.cb.OnStart, n.touchEvent(c))
}

func (n *Normalizer) touchMove(ev *RawEvent) {
	ev.PreventDefault = true
	c, ok := n.findActive(ev.Touches)
	if !ok {
		return
	}
	fire(n.cb.OnMove, n.touchEvent(c))
}

// touchEnd handles both end and cancel.
func (n *Normalizer) touchEnd(ev *RawEvent) {
	c, ok := n.findActive(ev.Changed)
	if !ok {
		return
	}
	n.state = Idle
	fire(n.cb.OnEnd, n.touchEvent(c))
}

func (n *Normalizer) findActive(contacts []Contact) (Contact, bool) {
	if n.state != TouchDragging {
		return Contact{}, false
	}
	for _, c := range contacts {
		if c.ID == n.touchID {
			return c, true
		}
	}
	return Contact{}, false
}

func (n *Normalizer) mouseEvent(ev *RawEvent) Event {
	ox, oy := n.surface.Origin()
	return Event{X: ev.ClientX - ox, Y: ev.ClientY - oy, ID: MousePointerID, Source: SourceMouse}
}

func (n *Normalizer) touchEvent(c Contact) Event {
	ox, oy := n.surface.Origin()
	return Event{X: c.ClientX - ox, Y: c.ClientY - oy, ID: c.ID, Source: SourceTouch}
}

func fire(cb Callback, ev Event) {
	if cb != nil {
		cb(ev)
	}
}
