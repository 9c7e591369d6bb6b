// Package pointer folds mouse and touch input into a single-active-pointer
// stream of start/move/end events.
package pointer

// Source tags where a normalized event came from.
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

func (s Source) String() string {
	if s == SourceTouch {
		return "touch"
	}
	return "mouse"
}

// MousePointerID is the identifier carried by every mouse event.
const MousePointerID = 0

// Event is one normalized pointer sample. X and Y are pixels relative to the
// surface's top-left corner.
type Event struct {
	X, Y   float64
	ID     int
	Source Source
}

// Callback receives normalized events.
type Callback func(Event)

// Callbacks are the three consumers of the normalized stream. Nil entries are
// allowed.
type Callbacks struct {
	OnStart Callback
	OnMove  Callback
	OnEnd   Callback
}

// RawKind identifies a low-level input event delivered by a Surface.
type RawKind int

const (
	MouseDown RawKind = iota
	MouseMove
	MouseUp
	MouseLeave
	TouchStart
	TouchMove
	TouchEnd
	TouchCancel
	rawKindCount
)

var rawKindNames = [rawKindCount]string{
	"mousedown", "mousemove", "mouseup", "mouseleave",
	"touchstart", "touchmove", "touchend", "touchcancel",
}

func (k RawKind) String() string {
	if k < 0 || k >= rawKindCount {
		return "unknown"
	}
	return rawKindNames[k]
}

// Contact is one touch point in client (window) coordinates.
type Contact struct {
	ID               int
	ClientX, ClientY float64
}

// RawEvent is a device event in client coordinates.
//
// Touches lists every contact currently down; Changed lists the contacts
// that ended (touch end/cancel). Handlers set PreventDefault to ask the host
// to suppress its own scroll/zoom gesture.
type RawEvent struct {
	Kind             RawKind
	ClientX, ClientY float64
	Touches          []Contact
	Changed          []Contact
	PreventDefault   bool
}

// RawHandler handles one raw event.
type RawHandler func(*RawEvent)

// ListenerID is the handle returned by Surface.Listen.
type ListenerID uint32

// Surface is the element pointer input is captured from.
type Surface interface {
	// Origin is the surface's top-left corner in client coordinates.
	Origin() (x, y float64)
	Listen(kind RawKind, fn RawHandler) ListenerID
	Unlisten(id ListenerID)
}
