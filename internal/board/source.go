package board

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/tactics-board/internal/pointer"
)

// InputSnapshot is the device state sampled once per frame, in window
// coordinates.
type InputSnapshot struct {
	CursorX, CursorY float64
	LeftPressed      bool // button went down this frame
	LeftReleased     bool // button went up this frame
	Touches          []pointer.Contact
}

// EbitenSource is the board surface as seen by the pointer normalizer. Ebiten
// exposes polled device state, so each frame's snapshot is diffed against the
// previous one and replayed as raw mouse and touch events.
type EbitenSource struct {
	reg pointer.Registry

	x, y, w, h float64 // board rectangle in window coordinates

	cursorX, cursorY float64
	cursorKnown      bool
	inside           bool
	touches          map[int]pointer.Contact
	touchOrder       []int
	offBoard         map[int]bool // contacts that began outside the board

	touchIDs []ebiten.TouchID
}

// NewEbitenSource returns a source with an empty board rectangle.
func NewEbitenSource() *EbitenSource {
	return &EbitenSource{touches: make(map[int]pointer.Contact), offBoard: make(map[int]bool)}
}

// SetBounds places the board surface inside the window.
func (s *EbitenSource) SetBounds(x, y, w, h float64) {
	s.x, s.y, s.w, s.h = x, y, w, h
}

func (s *EbitenSource) Origin() (float64, float64) { return s.x, s.y }

func (s *EbitenSource) Listen(kind pointer.RawKind, fn pointer.RawHandler) pointer.ListenerID {
	return s.reg.Listen(kind, fn)
}

func (s *EbitenSource) Unlisten(id pointer.ListenerID) { s.reg.Unlisten(id) }

// Listeners reports how many raw listeners are attached.
func (s *EbitenSource) Listeners() int { return s.reg.Count() }

// Poll samples ebiten's input state and dispatches the resulting events. Call
// it once per Update.
func (s *EbitenSource) Poll() {
	mx, my := ebiten.CursorPosition()
	snap := InputSnapshot{
		CursorX:      float64(mx),
		CursorY:      float64(my),
		LeftPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		LeftReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	for _, id := range s.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		snap.Touches = append(snap.Touches, pointer.Contact{ID: int(id), ClientX: float64(tx), ClientY: float64(ty)})
	}
	s.Feed(snap)
}

func (s *EbitenSource) contains(x, y float64) bool {
	return x >= s.x && x < s.x+s.w && y >= s.y && y < s.y+s.h
}

// Feed diffs snap against the previous frame and dispatches raw events:
// mouse move, down, up and leave, then touch start, move and end.
func (s *EbitenSource) Feed(snap InputSnapshot) {
	s.feedMouse(snap)
	s.feedTouches(snap.Touches)
}

func (s *EbitenSource) feedMouse(snap InputSnapshot) {
	cx, cy := snap.CursorX, snap.CursorY
	in := s.contains(cx, cy)
	moved := !s.cursorKnown || cx != s.cursorX || cy != s.cursorY
	s.cursorX, s.cursorY, s.cursorKnown = cx, cy, true

	if moved && in {
		s.dispatch(&pointer.RawEvent{Kind: pointer.MouseMove, ClientX: cx, ClientY: cy})
	}
	if snap.LeftPressed && in {
		s.dispatch(&pointer.RawEvent{Kind: pointer.MouseDown, ClientX: cx, ClientY: cy})
	}
	if snap.LeftReleased && in {
		s.dispatch(&pointer.RawEvent{Kind: pointer.MouseUp, ClientX: cx, ClientY: cy})
	}
	if s.inside && !in {
		s.dispatch(&pointer.RawEvent{Kind: pointer.MouseLeave, ClientX: cx, ClientY: cy})
	}
	s.inside = in
}

func (s *EbitenSource) feedTouches(now []pointer.Contact) {
	current := make(map[int]pointer.Contact, len(now))
	for _, c := range now {
		current[c.ID] = c
	}

	var started, moved, ended []pointer.Contact
	for _, id := range s.touchOrder {
		prev := s.touches[id]
		c, ok := current[id]
		switch {
		case !ok:
			ended = append(ended, prev)
		case c.ClientX != prev.ClientX || c.ClientY != prev.ClientY:
			moved = append(moved, c)
		}
	}
	for id := range s.offBoard {
		if _, ok := current[id]; !ok {
			delete(s.offBoard, id)
		}
	}
	var fresh []pointer.Contact
	for _, c := range now {
		if _, ok := s.touches[c.ID]; !ok && !s.offBoard[c.ID] {
			fresh = append(fresh, c)
		}
	}
	// New contacts in id order; ebiten ids grow monotonically. A contact that
	// lands off the board never starts, even if it later slides onto it.
	sort.Slice(fresh, func(i, j int) bool { return fresh[i].ID < fresh[j].ID })
	for _, c := range fresh {
		if s.contains(c.ClientX, c.ClientY) {
			started = append(started, c)
		} else {
			s.offBoard[c.ID] = true
		}
	}

	// Rebuild the tracked set: surviving contacts keep their order, then the
	// contacts that started on the board.
	order := s.touchOrder[:0]
	for _, id := range s.touchOrder {
		if c, ok := current[id]; ok {
			s.touches[id] = c
			order = append(order, id)
		} else {
			delete(s.touches, id)
		}
	}
	for _, c := range started {
		s.touches[c.ID] = c
		order = append(order, c.ID)
	}
	s.touchOrder = order

	active := make([]pointer.Contact, 0, len(order))
	for _, id := range order {
		active = append(active, s.touches[id])
	}
	if len(started) > 0 {
		s.dispatch(&pointer.RawEvent{Kind: pointer.TouchStart, Touches: active, Changed: started})
	}
	if len(moved) > 0 {
		s.dispatch(&pointer.RawEvent{Kind: pointer.TouchMove, Touches: active, Changed: moved})
	}
	if len(ended) > 0 {
		s.dispatch(&pointer.RawEvent{Kind: pointer.TouchEnd, Touches: active, Changed: ended})
	}
}

func (s *EbitenSource) dispatch(ev *pointer.RawEvent) {
	s.reg.Dispatch(ev)
}
