package board

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Garsondee/tactics-board/internal/formation"
	"github.com/Garsondee/tactics-board/internal/geom"
	"github.com/Garsondee/tactics-board/internal/pointer"
)

// harness drives the real input path headlessly: snapshots go through
// EbitenSource, the pointer normalizer and Interaction into a store.
type harness struct {
	t      *testing.T
	store  *formation.Store
	lib    *formation.Library
	in     *Interaction
	src    *EbitenSource
	norm   *pointer.Normalizer
	ctl    *Controller
	clip   *fakeClipboard
	events *EventLog

	ox, oy float64
	cx, cy float64 // last cursor position, board coordinates
}

type harnessConfig struct {
	w, h      int
	ox, oy    float64
	tool      formation.Tool
	thickness float64
	verbose   bool
	players   []formation.Player
	drawings  []formation.DrawingElement
}

type harnessOption func(*harnessConfig)

func withBoard(w, h int) harnessOption {
	return func(c *harnessConfig) { c.w, c.h = w, h }
}

func withOrigin(x, y float64) harnessOption {
	return func(c *harnessConfig) { c.ox, c.oy = x, y }
}

func withTool(t formation.Tool) harnessOption {
	return func(c *harnessConfig) { c.tool = t }
}

func withVerbose() harnessOption {
	return func(c *harnessConfig) { c.verbose = true }
}

// withPlayer adds an on-field player at a board percentage.
func withPlayer(id string, number int, x, y float64) harnessOption {
	return func(c *harnessConfig) {
		c.players = append(c.players, formation.Player{
			ID:       id,
			Name:     "Jugador " + id,
			Number:   number,
			Role:     formation.RoleMidfielder,
			Position: geom.Position{X: x, Y: y},
			Color:    formation.OutfieldColor,
			OnField:  true,
		})
	}
}

func withDrawing(d formation.DrawingElement) harnessOption {
	return func(c *harnessConfig) { c.drawings = append(c.drawings, d) }
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func (f *fakeClipboard) ReadAll() (string, error) { return f.text, f.err }

var errClipboard = errors.New("clipboard unavailable")

func fixedNow() time.Time { return time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC) }

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	cfg := harnessConfig{w: 800, h: 400, tool: formation.ToolSelect, thickness: 3}
	for _, o := range opts {
		o(&cfg)
	}

	store := formation.NewStore(formation.WithClock(fixedNow))
	if cfg.players != nil || cfg.drawings != nil {
		f := store.State().Current
		if cfg.players != nil {
			f.Players = cfg.players
		}
		f.Drawings = append([]formation.DrawingElement{}, cfg.drawings...)
		store.LoadFormation(f)
	}
	store.SetTool(cfg.tool)

	events := NewEventLog(0, cfg.verbose)
	in := NewInteraction(store, events, cfg.thickness)
	in.SetSize(cfg.w, cfg.h)
	src := NewEbitenSource()
	src.SetBounds(cfg.ox, cfg.oy, float64(cfg.w), float64(cfg.h))
	clip := &fakeClipboard{}
	lib := formation.NewLibrary(t.TempDir())

	h := &harness{
		t:      t,
		store:  store,
		lib:    lib,
		in:     in,
		src:    src,
		norm:   pointer.New(src, in.Callbacks()),
		ctl:    NewController(store, lib, in, clip, []string{"#ef4444", "#ffffff", "#facc15"}, t.TempDir()),
		clip:   clip,
		events: events,
		ox:     cfg.ox,
		oy:     cfg.oy,
	}
	// Park the cursor off the board.
	h.mouseMove(-1, -1)
	return h
}

func (h *harness) feed(s InputSnapshot) { h.src.Feed(s) }

func (h *harness) cursor(x, y float64) InputSnapshot {
	h.cx, h.cy = x, y
	return InputSnapshot{CursorX: x + h.ox, CursorY: y + h.oy}
}

func (h *harness) mouseDown(x, y float64) {
	s := h.cursor(x, y)
	s.LeftPressed = true
	h.feed(s)
}

func (h *harness) mouseMove(x, y float64) { h.feed(h.cursor(x, y)) }

func (h *harness) mouseUp(x, y float64) {
	s := h.cursor(x, y)
	s.LeftReleased = true
	h.feed(s)
}

// touches feeds the given contacts, in board coordinates, as the full set
// of fingers currently down. The cursor stays put.
func (h *harness) touches(cs ...pointer.Contact) {
	s := InputSnapshot{CursorX: h.cx + h.ox, CursorY: h.cy + h.oy}
	for _, c := range cs {
		s.Touches = append(s.Touches, pointer.Contact{ID: c.ID, ClientX: c.ClientX + h.ox, ClientY: c.ClientY + h.oy})
	}
	h.feed(s)
}

func (h *harness) player(id string) formation.Player {
	h.t.Helper()
	st := h.store.State()
	p, ok := st.Current.Player(id)
	if !ok {
		h.t.Fatalf("player %q not in formation", id)
	}
	return *p
}

func (h *harness) drawings() []formation.DrawingElement {
	return h.store.State().Current.Drawings
}

func nearPos(p geom.Position, x, y float64) bool {
	return math.Abs(p.X-x) < 1e-6 && math.Abs(p.Y-y) < 1e-6
}

func contact(id int, x, y float64) pointer.Contact {
	return pointer.Contact{ID: id, ClientX: x, ClientY: y}
}
