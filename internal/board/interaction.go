package board

import (
	"fmt"

	"github.com/Garsondee/tactics-board/internal/formation"
	"github.com/Garsondee/tactics-board/internal/geom"
	"github.com/Garsondee/tactics-board/internal/pointer"
	"github.com/Garsondee/tactics-board/internal/render"
)

const (
	// CurveSampleSpacing is the minimum pixel gap between kept curve points.
	CurveSampleSpacing = 3.0
	// MinStrokeSpan is how far a sketch must reach from its first point to be
	// committed.
	MinStrokeSpan = 10.0
)

// Interaction turns normalized pointer events into store operations for the
// active tool. It keeps its own token and drawing layers for hit-testing,
// synced from the store at the start of each gesture.
type Interaction struct {
	store     *formation.Store
	events    *EventLog
	tokens    *render.Tokens
	drawings  *render.Drawings
	w, h      float64
	thickness float64
	frame     int

	dragID         string
	grabDX, grabDY float64

	pending        *formation.DrawingElement
	startX, startY float64
	lastX, lastY   float64
	span           float64
}

// NewInteraction wires an interaction controller to store. events may be nil.
func NewInteraction(store *formation.Store, events *EventLog, thickness float64) *Interaction {
	if events == nil {
		events = NewEventLog(DefaultEventLogLimit, false)
	}
	return &Interaction{
		store:     store,
		events:    events,
		tokens:    render.NewTokens(),
		drawings:  render.NewDrawings(),
		thickness: thickness,
	}
}

// Callbacks returns the handlers to pass to pointer.New.
func (in *Interaction) Callbacks() pointer.Callbacks {
	return pointer.Callbacks{OnStart: in.start, OnMove: in.move, OnEnd: in.end}
}

// SetSize records the board surface size in pixels.
func (in *Interaction) SetSize(w, h int) {
	in.w, in.h = float64(w), float64(h)
	in.tokens.SetDimensions(w, h)
	in.drawings.SetDimensions(w, h)
}

// SetFrame stamps subsequent event log entries.
func (in *Interaction) SetFrame(frame int) { in.frame = frame }

// SetThickness sets the stroke width of new sketches.
func (in *Interaction) SetThickness(t float64) {
	if t >= 1 {
		in.thickness = t
	}
}

// Thickness is the stroke width of new sketches.
func (in *Interaction) Thickness() float64 { return in.thickness }

// Events returns the interaction log.
func (in *Interaction) Events() *EventLog { return in.events }

// Dragging returns the id of the player being dragged.
func (in *Interaction) Dragging() (string, bool) { return in.dragID, in.dragID != "" }

// Pending returns a copy of the sketch in progress, or nil.
func (in *Interaction) Pending() *formation.DrawingElement {
	if in.pending == nil {
		return nil
	}
	p := *in.pending
	p.Points = append([]geom.Position(nil), in.pending.Points...)
	return &p
}

// Cancel drops any gesture in progress without committing it.
func (in *Interaction) Cancel() {
	in.dragID = ""
	if in.pending != nil {
		in.pending = nil
		in.store.SetIsDrawing(false)
	}
}

func pointerLabel(ev pointer.Event) string {
	return fmt.Sprintf("%s#%d", ev.Source, ev.ID)
}

func (in *Interaction) sync() {
	st := in.store.State()
	in.tokens.SetPlayers(st.Current.Players)
	in.drawings.SetDrawings(st.Current.Drawings)
}

func (in *Interaction) start(ev pointer.Event) {
	ptr := pointerLabel(ev)
	pos, err := geom.ToPercent(ev.X, ev.Y, in.w, in.h)
	if err != nil {
		in.events.Add(in.frame, ptr, "pointer", "ignored", err.Error())
		return
	}
	in.Cancel()
	in.sync()

	st := in.store.State()
	switch st.Tool {
	case formation.ToolSelect:
		p, ok := in.tokens.HitTest(ev.X, ev.Y)
		if !ok {
			in.store.SelectPlayer("")
			in.events.Add(in.frame, ptr, "select", "miss", fmt.Sprintf("%.1f,%.1f", pos.X, pos.Y))
			return
		}
		cx, cy := in.tokens.Center(p)
		in.dragID = p.ID
		in.grabDX, in.grabDY = ev.X-cx, ev.Y-cy
		in.store.SelectPlayer(p.ID)
		in.events.Add(in.frame, ptr, "select", "grab", fmt.Sprintf("%s #%d", p.ID, p.Number))

	case formation.ToolEraser:
		e, ok := in.drawings.HitTest(ev.X, ev.Y)
		if !ok {
			in.events.Add(in.frame, ptr, "erase", "miss", "")
			return
		}
		in.store.RemoveDrawing(e.ID)
		in.events.Add(in.frame, ptr, "erase", "remove", fmt.Sprintf("%s %s", e.ID, e.Type))

	default:
		dt, ok := st.Tool.DrawingType()
		if !ok {
			return
		}
		in.pending = &formation.DrawingElement{
			ID:        formation.NewID(),
			Type:      dt,
			Points:    []geom.Position{pos},
			Color:     st.DrawColor,
			Thickness: in.thickness,
		}
		in.startX, in.startY = ev.X, ev.Y
		in.lastX, in.lastY = ev.X, ev.Y
		in.span = 0
		in.store.SetIsDrawing(true)
		in.events.Add(in.frame, ptr, "draw", "begin", string(dt))
	}
}

func (in *Interaction) move(ev pointer.Event) {
	switch {
	case in.dragID != "":
		pos, err := geom.ToPercent(ev.X-in.grabDX, ev.Y-in.grabDY, in.w, in.h)
		if err != nil {
			return
		}
		pos = geom.Clamp(pos)
		in.store.UpdatePlayerPosition(in.dragID, pos)
		in.events.AddVerbose(in.frame, pointerLabel(ev), "drag", "move", fmt.Sprintf("%.1f,%.1f", pos.X, pos.Y))
	case in.pending != nil:
		in.extend(ev)
	}
}

// extend adds ev to the pending sketch. Straight tools keep only their first
// and latest points; curves keep points spaced at least CurveSampleSpacing
// apart.
func (in *Interaction) extend(ev pointer.Event) {
	pos, err := geom.ToPercent(ev.X, ev.Y, in.w, in.h)
	if err != nil {
		return
	}
	if d := geom.Dist(in.startX, in.startY, ev.X, ev.Y); d > in.span {
		in.span = d
	}
	p := in.pending
	if p.Type == formation.DrawCurved {
		if geom.Dist(in.lastX, in.lastY, ev.X, ev.Y) <= CurveSampleSpacing {
			return
		}
		p.Points = append(p.Points, pos)
		in.lastX, in.lastY = ev.X, ev.Y
		return
	}
	p.Points = append(p.Points[:1], pos)
	in.lastX, in.lastY = ev.X, ev.Y
}

func (in *Interaction) end(ev pointer.Event) {
	ptr := pointerLabel(ev)
	if in.dragID != "" {
		in.events.Add(in.frame, ptr, "drag", "drop", in.dragID)
		in.dragID = ""
	}
	if in.pending == nil {
		return
	}
	in.extend(ev)
	p := in.pending
	in.pending = nil
	in.store.SetIsDrawing(false)
	if in.span < MinStrokeSpan || len(p.Points) < 2 {
		in.events.Add(in.frame, ptr, "draw", "discard", fmt.Sprintf("%s span %.1f", p.Type, in.span))
		return
	}
	in.store.AddDrawing(*p)
	in.events.Add(in.frame, ptr, "draw", "commit", fmt.Sprintf("%s %d pts", p.Type, len(p.Points)))
}
