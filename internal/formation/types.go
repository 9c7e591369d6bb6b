// Package formation holds the board's domain data: players, drawings,
// formations, the observable store that owns them and the file library
// that persists them.
package formation

import (
	"fmt"

	uuid "github.com/satori/go.uuid"

	"github.com/Garsondee/tactics-board/internal/geom"
)

// Role is a player's position group in 8-a-side football.
type Role string

const (
	RoleGoalkeeper Role = "GK"
	RoleDefender   Role = "DEF"
	RoleMidfielder Role = "MID"
	RoleForward    Role = "FWD"
	RoleSubstitute Role = "SUB"
)

// Player is one token on the board. ID is the only stable handle.
type Player struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Number   int           `json:"number"`
	Role     Role          `json:"role"`
	Position geom.Position `json:"position"`
	Color    string        `json:"color"`
	OnField  bool          `json:"isOnField"`
}

// DrawingType selects how a drawing's points are interpreted.
type DrawingType string

const (
	DrawArrow  DrawingType = "arrow"  // straight segment first→last point, arrowhead at the end
	DrawDashed DrawingType = "dashed" // dashed polyline
	DrawCurved DrawingType = "curved" // smoothed curve through all points, arrowhead at the end
	DrawLine   DrawingType = "line"   // plain polyline
)

// DrawingElement is a tactical annotation. Points are in percentage space.
// Drawings are never edited, only added or removed whole.
type DrawingElement struct {
	ID        string          `json:"id"`
	Type      DrawingType     `json:"type"`
	Points    []geom.Position `json:"points"`
	Color     string          `json:"color"`
	Thickness float64         `json:"thickness"`
}

// Formation is a named snapshot of player placements plus drawings.
// Timestamps are RFC 3339 strings.
type Formation struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedAt string           `json:"createdAt"`
	UpdatedAt string           `json:"updatedAt"`
	Players   []Player         `json:"players"`
	Drawings  []DrawingElement `json:"drawings"`
}

// Tool is the active board tool.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolArrow  Tool = "arrow"
	ToolDashed Tool = "dashed"
	ToolCurved Tool = "curved"
	ToolEraser Tool = "eraser"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolSelect, ToolArrow, ToolDashed, ToolCurved, ToolEraser}

// DrawingType returns the drawing a sketching tool produces.
func (t Tool) DrawingType() (DrawingType, bool) {
	switch t {
	case ToolArrow:
		return DrawArrow, true
	case ToolDashed:
		return DrawDashed, true
	case ToolCurved:
		return DrawCurved, true
	}
	return "", false
}

// OnField returns the players currently on the pitch, in list order.
func (f *Formation) OnField() []Player {
	out := make([]Player, 0, len(f.Players))
	for _, p := range f.Players {
		if p.OnField {
			out = append(out, p)
		}
	}
	return out
}

// Player looks a player up by id.
func (f *Formation) Player(id string) (*Player, bool) {
	for i := range f.Players {
		if f.Players[i].ID == id {
			return &f.Players[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy, so the result shares no slices with f.
func (f Formation) Clone() Formation {
	out := f
	out.Players = append([]Player(nil), f.Players...)
	out.Drawings = make([]DrawingElement, len(f.Drawings))
	for i, d := range f.Drawings {
		d.Points = append([]geom.Position(nil), d.Points...)
		out.Drawings[i] = d
	}
	return out
}

// NewID returns a fresh random identifier.
func NewID() string {
	id, err := uuid.NewV4()
	if err != nil {
		// Only fails when the system entropy source is broken.
		panic(fmt.Sprintf("formation: generate id: %v", err))
	}
	return id.String()
}
