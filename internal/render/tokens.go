package render

import (
	"image/color"
	"math"
	"strconv"

	"github.com/Garsondee/tactics-board/internal/formation"
	"github.com/Garsondee/tactics-board/internal/geom"
)

const (
	// HitTolerance widens every token's pick radius so fingers can grab it.
	HitTolerance = 5.0

	nameMaxRunes    = 10
	nameKeepRunes   = 9
	ellipsis        = "…"
	roleLabelOffset = 12
	nameLabelOffset = 26
	initialRadius   = 20
)

var (
	selectedOutline = color.NRGBA{R: 0xfb, G: 0xbf, B: 0x24, A: 0xff}
	neutralOutline  = color.NRGBA{A: 0xff}
	fallbackToken   = color.NRGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
)

// Tokens renders on-field players and resolves pointer picks against them.
// It keeps the last players, selection and dimensions it was given and
// never mutates them.
type Tokens struct {
	players    []formation.Player
	selectedID string
	w, h       float64
	radius     float64
}

// NewTokens returns an empty token layer.
func NewTokens() *Tokens {
	return &Tokens{radius: initialRadius}
}

// SetPlayers replaces the token list. Off-field players are dropped.
func (t *Tokens) SetPlayers(players []formation.Player) {
	// Callers may still hold the slice Players returned.
	out := make([]formation.Player, 0, len(players))
	for _, p := range players {
		if p.OnField {
			out = append(out, p)
		}
	}
	t.players = out
}

// Players returns the tokens in draw order.
func (t *Tokens) Players() []formation.Player { return t.players }

// SetSelectedID marks one token as selected; "" clears it.
func (t *Tokens) SetSelectedID(id string) { t.selectedID = id }

// SetDimensions records the canvas size and recomputes the token radius.
func (t *Tokens) SetDimensions(w, h int) {
	t.w, t.h = float64(w), float64(h)
	t.radius = geom.TokenRadius(t.w, t.h)
}

// TokenRadius is the radius shared by every token this frame.
func (t *Tokens) TokenRadius() float64 { return t.radius }

// Center maps a player's position onto the canvas.
func (t *Tokens) Center(p formation.Player) (float64, float64) {
	return geom.ToPixel(p.Position, t.w, t.h)
}

// PixelToPercent converts a canvas pixel back to a board position.
func (t *Tokens) PixelToPercent(px, py float64) (geom.Position, error) {
	return geom.ToPercent(px, py, t.w, t.h)
}

// Render draws every token in list order, later tokens on top. It does not
// clear the canvas.
func (t *Tokens) Render(c Canvas) {
	for _, p := range t.players {
		t.drawToken(c, p)
	}
}

func (t *Tokens) drawToken(c Canvas, p formation.Player) {
	x, y := t.Center(p)
	cx, cy, r := f32(x), f32(y), f32(t.radius)

	// Soft drop shadow offset down-right.
	c.FillCircle(cx+2, cy+2, r+3, black(0.1))
	c.FillCircle(cx+2, cy+2, r, black(0.3))

	c.FillCircle(cx, cy, r, ParseHexColorOr(p.Color, fallbackToken))

	if p.ID == t.selectedID {
		c.StrokeCircle(cx, cy, r, 4, selectedOutline)
	} else {
		c.StrokeCircle(cx, cy, r, 2, neutralOutline)
	}

	c.Text(strconv.Itoa(p.Number), cx, cy, TextStyle{Size: r * 0.8, Bold: true, Color: color.White})
	c.Text(string(p.Role), cx, cy+r+roleLabelOffset, TextStyle{Size: r * 0.5, Color: white(0.8)})
	c.Text(TruncateName(p.Name), cx, cy+r+nameLabelOffset, TextStyle{Size: r * 0.45, Bold: true, Color: white(0.9)})
}

// HitTest returns the topmost token within radius+HitTolerance of (px, py).
// It walks tokens in reverse draw order so overlapping picks match what is
// visible.
func (t *Tokens) HitTest(px, py float64) (formation.Player, bool) {
	limit := t.radius + HitTolerance
	for i := len(t.players) - 1; i >= 0; i-- {
		x, y := t.Center(t.players[i])
		if math.Hypot(px-x, py-y) <= limit {
			return t.players[i], true
		}
	}
	return formation.Player{}, false
}

// TruncateName shortens names longer than ten characters to nine plus an
// ellipsis.
func TruncateName(name string) string {
	r := []rune(name)
	if len(r) <= nameMaxRunes {
		return name
	}
	return string(r[:nameKeepRunes]) + ellipsis
}
