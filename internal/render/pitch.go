package render

import (
	"image/color"
	"math"
)

// Pitch proportions. Every marking is derived from the canvas size on each
// call; nothing is cached across resizes.
const (
	pitchPaddingRatio    = 0.05
	centerCircleRatio    = 0.12
	largeAreaWidthRatio  = 0.12
	largeAreaHeightRatio = 0.45
	smallAreaWidthRatio  = 0.06
	smallAreaHeightRatio = 0.25
	penaltySpotRatio     = 0.70
	cornerArcRatio       = 0.03
	stripeCount          = 10

	centerDotRadius   = 4
	penaltySpotRadius = 3
)

// Side is one end of the pitch.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// GoalArea is the penalty-area geometry for one side.
type GoalArea struct {
	Side     Side
	Large    Rect
	Small    Rect
	PenaltyX float64
	PenaltyY float64
}

// CornerArc is a quarter circle drawn into one field corner.
type CornerArc struct {
	X, Y       float64
	Start, End float64 // radians
}

// PitchLayout is the full set of markings for one canvas size.
type PitchLayout struct {
	Width, Height float64
	Padding       float64
	Field         Rect
	CenterX       float64
	CenterY       float64
	CenterRadius  float64
	Areas         [2]GoalArea
	CornerRadius  float64
	Corners       [4]CornerArc // top-left, top-right, bottom-left, bottom-right
}

// Layout derives the pitch markings for a w×h canvas.
func Layout(w, h float64) PitchLayout {
	pad := math.Min(w, h) * pitchPaddingRatio
	field := Rect{X: pad, Y: pad, W: w - 2*pad, H: h - 2*pad}
	short := math.Min(field.W, field.H)

	l := PitchLayout{
		Width:        w,
		Height:       h,
		Padding:      pad,
		Field:        field,
		CenterX:      w / 2,
		CenterY:      h / 2,
		CenterRadius: short * centerCircleRatio,
		CornerRadius: short * cornerArcRatio,
	}
	l.Areas[SideLeft] = goalArea(field, SideLeft)
	l.Areas[SideRight] = goalArea(field, SideRight)

	right, bottom := w-pad, h-pad
	l.Corners = [4]CornerArc{
		{X: pad, Y: pad, Start: 0, End: math.Pi / 2},
		{X: right, Y: pad, Start: math.Pi / 2, End: math.Pi},
		{X: pad, Y: bottom, Start: -math.Pi / 2, End: 0},
		{X: right, Y: bottom, Start: math.Pi, End: math.Pi * 1.5},
	}
	return l
}

// goalArea measures one side's areas; the right side mirrors inward from the
// right touchline.
func goalArea(field Rect, side Side) GoalArea {
	lw, lh := field.W*largeAreaWidthRatio, field.H*largeAreaHeightRatio
	sw, sh := field.W*smallAreaWidthRatio, field.H*smallAreaHeightRatio
	midY := field.Y + field.H/2

	ga := GoalArea{
		Side:     side,
		Large:    Rect{Y: field.Y + (field.H-lh)/2, W: lw, H: lh},
		Small:    Rect{Y: field.Y + (field.H-sh)/2, W: sw, H: sh},
		PenaltyY: midY,
	}
	if side == SideLeft {
		ga.Large.X = field.X
		ga.Small.X = field.X
		ga.PenaltyX = field.X + lw*penaltySpotRatio
	} else {
		edge := field.X + field.W
		ga.Large.X = edge - lw
		ga.Small.X = edge - sw
		ga.PenaltyX = edge - lw*penaltySpotRatio
	}
	return ga
}

// Pitch draws the static field.
type Pitch struct {
	FieldColor  color.Color
	LineColor   color.Color
	StripeColor color.Color
	LineWidth   float32
}

// NewPitch returns a pitch with the standard grass and line colours.
func NewPitch() *Pitch {
	return &Pitch{
		FieldColor:  color.NRGBA{R: 0x2d, G: 0x8a, B: 0x4e, A: 0xff},
		LineColor:   color.White,
		StripeColor: black(0.03),
		LineWidth:   2,
	}
}

// Render draws the pitch onto c at w×h. It paints the whole surface, so it
// goes first in a frame.
func (p *Pitch) Render(c Canvas, w, h int) {
	fw, fh := float32(w), float32(h)
	c.FillRect(0, 0, fw, fh, p.FieldColor)
	p.drawStripes(c, fw, fh)

	l := Layout(float64(w), float64(h))
	lw := p.LineWidth
	f := l.Field

	c.StrokeRect(f32(f.X), f32(f.Y), f32(f.W), f32(f.H), lw, p.LineColor)
	c.StrokeLine(f32(l.CenterX), f32(f.Y), f32(l.CenterX), f32(f.Y+f.H), lw, p.LineColor)
	c.StrokeCircle(f32(l.CenterX), f32(l.CenterY), f32(l.CenterRadius), lw, p.LineColor)
	c.FillCircle(f32(l.CenterX), f32(l.CenterY), centerDotRadius, p.LineColor)

	for _, ga := range l.Areas {
		p.drawGoalArea(c, ga)
	}
	for _, ca := range l.Corners {
		c.StrokeArc(f32(ca.X), f32(ca.Y), f32(l.CornerRadius), f32(ca.Start), f32(ca.End), lw, p.LineColor)
	}
}

// drawStripes darkens every other vertical stripe.
func (p *Pitch) drawStripes(c Canvas, w, h float32) {
	sw := w / stripeCount
	for i := 0; i < stripeCount; i += 2 {
		c.FillRect(float32(i)*sw, 0, sw, h, p.StripeColor)
	}
}

func (p *Pitch) drawGoalArea(c Canvas, ga GoalArea) {
	lw := p.LineWidth
	c.StrokeRect(f32(ga.Large.X), f32(ga.Large.Y), f32(ga.Large.W), f32(ga.Large.H), lw, p.LineColor)
	c.StrokeRect(f32(ga.Small.X), f32(ga.Small.Y), f32(ga.Small.W), f32(ga.Small.H), lw, p.LineColor)
	c.FillCircle(f32(ga.PenaltyX), f32(ga.PenaltyY), penaltySpotRadius, p.LineColor)
}

func f32(v float64) float32 { return float32(v) }
