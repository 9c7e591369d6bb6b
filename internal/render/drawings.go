package render

import (
	"image/color"
	"math"

	"github.com/Garsondee/tactics-board/internal/formation"
	"github.com/Garsondee/tactics-board/internal/geom"
)

const (
	// DrawingHitSlack is added to half a drawing's thickness for eraser picks.
	DrawingHitSlack = 8.0

	minArrowHead     = 12.0
	arrowHeadPerUnit = 4.0
	arrowHeadAngle   = math.Pi / 6
	curveSteps       = 8
	dashOnPerUnit    = 3.0
	dashOffPerUnit   = 2.0
)

var fallbackInk = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}

// Drawings renders tactical annotations above the tokens.
type Drawings struct {
	items   []formation.DrawingElement
	preview *formation.DrawingElement
	w, h    float64
}

// NewDrawings returns an empty drawing layer.
func NewDrawings() *Drawings {
	return &Drawings{}
}

// SetDrawings replaces the committed drawings.
func (d *Drawings) SetDrawings(items []formation.DrawingElement) { d.items = items }

// SetPreview sets the in-progress sketch; nil hides it.
func (d *Drawings) SetPreview(p *formation.DrawingElement) { d.preview = p }

// SetDimensions records the canvas size.
func (d *Drawings) SetDimensions(w, h int) { d.w, d.h = float64(w), float64(h) }

// Render draws committed drawings in order, then the preview.
func (d *Drawings) Render(c Canvas) {
	for _, it := range d.items {
		d.drawElement(c, it)
	}
	if d.preview != nil {
		d.drawElement(c, *d.preview)
	}
}

func (d *Drawings) drawElement(c Canvas, e formation.DrawingElement) {
	path := d.Path(e)
	if len(path) < 2 {
		return
	}
	ink := ParseHexColorOr(e.Color, fallbackInk)
	width := f32(thickness(e))

	switch e.Type {
	case formation.DrawDashed:
		for _, seg := range dashSegments(path, dashOnPerUnit*thickness(e), dashOffPerUnit*thickness(e)) {
			c.StrokeLine(seg[0].X, seg[0].Y, seg[1].X, seg[1].Y, width, ink)
		}
	default:
		strokePolyline(c, path, width, ink)
	}
	if e.Type == formation.DrawArrow || e.Type == formation.DrawCurved {
		c.FillPolygon(arrowHead(path, thickness(e)), ink)
	}
}

// Path is the pixel polyline a drawing renders as: arrows use only their
// first and last points, curves are smoothed and sampled.
func (d *Drawings) Path(e formation.DrawingElement) []Point {
	pts := make([]Point, len(e.Points))
	for i, p := range e.Points {
		x, y := geom.ToPixel(p, d.w, d.h)
		pts[i] = Point{X: f32(x), Y: f32(y)}
	}
	if len(pts) < 2 {
		return pts
	}
	switch e.Type {
	case formation.DrawArrow:
		return []Point{pts[0], pts[len(pts)-1]}
	case formation.DrawCurved:
		return smoothCurve(pts)
	}
	return pts
}

// HitTest returns the topmost drawing whose rendered path passes within
// thickness/2 + DrawingHitSlack of (px, py).
func (d *Drawings) HitTest(px, py float64) (formation.DrawingElement, bool) {
	for i := len(d.items) - 1; i >= 0; i-- {
		e := d.items[i]
		limit := thickness(e)/2 + DrawingHitSlack
		path := d.Path(e)
		for k := 1; k < len(path); k++ {
			a, b := path[k-1], path[k]
			if geom.SegmentDist(px, py, float64(a.X), float64(a.Y), float64(b.X), float64(b.Y)) <= limit {
				return e, true
			}
		}
	}
	return formation.DrawingElement{}, false
}

func thickness(e formation.DrawingElement) float64 {
	if e.Thickness < 1 {
		return 1
	}
	return e.Thickness
}

func strokePolyline(c Canvas, pts []Point, width float32, ink color.Color) {
	for i := 1; i < len(pts); i++ {
		c.StrokeLine(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, ink)
	}
}

// smoothCurve runs quadratic segments through the midpoints of consecutive
// points, using each interior point as a control point.
func smoothCurve(pts []Point) []Point {
	if len(pts) < 3 {
		return pts
	}
	out := []Point{pts[0]}
	start := pts[0]
	for i := 1; i < len(pts)-1; i++ {
		ctrl := pts[i]
		end := midpoint(pts[i], pts[i+1])
		for s := 1; s <= curveSteps; s++ {
			out = append(out, quadAt(start, ctrl, end, float32(s)/curveSteps))
		}
		start = end
	}
	return append(out, pts[len(pts)-1])
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func quadAt(p0, p1, p2 Point, t float32) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

// arrowHead is a triangle whose tip sits on the last point, aimed along the
// final segment.
func arrowHead(path []Point, thick float64) []Point {
	tip := path[len(path)-1]
	from := path[len(path)-2]
	for i := len(path) - 2; i > 0 && from == tip; i-- {
		from = path[i-1]
	}
	angle := math.Atan2(float64(tip.Y-from.Y), float64(tip.X-from.X))
	l := math.Max(minArrowHead, arrowHeadPerUnit*thick)
	return []Point{
		tip,
		{X: tip.X - f32(l*math.Cos(angle-arrowHeadAngle)), Y: tip.Y - f32(l*math.Sin(angle-arrowHeadAngle))},
		{X: tip.X - f32(l*math.Cos(angle+arrowHeadAngle)), Y: tip.Y - f32(l*math.Sin(angle+arrowHeadAngle))},
	}
}

// dashSegments cuts a polyline into on-runs of length on separated by gaps
// of length off. The dash phase carries across vertices.
func dashSegments(pts []Point, on, off float64) [][2]Point {
	var out [][2]Point
	drawing := true
	left := on
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := geom.Dist(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
		pos := 0.0
		for segLen-pos > 1e-9 {
			step := math.Min(left, segLen-pos)
			if drawing {
				out = append(out, [2]Point{lerp(a, b, pos/segLen), lerp(a, b, (pos+step)/segLen)})
			}
			pos += step
			left -= step
			if left <= 1e-9 {
				drawing = !drawing
				if drawing {
					left = on
				} else {
					left = off
				}
			}
		}
	}
	return out
}

func lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*f32(t), Y: a.Y + (b.Y-a.Y)*f32(t)}
}
