package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Op is one recorded canvas call.
type Op struct {
	Kind  string // clear, fill_rect, stroke_rect, stroke_line, fill_circle, stroke_circle, stroke_arc, fill_polygon, text
	Args  []float32
	Color color.Color
	Text  string
	Style TextStyle
	Pts   []Point
}

// String formats the op as one trace line.
//
//	stroke_rect   [20.00 20.00 760.00 360.00 2.00]
func (o Op) String() string {
	args := make([]string, len(o.Args))
	for i, a := range o.Args {
		args[i] = fmt.Sprintf("%.2f", a)
	}
	line := fmt.Sprintf("%-13s [%s]", o.Kind, strings.Join(args, " "))
	if o.Kind == "text" {
		line += fmt.Sprintf(" %q", o.Text)
	}
	if o.Kind == "fill_polygon" {
		line += fmt.Sprintf(" %d pts", len(o.Pts))
	}
	return line
}

// Recorder is a Canvas that records calls instead of drawing. Used for
// geometry checks and draw traces.
type Recorder struct {
	W, H int
	ops  []Op
}

// NewRecorder returns a recorder reporting the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

// Ops returns every recorded call in order.
func (r *Recorder) Ops() []Op { return r.ops }

// Filter returns the recorded calls of one kind.
func (r *Recorder) Filter(kind string) []Op {
	var out []Op
	for _, o := range r.ops {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() { r.ops = r.ops[:0] }

func (r *Recorder) add(kind string, c color.Color, args ...float32) {
	r.ops = append(r.ops, Op{Kind: kind, Args: args, Color: c})
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear() { r.add("clear", nil) }

func (r *Recorder) FillRect(x, y, w, h float32, c color.Color) {
	r.add("fill_rect", c, x, y, w, h)
}

func (r *Recorder) StrokeRect(x, y, w, h, width float32, c color.Color) {
	r.add("stroke_rect", c, x, y, w, h, width)
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float32, c color.Color) {
	r.add("stroke_line", c, x0, y0, x1, y1, width)
}

func (r *Recorder) FillCircle(cx, cy, rad float32, c color.Color) {
	r.add("fill_circle", c, cx, cy, rad)
}

func (r *Recorder) StrokeCircle(cx, cy, rad, width float32, c color.Color) {
	r.add("stroke_circle", c, cx, cy, rad, width)
}

func (r *Recorder) StrokeArc(cx, cy, rad, start, end, width float32, c color.Color) {
	r.add("stroke_arc", c, cx, cy, rad, start, end, width)
}

func (r *Recorder) FillPolygon(pts []Point, c color.Color) {
	r.ops = append(r.ops, Op{Kind: "fill_polygon", Color: c, Pts: append([]Point(nil), pts...)})
}

func (r *Recorder) Text(s string, x, y float32, style TextStyle) {
	r.ops = append(r.ops, Op{Kind: "text", Args: []float32{x, y, style.Size}, Color: style.Color, Text: s, Style: style})
}
