package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Raster is a Canvas backed by an in-memory RGBA image, used for headless
// rendering. Shapes are rasterized with anti-aliasing.
type Raster struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	faces *faceCache
}

// NewRaster wraps img. A nil image is ErrNoContext.
func NewRaster(img *image.RGBA) (*Raster, error) {
	if img == nil {
		return nil, ErrNoContext
	}
	faces, err := newFaceCache()
	if err != nil {
		return nil, fmt.Errorf("raster fonts: %w", err)
	}
	b := img.Bounds()
	return &Raster{img: img, z: vector.NewRasterizer(b.Dx(), b.Dy()), faces: faces}, nil
}

// NewRasterSize allocates a w×h image and wraps it.
func NewRasterSize(w, h int) (*Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster size %dx%d: %w", w, h, ErrNoContext)
	}
	return NewRaster(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// Image is the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

// EncodePNG writes the current image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) FillRect(x, y, w, h float32, c color.Color) {
	r.fill(c, rectPoly(x, y, w, h, true))
}

func (r *Raster) StrokeRect(x, y, w, h, width float32, c color.Color) {
	hw := width / 2
	polys := [][]Point{rectPoly(x-hw, y-hw, w+width, h+width, true)}
	if w > width && h > width {
		polys = append(polys, rectPoly(x+hw, y+hw, w-width, h-width, false))
	}
	r.fill(c, polys...)
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float32, c color.Color) {
	hw := width / 2
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	caps := [][]Point{circlePoly(x0, y0, hw, true), circlePoly(x1, y1, hw, true)}
	if l == 0 {
		r.fill(c, caps...)
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	body := orient([]Point{
		{X: x0 + nx, Y: y0 + ny},
		{X: x1 + nx, Y: y1 + ny},
		{X: x1 - nx, Y: y1 - ny},
		{X: x0 - nx, Y: y0 - ny},
	}, true)
	r.fill(c, append(caps, body)...)
}

func (r *Raster) FillCircle(cx, cy, rad float32, c color.Color) {
	r.fill(c, circlePoly(cx, cy, rad, true))
}

func (r *Raster) StrokeCircle(cx, cy, rad, width float32, c color.Color) {
	hw := width / 2
	polys := [][]Point{circlePoly(cx, cy, rad+hw, true)}
	if rad > hw {
		polys = append(polys, circlePoly(cx, cy, rad-hw, false))
	}
	r.fill(c, polys...)
}

func (r *Raster) StrokeArc(cx, cy, rad, start, end, width float32, c color.Color) {
	hw := width / 2
	n := segmentsFor(rad)
	outer := make([]Point, 0, 2*(n+1))
	inner := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := float64(start) + float64(end-start)*float64(i)/float64(n)
		cos, sin := float32(math.Cos(a)), float32(math.Sin(a))
		outer = append(outer, Point{X: cx + (rad+hw)*cos, Y: cy + (rad+hw)*sin})
		inner = append(inner, Point{X: cx + max32(rad-hw, 0)*cos, Y: cy + max32(rad-hw, 0)*sin})
	}
	for i := len(inner) - 1; i >= 0; i-- {
		outer = append(outer, inner[i])
	}
	r.fill(c, outer)
}

func (r *Raster) FillPolygon(pts []Point, c color.Color) {
	r.fill(c, pts)
}

func (r *Raster) Text(s string, x, y float32, style TextStyle) {
	if s == "" {
		return
	}
	face := r.faces.face(style.Bold, style.Size)
	if face == nil {
		return
	}
	var src color.Color = color.White
	if style.Color != nil {
		src = style.Color
	}
	b := r.img.Bounds()
	m := face.Metrics()
	width := font.MeasureString(face, s)
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(src),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6((x+float32(b.Min.X))*64) - width/2,
			Y: fixed.Int26_6((y+float32(b.Min.Y))*64) + (m.Ascent-m.Descent)/2,
		},
	}
	d.DrawString(s)
}

// fill rasterizes the polygons as one path; overlapping polygons of the same
// winding blend once, opposite windings cut holes.
func (r *Raster) fill(c color.Color, polys ...[]Point) {
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	drawn := false
	for _, p := range polys {
		if len(p) < 3 {
			continue
		}
		r.z.MoveTo(p[0].X, p[0].Y)
		for _, q := range p[1:] {
			r.z.LineTo(q.X, q.Y)
		}
		r.z.ClosePath()
		drawn = true
	}
	if drawn {
		r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
	}
}

func rectPoly(x, y, w, h float32, ccw bool) []Point {
	return orient([]Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, ccw)
}

func circlePoly(cx, cy, rad float32, ccw bool) []Point {
	if rad <= 0 {
		return nil
	}
	n := segmentsFor(rad)
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: cx + rad*float32(math.Cos(a)), Y: cy + rad*float32(math.Sin(a))}
	}
	return orient(pts, ccw)
}

func segmentsFor(rad float32) int {
	n := int(rad*0.75) + 12
	if n > 96 {
		n = 96
	}
	return n
}

// orient returns pts with positive (ccw) or negative signed area.
func orient(pts []Point, ccw bool) []Point {
	var area float32
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if (area >= 0) == ccw {
		return pts
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
