package board

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/tactics-board/internal/render"
)

// EbitenCanvas draws onto an ebiten image with anti-aliased vector paths.
type EbitenCanvas struct {
	dst     *ebiten.Image
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
}

// NewEbitenCanvas wraps dst. A nil image is render.ErrNoContext.
func NewEbitenCanvas(dst *ebiten.Image) (*EbitenCanvas, error) {
	if dst == nil {
		return nil, render.ErrNoContext
	}
	reg, err := text.NewGoTextFaceSource(bytes.NewReader(render.FontTTF(false)))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(render.FontTTF(true)))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &EbitenCanvas{dst: dst, regular: reg, bold: bold}, nil
}

// SetTarget switches the destination image, e.g. after a resize.
func (c *EbitenCanvas) SetTarget(dst *ebiten.Image) { c.dst = dst }

func (c *EbitenCanvas) Size() (int, int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (c *EbitenCanvas) Clear() { c.dst.Clear() }

func (c *EbitenCanvas) FillRect(x, y, w, h float32, clr color.Color) {
	vector.FillRect(c.dst, x, y, w, h, clr, true)
}

func (c *EbitenCanvas) StrokeRect(x, y, w, h, width float32, clr color.Color) {
	vector.StrokeRect(c.dst, x, y, w, h, width, clr, true)
}

func (c *EbitenCanvas) StrokeLine(x0, y0, x1, y1, width float32, clr color.Color) {
	var path vector.Path
	path.MoveTo(x0, y0)
	path.LineTo(x1, y1)
	op := &vector.StrokeOptions{Width: width, LineCap: vector.LineCapRound}
	vector.StrokePath(c.dst, &path, op, pathOptions(clr))
}

func (c *EbitenCanvas) FillCircle(cx, cy, r float32, clr color.Color) {
	vector.FillCircle(c.dst, cx, cy, r, clr, true)
}

func (c *EbitenCanvas) StrokeCircle(cx, cy, r, width float32, clr color.Color) {
	vector.StrokeCircle(c.dst, cx, cy, r, width, clr, true)
}

func (c *EbitenCanvas) StrokeArc(cx, cy, r, start, end, width float32, clr color.Color) {
	var path vector.Path
	path.MoveTo(cx+r*float32(math.Cos(float64(start))), cy+r*float32(math.Sin(float64(start))))
	path.Arc(cx, cy, r, start, end, vector.Clockwise)
	vector.StrokePath(c.dst, &path, &vector.StrokeOptions{Width: width}, pathOptions(clr))
}

func (c *EbitenCanvas) FillPolygon(pts []render.Point, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		path.LineTo(p.X, p.Y)
	}
	path.Close()
	vector.FillPath(c.dst, &path, &vector.FillOptions{}, pathOptions(clr))
}

func (c *EbitenCanvas) Text(s string, x, y float32, style render.TextStyle) {
	if s == "" {
		return
	}
	src := c.regular
	if style.Bold {
		src = c.bold
	}
	face := &text.GoTextFace{Source: src, Size: float64(style.Size)}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	if style.Color != nil {
		op.ColorScale.ScaleWithColor(style.Color)
	}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(c.dst, s, face, op)
}

func pathOptions(clr color.Color) *vector.DrawPathOptions {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	return op
}
