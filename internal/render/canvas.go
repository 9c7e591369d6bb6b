// Package render draws the board: pitch markings, player tokens and tactical
// drawings, composed onto any Canvas backend.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrNoContext is returned when a canvas is constructed without a drawing
// target. It is fatal for the caller; there is nothing to retry.
var ErrNoContext = errors.New("render: no 2D drawing target")

// Point is a pixel coordinate.
type Point struct {
	X, Y float32
}

// TextStyle describes a label. Text is always centred on its anchor point,
// horizontally and vertically.
type TextStyle struct {
	Size  float32
	Bold  bool
	Color color.Color
}

// Canvas is a 2D drawing surface. Angles are radians with 0 along +x,
// increasing toward +y; arcs sweep from start to end in that direction.
type Canvas interface {
	Size() (w, h int)
	Clear()
	FillRect(x, y, w, h float32, c color.Color)
	StrokeRect(x, y, w, h, width float32, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float32, c color.Color)
	FillCircle(cx, cy, r float32, c color.Color)
	StrokeCircle(cx, cy, r, width float32, c color.Color)
	StrokeArc(cx, cy, r, start, end, width float32, c color.Color)
	FillPolygon(pts []Point, c color.Color)
	Text(s string, x, y float32, style TextStyle)
}

// ParseHexColor parses #rgb, #rrggbb and #rrggbbaa.
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("render: bad colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("render: bad colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ParseHexColorOr parses s, falling back to def for malformed input.
func ParseHexColorOr(s string, def color.Color) color.Color {
	c, err := ParseHexColor(s)
	if err != nil {
		return def
	}
	return c
}

// white and black return the colour at the given opacity (0-1).
func white(a float64) color.NRGBA { return color.NRGBA{R: 255, G: 255, B: 255, A: uint8(a * 255)} }
func black(a float64) color.NRGBA { return color.NRGBA{A: uint8(a * 255)} }
