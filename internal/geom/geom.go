// Package geom maps between percentage-space board positions and canvas pixels.
package geom

import (
	"errors"
	"math"
)

// ErrZeroArea is returned when a pixel coordinate is converted against a
// canvas that has not been laid out yet (width or height <= 0).
var ErrZeroArea = errors.New("geom: canvas has zero area")

// Token radius bounds in pixels.
const (
	MinTokenRadius = 15.0
	MaxTokenRadius = 30.0

	tokenRadiusRatio = 0.04
)

// Position is a resolution-independent location on the pitch: x and y are
// percentages (0-100) of the canvas width and height. Values outside that
// range are off-pitch but still valid.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToPixel maps p onto a canvas of the given size. Out-of-range percentages
// land outside the canvas.
func ToPixel(p Position, w, h float64) (float64, float64) {
	return p.X / 100 * w, p.Y / 100 * h
}

// ToPercent is the inverse of ToPixel. A zero-area canvas yields the zero
// Position and ErrZeroArea.
func ToPercent(px, py, w, h float64) (Position, error) {
	if w <= 0 || h <= 0 {
		return Position{}, ErrZeroArea
	}
	return Position{X: px / w * 100, Y: py / h * 100}, nil
}

// TokenRadius is the shared token radius for a canvas: 4% of the shorter
// side, clamped to [MinTokenRadius, MaxTokenRadius].
func TokenRadius(w, h float64) float64 {
	r := math.Min(w, h) * tokenRadiusRatio
	return math.Max(MinTokenRadius, math.Min(r, MaxTokenRadius))
}

// Clamp pulls p onto the pitch.
func Clamp(p Position) Position {
	return Position{X: clamp(p.X, 0, 100), Y: clamp(p.Y, 0, 100)}
}

// OnPitch reports whether p lies inside [0,100] on both axes.
func OnPitch(p Position) bool {
	return p.X >= 0 && p.X <= 100 && p.Y >= 0 && p.Y <= 100
}

// Dist is the Euclidean distance between two pixel points.
func Dist(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x1-x0, y1-y0)
}

// SegmentDist is the distance from (px,py) to the segment (x0,y0)-(x1,y1).
func SegmentDist(px, py, x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return Dist(px, py, x0, y0)
	}
	t := clamp(((px-x0)*dx+(py-y0)*dy)/l2, 0, 1)
	return Dist(px, py, x0+t*dx, y0+t*dy)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
