// Package core provides the shared value types of the layout engine: points,
// sizes, axis-aligned rectangles and wall segments in room-local meters, plus
// the character screen used by terminal renderers.
// It has no external dependencies so engine logic stays pure and testable.
package core

import (
	"fmt"
	"math"
)

// Point is a position in room-local coordinates.
// X grows to the right, Y grows downward.
type Point struct {
	X, Y float64
}

// Pt is a convenience constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from o to p.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Dist returns the euclidean distance between two points.
func (p Point) Dist(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect represents an axis-aligned rectangle used for placement and collision.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// MoveTo returns a copy of r with its top-left corner at p.
func (r Rect) MoveTo(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// WithSize returns a copy of r with the same origin and the given size.
func (r Rect) WithSize(s Size) Rect {
	r.W, r.H = s.W, s.H
	return r
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.X, Y: r.Bottom()},
	}
}

// Intersects reports whether r and other overlap by more than tol on both
// axes. Rectangles that only share an edge never intersect.
func (r Rect) Intersects(other Rect, tol float64) bool {
	if r.X >= other.Right()-tol || other.X >= r.Right()-tol {
		return false
	}
	if r.Y >= other.Bottom()-tol || other.Y >= r.Bottom()-tol {
		return false
	}
	return true
}

// Contains returns true if p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ContainsStrict returns true if p lies inside r, edges excluded.
func (r Rect) ContainsStrict(p Point) bool {
	return p.X > r.X && p.X < r.Right() && p.Y > r.Y && p.Y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// String returns a string representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}

// Orientation is the axis a wall segment runs along.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns a human-readable name for the orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Segment is an axis-aligned line segment. It runs from Start toward +X when
// horizontal and toward +Y when vertical.
type Segment struct {
	Start       Point
	Length      float64
	Orientation Orientation
}

// End returns the far endpoint of the segment.
func (s Segment) End() Point {
	return s.PointAt(s.Length)
}

// PointAt returns the point at distance d from Start along the segment.
// d is not clamped.
func (s Segment) PointAt(d float64) Point {
	if s.Orientation == Vertical {
		return Point{X: s.Start.X, Y: s.Start.Y + d}
	}
	return Point{X: s.Start.X + d, Y: s.Start.Y}
}

// Project returns the distance along the segment of p's projection,
// clamped to [0, Length].
func (s Segment) Project(p Point) float64 {
	var d float64
	if s.Orientation == Vertical {
		d = p.Y - s.Start.Y
	} else {
		d = p.X - s.Start.X
	}
	return ClampF(d, 0, s.Length)
}

// Distance returns the distance from p to the closest point of the segment.
func (s Segment) Distance(p Point) float64 {
	return p.Dist(s.PointAt(s.Project(p)))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// RoundTo rounds val to the nearest multiple of step.
func RoundTo(val, step float64) float64 {
	if step <= 0 {
		return val
	}
	inv := 1 / step
	return math.Round(val*inv) / inv
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
