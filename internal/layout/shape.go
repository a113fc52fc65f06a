// Package layout is the spatial layout engine for rooms.
//
// It answers three questions for the surrounding inventory tooling: whether a
// rectangle may sit at a position inside a rectangular or L-shaped room, where
// a door sits on a wall, and how a pointer drag or resize resolves against
// walls and neighbours. Every function is pure and synchronous; callers pass
// the current room snapshot on each call.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/roomplan/internal/core"
)

// boundsEpsilon absorbs float rounding when comparing against the room box.
const boundsEpsilon = 1e-9

// ErrInvalidShape is returned when a room shape violates its invariants.
var ErrInvalidShape = errors.New("layout: invalid room shape")

// ShapeKind distinguishes rectangular rooms from L-shaped ones.
type ShapeKind int

const (
	Rectangle ShapeKind = iota
	LShape
)

// String returns the storage form of the kind.
func (k ShapeKind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case LShape:
		return "l_shape"
	default:
		return "unknown"
	}
}

// ParseShapeKind parses "rectangle" or "l_shape".
func ParseShapeKind(s string) (ShapeKind, bool) {
	switch s {
	case "rectangle", "":
		return Rectangle, true
	case "l_shape":
		return LShape, true
	default:
		return Rectangle, false
	}
}

// Corner identifies the corner of the bounding box that holds the cutout.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Corners lists every corner in declaration order.
var Corners = []Corner{TopLeft, TopRight, BottomLeft, BottomRight}

// String returns the storage form of the corner.
func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top_left"
	case TopRight:
		return "top_right"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	default:
		return "unknown"
	}
}

// ParseCorner parses the storage form of a corner.
func ParseCorner(s string) (Corner, bool) {
	switch s {
	case "top_left":
		return TopLeft, true
	case "top_right":
		return TopRight, true
	case "bottom_left":
		return BottomLeft, true
	case "bottom_right":
		return BottomRight, true
	default:
		return TopLeft, false
	}
}

// Cutout describes the rectangular notch removed from an L-shaped room.
type Cutout struct {
	Corner Corner
	Width  float64
	Height float64
}

// Shape is a room boundary: a W x H box, optionally with one corner removed.
// Build it with NewRectangle or NewLShape; the zero value is not a room.
type Shape struct {
	Kind   ShapeKind
	Width  float64
	Height float64
	Cutout Cutout // meaningful only when Kind == LShape
}

// NewRectangle returns a rectangular room shape.
func NewRectangle(width, height float64) (Shape, error) {
	if !positive(width) || !positive(height) {
		return Shape{}, fmt.Errorf("%w: dimensions %gx%g must be positive", ErrInvalidShape, width, height)
	}
	return Shape{Kind: Rectangle, Width: width, Height: height}, nil
}

// NewLShape returns an L-shaped room: a width x height box with a
// cutoutWidth x cutoutHeight notch removed at corner.
func NewLShape(width, height float64, corner Corner, cutoutWidth, cutoutHeight float64) (Shape, error) {
	s, err := NewRectangle(width, height)
	if err != nil {
		return Shape{}, err
	}
	if corner < TopLeft || corner > BottomRight {
		return Shape{}, fmt.Errorf("%w: unknown cutout corner %d", ErrInvalidShape, corner)
	}
	if !positive(cutoutWidth) || cutoutWidth >= width {
		return Shape{}, fmt.Errorf("%w: cutout width %g must be in (0, %g)", ErrInvalidShape, cutoutWidth, width)
	}
	if !positive(cutoutHeight) || cutoutHeight >= height {
		return Shape{}, fmt.Errorf("%w: cutout height %g must be in (0, %g)", ErrInvalidShape, cutoutHeight, height)
	}
	s.Kind = LShape
	s.Cutout = Cutout{Corner: corner, Width: cutoutWidth, Height: cutoutHeight}
	return s, nil
}

// ParseShape builds a validated shape from its storage form: a kind name,
// the bounding box and, for "l_shape", the cutout corner name and size.
func ParseShape(kind string, width, height float64, corner string, cutoutWidth, cutoutHeight float64) (Shape, error) {
	k, ok := ParseShapeKind(kind)
	if !ok {
		return Shape{}, fmt.Errorf("%w: unknown shape kind %q", ErrInvalidShape, kind)
	}
	if k == Rectangle {
		return NewRectangle(width, height)
	}
	c, ok := ParseCorner(corner)
	if !ok {
		return Shape{}, fmt.Errorf("%w: unknown cutout corner %q", ErrInvalidShape, corner)
	}
	return NewLShape(width, height, c, cutoutWidth, cutoutHeight)
}

// Validate re-runs the constructor checks on s. Shapes assembled field by
// field must pass it before they are stored or measured.
func (s Shape) Validate() error {
	switch s.Kind {
	case Rectangle:
		_, err := NewRectangle(s.Width, s.Height)
		return err
	case LShape:
		_, err := NewLShape(s.Width, s.Height, s.Cutout.Corner, s.Cutout.Width, s.Cutout.Height)
		return err
	default:
		return fmt.Errorf("%w: unknown shape kind %d", ErrInvalidShape, s.Kind)
	}
}

func positive(v float64) bool {
	return v > 0 && finite(v)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Bounds returns the room's bounding box.
func (s Shape) Bounds() core.Rect {
	return core.NewRect(0, 0, s.Width, s.Height)
}

// CutoutRect returns the excluded notch of an L-shaped room.
// The second result is false for rectangular rooms.
func (s Shape) CutoutRect() (core.Rect, bool) {
	if s.Kind != LShape {
		return core.Rect{}, false
	}
	c := s.Cutout
	switch c.Corner {
	case TopLeft:
		return core.NewRect(0, 0, c.Width, c.Height), true
	case TopRight:
		return core.NewRect(s.Width-c.Width, 0, c.Width, c.Height), true
	case BottomLeft:
		return core.NewRect(0, s.Height-c.Height, c.Width, c.Height), true
	case BottomRight:
		return core.NewRect(s.Width-c.Width, s.Height-c.Height, c.Width, c.Height), true
	default:
		panic(fmt.Sprintf("layout: unknown cutout corner %d", c.Corner))
	}
}

// ContainsPoint reports whether p lies inside the room, walls included.
// Points on the cutout's inner edges are inside; points strictly within the
// cutout are not.
func (s Shape) ContainsPoint(p core.Point) bool {
	if !s.Bounds().Contains(p) {
		return false
	}
	if cut, ok := s.CutoutRect(); ok && cut.ContainsStrict(p) {
		return false
	}
	return true
}

// RectangleIsInside reports whether r lies within the room box and does not
// overlap the cutout. Rectangles flush against the cutout edges are inside.
func (s Shape) RectangleIsInside(r core.Rect) bool {
	if r.X < -boundsEpsilon || r.Y < -boundsEpsilon {
		return false
	}
	if r.Right() > s.Width+boundsEpsilon || r.Bottom() > s.Height+boundsEpsilon {
		return false
	}
	if cut, ok := s.CutoutRect(); ok && r.Intersects(cut, OverlapTolerance) {
		return false
	}
	return true
}

// Outline returns the room's vertices clockwise from the top-left-most
// vertex: four for rectangles, six for L-shapes.
func (s Shape) Outline() []core.Point {
	w, h := s.Width, s.Height
	if s.Kind != LShape {
		return []core.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	}
	cw, ch := s.Cutout.Width, s.Cutout.Height
	switch s.Cutout.Corner {
	case TopLeft:
		return []core.Point{{X: cw, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}, {X: 0, Y: ch}, {X: cw, Y: ch}}
	case TopRight:
		return []core.Point{{X: 0, Y: 0}, {X: w - cw, Y: 0}, {X: w - cw, Y: ch}, {X: w, Y: ch}, {X: w, Y: h}, {X: 0, Y: h}}
	case BottomLeft:
		return []core.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: cw, Y: h}, {X: cw, Y: h - ch}, {X: 0, Y: h - ch}}
	case BottomRight:
		return []core.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h - ch}, {X: w - cw, Y: h - ch}, {X: w - cw, Y: h}, {X: 0, Y: h}}
	default:
		panic(fmt.Sprintf("layout: unknown cutout corner %d", s.Cutout.Corner))
	}
}

// Area returns the usable floor area.
func (s Shape) Area() float64 {
	a := s.Width * s.Height
	if s.Kind == LShape {
		a -= s.Cutout.Width * s.Cutout.Height
	}
	return a
}

// String returns a short description such as "10x8 l_shape(bottom_right 4x3)".
func (s Shape) String() string {
	if s.Kind != LShape {
		return fmt.Sprintf("%gx%g rectangle", s.Width, s.Height)
	}
	return fmt.Sprintf("%gx%g l_shape(%s %gx%g)", s.Width, s.Height, s.Cutout.Corner, s.Cutout.Width, s.Cutout.Height)
}
