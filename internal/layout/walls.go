package layout

import (
	"fmt"

	"github.com/vovakirdan/roomplan/internal/core"
)

// WallID names a wall segment of a room.
// CutoutHorizontal and CutoutVertical exist only on L-shaped rooms; they are
// the two inner edges bounding the notch.
type WallID int

const (
	North WallID = iota
	South
	East
	West
	CutoutHorizontal
	CutoutVertical
)

// WallIDs lists every wall kind in declaration order.
var WallIDs = []WallID{North, South, East, West, CutoutHorizontal, CutoutVertical}

// String returns the storage form of the wall id.
func (w WallID) String() string {
	switch w {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	case CutoutHorizontal:
		return "cutout_horizontal"
	case CutoutVertical:
		return "cutout_vertical"
	default:
		return "unknown"
	}
}

// ParseWallID parses the storage form of a wall id.
func ParseWallID(s string) (WallID, bool) {
	switch s {
	case "north":
		return North, true
	case "south":
		return South, true
	case "east":
		return East, true
	case "west":
		return West, true
	case "cutout_horizontal":
		return CutoutHorizontal, true
	case "cutout_vertical":
		return CutoutVertical, true
	default:
		return North, false
	}
}

// Wall is one straight run of a room's boundary. Its Start and Length give
// the effective span: perimeter walls touching the cutout are shortened and
// offset by the notch.
type Wall struct {
	ID WallID
	core.Segment
}

func hwall(id WallID, x, y, length float64) Wall {
	return Wall{ID: id, Segment: core.Segment{Start: core.Pt(x, y), Length: length, Orientation: core.Horizontal}}
}

func vwall(id WallID, x, y, length float64) Wall {
	return Wall{ID: id, Segment: core.Segment{Start: core.Pt(x, y), Length: length, Orientation: core.Vertical}}
}

// Walls returns the room's wall segments: North, South, East, West, then for
// L-shapes CutoutHorizontal and CutoutVertical.
func (s Shape) Walls() []Wall {
	w, h := s.Width, s.Height
	if s.Kind != LShape {
		return []Wall{
			hwall(North, 0, 0, w),
			hwall(South, 0, h, w),
			vwall(East, w, 0, h),
			vwall(West, 0, 0, h),
		}
	}

	cw, ch := s.Cutout.Width, s.Cutout.Height
	switch s.Cutout.Corner {
	case TopLeft:
		// notch occupies [0,cw] x [0,ch]
		return []Wall{
			hwall(North, cw, 0, w-cw),
			hwall(South, 0, h, w),
			vwall(East, w, 0, h),
			vwall(West, 0, ch, h-ch),
			hwall(CutoutHorizontal, 0, ch, cw),
			vwall(CutoutVertical, cw, 0, ch),
		}
	case TopRight:
		// notch occupies [w-cw,w] x [0,ch]
		return []Wall{
			hwall(North, 0, 0, w-cw),
			hwall(South, 0, h, w),
			vwall(East, w, ch, h-ch),
			vwall(West, 0, 0, h),
			hwall(CutoutHorizontal, w-cw, ch, cw),
			vwall(CutoutVertical, w-cw, 0, ch),
		}
	case BottomLeft:
		// notch occupies [0,cw] x [h-ch,h]
		return []Wall{
			hwall(North, 0, 0, w),
			hwall(South, cw, h, w-cw),
			vwall(East, w, 0, h),
			vwall(West, 0, 0, h-ch),
			hwall(CutoutHorizontal, 0, h-ch, cw),
			vwall(CutoutVertical, cw, h-ch, ch),
		}
	case BottomRight:
		// notch occupies [w-cw,w] x [h-ch,h]
		return []Wall{
			hwall(North, 0, 0, w),
			hwall(South, 0, h, w-cw),
			vwall(East, w, 0, h-ch),
			vwall(West, 0, 0, h),
			hwall(CutoutHorizontal, w-cw, h-ch, cw),
			vwall(CutoutVertical, w-cw, h-ch, ch),
		}
	default:
		panic(fmt.Sprintf("layout: unknown cutout corner %d", s.Cutout.Corner))
	}
}

// Wall returns the segment for id. The second result is false when the room
// has no such wall (cutout walls on a rectangular room).
func (s Shape) Wall(id WallID) (Wall, bool) {
	for _, w := range s.Walls() {
		if w.ID == id {
			return w, true
		}
	}
	return Wall{}, false
}

// InwardNormal returns the unit vector pointing from the wall into the room.
func (s Shape) InwardNormal(id WallID) (core.Point, bool) {
	switch id {
	case North:
		return core.Pt(0, 1), true
	case South:
		return core.Pt(0, -1), true
	case East:
		return core.Pt(-1, 0), true
	case West:
		return core.Pt(1, 0), true
	}

	if s.Kind != LShape {
		return core.Point{}, false
	}
	switch id {
	case CutoutHorizontal:
		switch s.Cutout.Corner {
		case TopLeft, TopRight:
			return core.Pt(0, 1), true
		case BottomLeft, BottomRight:
			return core.Pt(0, -1), true
		}
	case CutoutVertical:
		switch s.Cutout.Corner {
		case TopLeft, BottomLeft:
			return core.Pt(1, 0), true
		case TopRight, BottomRight:
			return core.Pt(-1, 0), true
		}
	}
	return core.Point{}, false
}
