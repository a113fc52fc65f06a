package layout

import (
	"math"

	"github.com/vovakirdan/roomplan/internal/core"
)

// DoorMarginFraction is the share of a wall's effective length kept clear at
// each end of the wall when placing a door.
const DoorMarginFraction = 0.02

// DefaultDoorWidth is the width used when none is given, in meters.
const DefaultDoorWidth = 1.0

// Door is a door on one wall. Position is the door center's normalized
// offset along the wall's effective span, measured from the wall start.
type Door struct {
	Wall     WallID
	Position float64
	Width    float64
}

// DoorGeometry is the renderable form of a door.
type DoorGeometry struct {
	OpeningStart core.Point // hinge side of the opening
	OpeningEnd   core.Point // latch side of the opening
	Hinge        core.Point
	LeafEnd      core.Point // tip of the leaf when open at 90 degrees
	Radius       float64    // swing radius, equal to the door width
	Normal       core.Point // unit vector into the room
}

// NearestWall returns the wall closest to p, measured to each wall's
// effective span. Ties go to the earlier wall in Walls order.
func NearestWall(p core.Point, shape Shape) WallID {
	best := North
	bestDist := math.Inf(1)
	for _, w := range shape.Walls() {
		if d := w.Distance(p); d < bestDist {
			best, bestDist = w.ID, d
		}
	}
	return best
}

// NormalizePosition projects p onto wall and returns the projection's offset
// as a fraction of the wall's effective length. The second result is false
// when the room has no such wall.
func NormalizePosition(p core.Point, wall WallID, shape Shape) (float64, bool) {
	w, ok := shape.Wall(wall)
	if !ok || w.Length <= 0 {
		return 0, false
	}
	return w.Project(p) / w.Length, true
}

// PointOnWall maps a normalized position back to room coordinates.
func PointOnWall(wall WallID, pos float64, shape Shape) (core.Point, bool) {
	w, ok := shape.Wall(wall)
	if !ok {
		return core.Point{}, false
	}
	return w.PointAt(core.ClampF(pos, 0, 1) * w.Length), true
}

// ClampForWidth keeps a door of doorWidth fully on a wall of wallLength with
// DoorMarginFraction clear at both ends. The second result is false when no
// such position exists.
func ClampForWidth(pos, wallLength, doorWidth float64) (float64, bool) {
	if !finite(pos) || !positive(wallLength) || !positive(doorWidth) || doorWidth >= wallLength {
		return 0, false
	}
	half := doorWidth / wallLength / 2
	lo := half + DoorMarginFraction
	hi := 1 - half - DoorMarginFraction
	if lo > hi {
		return 0, false
	}
	return core.ClampF(pos, lo, hi), true
}

// PlaceDoor puts a door of width on wall at pos, clamped so it fits.
// Moving a door to another wall is simply another PlaceDoor call.
func PlaceDoor(shape Shape, wall WallID, pos, width float64) (Door, bool) {
	w, ok := shape.Wall(wall)
	if !ok {
		return Door{}, false
	}
	clamped, ok := ClampForWidth(pos, w.Length, width)
	if !ok {
		return Door{}, false
	}
	return Door{Wall: wall, Position: clamped, Width: width}, true
}

// DoorAt places a door on the wall nearest p, centered on p's projection.
func DoorAt(shape Shape, p core.Point, width float64) (Door, bool) {
	wall := NearestWall(p, shape)
	pos, ok := NormalizePosition(p, wall, shape)
	if !ok {
		return Door{}, false
	}
	return PlaceDoor(shape, wall, pos, width)
}

// Revalidate re-clamps the door against shape, whose walls may have changed
// length since the door was placed. The normalized position is kept where it
// still fits. The second result is false when the wall no longer exists or
// the door no longer fits on it.
func (d Door) Revalidate(shape Shape) (Door, bool) {
	return PlaceDoor(shape, d.Wall, d.Position, d.Width)
}

// Geometry returns the door's opening and swing in room coordinates.
// The leaf is hinged at the opening's start and swings into the room.
func (d Door) Geometry(shape Shape) (DoorGeometry, bool) {
	w, ok := shape.Wall(d.Wall)
	if !ok {
		return DoorGeometry{}, false
	}
	normal, ok := shape.InwardNormal(d.Wall)
	if !ok {
		return DoorGeometry{}, false
	}
	center := d.Position * w.Length
	start := w.PointAt(center - d.Width/2)
	end := w.PointAt(center + d.Width/2)
	return DoorGeometry{
		OpeningStart: start,
		OpeningEnd:   end,
		Hinge:        start,
		LeafEnd:      core.Pt(start.X+normal.X*d.Width, start.Y+normal.Y*d.Width),
		Radius:       d.Width,
		Normal:       normal,
	}, true
}
