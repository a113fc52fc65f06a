package layout

import (
	"fmt"

	"github.com/vovakirdan/roomplan/internal/core"
)

// OverlapTolerance is how far two rectangles may interpenetrate on an axis
// before they count as overlapping. Flush edges and float jitter pass.
const OverlapTolerance = 0.01

// SuggestMargin is the gap from the walls used when suggesting a spot for a
// new placement.
const SuggestMargin = 0.5

// Kind distinguishes storage units from pure obstacles. Both collide alike.
type Kind int

const (
	KindUnit Kind = iota
	KindBlock
)

// String returns the storage form of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// ParseKind parses "unit" or "block".
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "unit", "":
		return KindUnit, true
	case "block":
		return KindBlock, true
	default:
		return KindUnit, false
	}
}

// Placement is a rectangle positioned in a room.
// Rotation is carried for the collaborators but ignored by collision checks.
type Placement struct {
	ID       string
	Kind     Kind
	Label    string
	Rect     core.Rect
	Rotation int
}

// Reason explains why a placement was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonOutOfBounds
	ReasonCutout
	ReasonCollision
	ReasonDegenerate
)

// String returns a human-readable reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "ok"
	case ReasonOutOfBounds:
		return "outside room bounds"
	case ReasonCutout:
		return "overlaps cutout"
	case ReasonCollision:
		return "collides"
	case ReasonDegenerate:
		return "non-positive size"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of checking one candidate placement.
type Verdict struct {
	Reason     Reason
	ConflictID string // set when Reason == ReasonCollision
}

// OK reports whether the candidate is legal.
func (v Verdict) OK() bool {
	return v.Reason == ReasonNone
}

// String describes the verdict.
func (v Verdict) String() string {
	if v.Reason == ReasonCollision {
		return fmt.Sprintf("%s with %s", v.Reason, v.ConflictID)
	}
	return v.Reason.String()
}

// RectanglesOverlap reports whether a and b overlap by more than
// OverlapTolerance. Rectangles sharing an edge do not overlap.
func RectanglesOverlap(a, b core.Rect) bool {
	return a.Intersects(b, OverlapTolerance)
}

// Check tests candidate against the room and every other placement, skipping
// the entry that shares the candidate's id. The first failure is reported.
func Check(candidate Placement, others []Placement, shape Shape) Verdict {
	r := candidate.Rect
	if !finite(r.X) || !finite(r.Y) || !positive(r.W) || !positive(r.H) {
		return Verdict{Reason: ReasonDegenerate}
	}
	if !shape.RectangleIsInside(r) {
		if shape.Bounds().Contains(r.Origin()) && shape.Bounds().Contains(r.Corners()[2]) {
			return Verdict{Reason: ReasonCutout}
		}
		return Verdict{Reason: ReasonOutOfBounds}
	}
	for _, o := range others {
		if o.ID == candidate.ID {
			continue
		}
		if RectanglesOverlap(r, o.Rect) {
			return Verdict{Reason: ReasonCollision, ConflictID: o.ID}
		}
	}
	return Verdict{}
}

// IsValid reports whether candidate may be committed: inside the room, clear
// of the cutout, and not overlapping any other placement.
func IsValid(candidate Placement, others []Placement, shape Shape) bool {
	return Check(candidate, others, shape).OK()
}

// SuggestInitialPosition proposes a top-left position for a new w x h
// rectangle: the first room corner, inset by SuggestMargin, where the
// rectangle fits inside the shape. The notch corner of an L-shape is skipped.
// Falls back to (0.5, 0.5). Siblings are not considered; run IsValid before
// committing.
func SuggestInitialPosition(w, h float64, shape Shape) core.Point {
	m := SuggestMargin
	candidates := []struct {
		corner Corner
		at     core.Point
	}{
		{TopLeft, core.Pt(m, m)},
		{TopRight, core.Pt(shape.Width-w-m, m)},
		{BottomLeft, core.Pt(m, shape.Height-h-m)},
		{BottomRight, core.Pt(shape.Width-w-m, shape.Height-h-m)},
	}
	for _, c := range candidates {
		if shape.Kind == LShape && c.corner == shape.Cutout.Corner {
			continue
		}
		if shape.RectangleIsInside(core.NewRect(c.at.X, c.at.Y, w, h)) {
			return c.at
		}
	}
	return core.Pt(0.5, 0.5)
}
