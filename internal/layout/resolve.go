package layout

import (
	"math"

	"github.com/vovakirdan/roomplan/internal/core"
)

// Resize limits.
const (
	MinPlacementSize = 0.5 // smallest width or height a resize may produce
	SizePrecision    = 0.1 // resized dimensions snap to this step
)

// Outcome describes how a drag tick was resolved.
type Outcome int

const (
	Moved   Outcome = iota // proposed position accepted
	SlidX                  // only the horizontal component accepted
	SlidY                  // only the vertical component accepted
	Blocked                // nothing accepted; position unchanged
)

// String returns a human-readable outcome.
func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case SlidX:
		return "slid-x"
	case SlidY:
		return "slid-y"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// DragResult is the committed position for one drag tick.
type DragResult struct {
	Position core.Point
	Outcome  Outcome
}

// ResizeResult is the committed size for one resize tick.
type ResizeResult struct {
	Size     core.Size
	Accepted bool
}

// ClampToRoom clamps a top-left position so a rectangle of size stays within
// the room's bounding box.
func ClampToRoom(p core.Point, size core.Size, shape Shape) core.Point {
	return core.Pt(
		core.ClampF(p.X, 0, math.Max(0, shape.Width-size.W)),
		core.ClampF(p.Y, 0, math.Max(0, shape.Height-size.H)),
	)
}

// ResolveDrag moves moving (whose Rect holds the last committed position)
// toward proposed. The proposal is clamped to the bounding box and tried
// whole, then horizontally only, then vertically only; if all fail the
// current position is kept. A rectangle pushed into an obstacle stops on the
// blocked axis and keeps tracking the pointer on the free one.
func ResolveDrag(moving Placement, proposed core.Point, others []Placement, shape Shape) DragResult {
	current := moving.Rect.Origin()
	proposed = ClampToRoom(proposed, moving.Rect.Size(), shape)

	fits := func(p core.Point) bool {
		candidate := moving
		candidate.Rect = moving.Rect.MoveTo(p)
		return IsValid(candidate, others, shape)
	}

	if fits(proposed) {
		return DragResult{Position: proposed, Outcome: Moved}
	}
	if slid := core.Pt(proposed.X, current.Y); slid != current && fits(slid) {
		return DragResult{Position: slid, Outcome: SlidX}
	}
	if slid := core.Pt(current.X, proposed.Y); slid != current && fits(slid) {
		return DragResult{Position: slid, Outcome: SlidY}
	}
	return DragResult{Position: current, Outcome: Blocked}
}

// ResolveResize grows or shrinks target from its fixed top-left corner.
// The proposed size is floored at MinPlacementSize, snapped to SizePrecision
// and capped at the bounding box; if the result is not valid the previous
// size is kept.
func ResolveResize(target Placement, proposed core.Size, others []Placement, shape Shape) ResizeResult {
	r := target.Rect
	size := core.Size{
		W: fitDimension(proposed.W, shape.Width-r.X),
		H: fitDimension(proposed.H, shape.Height-r.Y),
	}

	candidate := target
	candidate.Rect = r.WithSize(size)
	if IsValid(candidate, others, shape) {
		return ResizeResult{Size: size, Accepted: true}
	}
	return ResizeResult{Size: r.Size(), Accepted: false}
}

func fitDimension(v, limit float64) float64 {
	v = core.RoundTo(math.Max(v, MinPlacementSize), SizePrecision)
	return math.Min(v, limit)
}
