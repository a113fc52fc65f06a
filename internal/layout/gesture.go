package layout

import "github.com/vovakirdan/roomplan/internal/core"

// Gesture is one pointer-down to pointer-up interaction on a placement.
// It is a plain value: each tick returns an updated copy, and nothing is
// written anywhere until the caller takes Commit's result to storage.
type Gesture struct {
	Origin  Placement // placement as committed when the gesture began
	Current core.Rect // last resolved rectangle
	Ticks   int
	Blocked int // ticks that produced no change
}

// BeginGesture starts a gesture on p.
func BeginGesture(p Placement) Gesture {
	return Gesture{Origin: p, Current: p.Rect}
}

// Placement returns the origin placement at its current resolved rectangle.
func (g Gesture) Placement() Placement {
	p := g.Origin
	p.Rect = g.Current
	return p
}

// Drag resolves one drag tick moving the placement by delta.
func (g Gesture) Drag(delta core.Point, others []Placement, shape Shape) (Gesture, DragResult) {
	res := ResolveDrag(g.Placement(), g.Current.Origin().Add(delta), others, shape)
	g.Ticks++
	if res.Position == g.Current.Origin() {
		g.Blocked++
	}
	g.Current = g.Current.MoveTo(res.Position)
	return g, res
}

// Resize resolves one resize tick changing the size by delta (dW, dH).
func (g Gesture) Resize(delta core.Point, others []Placement, shape Shape) (Gesture, ResizeResult) {
	proposed := core.Size{W: g.Current.W + delta.X, H: g.Current.H + delta.Y}
	res := ResolveResize(g.Placement(), proposed, others, shape)
	g.Ticks++
	if res.Size == g.Current.Size() {
		g.Blocked++
	}
	g.Current = g.Current.WithSize(res.Size)
	return g, res
}

// Changed reports whether the gesture moved or resized the placement.
func (g Gesture) Changed() bool {
	return g.Current != g.Origin.Rect
}

// Commit ends the gesture and returns the placement to persist.
// The second result is false when nothing changed and no write is needed.
func (g Gesture) Commit() (Placement, bool) {
	return g.Placement(), g.Changed()
}

// Cancel ends the gesture and returns the placement as it was at the start.
func (g Gesture) Cancel() Placement {
	return g.Origin
}
