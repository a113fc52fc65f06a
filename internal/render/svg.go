// Package render exports room plans as SVG drawings.
package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/vovakirdan/roomplan/internal/core"
	"github.com/vovakirdan/roomplan/internal/layout"
)

// Options controls the drawing.
type Options struct {
	Scale  float64 // pixels per meter, default 50
	Margin int     // pixels around the room, default 30
}

// DefaultOptions returns the options used for zero fields.
func DefaultOptions() Options {
	return Options{Scale: 50, Margin: 30}
}

const (
	floorStyle    = "fill:#fafafa;stroke:none"
	wallStyle     = "stroke:#222;stroke-width:4;stroke-linecap:square"
	openingStyle  = "stroke:#fafafa;stroke-width:6"
	leafStyle     = "stroke:#555;stroke-width:1.5"
	swingStyle    = "fill:none;stroke:#888;stroke-width:1;stroke-dasharray:4,3"
	unitStyle     = "fill:#cfe2f3;stroke:#3d85c6;stroke-width:1"
	blockStyle    = "fill:#d9d9d9;stroke:#666;stroke-width:1;stroke-dasharray:3,2"
	problemStyle  = "fill:#f4cccc;stroke:#cc0000;stroke-width:2"
	labelStyle    = "text-anchor:middle;dominant-baseline:middle;font-size:11px;font-family:sans-serif;fill:#333"
	titleStyle    = "font-size:14px;font-family:sans-serif;fill:#222"
	dimStyle      = "text-anchor:middle;font-size:10px;font-family:sans-serif;fill:#666"
	dimLineStyle  = "stroke:#666;stroke-width:0.5"
	titleBaseline = 18
)

// WriteSVG draws plan to w. Placements that fail the plan audit are drawn in
// red.
func WriteSVG(w io.Writer, name string, plan layout.Plan, opts Options) error {
	def := DefaultOptions()
	if opts.Scale <= 0 {
		opts.Scale = def.Scale
	}
	if opts.Margin <= 0 {
		opts.Margin = def.Margin
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	p := projector{scale: opts.Scale, ox: opts.Margin, oy: opts.Margin + titleBaseline}

	shape := plan.Shape
	width := p.len(shape.Width) + 2*opts.Margin
	height := p.len(shape.Height) + 2*opts.Margin + titleBaseline + 10
	canvas.Start(width, height)
	canvas.Title(name)
	canvas.Text(opts.Margin, titleBaseline, fmt.Sprintf("%s (%s)", name, shape), titleStyle)

	// Floor
	xs, ys := p.points(shape.Outline())
	canvas.Polygon(xs, ys, floorStyle)

	// Placements
	bad := make(map[string]bool)
	for _, pr := range plan.Audit() {
		if !pr.Door {
			bad[pr.PlacementID] = true
		}
	}
	canvas.Gid("placements")
	for _, pl := range plan.Placements {
		style := unitStyle
		if pl.Kind == layout.KindBlock {
			style = blockStyle
		}
		if bad[pl.ID] {
			style = problemStyle
		}
		x, y := p.point(pl.Rect.Origin())
		canvas.Rect(x, y, p.len(pl.Rect.W), p.len(pl.Rect.H), style)
		if pl.Label != "" {
			cx, cy := p.point(pl.Rect.Center())
			canvas.Text(cx, cy, pl.Label, labelStyle)
		}
	}
	canvas.Gend()

	// Walls
	canvas.Gid("walls")
	for _, wall := range shape.Walls() {
		x1, y1 := p.point(wall.Start)
		x2, y2 := p.point(wall.End())
		canvas.Line(x1, y1, x2, y2, wallStyle)
	}
	canvas.Gend()

	if plan.Door != nil {
		if g, ok := plan.Door.Geometry(shape); ok {
			drawDoor(canvas, p, g)
		}
	}

	drawDimensions(canvas, p, shape)

	canvas.End()
	return ew.err
}

func drawDoor(canvas *svg.SVG, p projector, g layout.DoorGeometry) {
	canvas.Gid("door")
	sx, sy := p.point(g.OpeningStart)
	ex, ey := p.point(g.OpeningEnd)
	canvas.Line(sx, sy, ex, ey, openingStyle)

	hx, hy := p.point(g.Hinge)
	lx, ly := p.point(g.LeafEnd)
	canvas.Line(hx, hy, lx, ly, leafStyle)

	// Quarter arc from the open leaf back to the latch side.
	leaf := g.LeafEnd.Sub(g.Hinge)
	latch := g.OpeningEnd.Sub(g.Hinge)
	sweep := leaf.X*latch.Y-leaf.Y*latch.X > 0
	r := p.len(g.Radius)
	canvas.Arc(lx, ly, r, r, 0, false, sweep, ex, ey, swingStyle)
	canvas.Gend()
}

func drawDimensions(canvas *svg.SVG, p projector, shape layout.Shape) {
	x0, y0 := p.point(core.Pt(0, 0))
	x1, y1 := p.point(core.Pt(shape.Width, shape.Height))

	y := y1 + 14
	canvas.Line(x0, y, x1, y, dimLineStyle)
	canvas.Text((x0+x1)/2, y+12, fmt.Sprintf("%gm", shape.Width), dimStyle)

	x := x1 + 14
	canvas.Line(x, y0, x, y1, dimLineStyle)
	canvas.Gtransform(fmt.Sprintf("rotate(-90 %d %d)", x+12, (y0+y1)/2))
	canvas.Text(x+12, (y0+y1)/2, fmt.Sprintf("%gm", shape.Height), dimStyle)
	canvas.Gend()
}

// projector maps room meters to SVG pixels.
type projector struct {
	scale  float64
	ox, oy int
}

func (p projector) len(v float64) int {
	return int(math.Round(v * p.scale))
}

func (p projector) point(pt core.Point) (int, int) {
	return p.ox + p.len(pt.X), p.oy + p.len(pt.Y)
}

func (p projector) points(pts []core.Point) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, pt := range pts {
		xs[i], ys[i] = p.point(pt)
	}
	return xs, ys
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return len(b), nil
	}
	n, err := e.w.Write(b)
	if err != nil {
		e.err = err
	}
	return n, err
}
