package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/roomplan/internal/core"
	"github.com/vovakirdan/roomplan/internal/layout"
)

// ANSI 256 codes indexed by core.Color.
var palette = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) >= len(palette) || palette[c] == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(palette[c]))
}

// Canvas colors.
const (
	colorFloor    = core.ColorGray
	colorWall     = core.ColorWhite
	colorUnit     = core.ColorCyan
	colorBlock    = core.ColorGray
	colorSelected = core.ColorBrightYellow
	colorDragging = core.ColorBrightGreen
	colorProblem  = core.ColorBrightRed
	colorDoor     = core.ColorOrange
	colorDoorEdit = core.ColorBrightMagenta
)

// Screen cell of the room's (0,0) corner.
const (
	canvasLeft = 2
	canvasTop  = 2
)

// Canvas maps room meters onto screen cells. Terminal cells are about twice
// as tall as they are wide, so rows get half the horizontal density.
type Canvas struct {
	ox, oy int
	sx, sy float64
}

// NewCanvas fits a room of the given size into a w x h cell area starting at
// the canvas origin, never exceeding cellsPerMeter columns per meter.
func NewCanvas(shape layout.Shape, w, h int, cellsPerMeter float64) Canvas {
	if cellsPerMeter <= 0 {
		cellsPerMeter = core.DefaultConfig().CellsPerMeter
	}
	sx := cellsPerMeter
	if shape.Width > 0 {
		sx = math.Min(sx, float64(w-1)/shape.Width)
	}
	if shape.Height > 0 {
		sx = math.Min(sx, 2*float64(h-1)/shape.Height)
	}
	if sx < 1 {
		sx = 1
	}
	return Canvas{ox: canvasLeft, oy: canvasTop, sx: sx, sy: sx / 2}
}

// Cell returns the screen cell for a room point.
func (c Canvas) Cell(p core.Point) (int, int) {
	return c.ox + int(math.Round(p.X*c.sx)), c.oy + int(math.Round(p.Y*c.sy))
}

// Point returns the room point at the center of a screen cell.
func (c Canvas) Point(x, y int) core.Point {
	return core.Pt(float64(x-c.ox)/c.sx, float64(y-c.oy)/c.sy)
}

// CanvasState is what the canvas highlights on top of the plan.
type CanvasState struct {
	Selected string // placement id
	Dragging bool
	DoorEdit bool
}

// DrawPlan draws the room floor, walls, placements and door.
func (c Canvas) DrawPlan(s *core.Screen, plan layout.Plan, st CanvasState) {
	shape := plan.Shape

	// Floor
	x0, y0 := c.Cell(core.Pt(0, 0))
	x1, y1 := c.Cell(core.Pt(shape.Width, shape.Height))
	for y := y0 + 1; y < y1; y++ {
		for x := x0 + 1; x < x1; x++ {
			if shape.ContainsPoint(c.Point(x, y)) {
				s.SetColored(x, y, '·', colorFloor)
			}
		}
	}

	for _, w := range shape.Walls() {
		c.drawWall(s, w)
	}
	for _, v := range shape.Outline() {
		x, y := c.Cell(v)
		s.SetColored(x, y, '+', colorWall)
	}

	bad := make(map[string]bool)
	for _, pr := range plan.Audit() {
		if !pr.Door {
			bad[pr.PlacementID] = true
		}
	}
	for _, pl := range plan.Placements {
		color := colorUnit
		if pl.Kind == layout.KindBlock {
			color = colorBlock
		}
		if bad[pl.ID] {
			color = colorProblem
		}
		if pl.ID == st.Selected {
			color = colorSelected
			if st.Dragging {
				color = colorDragging
			}
		}
		c.drawPlacement(s, pl, color)
	}

	if plan.Door != nil {
		color := colorDoor
		if st.DoorEdit {
			color = colorDoorEdit
		}
		c.drawDoor(s, *plan.Door, shape, color)
	}
}

func (c Canvas) drawWall(s *core.Screen, w layout.Wall) {
	sx, sy := c.Cell(w.Start)
	ex, ey := c.Cell(w.End())
	if w.Orientation == core.Vertical {
		s.DrawVLine(sx, sy, ey-sy+1, '│', colorWall)
		return
	}
	s.DrawHLine(sx, sy, ex-sx+1, '─', colorWall)
}

func (c Canvas) drawPlacement(s *core.Screen, pl layout.Placement, color core.Color) {
	x0, y0 := c.Cell(pl.Rect.Origin())
	x1, y1 := c.Cell(core.Pt(pl.Rect.Right(), pl.Rect.Bottom()))
	w, h := x1-x0+1, y1-y0+1
	s.DrawBox(x0, y0, w, h, color)

	label := pl.Label
	if label == "" && pl.Kind == layout.KindBlock {
		label = "block"
	}
	if room := w - 2; room > 0 && h > 2 && label != "" {
		runes := []rune(label)
		if len(runes) > room {
			runes = runes[:room]
		}
		s.DrawTextColored(x0+1, y0+1, string(runes), color)
	}
}

func (c Canvas) drawDoor(s *core.Screen, d layout.Door, shape layout.Shape, color core.Color) {
	g, ok := d.Geometry(shape)
	if !ok {
		return
	}
	sx, sy := c.Cell(g.OpeningStart)
	ex, ey := c.Cell(g.OpeningEnd)
	if sy == ey {
		s.DrawHLine(sx, sy, ex-sx+1, '═', color)
	} else {
		s.DrawVLine(sx, sy, ey-sy+1, '║', color)
	}
	lx, ly := c.Cell(g.LeafEnd)
	s.SetColored(lx, ly, '◜', color)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			var run strings.Builder
			for ; x < s.Width() && s.GetCell(x, y).Color == color; x++ {
				run.WriteRune(s.GetCell(x, y).Rune)
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}

// scaleLabel describes the canvas scale for the header.
func (c Canvas) scaleLabel() string {
	return fmt.Sprintf("1m = %.0f cols", c.sx)
}
