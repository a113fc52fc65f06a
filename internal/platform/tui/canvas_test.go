package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/roomplan/internal/core"
	"github.com/vovakirdan/roomplan/internal/layout"
)

func rectPlan(t *testing.T, w, h float64, placements ...layout.Placement) layout.Plan {
	t.Helper()
	shape, err := layout.NewRectangle(w, h)
	if err != nil {
		t.Fatalf("NewRectangle(%g, %g) returned error: %v", w, h, err)
	}
	return layout.Plan{Shape: shape, Placements: placements}
}

func unit(id string, x, y, w, h float64) layout.Placement {
	return layout.Placement{ID: id, Kind: layout.KindUnit, Label: id, Rect: core.NewRect(x, y, w, h)}
}

func TestCanvasScale(t *testing.T) {
	plan := rectPlan(t, 6, 4)

	c := NewCanvas(plan.Shape, 77, 18, 4)
	if x, y := c.Cell(core.Pt(0, 0)); x != canvasLeft || y != canvasTop {
		t.Errorf("Cell(0,0) = (%d,%d), expected (%d,%d)", x, y, canvasLeft, canvasTop)
	}
	if x, y := c.Cell(core.Pt(6, 4)); x != 26 || y != 10 {
		t.Errorf("Cell(6,4) = (%d,%d), expected (26,10)", x, y)
	}

	// A small area shrinks the scale to fit.
	small := NewCanvas(plan.Shape, 13, 18, 4)
	if x, _ := small.Cell(core.Pt(6, 0)); x > canvasLeft+12 {
		t.Errorf("room overflows a 13 column area: right wall at column %d", x)
	}
}

func TestDrawPlanOutline(t *testing.T) {
	plan := rectPlan(t, 6, 4)
	s := core.NewScreen(80, 24)
	c := NewCanvas(plan.Shape, 77, 18, 4)
	c.DrawPlan(s, plan, CanvasState{})

	checks := []struct {
		x, y     int
		expected rune
	}{
		{2, 2, '+'},
		{26, 10, '+'},
		{10, 2, '─'},
		{10, 10, '─'},
		{2, 5, '│'},
		{26, 5, '│'},
		{10, 5, '·'},
		{30, 5, ' '},
	}
	for _, tc := range checks {
		if got := s.Get(tc.x, tc.y); got != tc.expected {
			t.Errorf("Get(%d,%d) = %q, expected %q", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestDrawPlanLShapeNotch(t *testing.T) {
	shape, err := layout.NewLShape(6, 4, layout.TopRight, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	s := core.NewScreen(80, 24)
	c := NewCanvas(shape, 77, 18, 4)
	c.DrawPlan(s, layout.Plan{Shape: shape}, CanvasState{})

	// (5,1) lies in the notch, (1,1) on the floor.
	if got := s.Get(22, 4); got != ' ' {
		t.Errorf("notch cell = %q, expected blank", got)
	}
	if got := s.Get(6, 4); got != '·' {
		t.Errorf("floor cell = %q, expected floor", got)
	}
}

func TestDrawPlanPlacements(t *testing.T) {
	plan := rectPlan(t, 6, 4,
		unit("sofa", 0.5, 0.5, 2, 1.5),
		unit("bad", 0.5, 0.5, 1, 1),
	)
	s := core.NewScreen(80, 24)
	c := NewCanvas(plan.Shape, 77, 18, 4)
	c.DrawPlan(s, plan, CanvasState{Selected: "sofa"})

	// sofa spans cells (4,3)-(12,6); bad overlaps it and is drawn after.
	if got := s.GetCell(12, 6); got.Rune != '┘' || got.Color != colorSelected {
		t.Errorf("sofa corner = %+v, expected selected '┘'", got)
	}
	if got := s.GetCell(4, 3); got.Rune != '┌' || got.Color != colorProblem {
		t.Errorf("bad corner = %+v, expected problem '┌'", got)
	}
}

func TestDrawPlanDoor(t *testing.T) {
	plan := rectPlan(t, 6, 4)
	door, ok := layout.PlaceDoor(plan.Shape, layout.North, 0.5, 1)
	if !ok {
		t.Fatal("PlaceDoor failed")
	}
	plan.Door = &door

	s := core.NewScreen(80, 24)
	c := NewCanvas(plan.Shape, 77, 18, 4)
	c.DrawPlan(s, plan, CanvasState{DoorEdit: true})

	// Opening runs 2.5m..3.5m along the north wall.
	for x := 12; x <= 16; x++ {
		if got := s.GetCell(x, 2); got.Rune != '═' || got.Color != colorDoorEdit {
			t.Errorf("door cell %d = %+v, expected '═'", x, got)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "plain")
	s.DrawTextColored(0, 1, "red", core.ColorRed)

	out := RenderScreen(s)
	if !strings.Contains(out, "plain") || !strings.Contains(out, "red") {
		t.Errorf("RenderScreen() lost text: %q", out)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Errorf("RenderScreen() produced %d lines, expected 2", len(lines))
	}
}
