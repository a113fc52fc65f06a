package layout

import (
	"math"
	"testing"

	"github.com/vovakirdan/roomplan/internal/core"
)

func unit(id string, x, y, w, h float64) Placement {
	return Placement{ID: id, Kind: KindUnit, Rect: core.NewRect(x, y, w, h)}
}

func TestRectanglesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a, b     core.Rect
		expected bool
	}{
		{"disjoint", core.NewRect(0, 0, 1, 1), core.NewRect(3, 3, 1, 1), false},
		{"shared vertical edge", core.NewRect(0, 0, 2, 2), core.NewRect(2, 0, 2, 2), false},
		{"shared horizontal edge", core.NewRect(0, 0, 2, 2), core.NewRect(0, 2, 2, 2), false},
		{"jitter within tolerance", core.NewRect(0, 0, 2, 2), core.NewRect(1.995, 0, 2, 2), false},
		{"real overlap", core.NewRect(0, 0, 2, 2), core.NewRect(1.5, 1.5, 2, 2), true},
		{"contained", core.NewRect(0, 0, 4, 4), core.NewRect(1, 1, 1, 1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RectanglesOverlap(tc.a, tc.b); got != tc.expected {
				t.Errorf("RectanglesOverlap(%v, %v) = %v, expected %v", tc.a, tc.b, got, tc.expected)
			}
			if got := RectanglesOverlap(tc.b, tc.a); got != tc.expected {
				t.Errorf("RectanglesOverlap is not symmetric for %v, %v", tc.a, tc.b)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	room := mustLShape(t, 10, 10, BottomRight, 4, 4)
	others := []Placement{unit("B", 0, 6, 2, 2)}

	tests := []struct {
		name     string
		c        Placement
		expected Verdict
	}{
		{"free floor", unit("A", 1, 1, 2, 2), Verdict{}},
		{"touching sibling", unit("A", 2, 6, 2, 2), Verdict{}},
		{"collides", unit("A", 1, 7, 2, 2), Verdict{Reason: ReasonCollision, ConflictID: "B"}},
		{"in notch", unit("A", 7, 7, 2, 2), Verdict{Reason: ReasonCutout}},
		{"past wall", unit("A", 9, 0, 2, 2), Verdict{Reason: ReasonOutOfBounds}},
		{"zero width", unit("A", 1, 1, 0, 2), Verdict{Reason: ReasonDegenerate}},
		{"nan x", unit("A", math.NaN(), 1, 2, 2), Verdict{Reason: ReasonDegenerate}},
		{"nan y", unit("A", 1, math.NaN(), 2, 2), Verdict{Reason: ReasonDegenerate}},
		{"infinite width", unit("A", 1, 1, math.Inf(1), 2), Verdict{Reason: ReasonDegenerate}},
		{"nan height", unit("A", 1, 1, 2, math.NaN()), Verdict{Reason: ReasonDegenerate}},
		{"same id is skipped", unit("B", 0, 6, 2, 3), Verdict{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Check(tc.c, others, room); got != tc.expected {
				t.Errorf("Check() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCheckIgnoresRotation(t *testing.T) {
	room := mustRect(t, 10, 10)
	p := unit("A", 0, 0, 4, 1)
	p.Rotation = 90
	if !IsValid(p, nil, room) {
		t.Error("rotation must not affect validity")
	}
}

func TestSuggestInitialPosition(t *testing.T) {
	tests := []struct {
		name     string
		shape    Shape
		w, h     float64
		expected core.Point
	}{
		{"rectangle top-left", mustRect(t, 10, 10), 2, 2, core.Pt(0.5, 0.5)},
		{"notch at top-left", mustLShape(t, 10, 10, TopLeft, 4, 4), 2, 2, core.Pt(7.5, 0.5)},
		{"too large falls back", mustRect(t, 3, 3), 5, 5, core.Pt(0.5, 0.5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SuggestInitialPosition(tc.w, tc.h, tc.shape); got != tc.expected {
				t.Errorf("SuggestInitialPosition() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in       string
		expected Kind
		ok       bool
	}{
		{"unit", KindUnit, true},
		{"block", KindBlock, true},
		{"", KindUnit, true},
		{"shelf", KindUnit, false},
	}
	for _, tc := range tests {
		got, ok := ParseKind(tc.in)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseKind(%q) = %v, %v; expected %v, %v", tc.in, got, ok, tc.expected, tc.ok)
		}
	}
}
