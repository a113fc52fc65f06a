package layout

import "testing"

func TestPlanAudit(t *testing.T) {
	room := mustLShape(t, 10, 10, BottomRight, 4, 4)

	tests := []struct {
		name     string
		plan     Plan
		expected []Problem
	}{
		{
			name: "clean",
			plan: Plan{
				Shape:      room,
				Placements: []Placement{unit("a", 0, 0, 2, 2), unit("b", 2, 0, 2, 2)},
				Door:       &Door{Wall: North, Position: 0.5, Width: 1},
			},
		},
		{
			name: "collision reported on the later placement",
			plan: Plan{
				Shape:      room,
				Placements: []Placement{unit("a", 0, 0, 2, 2), unit("b", 1, 1, 2, 2)},
			},
			expected: []Problem{{PlacementID: "b", Verdict: Verdict{Reason: ReasonCollision, ConflictID: "a"}}},
		},
		{
			name: "placement left in the notch after a shape edit",
			plan: Plan{
				Shape:      room,
				Placements: []Placement{unit("a", 7, 7, 1, 1)},
			},
			expected: []Problem{{PlacementID: "a", Verdict: Verdict{Reason: ReasonCutout}}},
		},
		{
			name: "door on a wall that does not exist",
			plan: Plan{
				Shape: mustRect(t, 10, 10),
				Door:  &Door{Wall: CutoutVertical, Position: 0.5, Width: 1},
			},
			expected: []Problem{{Door: true}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.plan.Audit()
			if len(got) != len(tc.expected) {
				t.Fatalf("Audit() = %v, expected %v", got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("problem %d = %v, expected %v", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestPlanIndex(t *testing.T) {
	p := Plan{Placements: []Placement{unit("a", 0, 0, 1, 1), unit("b", 2, 0, 1, 1)}}
	if i := p.Index("b"); i != 1 {
		t.Errorf("Index(b) = %d, expected 1", i)
	}
	if i := p.Index("zz"); i != -1 {
		t.Errorf("Index(zz) = %d, expected -1", i)
	}
}
