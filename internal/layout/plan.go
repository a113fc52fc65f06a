package layout

import "fmt"

// Plan is a consistent snapshot of one room: its shape, the placements in it
// and its optional door.
type Plan struct {
	Shape      Shape
	Placements []Placement
	Door       *Door
}

// Problem is one violation found by Audit.
type Problem struct {
	PlacementID string // empty for door problems
	Verdict     Verdict
	Door        bool
}

// String describes the problem.
func (p Problem) String() string {
	if p.Door {
		return "door does not fit its wall"
	}
	return fmt.Sprintf("%s: %s", p.PlacementID, p.Verdict)
}

// Index returns the position of the placement with id, or -1.
func (p Plan) Index(id string) int {
	for i, pl := range p.Placements {
		if pl.ID == id {
			return i
		}
	}
	return -1
}

// Audit checks every placement against the shape and the placements before
// it, and the door against its wall. Shape edits are not validated against
// placements at edit time, so collaborators run Audit afterwards.
// A colliding pair is reported once, on the later placement.
func (p Plan) Audit() []Problem {
	var problems []Problem
	for i, pl := range p.Placements {
		v := Check(pl, p.Placements[:i], p.Shape)
		if !v.OK() {
			problems = append(problems, Problem{PlacementID: pl.ID, Verdict: v})
		}
	}
	if p.Door != nil {
		if _, ok := p.Door.Revalidate(p.Shape); !ok {
			problems = append(problems, Problem{Door: true})
		}
	}
	return problems
}
