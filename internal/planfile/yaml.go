// Package planfile reads and writes room plans as YAML documents.
// A plan file carries one room: its shape, an optional door and the
// placements inside it.
package planfile

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/roomplan/internal/core"
	"github.com/vovakirdan/roomplan/internal/layout"
)

// File is the YAML structure of a plan file.
type File struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	Width      float64         `yaml:"width"`
	Height     float64         `yaml:"height"`
	Shape      YAMLShape       `yaml:"shape,omitempty"`
	Door       *YAMLDoor       `yaml:"door,omitempty"`
	Placements []YAMLPlacement `yaml:"placements,omitempty"`

	Path string `yaml:"-"` // set by Loader
}

// YAMLShape describes the room outline. Kind defaults to "rectangle".
type YAMLShape struct {
	Kind         string  `yaml:"kind,omitempty"`
	Corner       string  `yaml:"corner,omitempty"`
	CutoutWidth  float64 `yaml:"cutout_width,omitempty"`
	CutoutHeight float64 `yaml:"cutout_height,omitempty"`
}

// YAMLDoor is a door on one wall.
type YAMLDoor struct {
	Wall     string  `yaml:"wall"`
	Position float64 `yaml:"position"`
	Width    float64 `yaml:"width,omitempty"`
}

// YAMLPlacement is one rectangle in the room.
type YAMLPlacement struct {
	ID       string  `yaml:"id,omitempty"`
	Kind     string  `yaml:"kind,omitempty"`
	Label    string  `yaml:"label,omitempty"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	W        float64 `yaml:"w"`
	H        float64 `yaml:"h"`
	Rotation int     `yaml:"rotation,omitempty"`
}

// Parse parses a YAML plan file.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return f, nil
}

// Encode writes f as YAML.
func Encode(f File) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// BuildShape builds the validated room shape.
func (f File) BuildShape() (layout.Shape, error) {
	return layout.ParseShape(f.Shape.Kind, f.Width, f.Height, f.Shape.Corner, f.Shape.CutoutWidth, f.Shape.CutoutHeight)
}

// Plan converts the file into an engine plan. The shape, kinds, walls and
// rotations are validated; placements are not checked against each other
// (use layout.Plan.Audit for that). Placements without an id get a fresh one.
// A door that does not fit its wall is an error; a door that fits is clamped
// into the wall margins.
func (f File) Plan() (layout.Plan, error) {
	shape, err := f.BuildShape()
	if err != nil {
		return layout.Plan{}, err
	}
	plan := layout.Plan{Shape: shape}

	seen := make(map[string]bool, len(f.Placements))
	var errs []error
	for i, yp := range f.Placements {
		p, err := yp.placement()
		if err != nil {
			errs = append(errs, fmt.Errorf("placement %d: %w", i, err))
			continue
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("placement %d: duplicate id %q", i, p.ID))
			continue
		}
		seen[p.ID] = true
		plan.Placements = append(plan.Placements, p)
	}

	if f.Door != nil {
		door, err := f.Door.door(shape)
		if err != nil {
			errs = append(errs, err)
		} else {
			plan.Door = &door
		}
	}

	if err := errors.Join(errs...); err != nil {
		return layout.Plan{}, err
	}
	return plan, nil
}

func (yp YAMLPlacement) placement() (layout.Placement, error) {
	kind, ok := layout.ParseKind(yp.Kind)
	if !ok {
		return layout.Placement{}, fmt.Errorf("unknown kind %q", yp.Kind)
	}
	switch yp.Rotation {
	case 0, 90, 180, 270:
	default:
		return layout.Placement{}, fmt.Errorf("rotation %d must be 0, 90, 180 or 270", yp.Rotation)
	}
	id := yp.ID
	if id == "" {
		id = uuid.NewString()
	}
	return layout.Placement{
		ID:       id,
		Kind:     kind,
		Label:    yp.Label,
		Rect:     core.NewRect(yp.X, yp.Y, yp.W, yp.H),
		Rotation: yp.Rotation,
	}, nil
}

func (yd YAMLDoor) door(shape layout.Shape) (layout.Door, error) {
	wall, ok := layout.ParseWallID(yd.Wall)
	if !ok {
		return layout.Door{}, fmt.Errorf("door: unknown wall %q", yd.Wall)
	}
	if math.IsNaN(yd.Position) || math.IsInf(yd.Position, 0) {
		return layout.Door{}, fmt.Errorf("door: position %g is not a number in [0, 1]", yd.Position)
	}
	width := yd.Width
	if width <= 0 {
		width = layout.DefaultDoorWidth
	}
	d, ok := layout.PlaceDoor(shape, wall, yd.Position, width)
	if !ok {
		return layout.Door{}, fmt.Errorf("door: %gm door does not fit wall %s", width, wall)
	}
	return d, nil
}

// FromPlan builds a plan file from an engine plan.
func FromPlan(id, name string, plan layout.Plan) File {
	s := plan.Shape
	f := File{
		ID:     id,
		Name:   name,
		Width:  s.Width,
		Height: s.Height,
		Shape:  YAMLShape{Kind: s.Kind.String()},
	}
	if s.Kind == layout.LShape {
		f.Shape.Corner = s.Cutout.Corner.String()
		f.Shape.CutoutWidth = s.Cutout.Width
		f.Shape.CutoutHeight = s.Cutout.Height
	}
	if plan.Door != nil {
		f.Door = &YAMLDoor{Wall: plan.Door.Wall.String(), Position: plan.Door.Position, Width: plan.Door.Width}
	}
	for _, p := range plan.Placements {
		f.Placements = append(f.Placements, YAMLPlacement{
			ID:       p.ID,
			Kind:     p.Kind.String(),
			Label:    p.Label,
			X:        p.Rect.X,
			Y:        p.Rect.Y,
			W:        p.Rect.W,
			H:        p.Rect.H,
			Rotation: p.Rotation,
		})
	}
	return f
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
