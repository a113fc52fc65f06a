package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomplan/internal/core"
	"github.com/vovakirdan/roomplan/internal/layout"
)

var (
	flagPoint     string
	flagDoorWidth float64
)

var probeCmd = &cobra.Command{
	Use:   "probe <file> --point x,y",
	Short: "Inspect a point of a plan file's room",
	Long: `Reports whether the point lies on the floor, which wall is nearest,
the point's normalized position along that wall, and where a door centered
there would end up after clamping.

Examples:
  roomplan probe plans/garage.yaml --point 3,0.2
  roomplan probe plans/garage.yaml --point 5.9,2 --door-width 0.8`,
	Args: cobra.ExactArgs(1),
	Run:  runProbe,
}

func init() {
	probeCmd.Flags().StringVar(&flagPoint, "point", "", "Point in meters as x,y")
	probeCmd.Flags().Float64Var(&flagDoorWidth, "door-width", 0, "Door width in meters (default from config)")
	//nolint:errcheck // flag is defined above
	probeCmd.MarkFlagRequired("point")
}

func runProbe(_ *cobra.Command, args []string) {
	p, err := parsePoint(flagPoint)
	if err != nil {
		fail(err)
	}
	width := flagDoorWidth
	if width <= 0 {
		width = loadConfig().Door.DefaultWidth
	}

	f := loadPlanFile(args[0])
	shape, err := f.BuildShape()
	if err != nil {
		fail(err)
	}

	wall := layout.NearestWall(p, shape)
	pos, _ := layout.NormalizePosition(p, wall, shape)

	fmt.Printf("point        %s\n", p)
	fmt.Printf("inside       %v\n", shape.ContainsPoint(p))
	fmt.Printf("nearest wall %s\n", wall)
	fmt.Printf("position     %.3f\n", pos)

	door, ok := layout.DoorAt(shape, p, width)
	if !ok {
		fmt.Printf("door         a %.2fm door does not fit the %s wall\n", width, wall)
		return
	}
	g, _ := door.Geometry(shape)
	fmt.Printf("door         %.3f on %s, opening %s to %s\n", door.Position, door.Wall, g.OpeningStart, g.OpeningEnd)
}

// parsePoint parses "x,y" in meters.
func parsePoint(s string) (core.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return core.Point{}, fmt.Errorf("point %q must be x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return core.Point{}, fmt.Errorf("point %q: bad x: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return core.Point{}, fmt.Errorf("point %q: bad y: %w", s, err)
	}
	return core.Pt(x, y), nil
}
