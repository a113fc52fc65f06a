package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var wallsCmd = &cobra.Command{
	Use:   "walls <file>",
	Short: "List the walls of a plan file's room",
	Long: `Prints every wall of the room: its id, start point, length,
orientation and the unit vector pointing into the room.

Walls are listed North, South, East, West, then the two cutout walls of an
L-shaped room.`,
	Args: cobra.ExactArgs(1),
	Run:  runWalls,
}

func runWalls(_ *cobra.Command, args []string) {
	f := loadPlanFile(args[0])
	shape, err := f.BuildShape()
	if err != nil {
		fail(err)
	}

	fmt.Printf("%s: %s, area %.2f m²\n\n", f.ID, shape, shape.Area())
	fmt.Printf("  %-16s  %-14s  %-14s  %7s  %-10s  %s\n", "Wall", "Start", "End", "Length", "Runs", "Inward")
	fmt.Printf("  %-16s  %-14s  %-14s  %7s  %-10s  %s\n", "----", "-----", "---", "------", "----", "------")
	for _, w := range shape.Walls() {
		normal, _ := shape.InwardNormal(w.ID)
		fmt.Printf("  %-16s  %-14s  %-14s  %7.2f  %-10s  %s\n",
			w.ID, w.Start, w.End(), w.Length, w.Orientation, normal)
	}
}
