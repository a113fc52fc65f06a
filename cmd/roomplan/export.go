package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomplan/internal/planfile"
	"github.com/vovakirdan/roomplan/internal/render"
	"github.com/vovakirdan/roomplan/internal/storage"
)

var (
	flagFormat string
	flagOutput string
	flagScale  float64
)

var exportCmd = &cobra.Command{
	Use:   "export <room-id>",
	Short: "Write a stored room as SVG or YAML",
	Long: `Exports a room from the database. YAML output can be imported again;
SVG output draws the outline, walls, placements and door swing.

Examples:
  roomplan export garage                      # YAML to stdout
  roomplan export garage --format svg -o garage.svg
  roomplan export garage --format svg --scale 80 -o big.svg`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or svg")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().Float64Var(&flagScale, "scale", 0, "SVG pixels per meter")
}

func runExport(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	rec, err := store.Room(args[0])
	if err != nil {
		fail(err)
	}
	if rec == nil {
		fail(fmt.Errorf("%w: %s", storage.ErrRoomNotFound, args[0]))
	}

	var out io.Writer = os.Stdout
	if flagOutput != "" {
		file, err := os.Create(flagOutput)
		if err != nil {
			fail(err)
		}
		defer file.Close()
		out = file
	}

	switch flagFormat {
	case "yaml", "yml":
		data, err := planfile.Encode(planfile.FromPlan(rec.ID, rec.Name, rec.Plan))
		if err != nil {
			fail(err)
		}
		if _, err := out.Write(data); err != nil {
			fail(err)
		}
	case "svg":
		if err := render.WriteSVG(out, rec.Name, rec.Plan, render.Options{Scale: flagScale}); err != nil {
			fail(err)
		}
	default:
		fail(fmt.Errorf("unknown format %q (want yaml or svg)", flagFormat))
	}
}
