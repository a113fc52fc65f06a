package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomplan/internal/planfile"
	"github.com/vovakirdan/roomplan/internal/storage"
)

var flagImportDir bool

var importCmd = &cobra.Command{
	Use:   "import <file...>",
	Short: "Store plan files in the database",
	Long: `Validates each plan file and stores it as a room. A file whose id is
already stored replaces that room and bumps its version.

With --dir every argument is a directory scanned for .yaml and .yml files;
files that fail to parse are skipped.

Examples:
  roomplan import plans/garage.yaml plans/study.yaml
  roomplan import --dir plans`,
	Args: cobra.MinimumNArgs(1),
	Run:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportDir, "dir", false, "Treat arguments as directories to scan")
}

func runImport(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	store := openStore(cfg)
	defer store.Close()

	var files []planfile.File
	for _, arg := range args {
		if !flagImportDir {
			files = append(files, loadPlanFile(arg))
			continue
		}
		found, err := planfile.NewLoader(arg).LoadAll()
		if err != nil {
			fail(err)
		}
		files = append(files, found...)
	}

	failed := 0
	for _, f := range files {
		plan, err := f.Plan()
		if err != nil {
			logger.Error("invalid plan", "file", f.Path, "error", err)
			failed++
			continue
		}
		name := f.Name
		if name == "" {
			name = f.ID
		}
		rec := &storage.RoomRecord{ID: f.ID, Name: name, Plan: plan}
		if err := store.SaveRoom(rec); err != nil {
			logger.Error("import failed", "file", f.Path, "room", f.ID, "error", err)
			failed++
			continue
		}
		logger.Debug("imported", "file", f.Path, "room", rec.ID, "version", rec.Version)
		fmt.Printf("%s  v%d  %s\n", rec.ID, rec.Version, name)
	}

	if failed > 0 {
		fail(fmt.Errorf("%d of %d plans not imported", failed, len(files)))
	}
}
