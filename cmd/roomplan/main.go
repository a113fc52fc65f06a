// roomplan lays out rectangular and L-shaped rooms in the terminal.
//
// Usage:
//
//	roomplan walls <file>          - List the walls of a plan file's room
//	roomplan check <file>          - Validate a plan file
//	roomplan probe <file> --point  - Inspect a point: inside, nearest wall, door fit
//	roomplan import <file...>      - Store plan files in the database
//	roomplan rooms                 - List stored rooms
//	roomplan history <room-id>     - Show a room's recent changes
//	roomplan export <room-id>      - Write a stored room as SVG or YAML
//	roomplan edit <room-id>        - Edit a room in the terminal
//	roomplan menu                  - Pick a room and edit it
//	roomplan serve                 - Serve the editor over SSH
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.roomplan/config.yaml)
//	--db <path>         - Database path (overrides storage.db_path)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomplan/internal/config"
	"github.com/vovakirdan/roomplan/internal/planfile"
	"github.com/vovakirdan/roomplan/internal/storage"
)

var (
	// Global flags
	flagConfigPath string
	flagDBPath     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roomplan",
	Short: "roomplan - lay out rooms in your terminal",
	Long: `roomplan places furniture and blocks inside rectangular and L-shaped
rooms, keeps every placement inside the walls and clear of its neighbours,
and puts a door on any wall.

Examples:
  roomplan check plans/garage.yaml
  roomplan import plans/*.yaml
  roomplan rooms
  roomplan edit garage
  roomplan export garage --format svg -o garage.svg
  roomplan serve --ssh :2222 --metrics :9090`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to rooms database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(wallsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		fail(err)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg
}

// newLogger creates the stderr logger at the configured level.
func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "roomplan",
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		fail(fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err))
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the configured database or exits.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fail(err)
	}
	return store
}

// loadPlanFile reads one plan file.
func loadPlanFile(path string) planfile.File {
	f, err := planfile.NewLoader("").LoadFile(path)
	if err != nil {
		fail(err)
	}
	return f
}

// fail prints err and exits with status 1.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
