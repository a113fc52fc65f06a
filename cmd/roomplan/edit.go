package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/roomplan/internal/config"
	"github.com/vovakirdan/roomplan/internal/core"
	"github.com/vovakirdan/roomplan/internal/platform/tui"
	"github.com/vovakirdan/roomplan/internal/storage"
)

var editCmd = &cobra.Command{
	Use:   "edit <room-id>",
	Short: "Edit a room in the terminal",
	Long: `Opens the room editor. Moves and resizes run through the collision
resolver on every key press and are saved when you press Enter.

Controls:
  Arrows/hjkl        - Move the selection
  Shift+Arrows/HJKL  - Resize the selection
  Tab/Shift+Tab      - Select next/previous placement
  N                  - Add a 1x1m block
  D                  - Door mode (arrows slide, W moves to the next wall)
  Enter              - Save the current move, resize or door
  Esc                - Discard it
  Ctrl+S             - Save a text snapshot to ~/.roomplan/snapshots
  Q/Ctrl+C           - Quit`,
	Args: cobra.ExactArgs(1),
	Run:  runEdit,
}

func runEdit(_ *cobra.Command, args []string) {
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

	if err := tui.RunEditor(store, rec, terminalConfig(cfg), editorOptions(cfg)); err != nil {
		fail(err)
	}
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig(cfg config.Config) core.RuntimeConfig {
	rc := cfg.Runtime()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	return rc
}

// editorOptions builds editor options for a local terminal. The editor owns
// the terminal, so nothing is logged.
func editorOptions(cfg config.Config) tui.EditorOptions {
	return tui.EditorOptions{
		StatusTTL: cfg.Editor.StatusTTL(),
		User:      os.Getenv("USER"),
	}
}
