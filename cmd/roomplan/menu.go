package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomplan/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a room and edit it",
	Long: `Shows the stored rooms. Enter opens the editor; B in the editor
returns to the list.

Controls:
  Up/Down/j/k  - Navigate
  Enter        - Edit room
  R            - Refresh
  Q            - Quit`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	if err := tui.RunSession(store, terminalConfig(cfg), editorOptions(cfg)); err != nil {
		fail(err)
	}
}
