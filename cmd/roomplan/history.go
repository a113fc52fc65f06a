package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history <room-id>",
	Short: "Show a room's recent changes",
	Args:  cobra.ExactArgs(1),
	Run:   runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of entries to show")
}

func runHistory(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	entries, err := store.History(args[0], flagHistoryLimit)
	if err != nil {
		fail(err)
	}
	if len(entries) == 0 {
		fmt.Printf("No history for %s.\n", args[0])
		return
	}

	fmt.Printf("  %4s  %-18s  %-16s  %s\n", "Ver", "When", "Action", "Placement")
	for _, e := range entries {
		fmt.Printf("  %4d  %-18s  %-16s  %s\n", e.Version, e.CreatedAt.Local().Format("Jan 02 15:04:05"), e.Action, e.PlacementID)
	}
}
