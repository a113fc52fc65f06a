package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List stored rooms",
	Long:  `Shows every room in the database with its shape, placement count and version.`,
	Run:   runRooms,
}

func runRooms(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	rooms, err := store.ListRooms()
	if err != nil {
		fail(err)
	}
	if len(rooms) == 0 {
		fmt.Println("No rooms stored.")
		fmt.Println("Run 'roomplan import <file>' to add one.")
		return
	}

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4
	for _, r := range rooms {
		maxIDLen = max(maxIDLen, len(r.ID))
		maxNameLen = max(maxNameLen, len(r.Name))
	}

	fmt.Printf("  %-*s  %-*s  %-26s  %5s  %4s  %3s\n", maxIDLen, "ID", maxNameLen, "Name", "Shape", "Items", "Door", "Ver")
	fmt.Printf("  %-*s  %-*s  %-26s  %5s  %4s  %3s\n", maxIDLen, "--", maxNameLen, "----", "-----", "-----", "----", "---")
	for _, r := range rooms {
		door := "-"
		if r.HasDoor {
			door = "yes"
		}
		fmt.Printf("  %-*s  %-*s  %-26s  %5d  %4s  %3d\n", maxIDLen, r.ID, maxNameLen, r.Name, r.Shape, r.Placements, door, r.Version)
	}

	fmt.Println()
	fmt.Println("Run 'roomplan edit <id>' to edit a room.")
}
