package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var modesCmd = &cobra.Command{
	Use:     "modes",
	Aliases: []string{"list"},
	Short:   "List all available modes",
	Long:    `Shows every registered game mode with a summary of past games.`,
	Run:     runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	// Stats are optional; the list works without a database
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
		maxTitleLen = max(maxTitleLen, len(m.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %8s  %6s\n", maxIDLen, "ID", maxTitleLen, "Title", "Best", "Games")
	fmt.Printf("  %-*s  %-*s  %8s  %6s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "-----")

	for _, m := range modes {
		best, games := 0, 0
		if st := stats[m.ID]; st != nil {
			best, games = st.HighScore, st.GamesCount
		}
		fmt.Printf("  %-*s  %-*s  %8d  %6d\n", maxIDLen, m.ID, maxTitleLen, m.Title, best, games)
		if m.Description != "" {
			fmt.Printf("  %-*s  %s\n", maxIDLen, "", m.Description)
		}
	}

	fmt.Println()
	fmt.Println("Run 'tui2048 play <id>' to play a mode.")
}
