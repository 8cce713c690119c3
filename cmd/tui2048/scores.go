package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top scores for the specified mode (default: 2048).

Examples:
  tui2048 scores
  tui2048 scores 2048_endless --limit 20
  tui2048 scores 2048 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "2048"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tui2048 modes' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tui2048 play %s' to set the first high score!\n", gameID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-3s  %s\n", "Rank", "Score", "Tile", "Won", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-3s  %s\n", "----", "-----", "----", "---", "----")

	for i, entry := range scores {
		won := ""
		if entry.Won {
			won = "yes"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-3s  %s\n", i+1, entry.Score, entry.MaxTile, won, dateStr)
	}

	// Summary line
	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Games: %d  Wins: %d  Average: %.0f\n",
			stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	}
}
