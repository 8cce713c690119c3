// tui2048 is the 2048 sliding tile puzzle for the terminal.
//
// Usage:
//
//	tui2048                  - Pick a mode from the menu and play
//	tui2048 play [mode]      - Play a mode directly (menu if omitted)
//	tui2048 modes            - List available modes
//	tui2048 scores [mode]    - Show high scores
//	tui2048 serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible games
//	--db <path>        - Set database path (default: ~/.tui2048/scores.db)
//	--config <path>    - Use a custom game config YAML
//	--log-file <path>  - Write debug logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
)

// logger is set up by the root command before any subcommand runs.
var logger = log.New(io.Discard)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tui2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `tui2048 is the 2048 sliding tile puzzle for the terminal.

Slide the board with the arrow keys, WASD, or a mouse drag. Equal tiles
merge when they collide. Reach the 2048 tile to win, then keep going.

Available commands:
  play     - Play a mode (classic or endless)
  modes    - Show all available modes
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  tui2048
  tui2048 play 2048_endless
  tui2048 scores 2048
  tui2048 serve --ssh :2222`,
	PersistentPreRunE: setup,
	Run:               runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tui2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup wires logging and the game config path shared by all commands.
func setup(_ *cobra.Command, _ []string) error {
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "tui2048",
			Level:           log.DebugLevel,
		})
	}

	t2048.SetConfigPath(flagConfig)
	t2048.SetLogger(logger)
	return nil
}

// dragThreshold reads the mouse drag threshold from the game config.
func dragThreshold() int {
	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.DefaultT2048Config().Input.DragThreshold
	}
	return cfg.Input.DragThreshold
}
