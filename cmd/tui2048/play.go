package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play 2048",
	Long: `Start playing 2048. Without a mode, a menu lets you pick one and
returns to it after each game.

Modes:
  2048          - Classic: stop at the 2048 tile and choose to continue
  2048_endless  - Endless: no interruption, play until the board locks

Controls:
  Arrows/WASD/drag - Slide the tiles
  N                - New game (records the current score)
  C                - Continue after reaching 2048
  R                - Restart after a win or loss
  P                - Pause
  B/Esc            - Back to menu (when paused or over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Examples:
  tui2048 play
  tui2048 play 2048
  tui2048 play 2048_endless --seed 42
  tui2048 play --config ./my-2048.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'tui2048 modes' to see available modes.")
			os.Exit(1)
		}
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	opts := tui.Options{
		DragThreshold: dragThreshold(),
		Logger:        logger,
	}

	if gameID != "" {
		if _, err := playOnce(gameID, store, cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runMenuLoop(store, cfg, opts)
}

// runMenuLoop shows the menu, plays the chosen mode and returns to the menu.
func runMenuLoop(store *storage.Store, cfg core.RuntimeConfig, opts tui.Options) {
	opts.AllowBack = true

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.GameID == "" {
			return
		}

		backToMenu, err := playOnce(menuResult.GameID, store, cfg, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !backToMenu {
			return
		}

		// A fixed seed only applies to the first game
		cfg.Seed = 0
	}
}

// playOnce runs one mode until the player quits or goes back.
func playOnce(gameID string, store *storage.Store, cfg core.RuntimeConfig, opts tui.Options) (bool, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return false, err
	}
	logger.Debug("starting game", "mode", gameID, "seed", cfg.Seed)
	return tui.Run(game, store, cfg, opts)
}
