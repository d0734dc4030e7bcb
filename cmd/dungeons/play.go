package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-dungeons/internal/config"
	"github.com/vovakirdan/pixel-dungeons/internal/core"
	"github.com/vovakirdan/pixel-dungeons/internal/data"
	"github.com/vovakirdan/pixel-dungeons/internal/game"
	"github.com/vovakirdan/pixel-dungeons/internal/platform/tui"
	"github.com/vovakirdan/pixel-dungeons/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start playing right away",
	Long: `Start a play session without the menu.

Controls:
  WASD/Arrows - Move
  R           - Spin a new class
  Enter       - Enter the dungeon (respawns its enemies)
  C           - Toggle the class sheet
  Ctrl+S      - Save a text screenshot
  Esc/Q       - Quit

Examples:
  dungeons play
  dungeons play --seed 42
  dungeons play --config ./my-game.yaml --data ./my-tables`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	tables, cfg, err := loadGameData()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openLedger(logger)

	summary, runErr := playSession(tables, cfg, runtimeConfig(), "", store, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	printSummary(summary)
}

// playSession runs one game until the player quits. A non-empty startClass
// is assigned before the first frame.
func playSession(tables *data.Tables, cfg config.GameConfig, rt core.RuntimeConfig, startClass string, store *storage.Store, logger *log.Logger) (tui.Summary, error) {
	opts := tui.Options{
		Runtime:    rt,
		HoldWindow: cfg.Input.HoldWindow(),
		StartClass: startClass,
		Logger:     logger,
	}
	// A nil *Store must not become a non-nil Ledger.
	if store != nil {
		opts.Ledger = store
	}
	return tui.Run(game.New(tables, cfg), opts)
}

func printSummary(s tui.Summary) {
	class := s.State.ClassID
	if class == "" {
		class = "none"
	}
	fmt.Printf("Run finished: %d kills, HP %d, class %s, seed %d\n", s.State.Kills, s.State.HP, class, s.Seed)
	if s.RunID != "" {
		fmt.Printf("Ledger run: %s (see 'dungeons history')\n", s.RunID)
	}
}
