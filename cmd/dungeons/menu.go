package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-dungeons/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive main menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a session ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q/Esc        - Quit

Examples:
  dungeons menu
  dungeons menu --fps 30
  dungeons menu --db ./ledger.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	tables, gameCfg, err := loadGameData()
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
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	subtitle := fmt.Sprintf("%d classes  |  start: %s", len(tables.Classes), tables.Dungeons[gameCfg.StartDungeon].Name)

	// Class spun on the class sheet; the next game starts with it.
	var startClass string

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, subtitle)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoicePlay:
			session := cfg
			if flagSeed == 0 {
				session.Seed = time.Now().UnixNano()
			}
			summary, runErr := playSession(tables, gameCfg, session, startClass, store, logger)
			startClass = ""
			if runErr != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
				return
			}
			logger.Info("session summary", "run", summary.RunID, "kills", summary.State.Kills, "hp", summary.State.HP)

		case tui.ChoiceClasses:
			seed := flagSeed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			spun, goBack, clsErr := tui.RunClasses(tables, seed, cfg.ScreenW, cfg.ScreenH)
			if clsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", clsErr)
			}
			if spun != "" {
				startClass = spun
				logger.Info("class selected for next game", "class", spun)
			}
			if !goBack {
				return
			}

		case tui.ChoiceLedger:
			var reader tui.LedgerReader
			if store != nil {
				reader = store
			}
			goBack, ldErr := tui.RunLedger(reader, cfg.ScreenW, cfg.ScreenH)
			if ldErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", ldErr)
			}
			if !goBack {
				return
			}

		default:
			return
		}
	}
}
