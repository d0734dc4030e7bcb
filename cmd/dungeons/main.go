// dungeons is a terminal action-loot prototype: spin a class, enter a
// dungeon, bump into enemies and collect loot.
//
// Usage:
//
//	dungeons                 - Start the main menu
//	dungeons play            - Play straight away
//	dungeons tables [kind]   - Print the data tables (classes, dungeons, loot)
//	dungeons history         - Show the loot ledger
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set ledger database path (default: ~/.pixel-dungeons/ledger.db)
//	--data <dir>         - Load data tables from a directory instead of the built-in set
//	--config <path>      - Path to a custom game config YAML
//	--log-file <path>    - Write logs to a file (default: ~/.pixel-dungeons/dungeons.log)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pixel-dungeons/internal/config"
	"github.com/vovakirdan/pixel-dungeons/internal/core"
	"github.com/vovakirdan/pixel-dungeons/internal/data"
	"github.com/vovakirdan/pixel-dungeons/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagDataDir  string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dungeons",
	Short: "Pixel Dungeons - spin a class, clear a dungeon, collect loot",
	Long: `Pixel Dungeons is a small real-time action-loot prototype that runs in
your terminal. Spin for a random class, enter a dungeon, and walk into
enemies to fight them. Every defeated enemy drops an item, and items that
match your class's affinity tags drop more often.

Available commands:
  menu     - Interactive main menu (default)
  play     - Start playing right away
  tables   - Print the data tables
  history  - Show the loot ledger

Examples:
  dungeons
  dungeons play --seed 42
  dungeons tables classes
  dungeons history --runs`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pixel-dungeons/ledger.db", "Path to loot ledger database")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data", "", "Directory with data tables (default: built-in)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.pixel-dungeons/dungeons.log", "Log file path (empty disables logging)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadTables loads the data tables from --data or the built-in set.
func loadTables() (*data.Tables, error) {
	if flagDataDir == "" {
		return data.LoadDefault()
	}
	return data.LoadDir(flagDataDir)
}

// loadGameData loads and validates tables and game config together.
func loadGameData() (*data.Tables, config.GameConfig, error) {
	tables, err := loadTables()
	if err != nil {
		return nil, config.GameConfig{}, err
	}
	cfg, err := config.LoadGame(flagConfig)
	if err != nil {
		return nil, config.GameConfig{}, err
	}
	if _, ok := tables.Dungeons[cfg.StartDungeon]; !ok {
		return nil, config.GameConfig{}, fmt.Errorf("start dungeon %q is not in the dungeon table", cfg.StartDungeon)
	}
	return tables, cfg, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// newLogger opens the log file. The TUI owns the terminal, so logs never go
// to stdout or stderr while a game is running.
func newLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "dungeons",
		Level:           level,
	})
	return logger, func() { f.Close() }, nil
}

// openLedger opens the ledger store. Play continues without it on failure.
func openLedger(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open loot ledger: %v\n", err)
		logger.Warn("could not open loot ledger", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
