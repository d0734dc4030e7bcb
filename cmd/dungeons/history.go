package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-dungeons/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryRuns  bool
	flagHistoryItems bool
	flagHistoryRun   string
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the loot ledger",
	Long: `Display loot recorded by past play sessions.

By default the most recent drops are listed. The ledger is a history only;
it is never loaded back into a game.

Examples:
  dungeons history
  dungeons history --limit 50
  dungeons history --items
  dungeons history --runs
  dungeons history --run <run-id>
  dungeons history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum rows to show")
	historyCmd.Flags().BoolVar(&flagHistoryRuns, "runs", false, "List play sessions instead of drops")
	historyCmd.Flags().BoolVar(&flagHistoryItems, "items", false, "Show how often each item dropped")
	historyCmd.Flags().StringVar(&flagHistoryRun, "run", "", "Show the drops of one run")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete every recorded run and drop")
	historyCmd.MarkFlagsMutuallyExclusive("runs", "items", "run", "clear")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening loot ledger: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		err = store.Clear()
		if err == nil {
			fmt.Println("Loot ledger cleared.")
		}
	case flagHistoryRuns:
		err = printRuns(store)
	case flagHistoryItems:
		err = printItemCounts(store)
	case flagHistoryRun != "":
		var drops []storage.DropRecord
		drops, err = store.RunDrops(flagHistoryRun)
		if err == nil {
			fmt.Printf("Drops - run %s\n\n", flagHistoryRun)
			printDrops(drops)
		}
	default:
		var drops []storage.DropRecord
		drops, err = store.RecentDrops(flagHistoryLimit)
		if err == nil {
			fmt.Println("Recent drops")
			fmt.Println()
			printDrops(drops)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading loot ledger: %v\n", err)
		os.Exit(1)
	}
}

func printDrops(drops []storage.DropRecord) {
	if len(drops) == 0 {
		fmt.Println("No loot recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dungeons play' and defeat an enemy inside a dungeon!")
		return
	}

	fmt.Printf("  %-16s  %-20s  %-8s  %-10s  %s\n", "Date", "Item", "Class", "Enemy", "Dungeon")
	fmt.Printf("  %-16s  %-20s  %-8s  %-10s  %s\n", "----", "----", "-----", "-----", "-------")
	for _, d := range drops {
		name := d.ItemName
		if d.Boosted {
			name += " *"
		}
		class := d.ClassID
		if class == "" {
			class = "None"
		}
		fmt.Printf("  %-16s  %-20s  %-8s  %-10s  %s\n",
			d.CreatedAt.Format("2006-01-02 15:04"), name, class, d.EnemyID, d.DungeonID)
	}
	fmt.Println()
	fmt.Println("* dropped with class affinity")
}

func printItemCounts(store *storage.Store) error {
	counts, err := store.ItemCounts()
	if err != nil {
		return err
	}

	fmt.Println("Item counts")
	fmt.Println()
	if len(counts) == 0 {
		fmt.Println("No loot recorded yet.")
		return nil
	}

	fmt.Printf("  %-20s  %6s  %7s\n", "Item", "Drops", "Boosted")
	fmt.Printf("  %-20s  %6s  %7s\n", "----", "-----", "-------")
	for _, c := range counts {
		fmt.Printf("  %-20s  %6d  %7d\n", c.ItemName, c.Count, c.Boosted)
	}
	return nil
}

func printRuns(store *storage.Store) error {
	runs, err := store.RecentRuns(flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Println("Runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-36s  %-16s  %5s  %4s  %5s  %s\n", "Run", "Started", "Kills", "HP", "Drops", "Seed")
	fmt.Printf("  %-36s  %-16s  %5s  %4s  %5s  %s\n", "---", "-------", "-----", "--", "-----", "----")
	for _, r := range runs {
		hp := fmt.Sprintf("%d", r.FinalHP)
		if r.EndedAt.IsZero() {
			hp = "-"
		}
		fmt.Printf("  %-36s  %-16s  %5d  %4s  %5d  %d\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Kills, hp, r.Drops, r.Seed)
	}
	return nil
}
