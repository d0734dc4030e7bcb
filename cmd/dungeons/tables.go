package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-dungeons/internal/config"
	"github.com/vovakirdan/pixel-dungeons/internal/data"
	"github.com/vovakirdan/pixel-dungeons/internal/game"
	"github.com/vovakirdan/pixel-dungeons/internal/loot"
	"github.com/vovakirdan/pixel-dungeons/internal/weighted"
)

var tablesCmd = &cobra.Command{
	Use:   "tables [classes|dungeons|loot]",
	Short: "Print the data tables",
	Long: `Load, validate and print the data tables.

With no argument every table is printed. Loading fails with a list of
every dangling reference or bad weight if the tables are invalid.

Examples:
  dungeons tables
  dungeons tables loot
  dungeons tables --data ./my-tables`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"classes", "dungeons", "loot"},
	Run:       runTables,
}

func runTables(_ *cobra.Command, args []string) {
	tables, err := loadTables()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadGame(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	kind := ""
	if len(args) == 1 {
		kind = args[0]
	}

	if err := printTables(os.Stdout, tables, kind, cfg.Loot.AffinityMultiplier); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printTables writes the tables named by kind, or all of them when kind is
// empty.
func printTables(w io.Writer, t *data.Tables, kind string, multiplier float64) error {
	if kind == "" || kind == "classes" {
		if err := printClasses(w, t); err != nil {
			return err
		}
	}
	if kind == "" || kind == "dungeons" {
		if err := printDungeons(w, t); err != nil {
			return err
		}
	}
	if kind == "" || kind == "loot" {
		if err := printLoot(w, t, multiplier); err != nil {
			return err
		}
	}
	return nil
}

func printClasses(w io.Writer, t *data.Tables) error {
	total, err := weighted.Total(t.SpinEntries())
	if err != nil {
		return fmt.Errorf("spin table: %w", err)
	}
	odds := make(map[string]float64)
	for _, e := range t.SpinTable {
		odds[e.ClassID] += e.Weight / total
	}

	fmt.Fprintln(w, "Classes:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-10s  %-10s  %6s  %-14s  %-9s  %s\n", "ID", "Name", "Odds", "Ability", "Cooldown", "Affinity")
	fmt.Fprintf(w, "  %-10s  %-10s  %6s  %-14s  %-9s  %s\n", "--", "----", "----", "-------", "--------", "--------")
	for _, id := range t.ClassIDs() {
		c := t.Classes[id]
		ability := c.Ability
		if ability == "" {
			ability = "None"
		}
		fmt.Fprintf(w, "  %-10s  %-10s  %5.1f%%  %-14s  %-9s  %s\n",
			id, c.Name, odds[id]*100, ability, game.FormatCooldown(c.CooldownSeconds), strings.Join(c.LootAffinityTags, ", "))
	}
	fmt.Fprintln(w)
	return nil
}

func printDungeons(w io.Writer, t *data.Tables) error {
	fmt.Fprintln(w, "Dungeons:")
	fmt.Fprintln(w)
	for _, id := range t.DungeonIDs() {
		d := t.Dungeons[id]
		fmt.Fprintf(w, "  %s - %s (enemies: %s, loot: %s)\n", id, d.Name, d.EnemyTableID, d.LootTableID)

		entries := t.EnemyEntries(d.EnemyTableID)
		total, err := weighted.Total(entries)
		if err != nil {
			return fmt.Errorf("enemy table %q: %w", d.EnemyTableID, err)
		}
		for _, e := range entries {
			enemy := t.Enemies[e.ID]
			fmt.Fprintf(w, "      %-10s  HP %-3d  ATK %-2d  %5.1f%%\n", enemy.Name, enemy.HP, enemy.Attack, share(e.Weight, total))
		}
	}
	fmt.Fprintln(w)
	return nil
}

func printLoot(w io.Writer, t *data.Tables, multiplier float64) error {
	ids := make([]string, 0, len(t.LootTables))
	for id := range t.LootTables {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Fprintln(w, "Loot tables:")
	fmt.Fprintln(w)
	for _, id := range ids {
		rows := t.LootTables[id]
		fmt.Fprintf(w, "  %s\n", id)

		base := make([]weighted.Entry, len(rows))
		for i, r := range rows {
			base[i] = weighted.Entry{ID: r.ItemID, Weight: r.Weight}
		}
		total, err := weighted.Total(base)
		if err != nil {
			return fmt.Errorf("loot table %q: %w", id, err)
		}
		for _, r := range rows {
			tags := "-"
			if len(r.Tags) > 0 {
				tags = strings.Join(r.Tags, ", ")
			}
			fmt.Fprintf(w, "      %-20s  %5.1f%%  %s\n", t.ItemName(r.ItemID), share(r.Weight, total), tags)
		}

		// Chance of an affinity item as each class sees it.
		for _, classID := range t.ClassIDs() {
			class := t.Classes[classID]
			entries := loot.EffectiveWeights(rows, class, multiplier)
			boosted, err := weighted.Total(entries)
			if err != nil {
				return fmt.Errorf("loot table %q for class %s: %w", id, classID, err)
			}
			var affine float64
			for i, e := range entries {
				if class.HasAffinity(rows[i].Tags) {
					affine += e.Weight
				}
			}
			fmt.Fprintf(w, "      %-10s affinity items: %5.1f%%\n", classID, share(affine, boosted))
		}
	}
	fmt.Fprintln(w)
	return nil
}

func share(w, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return w / total * 100
}
