package data

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/pixel-dungeons/internal/weighted"
)

// ValidationError describes one broken rule in the loaded tables.
type ValidationError struct {
	Table   string
	Key     string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s/%s] %s", e.Table, e.Key, e.Message)
}

// Validate checks weights and cross references across all tables and
// returns every problem found, joined.
func (t *Tables) Validate() error {
	var errs []error
	add := func(table, key, format string, args ...any) {
		errs = append(errs, ValidationError{Table: table, Key: key, Message: fmt.Sprintf(format, args...)})
	}

	if err := weighted.Validate(t.SpinEntries()); err != nil {
		add(ClassesDoc, "spin_table", "%v", err)
	}
	for _, e := range t.SpinTable {
		if _, ok := t.Classes[e.ClassID]; !ok {
			add(ClassesDoc, "spin_table", "unknown class %q", e.ClassID)
		}
	}

	for _, id := range sortedKeys(t.LootTables) {
		entries := t.LootTables[id]
		sel := make([]weighted.Entry, len(entries))
		for i, e := range entries {
			sel[i] = weighted.Entry{ID: e.ItemID, Weight: e.Weight}
			if _, ok := t.Items[e.ItemID]; !ok {
				add(LootTablesDoc, id, "unknown item %q", e.ItemID)
			}
		}
		if err := weighted.Validate(sel); err != nil {
			add(LootTablesDoc, id, "%v", err)
		}
	}

	for _, id := range sortedKeys(t.EnemyTables) {
		if err := weighted.Validate(t.EnemyEntries(id)); err != nil {
			add(DungeonsDoc, id, "%v", err)
		}
		for _, e := range t.EnemyTables[id] {
			if _, ok := t.Enemies[e.EnemyID]; !ok {
				add(DungeonsDoc, id, "unknown enemy %q", e.EnemyID)
			}
		}
	}

	for _, id := range sortedKeys(t.Enemies) {
		if t.Enemies[id].HP <= 0 {
			add(DungeonsDoc, id, "enemy hp must be positive, got %d", t.Enemies[id].HP)
		}
	}

	for _, id := range t.DungeonIDs() {
		d := t.Dungeons[id]
		if _, ok := t.EnemyTables[d.EnemyTableID]; !ok {
			add(DungeonsDoc, id, "unknown enemy table %q", d.EnemyTableID)
		}
		if _, ok := t.LootTables[d.LootTableID]; !ok {
			add(DungeonsDoc, id, "unknown loot table %q", d.LootTableID)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("data: invalid tables: %w", errors.Join(errs...))
}
