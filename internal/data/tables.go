// Package data holds the static tables that drive the game: classes and their
// spin table, items, loot tables, dungeons, enemy spawn tables and enemy
// templates. Tables are loaded once, validated, and never mutated afterwards.
package data

import (
	"sort"

	"github.com/vovakirdan/pixel-dungeons/internal/weighted"
)

// ClassDef describes a player class.
type ClassDef struct {
	ID               string
	Name             string
	LootAffinityTags []string
	Perks            []string
	Ability          string
	CooldownSeconds  *float64 // nil when the class has no active ability
}

// HasAffinity reports whether any of tags is one of the class's loot affinity tags.
func (c ClassDef) HasAffinity(tags []string) bool {
	for _, tag := range tags {
		for _, own := range c.LootAffinityTags {
			if tag == own {
				return true
			}
		}
	}
	return false
}

// SpinEntry is one row of the class spin table.
type SpinEntry struct {
	ClassID string
	Weight  float64
}

// ItemDef describes a lootable item.
type ItemDef struct {
	ID   string
	Name string
}

// LootTableEntry is one weighted row of a loot table.
type LootTableEntry struct {
	ItemID string
	Weight float64
	Tags   []string
}

// DungeonDef ties a dungeon to its enemy spawn table and loot table.
type DungeonDef struct {
	ID           string
	Name         string
	EnemyTableID string
	LootTableID  string
}

// EnemySpawnEntry is one weighted row of an enemy spawn table.
type EnemySpawnEntry struct {
	EnemyID string
	Weight  float64
}

// EnemyDef is the template enemies are instantiated from.
type EnemyDef struct {
	ID     string
	Name   string
	HP     int
	Attack int
}

// Tables is the full, validated set of game data.
type Tables struct {
	Classes     map[string]ClassDef
	SpinTable   []SpinEntry
	Items       map[string]ItemDef
	LootTables  map[string][]LootTableEntry
	Dungeons    map[string]DungeonDef
	EnemyTables map[string][]EnemySpawnEntry
	Enemies     map[string]EnemyDef
	PlayerStats PlayerStats
}

// SpinEntries converts the spin table into selector entries.
func (t *Tables) SpinEntries() []weighted.Entry {
	entries := make([]weighted.Entry, len(t.SpinTable))
	for i, e := range t.SpinTable {
		entries[i] = weighted.Entry{ID: e.ClassID, Weight: e.Weight}
	}
	return entries
}

// EnemyEntries converts an enemy spawn table into selector entries.
func (t *Tables) EnemyEntries(tableID string) []weighted.Entry {
	table := t.EnemyTables[tableID]
	entries := make([]weighted.Entry, len(table))
	for i, e := range table {
		entries[i] = weighted.Entry{ID: e.EnemyID, Weight: e.Weight}
	}
	return entries
}

// ClassIDs returns the class identifiers in sorted order.
func (t *Tables) ClassIDs() []string {
	return sortedKeys(t.Classes)
}

// DungeonIDs returns the dungeon identifiers in sorted order.
func (t *Tables) DungeonIDs() []string {
	return sortedKeys(t.Dungeons)
}

// ItemName returns the display name of an item, falling back to its ID.
func (t *Tables) ItemName(id string) string {
	if item, ok := t.Items[id]; ok && item.Name != "" {
		return item.Name
	}
	return id
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
