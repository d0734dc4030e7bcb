// Package loot populates dungeons with enemies, rolls loot for defeated
// enemies and spins player classes, all through weighted selection.
package loot

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/pixel-dungeons/internal/config"
	"github.com/vovakirdan/pixel-dungeons/internal/core"
	"github.com/vovakirdan/pixel-dungeons/internal/data"
	"github.com/vovakirdan/pixel-dungeons/internal/entity"
	"github.com/vovakirdan/pixel-dungeons/internal/weighted"
)

var (
	// ErrUnknownDungeon is returned for a dungeon identifier missing from the tables.
	ErrUnknownDungeon = errors.New("loot: unknown dungeon")
	// ErrUnknownClass is returned when a class identifier has no definition.
	ErrUnknownClass = errors.New("loot: unknown class")
)

// Rand is the random source the resolver draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Drop is one granted item.
type Drop struct {
	ItemID   string
	ItemName string
	Boosted  bool // The class affinity multiplier applied to this entry
}

// Resolver turns table data into enemies, loot and classes.
type Resolver struct {
	tables *data.Tables
	cfg    config.GameConfig
	rng    Rand

	lootLog *core.LineLog
	infoLog *core.LineLog
}

// NewResolver creates a resolver over validated tables. The info log starts
// with the control hints.
func NewResolver(tables *data.Tables, cfg config.GameConfig, rng Rand) *Resolver {
	return &Resolver{
		tables:  tables,
		cfg:     cfg,
		rng:     rng,
		lootLog: core.NewLineLog(cfg.Loot.LogSize),
		infoLog: core.NewLineLog(cfg.Info.LogSize, "Press R to spin class", "Press Enter to start dungeon"),
	}
}

// LootLog returns the bounded log of granted items.
func (r *Resolver) LootLog() *core.LineLog {
	return r.lootLog
}

// InfoLog returns the bounded log of informational messages.
func (r *Resolver) InfoLog() *core.LineLog {
	return r.infoLog
}

// Spawn instantiates count enemies from the dungeon's spawn table at integer
// positions drawn uniformly from the viewport inset by the spawn margin on
// every side, bounds inclusive. Spawned enemies may overlap each other and the player.
func (r *Resolver) Spawn(dungeonID string, count int) ([]entity.Enemy, error) {
	dungeon, ok := r.tables.Dungeons[dungeonID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDungeon, dungeonID)
	}
	entries := r.tables.EnemyEntries(dungeon.EnemyTableID)

	margin := r.cfg.Spawn.Margin
	spanX := int(r.cfg.Viewport.Width) - 2*margin + 1
	spanY := int(r.cfg.Viewport.Height) - 2*margin + 1

	enemies := make([]entity.Enemy, 0, count)
	for range count {
		enemyID, err := weighted.Pick(r.rng, entries)
		if err != nil {
			return nil, fmt.Errorf("loot: spawning in %s: %w", dungeonID, err)
		}
		x := margin + r.rng.Intn(spanX)
		y := margin + r.rng.Intn(spanY)
		enemies = append(enemies, entity.NewEnemy(r.tables.Enemies[enemyID], float64(x), float64(y), r.cfg.Enemy.Width, r.cfg.Enemy.Height))
	}
	return enemies, nil
}

// EffectiveWeights applies the affinity multiplier to every loot entry whose
// tags intersect the class tags.
func EffectiveWeights(entries []data.LootTableEntry, class data.ClassDef, multiplier float64) []weighted.Entry {
	out := make([]weighted.Entry, len(entries))
	for i, e := range entries {
		w := e.Weight
		if class.HasAffinity(e.Tags) {
			w *= multiplier
		}
		out[i] = weighted.Entry{ID: e.ItemID, Weight: w}
	}
	return out
}

// Drop rolls one item from the dungeon's loot table for a player of classID
// and records it in the loot log. With no active dungeon it does nothing and
// reports false.
func (r *Resolver) Drop(dungeonID, classID string) (Drop, bool, error) {
	if dungeonID == "" {
		return Drop{}, false, nil
	}
	dungeon, ok := r.tables.Dungeons[dungeonID]
	if !ok {
		return Drop{}, false, fmt.Errorf("%w: %q", ErrUnknownDungeon, dungeonID)
	}
	entries := r.tables.LootTables[dungeon.LootTableID]

	var class data.ClassDef
	if classID != "" {
		class = r.tables.Classes[classID]
	}

	i, err := weighted.PickIndex(r.rng, EffectiveWeights(entries, class, r.cfg.Loot.AffinityMultiplier))
	if err != nil {
		return Drop{}, false, fmt.Errorf("loot: rolling %s: %w", dungeon.LootTableID, err)
	}

	picked := entries[i]
	drop := Drop{
		ItemID:   picked.ItemID,
		ItemName: r.tables.ItemName(picked.ItemID),
		Boosted:  class.HasAffinity(picked.Tags),
	}
	r.lootLog.Push("Loot: " + drop.ItemName)
	return drop, true, nil
}

// SpinClass picks a class from the spin table and announces it in the info log.
func (r *Resolver) SpinClass() (data.ClassDef, error) {
	classID, err := weighted.Pick(r.rng, r.tables.SpinEntries())
	if err != nil {
		return data.ClassDef{}, fmt.Errorf("loot: spinning class: %w", err)
	}
	class, ok := r.tables.Classes[classID]
	if !ok {
		return data.ClassDef{}, fmt.Errorf("%w: %q", ErrUnknownClass, classID)
	}
	r.infoLog.Push("Spun class: " + class.Name)
	return class, nil
}

// Announce appends a message to the info log.
func (r *Resolver) Announce(msg string) {
	r.infoLog.Push(msg)
}
