// Package game binds the world, the loot resolver and the message logs into
// a single steppable game. It holds no platform dependencies: the presentation
// layer feeds it input frames and frame times, then renders it into a screen buffer.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/pixel-dungeons/internal/config"
	"github.com/vovakirdan/pixel-dungeons/internal/core"
	"github.com/vovakirdan/pixel-dungeons/internal/data"
	"github.com/vovakirdan/pixel-dungeons/internal/entity"
	"github.com/vovakirdan/pixel-dungeons/internal/loot"
	"github.com/vovakirdan/pixel-dungeons/internal/sim"
)

// State summarises the game for the platform.
type State struct {
	Tick      uint64
	HP        int
	ClassID   string
	DungeonID string
	Enemies   int
	Kills     int
	SheetOpen bool
}

// StepResult is returned by Step after each frame.
type StepResult struct {
	State  State
	Events []Event
	Err    error // Selection or table failure; the frame was aborted at that point
}

// Game is one play session. It is not safe for concurrent use.
type Game struct {
	tables *data.Tables
	cfg    config.GameConfig

	seed     int64
	rng      *rand.Rand
	resolver *loot.Resolver
	world    sim.World

	tick      uint64
	kills     int
	sheetOpen bool
}

// New creates a game over validated tables and configuration, seeded from
// the clock. Call Reset to pick a seed.
func New(tables *data.Tables, cfg config.GameConfig) *Game {
	g := &Game{tables: tables, cfg: cfg}
	g.Reset(core.DefaultConfig())
	return g
}

// Reset starts a fresh session: new player, no class, no dungeon, fresh logs.
// A zero seed is replaced by the current time.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.seed = rt.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	g.resolver = loot.NewResolver(g.tables, g.cfg, g.rng)

	w, h := g.cfg.Viewport.Width, g.cfg.Viewport.Height
	g.world = sim.World{
		Width:  w,
		Height: h,
		Player: entity.NewPlayer(g.cfg.Player, w, h, g.tables.PlayerStats),
	}
	g.tick = 0
	g.kills = 0
	g.sheetOpen = false
}

// Seed returns the seed of the current session.
func (g *Game) Seed() int64 {
	return g.seed
}

// World exposes the simulation state.
func (g *Game) World() *sim.World {
	return &g.world
}

// Tables returns the data tables the game runs on.
func (g *Game) Tables() *data.Tables {
	return g.tables
}

// Step applies one-shot triggers, then advances movement and combat by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) StepResult {
	g.tick++
	var events []Event

	if in.Has(core.ActionClassSheet) {
		g.sheetOpen = !g.sheetOpen
	}
	if in.Has(core.ActionSpin) {
		ev, err := g.SpinClass()
		if err != nil {
			return StepResult{State: g.State(), Events: events, Err: err}
		}
		events = append(events, ev)
	}
	if in.Has(core.ActionStartDungeon) {
		ev, err := g.EnterDungeon(g.cfg.StartDungeon)
		if err != nil {
			return StepResult{State: g.State(), Events: events, Err: err}
		}
		events = append(events, ev)
	}

	dx, dy := in.Axis()
	_, err := sim.Step(&g.world, dt, dx, dy, func(e entity.Enemy) error {
		g.kills++
		events = append(events, Event{Kind: EventEnemyDefeated, DungeonID: g.world.DungeonID, EnemyID: e.Kind})
		drop, ok, err := g.resolver.Drop(g.world.DungeonID, g.world.Player.ClassID)
		if err != nil {
			return err
		}
		if ok {
			events = append(events, Event{
				Kind:      EventLoot,
				DungeonID: g.world.DungeonID,
				ClassID:   g.world.Player.ClassID,
				EnemyID:   e.Kind,
				ItemID:    drop.ItemID,
				ItemName:  drop.ItemName,
				Boosted:   drop.Boosted,
			})
		}
		return nil
	})

	return StepResult{State: g.State(), Events: events, Err: err}
}

// SpinClass rerolls the player's class.
func (g *Game) SpinClass() (Event, error) {
	class, err := g.resolver.SpinClass()
	if err != nil {
		return Event{}, err
	}
	g.world.Player.ClassID = class.ID
	return Event{Kind: EventClassSpun, ClassID: class.ID, ClassName: class.Name}, nil
}

// AssignClass gives the player a known class chosen outside the game, such
// as a spin on the class screen.
func (g *Game) AssignClass(id string) (Event, error) {
	class, ok := g.tables.Classes[id]
	if !ok {
		return Event{}, fmt.Errorf("%w: %q", loot.ErrUnknownClass, id)
	}
	g.world.Player.ClassID = class.ID
	g.resolver.Announce("Class: " + class.Name)
	return Event{Kind: EventClassSpun, ClassID: class.ID, ClassName: class.Name}, nil
}

// EnterDungeon replaces the active enemies with a freshly spawned set.
func (g *Game) EnterDungeon(id string) (Event, error) {
	dungeon, ok := g.tables.Dungeons[id]
	if !ok {
		return Event{}, fmt.Errorf("%w: %q", loot.ErrUnknownDungeon, id)
	}
	enemies, err := g.resolver.Spawn(id, g.cfg.Spawn.Count)
	if err != nil {
		return Event{}, err
	}
	g.world.DungeonID = id
	g.world.Enemies = enemies
	g.resolver.Announce("Entered " + dungeon.Name)
	return Event{Kind: EventDungeonEntered, DungeonID: id, DungeonName: dungeon.Name, Spawned: len(enemies)}, nil
}

// State returns the current game state.
func (g *Game) State() State {
	return State{
		Tick:      g.tick,
		HP:        g.world.Player.HP,
		ClassID:   g.world.Player.ClassID,
		DungeonID: g.world.DungeonID,
		Enemies:   len(g.world.Enemies),
		Kills:     g.kills,
		SheetOpen: g.sheetOpen,
	}
}
