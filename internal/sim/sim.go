// Package sim advances the dungeon world by one frame: it moves the player,
// resolves contact combat and drops defeated enemies.
package sim

import (
	"math"

	"github.com/vovakirdan/pixel-dungeons/internal/core"
	"github.com/vovakirdan/pixel-dungeons/internal/entity"
)

// World is the mutable state owned by the simulation.
type World struct {
	Width, Height float64 // Viewport size in world units
	Player        entity.Player
	Enemies       []entity.Enemy
	DungeonID     string // Empty outside a dungeon
}

// KillFunc is invoked once for every enemy defeated during a step, before
// the enemy leaves the active set. A returned error is reported by Step
// without undoing the kill.
type KillFunc func(e entity.Enemy) error

// HitEvent records one damage exchange.
type HitEvent struct {
	Enemy       string // EnemyDef identifier
	DealtToFoe  int
	TakenByHero int
}

// StepStats describes what happened during a step.
type StepStats struct {
	Moved  bool
	Hits   []HitEvent
	Kills  []entity.Enemy
	Damage int // Total damage the player took
}

// Step integrates movement for dt seconds with the direction (dx, dy), each in
// {-1, 0, 1}, then resolves combat. The first error returned by onKill is
// returned after the frame completes.
func Step(w *World, dt float64, dx, dy int, onKill KillFunc) (StepStats, error) {
	var stats StepStats
	stats.Moved = Move(w, dt, dx, dy)
	err := ResolveCombat(w, onKill, &stats)
	return stats, err
}

// Move applies normalised directional input and keeps the player's box
// inside the viewport. It reports whether any input was given.
func Move(w *World, dt float64, dx, dy int) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	p := &w.Player

	vx, vy := float64(dx), float64(dy)
	if length := math.Hypot(vx, vy); length > 0 {
		vx /= length
		vy /= length
	} else {
		vx, vy = 0, 0
	}

	p.X += vx * p.Speed * dt
	p.Y += vy * p.Speed * dt

	p.X = core.ClampF(p.X, 0, w.Width-float64(p.W))
	p.Y = core.ClampF(p.Y, 0, w.Height-float64(p.H))
	return true
}

// ResolveCombat exchanges damage between the player and every overlapping
// enemy. Contact damages both sides on every call. Defeated enemies fire
// onKill and are removed; survivors keep their relative order.
func ResolveCombat(w *World, onKill KillFunc, stats *StepStats) error {
	var firstErr error
	box := w.Player.Rect()

	survivors := w.Enemies[:0]
	for _, e := range w.Enemies {
		if box.Intersects(e.Rect()) {
			e.HP -= w.Player.Attack
			w.Player.HP -= e.Attack
			if stats != nil {
				stats.Hits = append(stats.Hits, HitEvent{Enemy: e.Kind, DealtToFoe: w.Player.Attack, TakenByHero: e.Attack})
				stats.Damage += e.Attack
			}
			if !e.Alive() {
				if onKill != nil {
					if err := onKill(e); err != nil && firstErr == nil {
						firstErr = err
					}
				}
				if stats != nil {
					stats.Kills = append(stats.Kills, e)
				}
				continue
			}
		}
		survivors = append(survivors, e)
	}
	clear(w.Enemies[len(survivors):])
	w.Enemies = survivors
	return firstErr
}
