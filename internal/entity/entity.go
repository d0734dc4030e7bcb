// Package entity defines the player and enemy records moved and damaged by the simulation.
package entity

import (
	"math"

	"github.com/vovakirdan/pixel-dungeons/internal/config"
	"github.com/vovakirdan/pixel-dungeons/internal/core"
	"github.com/vovakirdan/pixel-dungeons/internal/data"
)

// Player is the controlled avatar. HP is never clamped and may go negative.
type Player struct {
	X, Y        float64 // Top-left corner in world units
	W, H        int
	Speed       float64 // World units per second
	HP          int
	Attack      int
	MagicDamage int    // Shown on the class sheet; not used in combat
	ClassID     string // Empty until a class is spun
}

// NewPlayer places a player at the centre of a viewW by viewH world using
// the configured template, then applies any stats sheet overrides.
func NewPlayer(tmpl config.PlayerConfig, viewW, viewH float64, stats data.PlayerStats) Player {
	p := Player{
		X:      viewW / 2,
		Y:      viewH / 2,
		W:      tmpl.Width,
		H:      tmpl.Height,
		Speed:  tmpl.Speed,
		HP:     tmpl.HP,
		Attack: tmpl.Attack,
	}
	if stats.Health != nil {
		p.HP = *stats.Health
	}
	if stats.Speed != nil {
		p.Speed = *stats.Speed
	}
	if stats.PhysicalDamage != nil {
		p.Attack = *stats.PhysicalDamage
	}
	if stats.MagicDamage != nil {
		p.MagicDamage = *stats.MagicDamage
	}
	return p
}

// Rect returns the player's bounding box. Positions are truncated to whole
// world units, so contact is decided on the integer grid.
func (p Player) Rect() core.RectF {
	return core.NewRectF(math.Trunc(p.X), math.Trunc(p.Y), float64(p.W), float64(p.H))
}

// HasClass reports whether a class has been assigned.
func (p Player) HasClass() bool {
	return p.ClassID != ""
}

// Enemy is an active opponent instantiated from an EnemyDef.
type Enemy struct {
	X, Y   float64
	W, H   int
	HP     int
	Attack int
	Kind   string // EnemyDef identifier
}

// NewEnemy instantiates def at (x, y) with a w by h bounding box.
func NewEnemy(def data.EnemyDef, x, y float64, w, h int) Enemy {
	return Enemy{
		X:      x,
		Y:      y,
		W:      w,
		H:      h,
		HP:     def.HP,
		Attack: def.Attack,
		Kind:   def.ID,
	}
}

// Rect returns the enemy's bounding box, truncated like Player.Rect.
func (e Enemy) Rect() core.RectF {
	return core.NewRectF(math.Trunc(e.X), math.Trunc(e.Y), float64(e.W), float64(e.H))
}

// Alive reports whether the enemy still has hit points.
func (e Enemy) Alive() bool {
	return e.HP > 0
}
