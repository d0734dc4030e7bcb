package game

import (
	"fmt"

	"github.com/vovakirdan/pixel-dungeons/internal/core"
)

// View is everything the presentation layer needs to draw a frame.
type View struct {
	Player  core.RectF
	Enemies []core.RectF
	HUD     [3]string // HP, class, dungeon
	Info    []string  // Oldest first
	Loot    []string  // Oldest first
}

// Snapshot returns the current output surface.
func (g *Game) Snapshot() View {
	p := g.world.Player

	enemies := make([]core.RectF, len(g.world.Enemies))
	for i, e := range g.world.Enemies {
		enemies[i] = e.Rect()
	}

	return View{
		Player:  p.Rect(),
		Enemies: enemies,
		HUD: [3]string{
			fmt.Sprintf("HP: %d", p.HP),
			"Class: " + orNone(p.ClassID),
			"Dungeon: " + orNone(g.world.DungeonID),
		},
		Info: g.resolver.InfoLog().Tail(g.cfg.Info.LogSize),
		Loot: g.resolver.LootLog().Tail(g.cfg.Loot.LogSize),
	}
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
