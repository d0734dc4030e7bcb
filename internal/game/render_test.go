package game

import (
	"strings"
	"testing"

	"github.com/vovakirdan/pixel-dungeons/internal/core"
	"github.com/vovakirdan/pixel-dungeons/internal/entity"
)

func TestRenderHUD(t *testing.T) {
	g := newTestGame(t, 1)
	s := core.NewScreen(80, 24)
	g.Render(s)

	if !strings.Contains(s.Row(1), "HP: 50") {
		t.Errorf("row 1 = %q, expected the HP line", s.Row(1))
	}
	if !strings.Contains(s.Row(3), "Dungeon: None") {
		t.Errorf("row 3 = %q, expected the dungeon line", s.Row(3))
	}
	if !strings.Contains(s.Row(5), "Press R to spin class") {
		t.Errorf("row 5 = %q, expected the first info line", s.Row(5))
	}
	if s.Get(0, 0) != '┌' || s.Get(79, 23) != '┘' {
		t.Error("arena border missing")
	}
}

func TestRenderEntities(t *testing.T) {
	g := newTestGame(t, 1)
	w := g.World()
	w.Player.X, w.Player.Y = 900, 500
	w.Enemies = []entity.Enemy{{X: 600, Y: 300, W: 18, H: 18, HP: 5, Kind: "slime"}}

	s := core.NewScreen(80, 24)
	g.Render(s)

	var player, enemy bool
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := s.GetCell(x, y)
			if c.Rune == PlayerGlyph && c.Color == core.ColorGreen {
				player = true
			}
			if c.Rune == EnemyGlyph && c.Color == core.ColorRed {
				enemy = true
			}
		}
	}
	if !player || !enemy {
		t.Errorf("player drawn = %v, enemy drawn = %v", player, enemy)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, 1)
	s := core.NewScreen(20, 10)
	g.Render(s)

	if !strings.Contains(s.String(), "Window too small") {
		t.Errorf("expected a size warning, got:\n%s", s.String())
	}
}

func TestRenderClassSheet(t *testing.T) {
	g := newTestGame(t, 1)
	g.World().Player.ClassID = "warrior"
	g.Step(frame(core.ActionClassSheet), 0)

	s := core.NewScreen(80, 24)
	g.Render(s)
	if !strings.Contains(s.String(), "Shield Bash") {
		t.Errorf("class sheet should be drawn:\n%s", s.String())
	}
}

func TestProjectStaysInside(t *testing.T) {
	inner := core.NewRect(1, 1, 78, 22)
	tests := []core.RectF{
		core.NewRectF(0, 0, 20, 20),
		core.NewRectF(940, 520, 20, 20),
		core.NewRectF(959.9, 539.9, 0.1, 0.1),
	}
	for _, r := range tests {
		p := project(r, inner, 960.0/78, 540.0/22)
		if p.X < inner.X || p.Y < inner.Y || p.Right() > inner.Right() || p.Bottom() > inner.Bottom() || p.W < 1 || p.H < 1 {
			t.Errorf("project(%+v) = %+v, outside %+v", r, p, inner)
		}
	}
}
