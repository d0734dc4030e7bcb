package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pixel-dungeons/internal/core"
)

// Minimum screen size for the HUD and logs to fit inside the arena border.
const (
	MinScreenW = 40
	MinScreenH = 18
)

// Glyphs used to draw the arena.
const (
	PlayerGlyph = '█'
	EnemyGlyph  = '▓'
	FloorGlyph  = '·'
)

// HUD block rows inside the arena.
const (
	hudRow  = 1
	infoRow = 5
	lootRow = 10
)

// Render draws the arena, the HUD and, when open, the class sheet.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH), core.ColorGray)
		return
	}

	arena := core.NewRect(0, 0, dst.Width(), dst.Height())
	inner := core.NewRect(1, 1, arena.W-2, arena.H-2)
	dst.DrawBox(arena, core.ColorGray)
	g.renderFloor(dst, inner)

	view := g.Snapshot()
	cellW := g.world.Width / float64(inner.W)
	cellH := g.world.Height / float64(inner.H)
	for _, e := range view.Enemies {
		dst.DrawRect(project(e, inner, cellW, cellH), EnemyGlyph, core.ColorRed)
	}
	dst.DrawRect(project(view.Player, inner, cellW, cellH), PlayerGlyph, core.ColorGreen)

	renderLines(dst, inner, hudRow, view.HUD[:], core.ColorWhite)
	renderLines(dst, inner, infoRow, view.Info, core.ColorCyan)
	renderLines(dst, inner, lootRow, view.Loot, core.ColorBrightYellow)

	if g.sheetOpen {
		g.renderClassSheet(dst)
	}
}

func (g *Game) renderFloor(dst *core.Screen, inner core.Rect) {
	for y := inner.Y; y < inner.Bottom(); y += 2 {
		for x := inner.X + (y/2)%2*2; x < inner.Right(); x += 4 {
			dst.SetColored(x, y, FloorGlyph, core.ColorFloor)
		}
	}
}

// project maps a world box onto the cells of inner, clipped to it.
func project(r core.RectF, inner core.Rect, cellW, cellH float64) core.Rect {
	c := r.Cells(cellW, cellH)
	x0 := core.Clamp(inner.X+c.X, inner.X, inner.Right()-1)
	y0 := core.Clamp(inner.Y+c.Y, inner.Y, inner.Bottom()-1)
	x1 := core.Clamp(inner.X+c.Right(), x0+1, inner.Right())
	y1 := core.Clamp(inner.Y+c.Bottom(), y0+1, inner.Bottom())
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func renderLines(dst *core.Screen, inner core.Rect, row int, lines []string, c core.Color) {
	for i, line := range lines {
		dst.DrawTextColored(inner.X+1, inner.Y+row-1+i, line, c)
	}
}

// renderClassSheet draws the class card over the arena.
func (g *Game) renderClassSheet(dst *core.Screen) {
	lines := g.ClassSheet()

	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, len(l))
	}
	boxW = core.Min(boxW+4, dst.Width())
	boxH := core.Min(len(lines)+2, dst.Height())
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorMagenta)
	for i, l := range lines {
		if i >= boxH-2 {
			break
		}
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorBrightYellow
		}
		dst.DrawTextColored(box.X+2, box.Y+1+i, l, c)
	}
}

// ClassSheet describes the player's class and stats, one line per row.
func (g *Game) ClassSheet() []string {
	p := g.world.Player
	class, ok := g.tables.Classes[p.ClassID]
	if !ok {
		return []string{
			"No class yet",
			"",
			"Press R to spin a class",
			"Press C to close",
		}
	}

	lines := []string{class.Name, ""}
	lines = append(lines, "Perks:")
	if len(class.Perks) == 0 {
		lines = append(lines, "  None")
	}
	for _, perk := range class.Perks {
		lines = append(lines, "  "+perk)
	}
	lines = append(lines, "", "Ability: "+orNone(class.Ability), "Cooldown: "+FormatCooldown(class.CooldownSeconds))
	if len(class.LootAffinityTags) > 0 {
		lines = append(lines, "Affinity: "+strings.Join(class.LootAffinityTags, ", "))
	}
	lines = append(lines, "",
		fmt.Sprintf("HP %d  ATK %d  MAG %d  SPD %g", p.HP, p.Attack, p.MagicDamage, p.Speed),
		"Press C to close",
	)
	return lines
}

// FormatCooldown renders an optional ability cooldown.
func FormatCooldown(seconds *float64) string {
	if seconds == nil {
		return "None"
	}
	return fmt.Sprintf("%gs", *seconds)
}
