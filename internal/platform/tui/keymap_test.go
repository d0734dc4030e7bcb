package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pixel-dungeons/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(150 * time.Millisecond)

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"w", runeKey("w"), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"a", runeKey("a"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"r", runeKey("r"), core.ActionSpin, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStartDungeon, false},
		{"c", runeKey("c"), core.ActionClassSheet, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit, true},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey() = (%v, %v), expected (%v, %v)", action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestHoldWindow(t *testing.T) {
	km := NewKeyMapper(150 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	frame := core.NewInputFrame()
	if km.Press(runeKey("d"), t0, &frame) {
		t.Fatal("Press(d) reported quit")
	}
	if frame.Has(core.ActionRight) {
		t.Error("movement must not be set directly by Press")
	}

	frame.Clear()
	km.Held(t0.Add(100*time.Millisecond), &frame)
	if !frame.Has(core.ActionRight) {
		t.Error("right should be held inside the window")
	}

	frame.Clear()
	km.Held(t0.Add(200*time.Millisecond), &frame)
	if frame.Has(core.ActionRight) {
		t.Error("right should be released after the window")
	}

	// Expired keys are forgotten, not just skipped.
	frame.Clear()
	km.Held(t0, &frame)
	if frame.Has(core.ActionRight) {
		t.Error("expired key came back")
	}
}

func TestKeyRepeatRefreshesHold(t *testing.T) {
	km := NewKeyMapper(150 * time.Millisecond)
	t0 := time.Unix(1000, 0)
	frame := core.NewInputFrame()

	km.Press(runeKey("w"), t0, &frame)
	km.Press(runeKey("w"), t0.Add(120*time.Millisecond), &frame)
	km.Held(t0.Add(250*time.Millisecond), &frame)
	if !frame.Has(core.ActionUp) {
		t.Error("repeated press should extend the hold window")
	}
}

func TestOppositeDirectionCancels(t *testing.T) {
	km := NewKeyMapper(150 * time.Millisecond)
	t0 := time.Unix(1000, 0)
	frame := core.NewInputFrame()

	km.Press(runeKey("w"), t0, &frame)
	km.Press(runeKey("d"), t0, &frame)
	km.Press(runeKey("s"), t0.Add(10*time.Millisecond), &frame)
	km.Held(t0.Add(20*time.Millisecond), &frame)

	if frame.Has(core.ActionUp) {
		t.Error("down should cancel up")
	}
	if !frame.Has(core.ActionDown) || !frame.Has(core.ActionRight) {
		t.Error("down and right should both be held")
	}
	if dx, dy := frame.Axis(); dx != 1 || dy != 1 {
		t.Errorf("Axis() = (%d, %d), expected (1, 1)", dx, dy)
	}
}

func TestTriggersAndRelease(t *testing.T) {
	km := NewKeyMapper(150 * time.Millisecond)
	t0 := time.Unix(1000, 0)
	frame := core.NewInputFrame()

	km.Press(runeKey("r"), t0, &frame)
	km.Press(tea.KeyMsg{Type: tea.KeyEnter}, t0, &frame)
	if !frame.Has(core.ActionSpin) || !frame.Has(core.ActionStartDungeon) {
		t.Error("triggers should be set on the frame immediately")
	}

	km.Press(runeKey("a"), t0, &frame)
	km.Release()
	frame.Clear()
	km.Held(t0, &frame)
	if frame.Has(core.ActionLeft) {
		t.Error("Release() should forget held keys")
	}

	if !km.Press(runeKey("q"), t0, &frame) {
		t.Error("Press(q) should report quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestFrameSeconds(t *testing.T) {
	t0 := time.Unix(1000, 0)

	tests := []struct {
		name string
		prev time.Time
		now  time.Time
		want float64
	}{
		{"first frame", time.Time{}, t0, 1.0 / 60},
		{"normal", t0, t0.Add(20 * time.Millisecond), 0.02},
		{"stall capped", t0, t0.Add(3 * time.Second), 0.25},
		{"clock went back", t0, t0.Add(-time.Second), 1.0 / 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameSeconds(tt.prev, tt.now, 60); got != tt.want {
				t.Errorf("frameSeconds() = %v, expected %v", got, tt.want)
			}
		})
	}
}
