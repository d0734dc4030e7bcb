package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pixel-dungeons/internal/core"
)

// GameKeyMap defines the key bindings used while playing.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Spin       key.Binding
	Start      key.Binding
	Sheet      key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Spin, k.Start, k.Sheet, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Spin, k.Start, k.Sheet},
		{k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("wasd/arrows", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/down", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/left", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/right", "move right"),
		),
		Spin: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "spin class"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start dungeon"),
		),
		Sheet: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "class sheet"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc/q", "quit"),
		),
	}
}

// opposite pairs each movement action with the one it cancels.
var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

// KeyMapper translates Bubble Tea key messages to game actions.
// Terminals report presses but not releases, so a movement key counts as
// held for a short window after each press; key repeat keeps it alive.
type KeyMapper struct {
	keys GameKeyMap
	hold time.Duration
	held map[core.Action]time.Time // Last press per movement action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper(hold time.Duration) *KeyMapper {
	return &KeyMapper{
		keys: DefaultGameKeyMap(),
		hold: hold,
		held: make(map[core.Action]time.Time),
	}
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.Up):
		return core.ActionUp, false
	case key.Matches(msg, km.keys.Down):
		return core.ActionDown, false
	case key.Matches(msg, km.keys.Left):
		return core.ActionLeft, false
	case key.Matches(msg, km.keys.Right):
		return core.ActionRight, false
	case key.Matches(msg, km.keys.Spin):
		return core.ActionSpin, false
	case key.Matches(msg, km.keys.Start):
		return core.ActionStartDungeon, false
	case key.Matches(msg, km.keys.Sheet):
		return core.ActionClassSheet, false
	}
	return core.ActionNone, false
}

// Press records a key press at now. Movement keys start or refresh their
// hold window and release the opposite direction; triggers are set on frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if isQuit {
		return true
	}
	if other, ok := opposite[action]; ok {
		km.held[action] = now
		delete(km.held, other)
		return false
	}
	if action != core.ActionNone {
		frame.Set(action)
	}
	return false
}

// Held sets every movement action still inside its hold window on frame and
// forgets the expired ones.
func (km *KeyMapper) Held(now time.Time, frame *core.InputFrame) {
	for action, at := range km.held {
		if now.Sub(at) > km.hold {
			delete(km.held, action)
			continue
		}
		frame.Set(action)
	}
}

// Release forgets every held movement key.
func (km *KeyMapper) Release() {
	clear(km.held)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
