package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-dungeons/internal/core"
	"github.com/vovakirdan/pixel-dungeons/internal/game"
	"github.com/vovakirdan/pixel-dungeons/internal/storage"
)

// Ledger records the history of a play session.
// *storage.Store satisfies it.
type Ledger interface {
	StartRun(seed int64) (string, error)
	RecordDrop(d storage.DropRecord) (int64, error)
	FinishRun(runID string, kills, finalHP int) error
}

// Options configures a play session.
type Options struct {
	Runtime       core.RuntimeConfig
	HoldWindow    time.Duration // How long a movement key stays held after a press
	Ledger        Ledger        // Optional
	Logger        *log.Logger   // Optional; discards when nil
	ScreenshotDir string        // Defaults to ~/.pixel-dungeons/screenshots
	StartClass    string        // Class the player starts with; empty means none
}

// Summary describes a finished session.
type Summary struct {
	RunID string
	Seed  int64
	State game.State
}

// Model is the Bubble Tea model for a play session.
type Model struct {
	game     *game.Game
	screen   *core.Screen
	opts     Options
	logger   *log.Logger
	keys     *KeyMapper
	help     help.Model
	input    core.InputFrame
	clock    func() time.Time
	lastTick time.Time
	runID    string
	state    game.State
	err      error
	quitting bool
}

// helpHeight is the number of rows reserved below the arena.
const helpHeight = 1

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(g *game.Game, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}

	g.Reset(opts.Runtime)

	m := Model{
		game:   g,
		screen: core.NewScreen(opts.Runtime.ScreenW, max(1, opts.Runtime.ScreenH-helpHeight)),
		opts:   opts,
		logger: logger,
		keys:   NewKeyMapper(opts.HoldWindow),
		help:   help.New(),
		input:  core.NewInputFrame(),
		clock:  time.Now,
	}
	if opts.StartClass != "" {
		ev, err := g.AssignClass(opts.StartClass)
		if err != nil {
			m.err = err
		} else {
			m.handleEvent(ev)
		}
	}
	m.state = g.State()
	return m
}

// Init starts the tick loop. The ledger run opens on the first tick
// (value receiver limitation). A session that failed to set up quits at once.
func (m Model) Init() tea.Cmd {
	if m.err != nil {
		m.logger.Error("session setup failed", "error", m.err)
		return tea.Quit
	}
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keys.Press(msg, m.clock(), &m.input) {
		return m.quit()
	}
	return m, nil
}

// handleResize processes window resize events. The world keeps its own
// coordinates, so only the projection changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-helpHeight))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one simulation frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.runID == "" && m.opts.Ledger != nil {
		m.startRun()
	}

	dt := frameSeconds(m.lastTick, now, m.opts.Runtime.TickRate)
	m.lastTick = now

	m.keys.Held(m.clock(), &m.input)
	result := m.game.Step(m.input, dt)
	m.input.Clear()
	m.state = result.State

	for _, ev := range result.Events {
		m.handleEvent(ev)
	}

	if result.Err != nil {
		m.logger.Error("simulation failed", "error", result.Err)
		m.err = result.Err
		return m.quit()
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// handleEvent logs a game event and records drops in the ledger.
func (m *Model) handleEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventClassSpun:
		m.logger.Info("class spun", "class", ev.ClassID)
	case game.EventDungeonEntered:
		m.logger.Info("dungeon entered", "dungeon", ev.DungeonID, "enemies", ev.Spawned)
	case game.EventEnemyDefeated:
		m.logger.Debug("enemy defeated", "enemy", ev.EnemyID, "hp", m.state.HP)
	case game.EventLoot:
		m.logger.Info("loot", "item", ev.ItemID, "class", ev.ClassID, "boosted", ev.Boosted)
		if m.opts.Ledger == nil || m.runID == "" {
			return
		}
		_, err := m.opts.Ledger.RecordDrop(storage.DropRecord{
			RunID:     m.runID,
			DungeonID: ev.DungeonID,
			ClassID:   ev.ClassID,
			EnemyID:   ev.EnemyID,
			ItemID:    ev.ItemID,
			ItemName:  ev.ItemName,
			Boosted:   ev.Boosted,
		})
		if err != nil {
			m.logger.Warn("could not record drop", "error", err)
		}
	}
}

func (m *Model) startRun() {
	id, err := m.opts.Ledger.StartRun(m.game.Seed())
	if err != nil {
		m.logger.Warn("could not start ledger run", "error", err)
		m.opts.Ledger = nil
		return
	}
	m.runID = id
	m.logger.Info("run started", "run", id, "seed", m.game.Seed())
}

// quit closes the ledger run and stops the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.keys.Release()
	if m.opts.Ledger != nil && m.runID != "" {
		if err := m.opts.Ledger.FinishRun(m.runID, m.state.Kills, m.state.HP); err != nil {
			m.logger.Warn("could not finish ledger run", "error", err)
		}
	}
	m.logger.Info("run ended", "run", m.runID, "kills", m.state.Kills, "hp", m.state.HP)
	return m, tea.Quit
}

// saveScreenshot saves the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".pixel-dungeons", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	filename := fmt.Sprintf("dungeon_%s.txt", m.clock().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Err returns the error that stopped the session, if any.
func (m Model) Err() error {
	return m.err
}

// Summary returns the session outcome.
func (m Model) Summary() Summary {
	return Summary{RunID: m.runID, Seed: m.game.Seed(), State: m.state}
}

// Run starts the Bubble Tea program for g and blocks until the player quits.
func Run(g *game.Game, opts Options) (Summary, error) {
	model := NewModel(g, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return model.Summary(), err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return model.Summary(), nil
	}
	return m.Summary(), m.Err()
}
