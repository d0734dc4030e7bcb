package tui

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixel-dungeons/internal/data"
	"github.com/vovakirdan/pixel-dungeons/internal/game"
	"github.com/vovakirdan/pixel-dungeons/internal/weighted"
)

// ClassKeyMap defines the key bindings for the class sheet screen.
type ClassKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Spin key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ClassKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Spin, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ClassKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Spin}, {k.Back, k.Quit}}
}

// DefaultClassKeyMap returns default key bindings.
func DefaultClassKeyMap() ClassKeyMap {
	return ClassKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "next"),
		),
		Spin: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "spin class"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ClassesModel lists every class with its spin odds and shows the perks of
// the highlighted one. Spins draw from the real spin table, and the last one
// becomes the class of the next game.
type ClassesModel struct {
	tables    *data.Tables
	ids       []string // Row order
	odds      map[string]float64
	rng       weighted.Source
	table     table.Model
	help      help.Model
	keys      ClassKeyMap
	width     int
	height    int
	lastSpin  string
	spins     int
	err       error
	quitting  bool
	goingBack bool
}

// NewClassesModel creates the class sheet screen.
func NewClassesModel(tables *data.Tables, seed int64, width, height int) ClassesModel {
	m := ClassesModel{
		tables: tables,
		odds:   make(map[string]float64),
		rng:    rand.New(rand.NewSource(seed)),
		help:   help.New(),
		keys:   DefaultClassKeyMap(),
		width:  width,
		height: height,
	}

	total, err := weighted.Total(tables.SpinEntries())
	m.err = err
	for _, e := range tables.SpinTable {
		if _, seen := m.odds[e.ClassID]; !seen {
			m.ids = append(m.ids, e.ClassID)
		}
		if total > 0 {
			m.odds[e.ClassID] += e.Weight / total
		}
	}
	// Classes missing from the spin table can never be rolled but still get a row.
	for _, id := range tables.ClassIDs() {
		if _, ok := m.odds[id]; !ok {
			m.ids = append(m.ids, id)
			m.odds[id] = 0
		}
	}

	m.table = m.createTable()
	return m
}

func (m *ClassesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Class", Width: 12},
		{Title: "Odds", Width: 7},
		{Title: "Ability", Width: 14},
		{Title: "Cooldown", Width: 9},
		{Title: "Affinity", Width: 18},
	}

	rows := make([]table.Row, len(m.ids))
	for i, id := range m.ids {
		c := m.tables.Classes[id]
		ability := c.Ability
		if ability == "" {
			ability = "None"
		}
		rows[i] = table.Row{
			truncate(c.Name, 12),
			fmt.Sprintf("%.1f%%", m.odds[id]*100),
			truncate(ability, 14),
			game.FormatCooldown(c.CooldownSeconds),
			truncate(strings.Join(c.LootAffinityTags, ", "), 18),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, max(3, m.height-14))),
	)
	t.SetStyles(tableStyles())
	return t
}

// Init initializes the class sheet model.
func (m ClassesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the class sheet.
func (m ClassesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Spin):
			m.spin()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// spin draws a class from the spin table and moves the cursor onto it.
func (m *ClassesModel) spin() {
	id, err := weighted.Pick(m.rng, m.tables.SpinEntries())
	if err != nil {
		m.err = fmt.Errorf("spinning class: %w", err)
		return
	}
	if _, ok := m.tables.Classes[id]; !ok {
		m.err = fmt.Errorf("spinning class: unknown class %q", id)
		return
	}
	m.lastSpin = id
	m.spins++
	for i, rowID := range m.ids {
		if rowID == id {
			m.table.SetCursor(i)
			break
		}
	}
}

// Selected returns the identifier of the highlighted class.
func (m ClassesModel) Selected() string {
	if len(m.ids) == 0 {
		return ""
	}
	return m.ids[m.table.Cursor()]
}

// View renders the class sheet.
func (m ClassesModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("CLASSES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(m.table.View()))
	b.WriteString("\n")

	if id := m.Selected(); id != "" {
		c := m.tables.Classes[id]
		var card strings.Builder
		card.WriteString(titleStyle.Render(c.Name))
		card.WriteString("\nPerks:")
		if len(c.Perks) == 0 {
			card.WriteString("\n  None")
		}
		for _, perk := range c.Perks {
			card.WriteString("\n  " + perk)
		}
		b.WriteString(boxStyle.Render(card.String()))
		b.WriteString("\n")
	}

	if m.lastSpin != "" {
		spinStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		b.WriteString(spinStyle.Render(fmt.Sprintf("Spin #%d: %s (you play as this class next)", m.spins, m.tables.Classes[m.lastSpin].Name)))
		b.WriteString("\n")
	}
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(errStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Spun returns the identifier of the last spun class, or "" before any spin.
func (m ClassesModel) Spun() string {
	return m.lastSpin
}

// Err returns the table or selection error hit on this screen, if any.
func (m ClassesModel) Err() error {
	return m.err
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ClassesModel) IsGoingBack() bool {
	return m.goingBack
}

// RunClasses runs the class sheet screen.
// Returns the last spun class (empty if none) and true if the user wants to
// go back to the menu, false if quitting.
func RunClasses(tables *data.Tables, seed int64, width, height int) (classID string, goBack bool, err error) {
	p := tea.NewProgram(
		NewClassesModel(tables, seed, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := finalModel.(ClassesModel)
	if !ok {
		return "", false, nil
	}
	return m.Spun(), m.IsGoingBack(), m.Err()
}

// tableStyles returns the table styling shared by the history screens.
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}
