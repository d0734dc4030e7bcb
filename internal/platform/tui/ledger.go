package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixel-dungeons/internal/storage"
)

// Ledger screen layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the view list sidebar
	sidebarWidth       = 20  // Width of the view list sidebar
	maxLedgerRows      = 100 // Max rows to load per view
)

// LedgerReader is the read side of the loot ledger.
// *storage.Store satisfies it.
type LedgerReader interface {
	RecentDrops(limit int) ([]storage.DropRecord, error)
	ItemCounts() ([]storage.ItemCount, error)
	RecentRuns(limit int) ([]storage.Run, error)
}

// LedgerView selects what the ledger table shows.
type LedgerView int

const (
	ViewDrops LedgerView = iota
	ViewItems
	ViewRuns
)

var ledgerViews = []LedgerView{ViewDrops, ViewItems, ViewRuns}

// Title returns the sidebar label of the view.
func (v LedgerView) Title() string {
	switch v {
	case ViewDrops:
		return "Recent drops"
	case ViewItems:
		return "Item counts"
	case ViewRuns:
		return "Runs"
	default:
		return "?"
	}
}

// LedgerKeyMap defines the key bindings for the ledger screen.
type LedgerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LedgerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LedgerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
	}
}

// DefaultLedgerKeyMap returns default key bindings.
func DefaultLedgerKeyMap() LedgerKeyMap {
	return LedgerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
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

// LedgerModel is the Bubble Tea model for the loot ledger screen.
type LedgerModel struct {
	store       LedgerReader
	view        LedgerView
	rows        []table.Row
	loadErr     error
	table       table.Model
	help        help.Model
	keys        LedgerKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewLedgerModel creates a new ledger model. store may be nil.
func NewLedgerModel(store LedgerReader, width, height int) LedgerModel {
	m := LedgerModel{
		store:       store,
		keys:        DefaultLedgerKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load(ViewDrops)
	return m
}

// columns returns the table columns for the current view.
func (m *LedgerModel) columns() []table.Column {
	switch m.view {
	case ViewItems:
		return []table.Column{
			{Title: "Item", Width: 20},
			{Title: "Drops", Width: 7},
			{Title: "Boosted", Width: 8},
		}
	case ViewRuns:
		return []table.Column{
			{Title: "Run", Width: 10},
			{Title: "Started", Width: 13},
			{Title: "Kills", Width: 6},
			{Title: "HP", Width: 5},
			{Title: "Drops", Width: 6},
		}
	default:
		return []table.Column{
			{Title: "When", Width: 13},
			{Title: "Item", Width: 18},
			{Title: "Class", Width: 9},
			{Title: "Enemy", Width: 10},
		}
	}
}

// createTable creates a new table for the current view and rows.
func (m *LedgerModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
	)
	t.SetStyles(tableStyles())
	return t
}

// load fetches the rows of view from the store.
func (m *LedgerModel) load(view LedgerView) {
	m.view = view
	m.rows = nil
	m.loadErr = nil

	if m.store != nil {
		m.rows, m.loadErr = m.fetchRows()
	}
	m.table = m.createTable()
	m.table.GotoTop()
}

func (m *LedgerModel) fetchRows() ([]table.Row, error) {
	switch m.view {
	case ViewItems:
		counts, err := m.store.ItemCounts()
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(counts))
		for i, c := range counts {
			rows[i] = table.Row{truncate(c.ItemName, 20), fmt.Sprintf("%d", c.Count), fmt.Sprintf("%d", c.Boosted)}
		}
		return rows, nil

	case ViewRuns:
		runs, err := m.store.RecentRuns(maxLedgerRows)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(runs))
		for i, r := range runs {
			rows[i] = table.Row{
				truncate(r.ID, 10),
				r.StartedAt.Format("Jan 02 15:04"),
				fmt.Sprintf("%d", r.Kills),
				fmt.Sprintf("%d", r.FinalHP),
				fmt.Sprintf("%d", r.Drops),
			}
		}
		return rows, nil

	default:
		drops, err := m.store.RecentDrops(maxLedgerRows)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(drops))
		for i, d := range drops {
			name := d.ItemName
			if d.Boosted {
				name += " *"
			}
			class := d.ClassID
			if class == "" {
				class = "None"
			}
			rows[i] = table.Row{d.CreatedAt.Format("Jan 02 15:04"), truncate(name, 18), class, d.EnemyID}
		}
		return rows, nil
	}
}

// Init initializes the ledger model.
func (m LedgerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the ledger.
func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextView):
			m.load(ledgerViews[(int(m.view)+1)%len(ledgerViews)])
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.load(ledgerViews[(int(m.view)+len(ledgerViews)-1)%len(ledgerViews)])
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the ledger.
func (m LedgerModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("LOOT LEDGER - "+m.view.Title(), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the ledger with a sidebar listing the views.
func (m LedgerModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Views\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for _, v := range ledgerViews {
		cursor := "  "
		style := lipgloss.NewStyle()
		if v == m.view {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + v.Title()))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the ledger with view tabs above the table.
func (m LedgerModel) renderNarrowLayout() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(ledgerViews))
	for i, v := range ledgerViews {
		if v == m.view {
			tabs[i] = activeTabStyle.Render(v.Title())
		} else {
			tabs[i] = tabStyle.Render(" " + v.Title() + " ")
		}
	}
	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.view.Title())
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or an explanatory message.
func (m LedgerModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Ledger unavailable.\nStart with a writable --db path.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read the ledger:\n" + m.loadErr.Error())
	case len(m.rows) == 0:
		return emptyStyle.Render("No loot recorded yet.\nDefeat an enemy inside a dungeon!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m LedgerModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LedgerModel) IsQuitting() bool {
	return m.quitting
}

// RunLedger runs the loot ledger screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunLedger(store LedgerReader, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewLedgerModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(LedgerModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
