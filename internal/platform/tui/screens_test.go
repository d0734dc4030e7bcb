package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pixel-dungeons/internal/core"
	"github.com/vovakirdan/pixel-dungeons/internal/data"
	"github.com/vovakirdan/pixel-dungeons/internal/storage"
	"github.com/vovakirdan/pixel-dungeons/internal/weighted"
)

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), "seed 1")

	steps := []tea.KeyMsg{
		{Type: tea.KeyUp}, // Already at the top
		{Type: tea.KeyDown},
		{Type: tea.KeyDown},
		{Type: tea.KeyEnter},
	}
	var model tea.Model = m
	for _, msg := range steps {
		model, _ = model.Update(msg)
	}

	got := model.(MenuModel).Choice()
	if got != ChoiceLedger {
		t.Errorf("Choice() = %v, expected %v", got, ChoiceLedger)
	}
	if model.View() != "" {
		t.Error("View() should be empty once a choice is made")
	}
}

func TestMenuQuitAndResize(t *testing.T) {
	var model tea.Model = NewMenuModel(core.DefaultConfig(), "")
	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if cfg := model.(MenuModel).Config(); cfg.ScreenW != 100 || cfg.ScreenH != 30 {
		t.Errorf("Config() = %dx%d, expected 100x30", cfg.ScreenW, cfg.ScreenH)
	}

	view := model.View()
	for _, item := range DefaultMenuItems() {
		if !strings.Contains(view, item.Title) {
			t.Errorf("View() missing %q", item.Title)
		}
	}

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || model.(MenuModel).Choice() != ChoiceQuit {
		t.Error("esc should quit the menu")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Shield Bash", 20, "Shield Bash"},
		{"Sees enemies through walls", 10, "Sees enem…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestClassesModel(t *testing.T) {
	tables, err := data.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() failed: %v", err)
	}
	m := NewClassesModel(tables, 3, 100, 40)

	if len(m.ids) != len(tables.Classes) {
		t.Fatalf("rows = %d, expected %d", len(m.ids), len(tables.Classes))
	}
	var sum float64
	for _, p := range m.odds {
		sum += p
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("odds sum = %v, expected 1", sum)
	}
	if got := m.odds["warrior"]; got < 0.349 || got > 0.351 {
		t.Errorf("warrior odds = %v, expected 0.35", got)
	}

	var model tea.Model = m
	model, _ = model.Update(runeKey("r"))
	cm := model.(ClassesModel)
	if cm.lastSpin == "" || cm.spins != 1 {
		t.Fatalf("spin not recorded: %q / %d", cm.lastSpin, cm.spins)
	}
	if cm.Selected() != cm.lastSpin {
		t.Errorf("Selected() = %q, expected cursor on spun class %q", cm.Selected(), cm.lastSpin)
	}
	if cm.Spun() != cm.lastSpin {
		t.Errorf("Spun() = %q, expected %q", cm.Spun(), cm.lastSpin)
	}
	if !strings.Contains(cm.View(), "Spin #1") {
		t.Error("View() should report the spin")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(ClassesModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestClassesSpinCarriesIntoGame(t *testing.T) {
	tables, err := data.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() failed: %v", err)
	}

	var model tea.Model = NewClassesModel(tables, 11, 100, 40)
	model, _ = model.Update(runeKey("r"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	spun := model.(ClassesModel).Spun()
	if spun == "" {
		t.Fatal("Spun() is empty after a spin")
	}

	m, _ := newTestModelWith(t, func(o *Options) { o.StartClass = spun })
	if got := m.Summary().State.ClassID; got != spun {
		t.Errorf("State.ClassID = %q, expected %q before the first tick", got, spun)
	}
	if m.Err() != nil {
		t.Errorf("Err() = %v", m.Err())
	}

	m, _ = update(t, m, tick(m, 0))
	if got := m.Summary().State.ClassID; got != spun {
		t.Errorf("State.ClassID = %q after a tick, expected %q", got, spun)
	}
	if !strings.Contains(m.View(), "Class: "+spun) {
		t.Error("HUD should show the assigned class")
	}
}

func TestUnknownStartClassStopsSession(t *testing.T) {
	m, _ := newTestModelWith(t, func(o *Options) { o.StartClass = "bard" })
	if m.Err() == nil {
		t.Fatal("Err() = nil, expected an unknown class error")
	}
	if m.Init() == nil {
		t.Error("Init() should return a quit command")
	}
}

func TestClassesSelectionErrors(t *testing.T) {
	tables, err := data.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() failed: %v", err)
	}
	broken := *tables
	broken.SpinTable = nil

	m := NewClassesModel(&broken, 1, 100, 40)
	if !errors.Is(m.Err(), weighted.ErrNoEntries) {
		t.Errorf("Err() = %v, expected %v", m.Err(), weighted.ErrNoEntries)
	}

	var model tea.Model = m
	model, _ = model.Update(runeKey("r"))
	cm := model.(ClassesModel)
	if cm.Spun() != "" {
		t.Errorf("Spun() = %q, expected empty after a failed spin", cm.Spun())
	}
	if !errors.Is(cm.Err(), weighted.ErrNoEntries) {
		t.Errorf("Err() after spin = %v, expected %v", cm.Err(), weighted.ErrNoEntries)
	}
	if !strings.Contains(cm.View(), "Error:") {
		t.Error("View() should show the error")
	}
}

type fakeReader struct {
	err error
}

func (r fakeReader) RecentDrops(limit int) ([]storage.DropRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []storage.DropRecord{
		{ItemID: "gold_pouch", ItemName: "Pouch of Gold", EnemyID: "slime", CreatedAt: time.Unix(0, 0)},
		{ItemID: "rusty_sword", ItemName: "Rusty Sword", ClassID: "warrior", EnemyID: "bat", Boosted: true, CreatedAt: time.Unix(0, 0)},
	}, nil
}

func (r fakeReader) ItemCounts() ([]storage.ItemCount, error) {
	return []storage.ItemCount{{ItemID: "gold_pouch", ItemName: "Pouch of Gold", Count: 4}}, r.err
}

func (r fakeReader) RecentRuns(limit int) ([]storage.Run, error) {
	return []storage.Run{{ID: "0f1e2d3c-aaaa", Kills: 3, FinalHP: 41, Drops: 2}}, r.err
}

func TestLedgerViews(t *testing.T) {
	m := NewLedgerModel(fakeReader{}, 100, 30)

	if m.view != ViewDrops || len(m.rows) != 2 {
		t.Fatalf("initial view = %v with %d rows, expected drops with 2", m.view, len(m.rows))
	}
	if got := m.rows[0][2]; got != "None" {
		t.Errorf("classless drop shows %q, expected None", got)
	}
	if got := m.rows[1][1]; got != "Rusty Sword *" {
		t.Errorf("boosted drop shows %q, expected marker", got)
	}

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if lm := model.(LedgerModel); lm.view != ViewItems || lm.rows[0][1] != "4" {
		t.Errorf("after tab: view %v rows %v", lm.view, lm.rows)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if lm := model.(LedgerModel); lm.view != ViewDrops {
		t.Errorf("views should wrap around, got %v", lm.view)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	lm := model.(LedgerModel)
	if lm.view != ViewRuns || lm.rows[0][0] != "0f1e2d3c-…" {
		t.Errorf("shift+tab: view %v rows %v", lm.view, lm.rows)
	}
	if !strings.Contains(lm.View(), "Runs") {
		t.Error("View() should name the active view")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(LedgerModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestLedgerUnavailable(t *testing.T) {
	if v := NewLedgerModel(nil, 60, 30).View(); !strings.Contains(v, "Ledger unavailable") {
		t.Errorf("nil store view:\n%s", v)
	}

	m := NewLedgerModel(fakeReader{err: errors.New("locked")}, 60, 30)
	if v := m.View(); !strings.Contains(v, "locked") {
		t.Errorf("error view:\n%s", v)
	}
}
