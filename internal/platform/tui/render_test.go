package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func TestPaintKeepsText(t *testing.T) {
	screen := core.NewScreen(12, 3)
	screen.DrawText(0, 0, "plain")
	screen.DrawTextColor(2, 1, "2048", core.ColorBrightWhite, core.ColorTile2048)
	screen.FillRect(core.NewRect(0, 2, 4, 1), core.Cell{Rune: '#', BG: core.ColorBoard})

	// A renderer writing to a non-terminal drops colors, leaving the text.
	p := NewPainter(lipgloss.NewRenderer(io.Discard))
	if got, want := p.Paint(screen), screen.String(); got != want {
		t.Errorf("Paint() = %q, want %q", got, want)
	}
}

func TestPainterCachesStyles(t *testing.T) {
	p := NewPainter(lipgloss.NewRenderer(io.Discard))

	p.styleFor(core.ColorDark, core.ColorTile2)
	p.styleFor(core.ColorDark, core.ColorTile2)
	p.styleFor(core.ColorBrightWhite, core.ColorTile2)

	if len(p.styles) != 2 {
		t.Errorf("cached %d styles, want 2", len(p.styles))
	}
}

func TestPaletteCoversTiles(t *testing.T) {
	for exp := 0; exp <= 13; exp++ {
		if _, ok := palette[core.TileColor(exp)]; !ok {
			t.Errorf("no palette entry for tile exponent %d", exp)
		}
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abc", 6, " abc"},
		{"toolong", 4, "toolong"},
		{"·", 3, " ·"},
	}

	for _, tt := range tests {
		if got := centerText(tt.text, tt.width); got != tt.want {
			t.Errorf("centerText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestMenuListsModesWithStats(t *testing.T) {
	store := testStore(t)
	if _, err := store.SaveScore(storage.ScoreRecord{GameID: "menu_test", RunID: "r1", Score: 300, MaxTile: 64}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	m := NewMenuModel(store, core.DefaultConfig())
	m.items = []MenuItem{
		{GameID: "menu_test", Title: "Menu Test", Description: "A mode for tests."},
		{GameID: "other", Title: "Other"},
	}
	stats, _ := store.GetAllGamesStats()
	m.items[0].Stats = stats["menu_test"]

	view := m.View()
	for _, want := range []string{"2 0 4 8", "> Menu Test", "A mode for tests.", "Best: 300", "Best tile: 64"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	if !strings.Contains(m.View(), "Not played yet") {
		t.Error("an unplayed mode should say so")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().GameID != "other" || cmd == nil {
		t.Errorf("Selected() = %+v, want other", m.Selected())
	}
}

func TestMenuTabOpensScoreboard(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestScoreboardRows(t *testing.T) {
	store := testStore(t)
	records := []storage.ScoreRecord{
		{GameID: "board_test", RunID: "a", Score: 100, MaxTile: 16},
		{GameID: "board_test", RunID: "b", Score: 2500, MaxTile: 2048, Won: true},
	}
	for _, rec := range records {
		if _, err := store.SaveScore(rec); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	m.loadScores("board_test")

	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	want := table.Row{"#1", "2500", "2048", "yes"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row 0 column %d = %q, want %q", i, rows[0][i], cell)
		}
	}
	if rows[1][3] != "" {
		t.Errorf("row 1 won column = %q, want empty", rows[1][3])
	}

	if got, want := m.summary(), "2 games  |  1 wins  |  avg 1300  |  best tile 2048"; got != want {
		t.Errorf("summary() = %q, want %q", got, want)
	}
	m.loadScores("unplayed")
	if m.summary() != "" {
		t.Error("an unplayed mode should have no summary")
	}
}

func TestScoreboardSwitchesModes(t *testing.T) {
	store := testStore(t)
	if _, err := store.SaveScore(storage.ScoreRecord{GameID: "mode_b", RunID: "r1", Score: 64, MaxTile: 16}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	m := NewScoreboardModel(store, 80, 24)
	m.modes = []registry.GameInfo{{ID: "mode_a", Title: "Mode A"}, {ID: "mode_b", Title: "Mode B"}}
	m.loadScores("mode_a")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.mode != 1 || len(m.table.Rows()) != 1 {
		t.Fatalf("after tab: mode %d with %d rows, want mode 1 with 1 row", m.mode, len(m.table.Rows()))
	}
	if !strings.Contains(m.View(), "HIGH SCORES - "+m.modes[1].Title) {
		t.Errorf("title should name the selected mode:\n%s", m.View())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	if m.mode != 0 || len(m.table.Rows()) != 0 {
		t.Errorf("after left: mode %d with %d rows, want mode 0 with none", m.mode, len(m.table.Rows()))
	}
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("an empty mode should say so")
	}
}
