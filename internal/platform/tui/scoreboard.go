package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	maxScores        = 100 // rows loaded per mode
	scoreboardChrome = 12  // title, tabs, borders, summary and help
)

var (
	scoreTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	modeTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = modeTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	scoreBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// scoreboardKeys are the scoreboard bindings shown in the help bar.
type scoreboardKeys struct {
	Up   key.Binding
	Down key.Binding
	Mode key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Mode, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Mode: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab/left/right", "switch mode"),
		),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the recorded games of one mode at a time.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	mode      int
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.GameStats // nil when the mode has no history
	table     table.Model
	help      help.Model
	keys      scoreboardKeys
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(width, height)
	if len(m.modes) > 0 {
		m.loadScores(m.modes[0].ID)
	}
	return m
}

// newScoreTable sizes the table to the terminal; only Date stretches.
func newScoreTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Tile", Width: 6},
		{Title: "Won", Width: 4},
		{Title: "Date", Width: 12},
	}
	if spare := width - 50; spare > 0 {
		columns[4].Width += min(spare, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-scoreboardChrome, 3)),
	)

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
	t.SetStyles(s)
	return t
}

// loadScores fills the table and summary for one mode.
func (m *ScoreboardModel) loadScores(gameID string) {
	m.scores, m.stats = nil, nil
	if m.store != nil {
		if scores, err := m.store.TopScores(gameID, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(gameID); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		won := ""
		if s.Won {
			won = "yes"
		}
		rows[i] = table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.MaxTile),
			won,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// switchMode moves to the next or previous mode, wrapping around.
func (m *ScoreboardModel) switchMode(msg tea.KeyMsg) {
	if len(m.modes) == 0 {
		return
	}
	step := 1
	switch msg.String() {
	case "shift+tab", "left", "h":
		step = len(m.modes) - 1
	}
	m.mode = (m.mode + step) % len(m.modes)
	m.loadScores(m.modes[m.mode].ID)
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Mode):
			m.switchMode(msg)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = newScoreTable(m.width, m.height)
		if len(m.modes) > 0 {
			m.loadScores(m.modes[m.mode].ID)
		}
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if len(m.modes) > 0 {
		title += " - " + m.modes[m.mode].Title
	}
	b.WriteString(scoreTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = modeTabStyle.Render(g.Title)
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(tabs, " ")))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.scores) == 0 {
		body = dimStyle.Italic(true).Padding(1, 4).
			Render("No scores recorded yet.\nFinish a game to set a high score!")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, scoreBoxStyle.Render(body)))
	b.WriteString("\n")

	if summary := m.summary(); summary != "" {
		b.WriteString("\n")
		b.WriteString(centerText(summary, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// summary describes the selected mode's history in one line.
func (m ScoreboardModel) summary() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d games  |  %d wins  |  avg %.0f  |  best tile %d",
		m.stats.GamesCount, m.stats.Wins, m.stats.AvgScore, m.stats.BestTile)
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
// It returns true when the player wants the menu back.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
