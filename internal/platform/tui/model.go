package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// maxTickElapsed caps the time one tick may advance animations, so a
// stalled terminal does not skip a whole turn's effects.
const maxTickElapsed = 250 * time.Millisecond

// Options tune a GameModel.
type Options struct {
	// DragThreshold is the minimum mouse drag length for a move.
	DragThreshold int
	// Logger receives score persistence errors. Nil discards them.
	Logger *log.Logger
	// Renderer styles the output. Nil uses the lipgloss default.
	Renderer *lipgloss.Renderer
	// AllowBack lets B/Esc leave the game while it is paused or over.
	AllowBack bool
}

// GameModel is the Bubble Tea model that runs one game mode.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	drag       *DragTracker
	painter    *Painter
	logger     *log.Logger
	runID      string
	lastTick   time.Time
	allowBack  bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		drag:       NewDragTracker(opts.DragThreshold),
		painter:    NewPainter(opts.Renderer),
		logger:     logger.With("game", game.ID()),
		runID:      uuid.NewString(),
		allowBack:  opts.AllowBack,
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.loadBestScore()

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// loadBestScore hands the stored high score to games that display it.
func (m GameModel) loadBestScore() {
	setter, ok := m.game.(registry.BestScoreSetter)
	if !ok || m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.logger.Warn("could not load high score", "error", err)
		return
	}
	setter.SetBestScore(best)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action := m.drag.Handle(msg); action != core.ActionNone {
			m.inputFrame.SetMove(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.recordUnfinished()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu (B or Esc when game over or paused)
	if action == core.ActionBack {
		if m.allowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.recordUnfinished()
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	applyAction(&m.inputFrame, action)
	return m, nil
}

// handleResize keeps the game running at the new size when it supports that.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.drag.Cancel()

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	m.gameState = m.game.State()

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.inputFrame.Elapsed = tickElapsed(m.lastTick, now)
	if !now.IsZero() {
		m.lastTick = now
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Finished != nil {
		m.record(*result.Finished)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// tickElapsed returns the real time between two ticks, capped at
// maxTickElapsed. It is zero when either time is unknown or the clock
// went backwards.
func tickElapsed(prev, now time.Time) time.Duration {
	if prev.IsZero() || now.IsZero() {
		return 0
	}
	return min(max(now.Sub(prev), 0), maxTickElapsed)
}

// record stores a finished game and starts a new run.
func (m *GameModel) record(state core.GameState) {
	defer func() { m.runID = uuid.NewString() }()

	if m.store == nil || state.Score <= 0 {
		return
	}

	rec := storage.ScoreRecord{
		GameID:  m.game.ID(),
		RunID:   m.runID,
		Score:   state.Score,
		MaxTile: state.MaxTile,
		Won:     state.Won,
	}
	if _, err := m.store.SaveScore(rec); err != nil {
		m.logger.Error("could not save score", "run", m.runID, "error", err)
		return
	}
	m.logger.Debug("score saved", "run", m.runID, "score", state.Score, "max_tile", state.MaxTile)
}

// recordUnfinished stores the game being left, unless it was already recorded.
func (m *GameModel) recordUnfinished() {
	state := m.game.State()
	if state.GameOver {
		return
	}
	m.record(state)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	// Render current state
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".tui2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return m.painter.Paint(m.screen)
}

// RunID returns the identifier the current game will be recorded under.
func (m GameModel) RunID() string {
	return m.runID
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game.
// Returns true when the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse drags become moves
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
