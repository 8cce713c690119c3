package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// scriptedGame finishes with its current state when it sees finishOn.
type scriptedGame struct {
	id       string
	state    core.GameState
	finishOn core.Action
	best     int
	resets   int
	width    int
	frames   []core.InputFrame
}

func (g *scriptedGame) ID() string    { return g.id }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.width = cfg.ScreenW
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	kept := core.InputFrame{Elapsed: in.Elapsed}
	for a, on := range in.Actions {
		if on {
			kept.Set(a)
		}
	}
	g.frames = append(g.frames, kept)
	res := core.StepResult{State: g.state}
	if in.Has(g.finishOn) {
		finished := g.state
		res.Finished = &finished
	}
	return res
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState { return g.state }
func (g *scriptedGame) Resize(w, h int)       { g.width = w }
func (g *scriptedGame) SetBestScore(s int)    { g.best = s }

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testModel(game *scriptedGame, store *storage.Store, opts Options) GameModel {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	opts.Renderer = lipgloss.NewRenderer(io.Discard)
	m := NewGameModel(game, store, cfg, opts)
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestGameModelRecordsFinishedGames(t *testing.T) {
	store := testStore(t)
	game := &scriptedGame{
		id:       "2048",
		state:    core.GameState{Score: 128, MaxTile: 16, GameOver: true},
		finishOn: core.ActionRestart,
	}
	m := testModel(game, store, Options{})

	firstRun := m.RunID()
	m, _ = update(t, m, runeKey("r"))
	m, _ = update(t, m, TickMsg{})

	if m.RunID() == firstRun {
		t.Error("a recorded game should start a new run")
	}

	game.state.Won = true
	m, _ = update(t, m, runeKey("r"))
	m, _ = update(t, m, TickMsg{})

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2", len(scores))
	}
	if scores[0].MaxTile != 16 || scores[0].RunID == scores[1].RunID {
		t.Errorf("scores = %+v", scores)
	}
	if !scores[0].Won && !scores[1].Won {
		t.Error("the second game should be recorded as a win")
	}
}

func TestGameModelSkipsZeroScores(t *testing.T) {
	store := testStore(t)
	game := &scriptedGame{id: "2048", state: core.GameState{GameOver: true}, finishOn: core.ActionRestart}
	m := testModel(game, store, Options{})

	m, _ = update(t, m, runeKey("r"))
	update(t, m, TickMsg{})

	if high, _ := store.HighScore("2048"); high != 0 {
		t.Errorf("HighScore = %d, want nothing recorded", high)
	}
}

func TestGameModelLoadsBestScore(t *testing.T) {
	store := testStore(t)
	if _, err := store.SaveScore(storage.ScoreRecord{GameID: "2048", RunID: "old", Score: 512}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	game := &scriptedGame{id: "2048"}
	testModel(game, store, Options{})

	if game.best != 512 {
		t.Errorf("best = %d, want 512", game.best)
	}
	if game.resets != 1 {
		t.Errorf("Reset called %d times, want 1", game.resets)
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	game := &scriptedGame{id: "2048"}
	m := testModel(game, nil, Options{})

	update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if game.width != 120 {
		t.Errorf("width = %d, want 120", game.width)
	}
	if game.resets != 1 {
		t.Error("a resizable game must not be reset on resize")
	}
}

func TestGameModelOneMovePerTick(t *testing.T) {
	game := &scriptedGame{id: "2048"}
	m := testModel(game, nil, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, TickMsg{})
	update(t, m, TickMsg{})

	if len(game.frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(game.frames))
	}
	first := game.frames[0]
	if !first.Has(core.ActionLeft) || first.Has(core.ActionUp) {
		t.Errorf("first frame = %v, want only Left", first.Actions)
	}
	if game.frames[1].HasMove() {
		t.Error("input must be cleared after each tick")
	}
}

func TestGameModelPassesElapsedTime(t *testing.T) {
	game := &scriptedGame{id: "2048"}
	m := testModel(game, nil, Options{})

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ticks := []time.Time{
		start,
		start.Add(40 * time.Millisecond),
		start.Add(140 * time.Millisecond),
		start.Add(2 * time.Second),
	}
	for _, at := range ticks {
		m, _ = update(t, m, TickMsg(at))
	}

	want := []time.Duration{0, 40 * time.Millisecond, 100 * time.Millisecond, maxTickElapsed}
	for i, frame := range game.frames {
		if frame.Elapsed != want[i] {
			t.Errorf("tick %d: Elapsed = %v, want %v", i, frame.Elapsed, want[i])
		}
	}
	if m.inputFrame.Elapsed != 0 {
		t.Error("elapsed time must be cleared after each tick")
	}
}

func TestTickElapsed(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		prev, now time.Time
		want      time.Duration
	}{
		{"first tick", time.Time{}, now, 0},
		{"unknown now", now, time.Time{}, 0},
		{"normal", now, now.Add(16 * time.Millisecond), 16 * time.Millisecond},
		{"stalled", now, now.Add(time.Minute), maxTickElapsed},
		{"clock went back", now, now.Add(-time.Second), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tickElapsed(tt.prev, tt.now); got != tt.want {
				t.Errorf("tickElapsed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGameModelDragMoves(t *testing.T) {
	game := &scriptedGame{id: "2048"}
	m := testModel(game, nil, Options{DragThreshold: 2})

	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 1, Action: tea.MouseActionRelease})
	update(t, m, TickMsg{})

	if !game.frames[0].Has(core.ActionUp) {
		t.Errorf("frame = %v, want Up from the drag", game.frames[0].Actions)
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	tests := []struct {
		name      string
		allowBack bool
		state     core.GameState
		wantBack  bool
		recorded  bool
	}{
		{"paused", true, core.GameState{Score: 40, Paused: true}, true, true},
		{"game over", true, core.GameState{Score: 40, GameOver: true}, true, false},
		{"playing", true, core.GameState{Score: 40}, false, false},
		{"not allowed", false, core.GameState{Score: 40, Paused: true}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testStore(t)
			game := &scriptedGame{id: "2048", state: tt.state}
			m := testModel(game, store, Options{AllowBack: tt.allowBack})
			m, _ = update(t, m, TickMsg{})

			m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
			if m.BackToMenu() != tt.wantBack {
				t.Errorf("BackToMenu = %v, want %v", m.BackToMenu(), tt.wantBack)
			}
			if tt.wantBack && cmd == nil {
				t.Error("going back should end the program")
			}

			high, _ := store.HighScore("2048")
			if (high > 0) != tt.recorded {
				t.Errorf("recorded = %v, want %v", high > 0, tt.recorded)
			}
		})
	}
}

func TestGameModelQuitRecordsGameInProgress(t *testing.T) {
	store := testStore(t)
	game := &scriptedGame{id: "2048_endless", state: core.GameState{Score: 96, MaxTile: 32}}
	m := testModel(game, store, Options{})

	m, cmd := update(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}

	scores, _ := store.TopScores("2048_endless", 10)
	if len(scores) != 1 || scores[0].Score != 96 {
		t.Errorf("scores = %+v, want the game in progress", scores)
	}
}

func TestGameModelResizeCancelsDrag(t *testing.T) {
	game := &scriptedGame{id: "2048"}
	m := testModel(game, nil, Options{DragThreshold: 2})

	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 5, Action: tea.MouseActionRelease})
	update(t, m, TickMsg{})

	if game.frames[0].HasMove() {
		t.Errorf("frame = %v, a drag spanning a resize must not move", game.frames[0].Actions)
	}
}

func TestGameModelView(t *testing.T) {
	game := &scriptedGame{id: "2048"}
	m := testModel(game, nil, Options{})

	if !strings.Contains(m.View(), "scripted") {
		t.Errorf("View() = %q, want the game render", m.View())
	}
}

func TestSessionModelScoreboardRoundTrip(t *testing.T) {
	store := testStore(t)
	m := NewSessionModel(store, core.DefaultConfig(), Options{AllowBack: true})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(SessionModel)
	if m.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Errorf("View() should show the scoreboard:\n%s", m.View())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	if m.scoreboard != nil || m.quitting {
		t.Fatal("esc should return to the menu")
	}
	if m.menu.WantsScoreboard() {
		t.Error("the menu should be fresh after returning")
	}

	next, cmd := m.Update(runeKey("q"))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}
