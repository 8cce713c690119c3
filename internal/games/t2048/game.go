// Package t2048 implements the 2048 sliding tile puzzle.
//
// The board rules live in board.go and are pure. Session drives one game
// through its animated turn phases, and Game adapts a Session to the
// platform's fixed-tick registry.Game interface.
package t2048

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic" // stop at 2048 and offer to continue
	ModeEndless Mode = "endless" // never interrupt, play until stuck
)

// Game implements the 2048 puzzle game.
type Game struct {
	mode    Mode
	session *Session
	tick    uint64
	tickDur time.Duration

	screenW int
	screenH int

	best     int
	paused   bool
	tooSmall bool
	showWin  bool
	gameOver bool
	recorded bool // score of the current game already reported
}

var (
	// configPath stores the custom config path set via CLI
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger handed to new sessions.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates a new classic mode 2048 game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewEndless creates a new endless mode 2048 game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("2048", func() registry.Game {
		return New()
	})
	registry.Register("2048_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// Description explains the mode in menus.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "No win screen: keep merging until the board locks up."
	}
	return "Reach the 2048 tile, then choose whether to keep going."
}

// Reset initializes the game with a fresh session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	gameCfg, err := config.LoadT2048(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		gameCfg = config.DefaultT2048Config()
	}

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.tickDur = time.Second / time.Duration(tickRate)

	timing := Timing{
		Slide:     gameCfg.SlideDuration(),
		Effect:    gameCfg.EffectDuration(),
		MergePeak: gameCfg.Animation.MergePeak,
	}

	g.session = NewSession(rand.New(rand.NewSource(cfg.Seed)), timing)
	g.session.SetLogger(logger.With("mode", g.mode))

	g.tick = 0
	g.paused = false
	g.showWin = false
	g.gameOver = false
	g.recorded = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new terminal size without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// SetBestScore sets the best recorded score shown in the HUD.
func (g *Game) SetBestScore(score int) {
	g.best = score
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// New Game works in every state, including mid-animation.
	if in.Has(core.ActionNewGame) || (in.Has(core.ActionRestart) && (g.gameOver || g.showWin)) {
		finished := g.abandon()
		return core.StepResult{State: g.State(), Finished: finished}
	}

	if g.tooSmall || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.showWin {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.showWin {
		if in.Has(core.ActionContinue) {
			g.showWin = false
		}
		return core.StepResult{State: g.State()}
	}

	dt := in.Elapsed
	if dt <= 0 {
		dt = g.tickDur
	}
	g.session.Dispatch(directions(in)...)
	g.session.Tick(dt)

	switch g.session.CheckOutcome() {
	case OutcomeWon:
		if g.mode == ModeClassic {
			g.showWin = true
		}
	case OutcomeLost:
		g.gameOver = true
		g.recorded = true
		state := g.State()
		return core.StepResult{State: state, Finished: &state}
	}

	g.trackBest()
	return core.StepResult{State: g.State()}
}

// directions converts the frame's move actions into a dispatch batch.
func directions(in core.InputFrame) []Direction {
	var dirs []Direction
	for _, m := range [...]struct {
		action core.Action
		dir    Direction
	}{
		{core.ActionUp, DirUp},
		{core.ActionDown, DirDown},
		{core.ActionLeft, DirLeft},
		{core.ActionRight, DirRight},
	} {
		if in.Has(m.action) {
			dirs = append(dirs, m.dir)
		}
	}
	return dirs
}

// abandon ends the current game and starts a new one. It returns the final
// state of the old game when it still needs recording.
func (g *Game) abandon() *core.GameState {
	var finished *core.GameState
	if !g.recorded && g.session.Score() > 0 {
		state := g.State()
		state.GameOver = true
		finished = &state
	}

	g.session.NewGame()
	g.paused = false
	g.showWin = false
	g.gameOver = false
	g.recorded = false
	return finished
}

func (g *Game) trackBest() {
	if s := g.session.Score(); s > g.best {
		g.best = s
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		MaxTile:  g.session.Grid().MaxExp().Value(),
		Won:      g.session.HasWon(),
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall || g.showWin,
	}
}

// Session exposes the underlying session, mainly for tests.
func (g *Game) Session() *Session {
	return g.session
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/drag: Move | N: New | P: Pause | Q: Quit"
}
