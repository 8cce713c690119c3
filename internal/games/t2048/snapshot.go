package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateWon         GameStateType = "won"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Mode    string // "classic" or "endless"
	Phase   Phase
	Turns   int
	Score   int
	Grid    Grid
	Board   [Size][Size]int // tile values, top row first
	MaxTile int
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.showWin:
		state = StateWon
	case g.paused:
		state = StatePaused
	}

	grid := g.session.Grid()
	return Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Phase:   g.session.Phase(),
		Turns:   g.session.Turns(),
		Score:   g.session.Score(),
		Grid:    grid,
		Board:   grid.Values(),
		MaxTile: grid.MaxExp().Value(),
		State:   state,
	}
}
