package t2048

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// Phase is the turn state of a session.
type Phase int

const (
	// PhaseIdle accepts move intents.
	PhaseIdle Phase = iota
	// PhaseSliding animates a committed move; the grid is still the pre-move grid.
	PhaseSliding
	// PhaseSettling plays merge and spawn effects on the already updated grid.
	PhaseSettling
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSliding:
		return "sliding"
	case PhaseSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// Outcome is the result of checking the board between turns.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

// Session owns one game: the live grid, score and turn phase.
// It is advanced by a single goroutine and is not safe for concurrent use.
type Session struct {
	rng    Rand
	timing Timing
	logger *log.Logger

	grid    Grid
	score   int
	phase   Phase
	pending *SlideResult
	sprites []Sprite
	hasWon  bool
	turns   int

	// Set at the Sliding -> Settling commit.
	mergeDests []int
	spawned    int
}

// NewSession creates a session and deals the opening grid.
func NewSession(rng Rand, timing Timing) *Session {
	s := &Session{
		rng:    rng,
		timing: timing,
		logger: log.New(io.Discard),
	}
	s.NewGame()
	return s
}

// SetLogger routes transition logs to l. A nil logger discards them.
func (s *Session) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	s.logger = l
}

// NewGame resets the session in place: fresh two-tile grid, zero score,
// idle phase, nothing pending and the win flag cleared.
func (s *Session) NewGame() {
	s.grid = WithTwoTiles(s.rng)
	s.score = 0
	s.phase = PhaseIdle
	s.pending = nil
	s.hasWon = false
	s.turns = 0
	s.mergeDests = nil
	s.spawned = -1
	s.rebuildSprites(nil)
	s.logger.Debug("new game", "tiles", s.grid.TileCount())
}

// Move starts a turn in direction d. It returns false, with no side effect,
// when the session is not idle or the slide would not change the grid.
func (s *Session) Move(d Direction) bool {
	if s.phase != PhaseIdle {
		return false
	}

	result := ComputeSlide(s.grid, d)
	if !result.Changed {
		return false
	}

	s.startSlide(result.Movements)
	s.pending = &result
	s.phase = PhaseSliding
	s.logger.Debug("slide started", "direction", d, "movements", len(result.Movements), "merges", len(result.MergeDestinations))
	return true
}

// Dispatch offers one tick's worth of move intents. Nothing is honored
// unless the session is idle; otherwise the first intent that changes the
// grid wins and the rest are dropped, not queued.
func (s *Session) Dispatch(dirs ...Direction) bool {
	if s.phase != PhaseIdle {
		return false
	}
	for _, d := range dirs {
		if s.Move(d) {
			return true
		}
	}
	return false
}

// Tick advances animation timers by dt and performs any phase transition
// whose timers have all completed.
func (s *Session) Tick(dt time.Duration) {
	if s.phase == PhaseSliding {
		s.advance(EffectSlide, dt)
		s.resolveSlide()
	}
	if s.phase == PhaseSettling {
		s.advanceEffects(dt)
	}
}

// startSlide attaches a slide animation to every sprite whose tile moves.
func (s *Session) startSlide(movements []SlideMovement) {
	for _, m := range movements {
		if m.From == m.To {
			continue
		}
		for i := range s.sprites {
			if s.sprites[i].Index == m.From {
				s.sprites[i].Effect = EffectSlide
				s.sprites[i].to = m.To
				s.sprites[i].timer = NewTimer(s.timing.Slide)
				break
			}
		}
	}
}

func (s *Session) advance(effect Effect, dt time.Duration) bool {
	done := true
	for i := range s.sprites {
		if s.sprites[i].Effect != effect {
			continue
		}
		s.sprites[i].timer.Tick(dt)
		if !s.sprites[i].timer.Finished() {
			done = false
		}
	}
	return done
}

// resolveSlide commits the pending result once every slide has landed.
func (s *Session) resolveSlide() {
	if s.phase != PhaseSliding {
		return
	}
	for _, sp := range s.sprites {
		if sp.Effect == EffectSlide && !sp.timer.Finished() {
			return
		}
	}
	if s.pending == nil {
		return
	}

	result := *s.pending
	s.pending = nil

	s.grid = result.NewGrid
	s.score += result.ScoreGained
	s.mergeDests = result.MergeDestinations
	s.rebuildSprites(result.MergeDestinations)

	s.spawned = -1
	if idx, ok := s.grid.PlaceRandomTile(s.rng); ok {
		s.spawned = idx
		s.sprites = append(s.sprites, Sprite{
			Index:  idx,
			Exp:    s.grid[idx],
			Effect: EffectSpawn,
			timer:  NewTimer(s.timing.Effect),
		})
	}

	s.turns++
	s.phase = PhaseSettling
	s.logger.Debug("slide committed",
		"score", s.score,
		"gained", result.ScoreGained,
		"merges", len(result.MergeDestinations),
		"spawned", s.spawned,
	)
}

func (s *Session) advanceEffects(dt time.Duration) {
	mergesDone := s.advance(EffectMerge, dt)
	spawnDone := s.advance(EffectSpawn, dt)
	if !mergesDone || !spawnDone {
		return
	}

	for i := range s.sprites {
		s.sprites[i].Effect = EffectNone
	}
	s.phase = PhaseIdle
	s.logger.Debug("turn settled", "turn", s.turns)
}

// rebuildSprites discards all sprites and creates one per occupied cell,
// pulsing those listed in merged.
func (s *Session) rebuildSprites(merged []int) {
	s.sprites = s.sprites[:0]
	for i, e := range s.grid {
		if e == Empty {
			continue
		}
		sp := Sprite{Index: i, Exp: e}
		if slices.Contains(merged, i) {
			sp.Effect = EffectMerge
			sp.timer = NewTimer(s.timing.Effect)
			sp.peak = s.timing.MergePeak
		}
		s.sprites = append(s.sprites, sp)
	}
}

// CheckOutcome reports a win or loss. It only looks at the board while
// idle, and a win is reported once per game.
func (s *Session) CheckOutcome() Outcome {
	if s.phase != PhaseIdle {
		return OutcomeNone
	}

	if !s.hasWon && s.grid.Contains(WinExp) {
		s.hasWon = true
		s.logger.Debug("win tile reached", "score", s.score)
		return OutcomeWon
	}

	if !s.grid.CanMove() {
		s.logger.Debug("no moves left", "score", s.score)
		return OutcomeLost
	}
	return OutcomeNone
}

// Grid returns a copy of the live grid.
func (s *Session) Grid() Grid {
	return s.grid
}

// Score returns the accumulated score.
func (s *Session) Score() int {
	return s.score
}

// Phase returns the current turn phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// HasWon reports whether the win tile has been reached this game.
func (s *Session) HasWon() bool {
	return s.hasWon
}

// Turns returns the number of committed moves this game.
func (s *Session) Turns() int {
	return s.turns
}

// Movements returns the in-flight slide movements, or nil unless sliding.
func (s *Session) Movements() []SlideMovement {
	if s.phase != PhaseSliding || s.pending == nil {
		return nil
	}
	return slices.Clone(s.pending.Movements)
}

// MergeDestinations returns the cells that received a merge at the last commit.
func (s *Session) MergeDestinations() []int {
	return slices.Clone(s.mergeDests)
}

// SpawnedIndex returns the cell of the tile spawned at the last commit.
func (s *Session) SpawnedIndex() (int, bool) {
	return s.spawned, s.spawned >= 0
}

// Sprites returns a copy of the sprites to draw.
func (s *Session) Sprites() []Sprite {
	return slices.Clone(s.sprites)
}
