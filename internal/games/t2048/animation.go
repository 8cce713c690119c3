package t2048

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Timing holds the presentation durations of one turn.
type Timing struct {
	Slide     time.Duration // tile travel during PhaseSliding
	Effect    time.Duration // merge pulse and spawn pop during PhaseSettling
	MergePeak float64       // scale at the middle of a merge pulse
}

// DefaultTiming returns the stock animation timing.
func DefaultTiming() Timing {
	return Timing{
		Slide:     150 * time.Millisecond,
		Effect:    100 * time.Millisecond,
		MergePeak: 1.2,
	}
}

// Timer is a one-shot countdown advanced by elapsed time.
type Timer struct {
	elapsed  time.Duration
	duration time.Duration
}

// NewTimer returns a timer that finishes after d.
func NewTimer(d time.Duration) Timer {
	return Timer{duration: d}
}

// Tick advances the timer; it never runs past its duration.
func (t *Timer) Tick(dt time.Duration) {
	t.elapsed += dt
	if t.elapsed > t.duration {
		t.elapsed = t.duration
	}
}

// Fraction returns progress in [0, 1]. A zero-length timer is always complete.
func (t Timer) Fraction() float64 {
	if t.duration <= 0 {
		return 1
	}
	return core.ClampF(float64(t.elapsed)/float64(t.duration), 0, 1)
}

// Finished reports whether the timer has run its full duration.
func (t Timer) Finished() bool {
	return t.elapsed >= t.duration
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func mergeScale(t, peak float64) float64 {
	return 1 + (peak-1)*math.Sin(math.Pi*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Effect is the animation a sprite is playing.
type Effect int

const (
	EffectNone Effect = iota
	EffectSlide
	EffectMerge
	EffectSpawn
)

// Sprite is one drawn tile. Sprites are rebuilt from the grid on every
// commit, so they carry no identity across turns.
type Sprite struct {
	Index  int // cell the tile occupies on the committed grid
	Exp    Exp
	Effect Effect

	to    int // slide destination
	timer Timer
	peak  float64
}

// Position returns the sprite's location in board cells.
func (s Sprite) Position() (x, y float64) {
	fx, fy := Coords(s.Index)
	if s.Effect != EffectSlide {
		return float64(fx), float64(fy)
	}

	tx, ty := Coords(s.to)
	t := easeOutCubic(s.timer.Fraction())
	return lerp(float64(fx), float64(tx), t), lerp(float64(fy), float64(ty), t)
}

// Scale returns the sprite's draw scale, 1 at rest.
func (s Sprite) Scale() float64 {
	switch s.Effect {
	case EffectSpawn:
		return easeOutCubic(s.timer.Fraction())
	case EffectMerge:
		return mergeScale(s.timer.Fraction(), s.peak)
	default:
		return 1
	}
}
