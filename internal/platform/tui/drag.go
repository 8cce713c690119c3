package tui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// DefaultDragThreshold is the minimum drag length, in rows, that counts as a move.
const DefaultDragThreshold = 3

// DragTracker turns a left-button press and release into a directional move.
type DragTracker struct {
	threshold int
	active    bool
	startX    int
	startY    int
}

// NewDragTracker creates a tracker. A non-positive threshold uses the default.
func NewDragTracker(threshold int) *DragTracker {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &DragTracker{threshold: threshold}
}

// Handle consumes a mouse message and returns the move it completes, if any.
func (d *DragTracker) Handle(msg tea.MouseMsg) core.Action {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return core.ActionNone
		}
		d.active = true
		d.startX, d.startY = msg.X, msg.Y
	case tea.MouseActionRelease:
		if !d.active {
			return core.ActionNone
		}
		d.active = false
		return classifyDrag(msg.X-d.startX, msg.Y-d.startY, d.threshold)
	}
	return core.ActionNone
}

// Cancel forgets a drag in progress.
func (d *DragTracker) Cancel() {
	d.active = false
}

// classifyDrag maps a drag vector in terminal cells to a move.
// Cells are about twice as tall as they are wide, so dx counts half.
// Ties between the axes go to the vertical move.
func classifyDrag(dx, dy, threshold int) core.Action {
	fx := float64(dx) / 2
	fy := float64(dy)
	if math.Hypot(fx, fy) < float64(threshold) {
		return core.ActionNone
	}

	if math.Abs(fx) > math.Abs(fy) {
		if fx > 0 {
			return core.ActionRight
		}
		return core.ActionLeft
	}
	if fy > 0 {
		return core.ActionDown
	}
	return core.ActionUp
}
