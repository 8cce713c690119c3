package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"w", runeKey("w"), core.ActionUp, false},
		{"a", runeKey("a"), core.ActionLeft, false},
		{"s", runeKey("s"), core.ActionDown, false},
		{"d", runeKey("d"), core.ActionRight, false},
		{"vim left", runeKey("h"), core.ActionLeft, false},
		{"new game", runeKey("n"), core.ActionNewGame, false},
		{"restart", runeKey("r"), core.ActionRestart, false},
		{"continue", runeKey("c"), core.ActionContinue, false},
		{"pause", runeKey("p"), core.ActionPause, false},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"quit", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%s, %v), want (%s, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestApplyActionKeepsFirstMove(t *testing.T) {
	frame := core.NewInputFrame()

	applyAction(&frame, core.ActionLeft)
	applyAction(&frame, core.ActionUp)
	applyAction(&frame, core.ActionPause)
	applyAction(&frame, core.ActionNone)

	if !frame.Has(core.ActionLeft) {
		t.Error("first move should be kept")
	}
	if frame.Has(core.ActionUp) {
		t.Error("second move in the same frame should be dropped")
	}
	if !frame.Has(core.ActionPause) {
		t.Error("non-move actions should still be added")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, want %d", tt.msg.String(), got, tt.want)
		}
	}
}

func TestClassifyDrag(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
		want   core.Action
	}{
		{"too short", 2, 1, core.ActionNone},
		{"right", 10, 1, core.ActionRight},
		{"left", -10, 2, core.ActionLeft},
		{"down", 1, 4, core.ActionDown},
		{"up", 0, -3, core.ActionUp},
		// 6 columns count as 3 rows, so this is not horizontal
		{"tie goes vertical", 6, -3, core.ActionUp},
		{"wide cells halve dx", 5, 0, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyDrag(tt.dx, tt.dy, 3); got != tt.want {
				t.Errorf("classifyDrag(%d, %d) = %s, want %s", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestDragTracker(t *testing.T) {
	d := NewDragTracker(0)

	press := tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 30, Y: 11, Action: tea.MouseActionRelease}

	if got := d.Handle(press); got != core.ActionNone {
		t.Errorf("press = %s, want none", got)
	}
	if got := d.Handle(release); got != core.ActionRight {
		t.Errorf("release = %s, want right", got)
	}
	if got := d.Handle(release); got != core.ActionNone {
		t.Error("release without a press must not move")
	}

	d.Handle(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if got := d.Handle(release); got != core.ActionNone {
		t.Error("only the left button starts a drag")
	}

	d.Handle(press)
	d.Cancel()
	if got := d.Handle(release); got != core.ActionNone {
		t.Error("a cancelled drag must not move")
	}
}
