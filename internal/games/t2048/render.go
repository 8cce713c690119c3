package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 4 // Height of each cell (including top border)

	boardW    = Size*cellWidth + 1
	boardH    = Size*cellHeight + 1
	hudHeight = 3

	minScreenW = boardW + 2
	minScreenH = hudHeight + 1 + boardH + 2
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.session == nil {
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY)

	controls := g.Controls()
	if y := boardY + boardH + 1; y < g.screenH {
		dst.DrawTextColor((g.screenW-len(controls))/2, y, controls, core.ColorGray, core.ColorDefault)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	y := g.screenH / 2
	dst.DrawText((g.screenW-len(msg))/2, y, msg)

	hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
	dst.DrawText((g.screenW-len(hint))/2, y+1, hint)
}

// renderHUD draws the title, score, best score and max tile.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := g.Title()
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorYellow, core.ColorDefault)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.session.Score()))

	best := fmt.Sprintf("Best: %d", max(g.best, g.session.Score()))
	dst.DrawText(boardX+boardW-len(best), 1, best)

	maxStr := fmt.Sprintf("Max: %d", g.session.Grid().MaxExp().Value())
	dst.DrawTextColor(boardX+(boardW-len(maxStr))/2, 2, maxStr, core.ColorGray, core.ColorDefault)
}

// renderGrid draws the 4x4 cell borders and empty cell backgrounds.
func renderGrid(dst *core.Screen, boardX, boardY int) {
	for y := range Size + 1 {
		for x := range Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == Size:
				corner = '┐'
			case y == Size && x == 0:
				corner = '└'
			case y == Size && x == Size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == Size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == Size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetCell(px, py, core.Cell{Rune: corner, FG: core.ColorGray, BG: core.ColorBoard})

			if x < Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetCell(px+i, py, core.Cell{Rune: '─', FG: core.ColorGray, BG: core.ColorBoard})
				}
			}
			if y < Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetCell(px, py+i, core.Cell{Rune: '│', FG: core.ColorGray, BG: core.ColorBoard})
				}
			}
			if x < Size && y < Size {
				dst.FillRect(interior(px, py), core.Cell{Rune: ' ', BG: core.ColorCellEmpty})
			}
		}
	}
}

// interior returns the drawable area of the cell whose top-left border is at (px, py).
func interior(px, py int) core.Rect {
	return core.NewRect(px+1, py+1, cellWidth-1, cellHeight-1)
}

// renderTiles draws every sprite; moving ones last so they pass over resting tiles.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	sprites := g.session.Sprites()
	for _, moving := range []bool{false, true} {
		for _, sp := range sprites {
			if (sp.Effect == EffectSlide) != moving {
				continue
			}
			drawSprite(dst, sp, boardX, boardY)
		}
	}
}

func drawSprite(dst *core.Screen, sp Sprite, boardX, boardY int) {
	fx, fy := sp.Position()
	px := boardX + int(math.Round(fx*cellWidth))
	py := boardY + int(math.Round(fy*cellHeight))
	area := interior(px, py)

	bg := core.TileColor(int(sp.Exp))
	fg := tileForeground(sp.Exp)
	scale := sp.Scale()

	switch {
	case sp.Effect == EffectSpawn && scale < 0.5:
		cx, cy := area.Center()
		dst.SetCell(cx, cy, core.Cell{Rune: '·', FG: fg, BG: bg})
		return
	case sp.Effect == EffectMerge && scale > 1.05:
		fg = core.ColorBrightWhite
	}

	dst.FillRect(area, core.Cell{Rune: ' ', FG: fg, BG: bg})

	label := strconv.Itoa(sp.Exp.Value())
	if len(label) > area.W {
		label = fmt.Sprintf("2^%d", sp.Exp)
	}
	_, cy := area.Center()
	dst.DrawTextColor(area.X+(area.W-len(label)+1)/2, cy, label, fg, bg)
}

// tileForeground picks a text color readable on the tile's background.
func tileForeground(e Exp) core.Color {
	if e <= 2 {
		return core.ColorDark
	}
	return core.ColorBrightWhite
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.gameOver:
		scoreStr := fmt.Sprintf("Score: %d", g.session.Score())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", scoreStr, "R/N: New game")
	case g.showWin:
		g.drawOverlay(dst, centerX, centerY, "You Win!", "C: Continue", "N: New game")
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box)

	for i, line := range lines {
		fg := core.ColorDefault
		if i == 0 {
			fg = core.ColorYellow
		}
		dst.DrawTextColor(centerX-len(line)/2, box.Y+1+i, line, fg, core.ColorDefault)
	}
}
