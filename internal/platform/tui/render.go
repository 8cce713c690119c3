package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// palette maps core.Color to ANSI 256-color codes.
// ColorDefault is absent and leaves the terminal color untouched.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:         "1",
	core.ColorGreen:       "2",
	core.ColorYellow:      "3",
	core.ColorWhite:       "7",
	core.ColorBrightWhite: "15",
	core.ColorGray:        "245",
	core.ColorDark:        "238",

	core.ColorBoard:     "137",
	core.ColorCellEmpty: "180",
	core.ColorTile2:     "230",
	core.ColorTile4:     "223",
	core.ColorTile8:     "215",
	core.ColorTile16:    "209",
	core.ColorTile32:    "203",
	core.ColorTile64:    "196",
	core.ColorTile128:   "222",
	core.ColorTile256:   "221",
	core.ColorTile512:   "220",
	core.ColorTile1024:  "214",
	core.ColorTile2048:  "178",
	core.ColorTileSuper: "54",
}

// colorPair keys the style cache.
type colorPair struct {
	fg, bg core.Color
}

// Painter turns screen buffers into ANSI text for one output.
// Each SSH session gets its own painter so color detection follows the client.
type Painter struct {
	renderer *lipgloss.Renderer
	mu       sync.Mutex
	styles   map[colorPair]lipgloss.Style
}

// NewPainter creates a painter. A nil renderer uses the lipgloss default.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{
		renderer: r,
		styles:   make(map[colorPair]lipgloss.Style),
	}
}

// styleFor returns the cached style for a foreground/background pair.
func (p *Painter) styleFor(fg, bg core.Color) lipgloss.Style {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := colorPair{fg, bg}
	if style, ok := p.styles[key]; ok {
		return style
	}

	style := p.renderer.NewStyle()
	if c, ok := palette[fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := palette[bg]; ok {
		style = style.Background(c)
	}
	p.styles[key] = style
	return style
}

// Paint converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (p *Painter) Paint(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != start.FG || cell.BG != start.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.FG == core.ColorDefault && start.BG == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.styleFor(start.FG, start.BG).Render(run.String()))
		}
	}
	return sb.String()
}
