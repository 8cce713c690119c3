package core

// Color represents a foreground or background color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorWhite
	ColorBrightWhite
	ColorGray
	ColorDark

	// Board and tile palette, ordered by tile exponent.
	ColorBoard
	ColorCellEmpty
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileSuper
)

// TileColor returns the palette entry for a tile exponent.
// Exponent 0 is an empty cell; anything past 2048 shares one color.
func TileColor(exp int) Color {
	switch {
	case exp <= 0:
		return ColorCellEmpty
	case exp > 11:
		return ColorTileSuper
	default:
		return ColorTile2 + Color(exp-1)
	}
}
