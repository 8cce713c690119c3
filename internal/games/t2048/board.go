package t2048

import (
	"fmt"
	"strings"
)

// Size is the board dimension.
const Size = 4

// CellCount is the number of cells on the board.
const CellCount = Size * Size

// WinExp is the exponent of the 2048 tile.
const WinExp Exp = 11

// Exp is a tile exponent; the displayed value is 2^Exp.
// Empty marks an unoccupied cell, so an occupied cell always holds Exp >= 1.
type Exp uint8

// Empty is the value of a cell without a tile.
const Empty Exp = 0

// Value returns the number shown on the tile, or 0 for an empty cell.
func (e Exp) Value() int {
	if e == Empty {
		return 0
	}
	return 1 << e
}

// tileExp converts n into the exponent of an occupied cell.
// A tile can never carry exponent 0, so this panics instead of corrupting the grid.
func tileExp(n int) Exp {
	if n < 1 || n > 255 {
		panic(fmt.Sprintf("t2048: tile exponent must be non-zero and fit in a byte, got %d", n))
	}
	return Exp(n)
}

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// lineIndices returns the cell indices of row or column i ordered so that the
// edge the tiles slide toward comes first.
func (d Direction) lineIndices(i int) [Size]int {
	var idx [Size]int
	for j := range Size {
		switch d {
		case DirLeft:
			idx[j] = Index(j, i)
		case DirRight:
			idx[j] = Index(Size-1-j, i)
		case DirUp:
			idx[j] = Index(i, j)
		case DirDown:
			idx[j] = Index(i, Size-1-j)
		}
	}
	return idx
}

// Index converts board coordinates to a cell index. Row 0 is the top row.
func Index(x, y int) int {
	return x + y*Size
}

// Coords converts a cell index back to board coordinates.
func Coords(index int) (x, y int) {
	return index % Size, index / Size
}

// Grid is the 4x4 board stored row-major.
type Grid [CellCount]Exp

// Rand is the randomness the board consumes. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// SlideMovement records where one source tile ends up after a slide.
// From == To for tiles that did not move.
type SlideMovement struct {
	From int
	To   int
}

// SlideResult is the outcome of evaluating one move against a grid.
type SlideResult struct {
	Changed           bool
	Movements         []SlideMovement
	MergeDestinations []int
	NewGrid           Grid
	ScoreGained       int
}

// ComputeSlide evaluates sliding every tile of g toward d.
// g is passed by value and never modified.
func ComputeSlide(g Grid, d Direction) SlideResult {
	result := SlideResult{NewGrid: g}

	for i := range Size {
		indices := d.lineIndices(i)

		var line [Size]Exp
		for j, idx := range indices {
			line[j] = g[idx]
		}

		ls := slideLine(line, indices)
		result.Movements = append(result.Movements, ls.movements...)

		if !ls.changed {
			continue
		}
		result.Changed = true
		result.ScoreGained += ls.score
		result.MergeDestinations = append(result.MergeDestinations, ls.merges...)
		for j, idx := range indices {
			result.NewGrid[idx] = ls.line[j]
		}
	}

	return result
}

// lineSlide is the result of compacting a single line.
type lineSlide struct {
	line      [Size]Exp
	changed   bool
	score     int
	movements []SlideMovement
	merges    []int
}

// slideLine compacts line toward index 0, merging equal neighbours once.
// indices maps line positions back to grid cells.
func slideLine(line [Size]Exp, indices [Size]int) lineSlide {
	type tile struct {
		exp  Exp
		from int
	}

	var tiles [Size]tile
	n := 0
	for j, e := range line {
		if e != Empty {
			tiles[n] = tile{exp: e, from: indices[j]}
			n++
		}
	}

	var out lineSlide
	write := 0
	for i := 0; i < n; write++ {
		dest := indices[write]

		if i+1 < n && tiles[i].exp == tiles[i+1].exp {
			merged := tileExp(int(tiles[i].exp) + 1)
			out.line[write] = merged
			out.score += merged.Value()
			out.movements = append(out.movements,
				SlideMovement{From: tiles[i].from, To: dest},
				SlideMovement{From: tiles[i+1].from, To: dest},
			)
			out.merges = append(out.merges, dest)
			// Skip both sources so the merged tile cannot merge again this move.
			i += 2
			continue
		}

		out.line[write] = tiles[i].exp
		out.movements = append(out.movements, SlideMovement{From: tiles[i].from, To: dest})
		i++
	}

	out.changed = out.line != line
	return out
}

// PlaceRandomTile puts a 2 (or, one time in ten, a 4) on a uniformly chosen
// empty cell. Returns false and leaves the grid alone when it is full.
func (g *Grid) PlaceRandomTile(rng Rand) (int, bool) {
	selected := -1
	seen := 0
	for i, e := range g {
		if e != Empty {
			continue
		}
		// Reservoir sampling: the k-th empty cell replaces the pick with probability 1/k.
		seen++
		if rng.Intn(seen) == 0 {
			selected = i
		}
	}

	if selected < 0 {
		return 0, false
	}

	exp := 1
	if rng.Intn(10) == 0 {
		exp = 2
	}
	g[selected] = tileExp(exp)
	return selected, true
}

// WithTwoTiles returns an empty grid with two random tiles placed on it.
func WithTwoTiles(rng Rand) Grid {
	var g Grid
	g.PlaceRandomTile(rng)
	g.PlaceRandomTile(rng)
	return g
}

// CanMove reports whether some slide would change the grid.
func (g Grid) CanMove() bool {
	for _, e := range g {
		if e == Empty {
			return true
		}
	}

	for y := range Size {
		for x := range Size {
			i := Index(x, y)
			if x+1 < Size && g[i+1] == g[i] {
				return true
			}
			if y+1 < Size && g[i+Size] == g[i] {
				return true
			}
		}
	}
	return false
}

// Contains reports whether any cell holds exponent e.
func (g Grid) Contains(e Exp) bool {
	for _, c := range g {
		if c == e {
			return true
		}
	}
	return false
}

// MaxExp returns the highest exponent on the board.
func (g Grid) MaxExp() Exp {
	var best Exp
	for _, e := range g {
		if e > best {
			best = e
		}
	}
	return best
}

// EmptyCount returns the number of unoccupied cells.
func (g Grid) EmptyCount() int {
	n := 0
	for _, e := range g {
		if e == Empty {
			n++
		}
	}
	return n
}

// TileCount returns the number of occupied cells.
func (g Grid) TileCount() int {
	return CellCount - g.EmptyCount()
}

// Values returns the displayed tile values as rows, top row first.
func (g Grid) Values() [Size][Size]int {
	var rows [Size][Size]int
	for i, e := range g {
		x, y := Coords(i)
		rows[y][x] = e.Value()
	}
	return rows
}

// String renders the grid as a table of values, "." for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	for y := range Size {
		for x := range Size {
			e := g[Index(x, y)]
			if e == Empty {
				sb.WriteString("     .")
			} else {
				fmt.Fprintf(&sb, "%6d", e.Value())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
