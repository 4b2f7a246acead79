package game

import (
	"fmt"
	"strconv"
	"strings"
)

// The 4x4 grid, indexed as [row][column]. Every cell is either 0 (empty) or a power of two.
// Board is a value type, assigning it copies the whole grid, so there is never
// any storage shared between two boards.
type Board [Size][Size]int

// Cell position on the board
type Cell struct {
	Row, Col int
}

// Create a board from given rows, mostly for tests and tools
func NewBoard(rows [Size][Size]int) Board {
	return Board(rows)
}

// Slide a single line towards index 0 and merge equal neighbours.
// Returns the new line and the sum of all tiles created by merges.
// A tile created by a merge is never merged again in the same pass:
//
//	[2 2 2 2] -> [4 4 0 0], score 8
func SlideLeft(line [Size]int) ([Size]int, int) {
	var out [Size]int
	n, score := 0, 0
	merged := false // out[n-1] was produced by a merge

	for _, v := range line {
		if v == 0 {
			continue
		}

		if n > 0 && !merged && out[n-1] == v {
			out[n-1] *= 2
			score += out[n-1]
			merged = true
			continue
		}

		out[n] = v
		n++
		merged = false
	}

	return out, score
}

// Maps k-th cell of the i-th line (as seen when sliding in direction d) to board coordinates,
// so that every direction can be expressed as a left compaction
func linePos(d Direction, i, k int) (row, col int) {
	switch d {
	case Right:
		return i, Size - 1 - k
	case Up:
		return k, i
	case Down:
		return Size - 1 - k, i
	default:
		return i, k
	}
}

// Get the i-th line in direction d
func (b Board) Line(d Direction, i int) [Size]int {
	var line [Size]int
	for k := range Size {
		r, c := linePos(d, i, k)
		line[k] = b[r][c]
	}
	return line
}

func (b *Board) setLine(d Direction, i int, line [Size]int) {
	for k := range Size {
		r, c := linePos(d, i, k)
		b[r][c] = line[k]
	}
}

// Pure transform: returns the board after sliding in direction d (without spawning a tile)
// and the score gained from merges. The receiver is left untouched.
// An invalid direction returns the same board and 0.
func (b Board) Move(d Direction) (Board, int) {
	if !d.Valid() {
		return b, 0
	}

	var out Board
	score := 0
	for i := range Size {
		line, delta := SlideLeft(b.Line(d, i))
		out.setLine(d, i, line)
		score += delta
	}
	return out, score
}

// Whether sliding in direction d would change the board
func (b Board) CanMove(d Direction) bool {
	next, _ := b.Move(d)
	return next != b
}

func (b Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, Size*Size)
	for r := range Size {
		for c := range Size {
			if b[r][c] == 0 {
				cells = append(cells, Cell{r, c})
			}
		}
	}
	return cells
}

func (b Board) EmptyCount() int {
	count := 0
	for r := range Size {
		for c := range Size {
			if b[r][c] == 0 {
				count++
			}
		}
	}
	return count
}

func (b Board) MaxTile() int {
	maxTile := 0
	for r := range Size {
		for c := range Size {
			maxTile = max(maxTile, b[r][c])
		}
	}
	return maxTile
}

// Sum of all tiles
func (b Board) Sum() int {
	sum := 0
	for r := range Size {
		for c := range Size {
			sum += b[r][c]
		}
	}
	return sum
}

// Checks whether every cell holds 0 or a power of two (>= 2)
func (b Board) Valid() bool {
	for r := range Size {
		for c := range Size {
			v := b[r][c]
			if v < 0 || v == 1 || v&(v-1) != 0 {
				return false
			}
		}
	}
	return true
}

// Flatten the board in row-major order
func (b Board) Flat() []float64 {
	flat := make([]float64, 0, Size*Size)
	for r := range Size {
		for c := range Size {
			flat = append(flat, float64(b[r][c]))
		}
	}
	return flat
}

func (b Board) String() string {
	width := len(strconv.Itoa(b.MaxTile()))
	builder := strings.Builder{}
	for r := range Size {
		for c := range Size {
			if c > 0 {
				builder.WriteByte(' ')
			}
			if b[r][c] == 0 {
				builder.WriteString(fmt.Sprintf("%*s", width, "."))
			} else {
				builder.WriteString(fmt.Sprintf("%*d", width, b[r][c]))
			}
		}
		if r != Size-1 {
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}
