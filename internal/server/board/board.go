// FILE: connect4/internal/server/board/board.go
package board

import (
	"fmt"
	"strings"
)

// Disc is a single placed piece as read back from storage.
type Disc struct {
	UserID string
	Column int
	Row    int
}

// Board is a column-major grid of player IDs; "" marks an empty cell.
// Row 0 is the bottom of a column, gravity fills rows contiguously upward.
type Board struct {
	rows    int
	columns int
	cells   [][]string // [column][row]
}

// Build derives a board from the ordered disc sequence of a game.
// A disc outside the grid is a programming error upstream, not user input,
// so it panics instead of returning an error.
func Build(discs []Disc, rows, columns int) *Board {
	cells := make([][]string, columns)
	for c := range cells {
		cells[c] = make([]string, rows)
	}
	for _, d := range discs {
		if d.Column < 0 || d.Column >= columns || d.Row < 0 || d.Row >= rows {
			panic(fmt.Sprintf("board: disc out of range: column=%d row=%d on %dx%d grid",
				d.Column, d.Row, rows, columns))
		}
		cells[d.Column][d.Row] = d.UserID
	}
	return &Board{rows: rows, columns: columns, cells: cells}
}

func (b *Board) Rows() int    { return b.rows }
func (b *Board) Columns() int { return b.columns }

// Cell returns the occupant of (column, row), "" when empty.
func (b *Board) Cell(column, row int) string {
	return b.cells[column][row]
}

// ColumnCount returns the number of discs stacked in a column.
func (b *Board) ColumnCount(column int) int {
	count := 0
	for r := 0; r < b.rows; r++ {
		if b.cells[column][r] != "" {
			count++
		}
	}
	return count
}

// ColumnCounts returns the disc count of every column.
func (b *Board) ColumnCounts() []int {
	counts := make([]int, b.columns)
	for c := range counts {
		counts[c] = b.ColumnCount(c)
	}
	return counts
}

// IsFull reports whether no column can take another disc.
func (b *Board) IsFull() bool {
	for c := 0; c < b.columns; c++ {
		if b.cells[c][b.rows-1] == "" {
			return false
		}
	}
	return true
}

// HasFourInARow scans every length-4 window in all four orientations for
// cells occupied by player. Grids smaller than 4 in a dimension produce no
// windows in that orientation and cannot match.
func (b *Board) HasFourInARow(player string) bool {
	w := b.columns
	h := b.rows

	// Horizontal
	for r := 0; r < h; r++ {
		for c := 0; c <= w-4; c++ {
			if b.cells[c][r] == player && b.cells[c+1][r] == player &&
				b.cells[c+2][r] == player && b.cells[c+3][r] == player {
				return true
			}
		}
	}

	// Vertical
	for c := 0; c < w; c++ {
		for r := 0; r <= h-4; r++ {
			if b.cells[c][r] == player && b.cells[c][r+1] == player &&
				b.cells[c][r+2] == player && b.cells[c][r+3] == player {
				return true
			}
		}
	}

	// Diagonal, falling left to right
	for c := 0; c <= w-4; c++ {
		for r := 3; r < h; r++ {
			if b.cells[c][r] == player && b.cells[c+1][r-1] == player &&
				b.cells[c+2][r-2] == player && b.cells[c+3][r-3] == player {
				return true
			}
		}
	}

	// Diagonal, rising left to right
	for c := 0; c <= w-4; c++ {
		for r := 0; r <= h-4; r++ {
			if b.cells[c][r] == player && b.cells[c+1][r+1] == player &&
				b.cells[c+2][r+2] == player && b.cells[c+3][r+3] == player {
				return true
			}
		}
	}

	return false
}

// ToASCII renders the grid top row first. Symbols maps player IDs to a
// single display rune; unmapped occupants render as '?'.
func (b *Board) ToASCII(symbols map[string]rune) string {
	var sb strings.Builder

	for r := b.rows - 1; r >= 0; r-- {
		sb.WriteString("|")
		for c := 0; c < b.columns; c++ {
			cell := b.cells[c][r]
			switch {
			case cell == "":
				sb.WriteString(" .")
			default:
				sym, ok := symbols[cell]
				if !ok {
					sym = '?'
				}
				sb.WriteString(" ")
				sb.WriteRune(sym)
			}
		}
		sb.WriteString(" |\n")
	}

	sb.WriteString(" ")
	for c := 0; c < b.columns; c++ {
		sb.WriteString("--")
	}
	sb.WriteString("-\n ")
	for c := 0; c < b.columns; c++ {
		sb.WriteString(fmt.Sprintf(" %d", c%10))
	}
	sb.WriteString("\n")

	return sb.String()
}
