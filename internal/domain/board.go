package domain

import (
	"fmt"
	"strings"
)

// Line is an index triple whose full occupancy by one side wins.
type Line [3]int

// Lines lists every winning triple: rows, then columns, then diagonals.
var Lines = [8]Line{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// Corners and Edges are the non-center cells grouped by shape.
var (
	Corners = [4]int{0, 2, 6, 8}
	Edges   = [4]int{1, 3, 5, 7}
)

// Center is the middle cell.
const Center = 4

// Contains reports whether i is one of the line's cells.
func (l Line) Contains(i int) bool {
	return l[0] == i || l[1] == i || l[2] == i
}

// EmptyCells returns the indexes of free cells in ascending order.
func (b Board) EmptyCells() []int {
	out := make([]int, 0, len(b))
	for i, c := range b {
		if c == Empty {
			out = append(out, i)
		}
	}
	return out
}

// Full reports whether no cell is free.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// With returns a copy of b with cell i set to c. b itself is untouched.
func (b Board) With(i int, c Cell) Board {
	b[i] = c
	return b
}

// Count returns how many cells hold c.
func (b Board) Count(c Cell) int {
	n := 0
	for _, v := range b {
		if v == c {
			n++
		}
	}
	return n
}

// Validate rejects boards no legal game can produce.
func (b Board) Validate() error {
	for i, c := range b {
		if c > O {
			return fmt.Errorf("cell %d: %w", i, ErrInvalidCell)
		}
	}
	nx, no := b.Count(X), b.Count(O)
	if nx-no > 1 || no-nx > 1 {
		return fmt.Errorf("%d X vs %d O: %w", nx, no, ErrInvalidBoard)
	}
	_, xWon := FindWinningLine(b, X)
	_, oWon := FindWinningLine(b, O)
	if xWon && oWon {
		return fmt.Errorf("both sides have a line: %w", ErrInvalidBoard)
	}
	return nil
}

// ParseBoard converts the wire form ("X", "O", and "", "-", " " or "." for
// empty) into a Board.
func ParseBoard(cells []string) (Board, error) {
	var b Board
	if len(cells) != len(b) {
		return b, fmt.Errorf("got %d cells: %w", len(cells), ErrBoardLength)
	}
	for i, s := range cells {
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case "X":
			b[i] = X
		case "O":
			b[i] = O
		case "", "-", ".":
			b[i] = Empty
		default:
			return b, fmt.Errorf("cell %d %q: %w", i, s, ErrInvalidCell)
		}
	}
	return b, nil
}

// Strings is the inverse of ParseBoard; empty cells render as "".
func (b Board) Strings() []string {
	out := make([]string, len(b))
	for i, c := range b {
		out[i] = c.String()
	}
	return out
}

// String renders the board as three rows, "." for empty cells.
func (b Board) String() string {
	var sb strings.Builder
	for i, c := range b {
		if c == Empty {
			sb.WriteByte('.')
		} else {
			sb.WriteString(c.String())
		}
		if i%3 == 2 && i != len(b)-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
