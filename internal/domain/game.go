package domain

import "errors"

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// String returns the mark as shown on the board.
func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Other returns the opposing mark. Empty has no opponent.
func (c Cell) Other() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Board is a fixed 3x3 board stored row-major.
type Board [9]Cell

// Game holds the current state of a Tic-Tac-Toe match.
type Game struct {
	Board   Board
	Turn    Cell
	Winner  Cell
	Over    bool
	Moves   int
	WinLine Line
}

// Errors returned by domain operations.
var (
	ErrOutOfBounds  = errors.New("out of bounds")
	ErrOccupied     = errors.New("cell occupied")
	ErrGameOver     = errors.New("game over")
	ErrBoardLength  = errors.New("board must have 9 cells")
	ErrInvalidCell  = errors.New("invalid cell value")
	ErrInvalidBoard = errors.New("unreachable board")
)

// New returns a new game with X to move.
func New() Game {
	return Game{Turn: X}
}

// Play attempts to play the current turn at row r, column c (0..2).
func (g *Game) Play(r, c int) error {
	if g.Over {
		return ErrGameOver
	}
	if r < 0 || r > 2 || c < 0 || c > 2 {
		return ErrOutOfBounds
	}
	return g.PlayIndex(r*3 + c)
}

// PlayIndex plays the current turn at row-major index i (0..8).
func (g *Game) PlayIndex(i int) error {
	if g.Over {
		return ErrGameOver
	}
	if i < 0 || i >= len(g.Board) {
		return ErrOutOfBounds
	}
	if g.Board[i] != Empty {
		return ErrOccupied
	}

	g.Board[i] = g.Turn
	g.Moves++

	res := Evaluate(g.Board)
	switch res.Outcome {
	case XWins, OWins:
		g.Winner = g.Turn
		g.WinLine = res.Line
		g.Over = true
		return nil
	case Draw:
		g.Winner = Empty
		g.Over = true
		return nil
	}

	g.Turn = g.Turn.Other()
	return nil
}

// Outcome reports the current result of the game.
func (g *Game) Outcome() Outcome {
	return Evaluate(g.Board).Outcome
}
