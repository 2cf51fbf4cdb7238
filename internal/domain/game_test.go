package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to apply a sequence of row-major moves
func playMoves(t *testing.T, g *Game, moves []int) {
	t.Helper()
	for i, m := range moves {
		require.NoError(t, g.PlayIndex(m), "move %d (%d)", i, m)
	}
}

// fillers returns n cells off the line, in ascending order.
func fillers(ln Line, n int) []int {
	out := make([]int, 0, n)
	for i := 0; i < 9 && len(out) < n; i++ {
		if !ln.Contains(i) {
			out = append(out, i)
		}
	}
	return out
}

// pickNonWinning chooses three filler cells that do not form a line.
func pickNonWinning(t *testing.T, f []int) []int {
	t.Helper()
	for a := 0; a < len(f); a++ {
		for b := a + 1; b < len(f); b++ {
			for c := b + 1; c < len(f); c++ {
				var bd Board
				bd[f[a]], bd[f[b]], bd[f[c]] = X, X, X
				if _, won := FindWinningLine(bd, X); !won {
					return []int{f[a], f[b], f[c]}
				}
			}
		}
	}
	t.Fatalf("no filler triple in %v", f)
	return nil
}

func TestNewGameInitialState(t *testing.T) {
	g := New()
	assert.Equal(t, X, g.Turn)
	assert.Zero(t, g.Moves)
	assert.False(t, g.Over)
	assert.Equal(t, Empty, g.Winner)
	assert.Equal(t, Board{}, g.Board)
	assert.Equal(t, InProgress, g.Outcome())
}

func TestPlayOutOfBounds(t *testing.T) {
	g := New()
	for _, m := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}} {
		assert.ErrorIs(t, g.Play(m[0], m[1]), ErrOutOfBounds, "%v", m)
	}
	for _, i := range []int{-1, 9, 42} {
		assert.ErrorIs(t, g.PlayIndex(i), ErrOutOfBounds, "index %d", i)
	}
}

func TestPlayOccupied(t *testing.T) {
	g := New()
	require.NoError(t, g.Play(0, 0))
	assert.ErrorIs(t, g.PlayIndex(0), ErrOccupied)
}

func TestPlayMapsRowColumnToIndex(t *testing.T) {
	g := New()
	require.NoError(t, g.Play(2, 1))
	assert.Equal(t, X, g.Board[7], g.Board.String())
	assert.Equal(t, O, g.Turn)
}

func TestWinConditionsRecordLine(t *testing.T) {
	for _, ln := range Lines {
		// X takes the line, O fills elsewhere.
		g := New()
		f := fillers(ln, 2)
		playMoves(t, &g, []int{ln[0], f[0], ln[1], f[1], ln[2]})
		assert.True(t, g.Over, "X on %v", ln)
		assert.Equal(t, X, g.Winner, "X on %v", ln)
		assert.Equal(t, ln, g.WinLine)
		assert.Equal(t, 5, g.Moves)

		// O takes the line, X fills elsewhere without completing anything.
		g = New()
		xs := pickNonWinning(t, fillers(ln, 6))
		playMoves(t, &g, []int{xs[0], ln[0], xs[1], ln[1], xs[2], ln[2]})
		assert.True(t, g.Over, "O on %v", ln)
		assert.Equal(t, O, g.Winner, "O on %v", ln)
		assert.Equal(t, ln, g.WinLine)
		assert.Equal(t, 6, g.Moves)
	}
}

func TestDrawNoWinner(t *testing.T) {
	g := New()
	// X O X / O O X / X X O
	playMoves(t, &g, []int{0, 1, 2, 4, 5, 3, 6, 8, 7})
	assert.True(t, g.Over)
	assert.Equal(t, Empty, g.Winner)
	assert.Equal(t, Draw, g.Outcome())
}

func TestGameOverBlocksFurtherMoves(t *testing.T) {
	g := New()
	playMoves(t, &g, []int{0, 3, 1, 4, 2})
	require.True(t, g.Over)
	require.Equal(t, X, g.Winner)
	assert.ErrorIs(t, g.Play(2, 2), ErrGameOver)
	assert.ErrorIs(t, g.PlayIndex(8), ErrGameOver)
	// Game over wins over a bad index.
	assert.ErrorIs(t, g.PlayIndex(42), ErrGameOver)
}
