package bot

import "github.com/jaminalder/tic-tac-toe-bot/internal/domain"

// Minimax scores, from the selector's point of view.
const (
	scoreWin  = 1
	scoreLoss = -1
	scoreDraw = 0
)

// hard takes an immediate win, then an immediate block, and otherwise
// plays the best move found by searching the whole remaining game.
func (s *Selector) hard(b domain.Board) int {
	if i, ok := winningCell(b, s.me); ok {
		return i
	}
	if i, ok := winningCell(b, s.me.Other()); ok {
		return i
	}
	_, idx := s.minimax(b, s.me)
	return idx
}

// minimax returns the score of b with toMove to play and the move that
// achieves it. Ties keep the lowest index. b is a value copy.
func (s *Selector) minimax(b domain.Board, toMove domain.Cell) (score, index int) {
	switch res := domain.Evaluate(b); {
	case res.Outcome == domain.Draw:
		return scoreDraw, NoMove
	case res.Won && res.Outcome.Winner() == s.me:
		return scoreWin, NoMove
	case res.Won:
		return scoreLoss, NoMove
	}

	maximizing := toMove == s.me
	index = NoMove
	for _, i := range b.EmptyCells() {
		sc, _ := s.minimax(b.With(i, toMove), toMove.Other())
		if index == NoMove || (maximizing && sc > score) || (!maximizing && sc < score) {
			score, index = sc, i
		}
	}
	return score, index
}
