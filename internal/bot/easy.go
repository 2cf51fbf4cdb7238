package bot

import "github.com/jaminalder/tic-tac-toe-bot/internal/domain"

// easy plays any free cell with equal probability.
func (s *Selector) easy(b domain.Board) (int, error) {
	return s.pick(b.EmptyCells())
}
