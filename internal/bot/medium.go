package bot

import "github.com/jaminalder/tic-tac-toe-bot/internal/domain"

// medium wins, blocks, then prefers center, corners and edges, except for
// a bypass fraction of turns where it plays like easy.
func (s *Selector) medium(b domain.Board) (int, error) {
	if s.rng == nil {
		return NoMove, ErrNoRandom
	}
	if s.rng.Float64() < s.bypass {
		return s.easy(b)
	}

	if i, ok := winningCell(b, s.me); ok {
		return i, nil
	}
	if i, ok := winningCell(b, s.me.Other()); ok {
		return i, nil
	}
	if b[domain.Center] == domain.Empty {
		return domain.Center, nil
	}
	if corners := free(b, domain.Corners[:]); len(corners) > 0 {
		return s.pick(corners)
	}
	return s.pick(free(b, domain.Edges[:]))
}

func free(b domain.Board, cells []int) []int {
	out := make([]int, 0, len(cells))
	for _, i := range cells {
		if b[i] == domain.Empty {
			out = append(out, i)
		}
	}
	return out
}
