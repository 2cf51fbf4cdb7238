// Package bot picks the automated player's next move.
package bot

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/jaminalder/tic-tac-toe-bot/internal/domain"
)

// NoMove is returned when the board has no free cell.
const NoMove = -1

// MediumBypassRate is the chance that Medium ignores its heuristics and
// plays like Easy. It is a tuning value that keeps Medium beatable.
const MediumBypassRate = 0.28

// Difficulty selects the move policy.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrNoRandom          = errors.New("no randomness source")
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", uint8(d))
	}
}

// Difficulties lists every tier in ascending strength.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty maps "easy", "medium" or "hard" to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("%q: %w", s, ErrUnknownDifficulty)
}

// Random is the uniform source used by Easy and Medium. *rand.Rand
// satisfies it.
type Random interface {
	Intn(n int) int
	Float64() float64
}

// lockedRandom serializes access to a *rand.Rand.
type lockedRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRandom returns a Random seeded with seed that may be shared
// between goroutines.
func NewLockedRandom(seed int64) Random {
	return &lockedRandom{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRandom) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// Selector chooses moves for one mark. It keeps no state between calls
// other than its random source.
type Selector struct {
	rng    Random
	me     domain.Cell
	bypass float64
}

// Option configures a Selector.
type Option func(*Selector)

// WithMark sets the mark the selector plays. The default is O.
func WithMark(c domain.Cell) Option {
	return func(s *Selector) { s.me = c }
}

// WithBypassRate overrides MediumBypassRate. Values outside [0,1] are
// ignored.
func WithBypassRate(p float64) Option {
	return func(s *Selector) {
		if p >= 0 && p <= 1 {
			s.bypass = p
		}
	}
}

// New returns a Selector drawing randomness from rng.
func New(rng Random, opts ...Option) *Selector {
	s := &Selector{rng: rng, me: domain.O, bypass: MediumBypassRate}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Mark returns the mark this selector plays.
func (s *Selector) Mark() domain.Cell { return s.me }

// Select returns the cell index to play on b at difficulty d, or NoMove
// when the board is full or already decided. b is never modified.
func (s *Selector) Select(b domain.Board, d Difficulty) (int, error) {
	if err := b.Validate(); err != nil {
		return NoMove, err
	}
	if s.me != domain.X && s.me != domain.O {
		return NoMove, fmt.Errorf("selector mark %d: %w", s.me, domain.ErrInvalidCell)
	}
	if domain.Evaluate(b).Outcome.Terminal() {
		return NoMove, nil
	}
	switch d {
	case Easy:
		return s.easy(b)
	case Medium:
		return s.medium(b)
	case Hard:
		return s.hard(b), nil
	}
	return NoMove, fmt.Errorf("%v: %w", d, ErrUnknownDifficulty)
}

// winningCell returns the first free cell where side completes a line.
func winningCell(b domain.Board, side domain.Cell) (int, bool) {
	for _, i := range b.EmptyCells() {
		if _, won := domain.FindWinningLine(b.With(i, side), side); won {
			return i, true
		}
	}
	return NoMove, false
}

// pick returns a uniformly chosen element of cells.
func (s *Selector) pick(cells []int) (int, error) {
	if len(cells) == 0 {
		return NoMove, nil
	}
	if s.rng == nil {
		return NoMove, ErrNoRandom
	}
	return cells[s.rng.Intn(len(cells))], nil
}
