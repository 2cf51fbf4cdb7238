package domain

// Outcome is the derived status of a board. It is never stored.
type Outcome uint8

const (
	InProgress Outcome = iota
	XWins
	OWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case XWins:
		return "x_wins"
	case OWins:
		return "o_wins"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Winner returns the winning mark, or Empty when nobody has won.
func (o Outcome) Winner() Cell {
	switch o {
	case XWins:
		return X
	case OWins:
		return O
	default:
		return Empty
	}
}

// Terminal reports whether the game has finished.
func (o Outcome) Terminal() bool { return o != InProgress }

// Result is what Evaluate reports. Line is only meaningful when Won is set.
type Result struct {
	Outcome Outcome
	Line    Line
	Won     bool
}

// Evaluate scans Lines in order and reports the first completed one. With
// no completed line a full board is a draw, otherwise play continues.
func Evaluate(b Board) Result {
	for _, ln := range Lines {
		c := b[ln[0]]
		if c != Empty && c == b[ln[1]] && c == b[ln[2]] {
			out := XWins
			if c == O {
				out = OWins
			}
			return Result{Outcome: out, Line: ln, Won: true}
		}
	}
	if b.Full() {
		return Result{Outcome: Draw}
	}
	return Result{Outcome: InProgress}
}

// FindWinningLine returns the triple where side has three in a row.
func FindWinningLine(b Board, side Cell) (Line, bool) {
	if side == Empty {
		return Line{}, false
	}
	for _, ln := range Lines {
		if b[ln[0]] == side && b[ln[1]] == side && b[ln[2]] == side {
			return ln, true
		}
	}
	return Line{}, false
}
