package game

import "math"

// Placeholder is the glyph shown on a face-down card.
const Placeholder = "?"

// CardState is the per-card display state. It is the single source of truth
// for rendering; nothing is read back from the view.
type CardState int

const (
	Hidden CardState = iota
	Flipped
	Matched
)

func (s CardState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Flipped:
		return "flipped"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Card is the client view of one board position.
type Card struct {
	Index int
	State CardState
	Glyph string
	// Peeked marks a hidden card temporarily revealed by the peek power-up.
	// It does not change State.
	Peeked    bool
	PeekGlyph string
}

func newCards(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = Card{Index: i, State: Hidden, Glyph: Placeholder}
	}
	return cards
}

// columnsFor picks the grid width: the server's layout when given, else the
// classic 4x3, 4x4 and 4x6 boards, else the squarest fit.
func columnsFor(difficulty string, gridCols, n int) int {
	if gridCols > 0 {
		return gridCols
	}
	switch difficulty {
	case "easy", "medium":
		if n == 12 || n == 16 {
			return 4
		}
	case "hard":
		if n == 24 {
			return 6
		}
	}
	if n <= 0 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}
