package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/memora/internal/game"
)

// cursorMarker sits under the focused card.
const cursorMarker = "▲"

// renderCard draws one card. The face comes only from the card's own state.
func renderCard(c game.Card, theme string) string {
	switch {
	case c.State == game.Matched:
		return matchedCardStyle.Render(c.Glyph)
	case c.State == game.Flipped:
		return flippedCardStyle(theme).Render(c.Glyph)
	case c.Peeked:
		glyph := c.PeekGlyph
		if glyph == "" {
			glyph = "👁"
		}
		return peekCardStyle.Render(glyph)
	default:
		return hiddenCardStyle.Render(game.Placeholder)
	}
}

// renderBoard lays the cards out in g.Columns columns with the cursor marker
// under the focused card.
func renderBoard(g game.Game, cursor int) string {
	cols := g.Columns
	if cols <= 0 {
		cols = 4
	}
	var rows []string
	for start := 0; start < len(g.Cards); start += cols {
		end := min(start+cols, len(g.Cards))
		faces := make([]string, 0, end-start)
		marks := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			face := renderCard(g.Cards[i], g.Theme)
			faces = append(faces, face+" ")
			w := lipgloss.Width(face)
			mark := strings.Repeat(" ", w+1)
			if i == cursor {
				pad := (w - 1) / 2
				mark = strings.Repeat(" ", pad) + accentStyle.Render(cursorMarker) + strings.Repeat(" ", w-pad)
			}
			marks = append(marks, mark)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, faces...))
		rows = append(rows, strings.Join(marks, ""))
	}
	return strings.Join(rows, "\n")
}

// moveCursor returns the cursor after a navigation key, clamped to the grid.
func moveCursor(cursor, cols, n int, key string) int {
	if n == 0 {
		return 0
	}
	if cols <= 0 {
		cols = 4
	}
	switch key {
	case "left", "h":
		if cursor%cols > 0 {
			cursor--
		}
	case "right", "l":
		if cursor%cols < cols-1 && cursor+1 < n {
			cursor++
		}
	case "up", "k":
		if cursor-cols >= 0 {
			cursor -= cols
		}
	case "down", "j":
		if cursor+cols < n {
			cursor += cols
		}
	case "home":
		cursor = 0
	case "end":
		cursor = n - 1
	}
	return cursor
}
