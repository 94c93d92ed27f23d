package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/memora/pkg/domain"
)

// Shimmer animation for the MEMORA logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "M E M O R A" as a wave of light moving through
// the current theme's color, from a dimmed shade up to the full accent.
func renderShimmerLogo(frame int, theme string) string {
	const text = "MEMORA"
	n := len(text)

	r1, g1, b1 := themeRGB(theme)
	r0, g0, b0 := int(float64(r1)*0.25), int(float64(g1)*0.25), int(float64(b1)*0.25)

	t := float64(frame)
	var out string
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18
		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(float64(r0) + b*float64(r1-r0))
		g := clampByte(float64(g0) + b*float64(g1-g0))
		bl := clampByte(float64(b0) + b*float64(b1-b0))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}
	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	goldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	rejectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#b45555"))

	frozenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3ecce4")).
			Bold(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	// Surface colors
	borderColor  = lipgloss.Color("#1e1e2a")
	surfaceColor = lipgloss.Color("#111118")

	// Card faces. Widths leave room for a double-width glyph.
	cardBase = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(4).
			Align(lipgloss.Center)

	hiddenCardStyle = cardBase.
			BorderForeground(lipgloss.Color("#343c4a")).
			Foreground(lipgloss.Color("#505868"))

	matchedCardStyle = cardBase.
				BorderForeground(lipgloss.Color("#1a3a24")).
				Foreground(lipgloss.Color("#4ade80"))

	peekCardStyle = cardBase.
			BorderForeground(lipgloss.Color("#3ecce4")).
			BorderStyle(lipgloss.DoubleBorder()).
			Foreground(lipgloss.Color("#3ecce4"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ade80")).
			Background(surfaceColor).
			Padding(1, 3)

	alertStyle = modalStyle.
			BorderForeground(lipgloss.Color("#b45555"))

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Background(borderColor).
			Padding(0, 1)

	toastErrorStyle = toastStyle.
			Foreground(lipgloss.Color("#f87171"))

	// Theme accents, one per server deck.
	themeColors = map[string]string{
		domain.ThemeAnimals: "#f0944a",
		domain.ThemeFruits:  "#e06060",
		domain.ThemeSpace:   "#b080d0",
		domain.ThemeOcean:   "#3ecce4",
	}

	difficultyColors = map[string]lipgloss.Color{
		domain.DifficultyEasy:   lipgloss.Color("#4ade80"),
		domain.DifficultyMedium: lipgloss.Color("#facc15"),
		domain.DifficultyHard:   lipgloss.Color("#f87171"),
	}
)

const defaultThemeColor = "#4ade80"

// ThemeStyle returns a bold style in the accent color of theme.
func ThemeStyle(theme string) lipgloss.Style {
	c, ok := themeColors[theme]
	if !ok {
		c = defaultThemeColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
}

// DifficultyStyle returns the label style for a difficulty.
func DifficultyStyle(d string) lipgloss.Style {
	if c, ok := difficultyColors[d]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return dimStyle
}

// flippedCardStyle tints face-up cards with the theme accent.
func flippedCardStyle(theme string) lipgloss.Style {
	c, ok := themeColors[theme]
	if !ok {
		c = defaultThemeColor
	}
	return cardBase.
		BorderForeground(lipgloss.Color(c)).
		Foreground(lipgloss.Color("#e4e4ec")).
		Bold(true)
}

// themeSwatch renders a small colored block followed by the theme name.
func themeSwatch(theme string, active bool) string {
	label := theme
	if active {
		label = selectedStyle.Render(theme)
	} else {
		label = dimStyle.Render(theme)
	}
	return ThemeStyle(theme).Render("■") + " " + label
}

func themeRGB(theme string) (int, int, int) {
	c, ok := themeColors[theme]
	if !ok {
		c = defaultThemeColor
	}
	var r, g, b int
	_, _ = fmt.Sscanf(c, "#%02x%02x%02x", &r, &g, &b) //nolint:errcheck
	return r, g, b
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
