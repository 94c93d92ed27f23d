package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/memora/internal/game"
	"github.com/naveenspark/memora/pkg/domain"
)

// recentLimit is how many finished games the stats overlay lists.
const recentLimit = 5

// maxToasts caps the stack of visible notices.
const maxToasts = 3

type toast struct {
	id   uint64
	text string
	err  bool
}

// winSummary is the plain-text result copied to the clipboard.
func winSummary(g game.Game) string {
	if g.Result == nil {
		return ""
	}
	kind := "game"
	if g.Daily {
		kind = "daily challenge"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "memora %s (%s, %s)\n", kind, g.Difficulty, g.Theme)
	fmt.Fprintf(&b, "Solved %d pairs in %d moves, %s\n", g.TotalPairs, g.Result.Moves, game.FormatSeconds(g.Result.Seconds))
	if len(g.Result.Achievements) > 0 {
		names := make([]string, 0, len(g.Result.Achievements))
		for _, a := range g.Result.Achievements {
			names = append(names, a.Name)
		}
		fmt.Fprintf(&b, "Achievements: %s\n", strings.Join(names, ", "))
	}
	return b.String()
}

// winView renders the completion modal.
func winView(g game.Game, best domain.Stats) string {
	if g.Result == nil {
		return ""
	}
	title := ThemeStyle(g.Theme).Render("You found every pair!")
	if g.Daily {
		title = ThemeStyle(g.Theme).Render("Daily challenge complete!")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", title)
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("Moves "), selectedStyle.Render(fmt.Sprintf("%d", g.Result.Moves)))
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("Time  "), selectedStyle.Render(game.FormatSeconds(g.Result.Seconds)))
	if best.BestMoves > 0 && g.Result.Moves <= best.BestMoves {
		fmt.Fprintf(&b, "%s\n", goldStyle.Render("New best moves!"))
	}
	if best.BestTime > 0 && g.Result.Seconds > 0 && g.Result.Seconds <= best.BestTime {
		fmt.Fprintf(&b, "%s\n", goldStyle.Render("New best time!"))
	}
	if len(g.Result.Achievements) > 0 {
		fmt.Fprintf(&b, "\n%s\n", sectionHeaderStyle.Render("Achievements"))
		for _, a := range g.Result.Achievements {
			icon := a.Icon
			if icon == "" {
				icon = "★"
			}
			line := goldStyle.Render(icon+" "+a.Name)
			if a.Description != "" {
				line += " " + dimStyle.Render(a.Description)
			}
			fmt.Fprintf(&b, "%s\n", line)
		}
	}
	fmt.Fprintf(&b, "\n%s  %s  %s",
		helpEntry("n", "play again"), helpEntry("c", "copy"), helpEntry("esc", "close"))
	return modalStyle.Render(b.String())
}

// alertView renders a blocking error that must be dismissed.
func alertView(text string) string {
	body := rejectStyle.Bold(true).Render("Something went wrong") + "\n\n" +
		normalStyle.Render(text) + "\n\n" +
		helpEntry("enter", "dismiss")
	return alertStyle.Render(body)
}

// statsView renders persisted aggregate stats and the most recent games.
func statsView(st domain.Stats, recent []domain.GameResult, now time.Time) string {
	row := func(label, value string) string {
		return "  " + dimStyle.Render(fmt.Sprintf("%-14s", label)) + selectedStyle.Render(value) + "\n"
	}
	orDash := func(v int, f func(int) string) string {
		if v == 0 {
			return "—"
		}
		return f(v)
	}
	itoa := func(v int) string { return fmt.Sprintf("%d", v) }

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", accentStyle.Bold(true).Render("Statistics"))
	b.WriteString(row("Games played", itoa(st.GamesPlayed)))
	b.WriteString(row("Best time", orDash(st.BestTime, game.FormatSeconds)))
	b.WriteString(row("Best moves", orDash(st.BestMoves, itoa)))
	b.WriteString(row("Avg moves", fmt.Sprintf("%.1f", st.AverageMoves())))
	b.WriteString(row("Total time", game.FormatSeconds(st.TotalTime)))
	if st.DailyStreak > 0 {
		b.WriteString(row("Daily streak", itoa(st.DailyStreak)))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionHeaderStyle.Render("Recent games"))
	if len(recent) == 0 {
		fmt.Fprintf(&b, "  %s\n", metaStyle.Render("none yet"))
	}
	for _, r := range recent {
		label := r.Difficulty
		if r.Daily {
			label = "daily"
		}
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			DifficultyStyle(r.Difficulty).Render(fmt.Sprintf("%-7s", truncStr(label, 7))),
			normalStyle.Render(fmt.Sprintf("%3d moves", r.Moves)),
			normalStyle.Render(game.FormatSeconds(r.Seconds)),
			metaStyle.Render(formatTime(r.FinishedAt, now)))
	}
	return b.String()
}

// helpView lists keys and commands.
func helpView(webURL string) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Render("M E M O R A")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	keys := []struct{ key, desc string }{
		{"←↓↑→ / hjkl", "Move between cards"},
		{"enter / space", "Flip the focused card"},
		{"n", "New game"},
		{"d", "Daily challenge"},
		{"tab", "Cycle difficulty for the next game"},
		{"t", "Cycle theme for the next game"},
		{"p", "Use peek"},
		{"f", "Use time freeze"},
		{"r", "Resync board with the server"},
		{"s", "Statistics"},
		{"m", "Toggle sound"},
		{"o", "Open the web version"},
		{"q", "Quit"},
	}
	commands := []struct{ cmd, desc string }{
		{"memora", "Play (interactive TUI)"},
		{"memora stats", "Print saved statistics"},
		{"memora stats reset", "Clear saved statistics"},
		{"memora version", "Show version"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", title)
	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-16s", k.key)), descStyle.Render(k.desc))
	}
	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	if webURL != "" {
		fmt.Fprintf(&b, "\n  %s %s\n", sectionStyle.Render("Web"), descStyle.Render(webURL))
	}
	return b.String()
}

// toastsView stacks active notices, newest last.
func toastsView(toasts []toast) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		if t.err {
			lines = append(lines, toastErrorStyle.Render(t.text))
		} else {
			lines = append(lines, toastStyle.Render(t.text))
		}
	}
	return strings.Join(lines, "\n")
}
