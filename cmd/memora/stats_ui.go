package main

import (
	"fmt"
	"io"
	"time"

	"github.com/naveenspark/memora/internal/game"
	"github.com/naveenspark/memora/pkg/domain"
)

// ANSI color constants for stats output (no lipgloss: runs outside the TUI).
const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiItalic  = "\033[3m"
	ansiEmerald = "\033[38;2;74;222;128m"  // #4ade80
	ansiGreen   = "\033[38;2;52;212;116m"  // #34d474
	ansiGold    = "\033[38;2;212;168;68m"  // #d4a844
	ansiSlate   = "\033[38;2;136;144;160m" // #8890a0
)

// printLogo prints the spaced MEMORA wordmark in alternating greens.
func printLogo(w io.Writer) {
	letters := "MEMORA"
	colors := [2]string{ansiEmerald, ansiGreen}
	fmt.Fprint(w, "\n  ")
	for i, ch := range letters {
		fmt.Fprintf(w, "%s%s%c%s", colors[i%2], ansiBold, ch, ansiReset)
		if i < len(letters)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

// printStats prints the saved aggregate and the most recent games.
func printStats(w io.Writer, st domain.Stats, recent []domain.GameResult) {
	printLogo(w)
	if st.GamesPlayed == 0 {
		fmt.Fprintf(w, "\n  %s%sNo games finished yet.%s\n\n", ansiSlate, ansiItalic, ansiReset)
		return
	}

	row := func(label, value string) {
		fmt.Fprintf(w, "  %s%-14s%s%s%s%s\n", ansiSlate, label, ansiReset, ansiBold, value, ansiReset)
	}
	orDash := func(v int, s string) string {
		if v == 0 {
			return "—"
		}
		return s
	}

	fmt.Fprintln(w)
	row("Games played", fmt.Sprintf("%d", st.GamesPlayed))
	row("Best time", orDash(st.BestTime, game.FormatSeconds(st.BestTime)))
	row("Best moves", orDash(st.BestMoves, fmt.Sprintf("%d", st.BestMoves)))
	row("Avg moves", fmt.Sprintf("%.1f", st.AverageMoves()))
	row("Total time", game.FormatSeconds(st.TotalTime))
	if st.DailyStreak > 0 {
		row("Daily streak", fmt.Sprintf("%s%d%s", ansiGold, st.DailyStreak, ansiReset))
	}

	if len(recent) > 0 {
		fmt.Fprintf(w, "\n  %s│%s %s%sRECENT%s\n", ansiGold, ansiReset, ansiGold, ansiBold, ansiReset)
		for _, r := range recent {
			label := r.Difficulty
			if r.Daily {
				label = "daily"
			}
			fmt.Fprintf(w, "  %s│%s %-7s %3d moves  %s  %s%s%s\n",
				ansiGold, ansiReset, label, r.Moves, game.FormatSeconds(r.Seconds),
				ansiSlate, r.FinishedAt.Local().Format(time.DateOnly), ansiReset)
		}
	}
	fmt.Fprintln(w)
}
