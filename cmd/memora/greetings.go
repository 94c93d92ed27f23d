package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var farewells = [...]string{
	"Every card remembers where it was. Do you?",
	"The board is shuffled. Your memory is not. Come back soon.",
	"Two of a kind, always. Even when you look away.",
	"The owl saw where the fox was hiding. It said nothing.",
	"Pairs found today are pairs you find faster tomorrow.",
	"A perfect game is a pair on every second flip. Nobody said it was easy.",
	"The daily challenge resets at midnight. The cards will wait.",
	"You flipped. You forgot. You flipped again. That is the whole game.",
	"Somewhere a hidden card is still a question mark.",
	"Memory is a muscle. This was leg day.",
}

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Render("M E M O R A")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"Flip two. Remember everything."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ name, desc string }{
		{"memora", "Play (interactive TUI)"},
		{"memora stats", "Print saved statistics"},
		{"memora stats reset", "Clear saved statistics"},
		{"memora version", "Show version"},
		{"memora help", "You are here"},
	}
	env := []struct{ name, desc string }{
		{"MEMORA_API_URL", "Game server (default http://localhost:5000)"},
		{"MEMORA_WEB_URL", "Page opened by the o key"},
		{"MEMORA_DIFFICULTY", "easy | medium | hard"},
		{"MEMORA_THEME", "animals | fruits | space | ocean"},
		{"MEMORA_STATS_PATH", "Stats database (default ~/.memora/stats.db)"},
		{"MEMORA_SOUND", "Terminal bell cues (default true)"},
		{"MEMORA_NATS_URL", "Publish gameplay events to NATS"},
		{"MEMORA_LOG_FILE", "Write debug logs to a file"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n  Commands:\n", title, quote)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.name)), descStyle.Render(c.desc))
	}
	fmt.Fprint(w, "\n  Environment:\n")
	for _, e := range env {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", e.name)), descStyle.Render(e.desc))
	}
	fmt.Fprintln(w)
}

func printFarewell(w io.Writer) {
	msg := farewells[rand.IntN(len(farewells))]
	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)
	fmt.Fprintf(w, "\n  %s\n\n", quote)
}
