package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/naveenspark/memora/pkg/domain"
)

func TestTruncateToHeight(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxLines int
		want     string
	}{
		{"fits", "a\nb\n", 5, "a\nb\n"},
		{"cut", "a\nb\nc\nd\n", 2, "a\nb\n"},
		{"no limit", "a\nb\n", 0, "a\nb\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncateToHeight(tc.in, tc.maxLines); got != tc.want {
				t.Errorf("truncateToHeight(%q, %d) = %q, want %q", tc.in, tc.maxLines, got, tc.want)
			}
		})
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("medium", 10); got != "medium" {
		t.Errorf("got %q", got)
	}
	if got := truncStr("challenge", 5); got != "chal…" {
		t.Errorf("got %q", got)
	}
	if got := truncStr("x", 0); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{15 * time.Minute, "15m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tc := range tests {
		if got := formatTime(now.Add(-tc.ago), now); got != tc.want {
			t.Errorf("formatTime(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
}

func TestCenter(t *testing.T) {
	out := center("ab\ncd", 10)
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "    ") {
			t.Errorf("line %q not centered", line)
		}
	}
	if center("abcdef", 4) != "abcdef" {
		t.Error("block wider than width should be unchanged")
	}
}

func TestCycle(t *testing.T) {
	if got := cycle(domain.Difficulties, "hard"); got != "easy" {
		t.Errorf("cycle wraps to %q, want easy", got)
	}
	if got := cycle(domain.Themes, "animals"); got != "fruits" {
		t.Errorf("got %q", got)
	}
	if got := cycle(domain.Themes, "unknown"); got != "animals" {
		t.Errorf("unknown value restarts at %q", got)
	}
}

func TestThemeStylesRenderText(t *testing.T) {
	for _, theme := range append(domain.Themes, "unknown") {
		if out := ThemeStyle(theme).Render(theme); !strings.Contains(out, theme) {
			t.Errorf("ThemeStyle(%q) dropped text: %q", theme, out)
		}
		if logo := renderShimmerLogo(7, theme); !strings.Contains(logo, "M") {
			t.Errorf("logo for %q = %q", theme, logo)
		}
	}
	if out := DifficultyStyle("nightmare").Render("x"); !strings.Contains(out, "x") {
		t.Error("difficulty fallback dropped text")
	}
}
