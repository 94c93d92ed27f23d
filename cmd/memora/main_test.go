package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	statssqlite "github.com/naveenspark/memora/internal/stats/sqlite"
	"github.com/naveenspark/memora/pkg/domain"
)

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"version"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); got != "memora dev\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"help"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"memora stats reset", "MEMORA_API_URL", "MEMORA_THEME"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	t.Setenv("MEMORA_STATS_PATH", filepath.Join(t.TempDir(), "s.db"))
	if err := run([]string{"shuffle"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRunInvalidConfig(t *testing.T) {
	t.Setenv("MEMORA_STATS_PATH", filepath.Join(t.TempDir(), "s.db"))
	t.Setenv("MEMORA_DIFFICULTY", "impossible")
	if err := run([]string{"stats"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected config error")
	}
}

func TestRunStatsAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	t.Setenv("MEMORA_STATS_PATH", path)

	store, err := statssqlite.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, err = store.Record(context.Background(), domain.GameResult{
		GameID: "g1", Difficulty: "hard", Theme: "ocean", Moves: 21, Seconds: 95,
		FinishedAt: time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	store.Close() //nolint:errcheck

	var out bytes.Buffer
	if err := run([]string{"stats"}, &out); err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Games played", "01:35", "21", "hard"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stats output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := run([]string{"stats", "reset"}, &out); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(out.String(), "Stats cleared.") {
		t.Errorf("reset output = %q", out.String())
	}

	out.Reset()
	if err := run([]string{"stats"}, &out); err != nil {
		t.Fatalf("stats after reset: %v", err)
	}
	if !strings.Contains(out.String(), "No games finished yet") {
		t.Errorf("stats after reset:\n%s", out.String())
	}
}

func TestPrintStatsDaily(t *testing.T) {
	var out bytes.Buffer
	printStats(&out, domain.Stats{GamesPlayed: 1, TotalMoves: 8, TotalTime: 40, BestTime: 40, BestMoves: 8, DailyStreak: 2},
		[]domain.GameResult{{Difficulty: "medium", Daily: true, Moves: 8, Seconds: 40, FinishedAt: time.Now()}})
	for _, want := range []string{"Daily streak", "daily", "00:40", "8.0"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q:\n%s", want, out.String())
		}
	}
}

func TestClientIDPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".memora")
	first, err := clientID(dir)
	if err != nil {
		t.Fatalf("clientID: %v", err)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("not a uuid: %q", first)
	}
	second, err := clientID(dir)
	if err != nil {
		t.Fatalf("clientID again: %v", err)
	}
	if first != second {
		t.Errorf("client id changed: %q then %q", first, second)
	}

	// A corrupt file is replaced with a fresh id.
	if err := os.WriteFile(filepath.Join(dir, "client_id"), []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	third, err := clientID(dir)
	if err != nil {
		t.Fatalf("clientID after corrupt: %v", err)
	}
	if third == first {
		t.Error("corrupt id not replaced")
	}
}

func TestSetupLogging(t *testing.T) {
	closeLog, err := setupLogging("")
	if err != nil {
		t.Fatalf("discard: %v", err)
	}
	closeLog()

	path := filepath.Join(t.TempDir(), "memora.log")
	closeLog, err = setupLogging(path)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	closeLog()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestPrintFarewell(t *testing.T) {
	var out bytes.Buffer
	printFarewell(&out)
	if strings.TrimSpace(out.String()) == "" {
		t.Error("empty farewell")
	}
}
