package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/naveenspark/memora/internal/analytics"
	"github.com/naveenspark/memora/internal/config"
	"github.com/naveenspark/memora/internal/sound"
	"github.com/naveenspark/memora/internal/stats"
	statssqlite "github.com/naveenspark/memora/internal/stats/sqlite"
	"github.com/naveenspark/memora/internal/tui"
	"github.com/naveenspark/memora/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Fprintln(out, "memora "+version)
			return nil
		case "help", "--help", "-h":
			printHelp(out)
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		switch args[0] {
		case "stats":
			reset := len(args) > 1 && args[1] == "reset"
			return runStats(cfg, reset, out)
		default:
			return fmt.Errorf("unknown command %q (try memora help)", args[0])
		}
	}
	return runTUI(cfg, out)
}

func runTUI(cfg config.Config, out io.Writer) error {
	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	dir, err := config.Dir()
	if err != nil {
		return err
	}
	installID, err := clientID(dir)
	if err != nil {
		// The header is optional for the server; play without it.
		log.Printf("client id: %v", err)
	}

	var store stats.Store
	sqliteStore, err := statssqlite.Open(cfg.StatsPath)
	if err != nil {
		log.Printf("stats store unavailable, keeping stats in memory: %v", err)
		store = stats.NewMemory()
	} else {
		store = sqliteStore
	}
	defer store.Close() //nolint:errcheck

	events := analytics.New(cfg.NATSURL, cfg.NATSSubject, installID)
	defer events.Close()

	c := client.New(cfg.APIURL, client.WithTimeout(cfg.RequestTimeout), client.WithClientID(installID))
	app := tui.NewApp(tui.Options{
		Client:     c,
		Stats:      store,
		Events:     events,
		Sound:      sound.New(os.Stderr, cfg.Sound),
		Difficulty: cfg.Difficulty,
		Theme:      cfg.Theme,
		WebURL:     cfg.BrowserURL(),
		Version:    version,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	printFarewell(out)
	return nil
}

func runStats(cfg config.Config, reset bool, out io.Writer) error {
	store, err := statssqlite.Open(cfg.StatsPath)
	if err != nil {
		return fmt.Errorf("open stats: %w", err)
	}
	defer store.Close() //nolint:errcheck

	ctx := context.Background()
	if reset {
		if err := store.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Stats cleared.")
		return nil
	}
	st, err := store.Load(ctx)
	if err != nil {
		return err
	}
	recent, err := store.Recent(ctx, 5)
	if err != nil {
		return err
	}
	printStats(out, st, recent)
	return nil
}

// setupLogging routes the standard logger to path, or discards it so log
// lines never corrupt the alt screen.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "memora")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

// clientID returns the per-install id stored in dir/client_id, creating it
// on first use.
func clientID(dir string) (string, error) {
	path := filepath.Join(dir, "client_id")
	data, err := os.ReadFile(path)
	if err == nil {
		if id, perr := uuid.Parse(strings.TrimSpace(string(data))); perr == nil {
			return id.String(), nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read client id: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return id, fmt.Errorf("create %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return id, fmt.Errorf("save client id: %w", err)
	}
	return id, nil
}
