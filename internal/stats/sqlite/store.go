// Package sqlite provides a SQLite-backed stats store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/naveenspark/memora/internal/platform/sqlitemigrate"
	"github.com/naveenspark/memora/internal/stats"
	"github.com/naveenspark/memora/internal/stats/sqlite/migrations"
	"github.com/naveenspark/memora/pkg/domain"
)

var _ stats.Store = (*Store)(nil)

// Store persists stats in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the stats database at path and applies
// embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf("create stats dir: %w", err)
	}
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the aggregate stored under domain.StatsKey.
func (s *Store) Load(ctx context.Context) (domain.Stats, error) {
	if err := ctx.Err(); err != nil {
		return domain.Stats{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Stats{}, fmt.Errorf("storage is not configured")
	}
	return load(ctx, s.sqlDB)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func load(ctx context.Context, q querier) (domain.Stats, error) {
	var payload string
	err := q.QueryRowContext(ctx, `SELECT payload_json FROM stats WHERE key = ?`, domain.StatsKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Stats{}, nil
	}
	if err != nil {
		return domain.Stats{}, fmt.Errorf("load stats: %w", err)
	}
	var st domain.Stats
	if err := json.Unmarshal([]byte(payload), &st); err != nil {
		// A corrupt record is replaced on the next write.
		return domain.Stats{}, nil
	}
	return st, nil
}

// Record folds result into the aggregate and appends it to the history in a
// single transaction.
func (s *Store) Record(ctx context.Context, result domain.GameResult) (domain.Stats, error) {
	if err := ctx.Err(); err != nil {
		return domain.Stats{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Stats{}, fmt.Errorf("storage is not configured")
	}
	if result.FinishedAt.IsZero() {
		result.FinishedAt = s.now()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("begin record: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := load(ctx, tx)
	if err != nil {
		return domain.Stats{}, err
	}
	next := current.Record(result)
	payload, err := json.Marshal(next)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("marshal stats: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO stats (key, payload_json, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload_json = excluded.payload_json, updated_at = excluded.updated_at`,
		domain.StatsKey, string(payload), toMillis(s.now()),
	); err != nil {
		return domain.Stats{}, fmt.Errorf("save stats: %w", err)
	}

	daily := 0
	if result.Daily {
		daily = 1
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO game_results (game_id, difficulty, theme, daily, moves, seconds, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.GameID, result.Difficulty, result.Theme, daily, result.Moves, result.Seconds, toMillis(result.FinishedAt),
	); err != nil {
		return domain.Stats{}, fmt.Errorf("insert game result: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Stats{}, fmt.Errorf("commit record: %w", err)
	}
	return next, nil
}

// Recent returns up to limit finished games, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.GameResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT game_id, difficulty, theme, daily, moves, seconds, finished_at
		 FROM game_results ORDER BY finished_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list game results: %w", err)
	}
	defer rows.Close()

	var out []domain.GameResult
	for rows.Next() {
		var (
			r        domain.GameResult
			daily    int
			finished int64
		)
		if err := rows.Scan(&r.GameID, &r.Difficulty, &r.Theme, &daily, &r.Moves, &r.Seconds, &finished); err != nil {
			return nil, fmt.Errorf("scan game result: %w", err)
		}
		r.Daily = daily != 0
		r.FinishedAt = fromMillis(finished)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game results: %w", err)
	}
	return out, nil
}

// Reset deletes the aggregate and the history.
func (s *Store) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM stats`); err != nil {
		return fmt.Errorf("reset stats: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM game_results`); err != nil {
		return fmt.Errorf("reset game results: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}
