// Package stats defines persistence for aggregate play statistics.
package stats

import (
	"context"
	"sync"

	"github.com/naveenspark/memora/pkg/domain"
)

// Store persists the aggregate stats record and the history of finished games.
type Store interface {
	// Load returns the stored aggregate, or zero Stats when none exists.
	Load(ctx context.Context) (domain.Stats, error)
	// Record folds a finished game into the aggregate and appends it to the
	// history, returning the updated aggregate.
	Record(ctx context.Context, result domain.GameResult) (domain.Stats, error)
	// Recent returns up to limit finished games, newest first.
	Recent(ctx context.Context, limit int) ([]domain.GameResult, error)
	// Reset clears the aggregate and the history.
	Reset(ctx context.Context) error
	Close() error
}

// Memory is an in-process Store used when the database cannot be opened
// and in tests.
type Memory struct {
	mu      sync.Mutex
	stats   domain.Stats
	results []domain.GameResult
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(ctx context.Context) (domain.Stats, error) {
	if err := ctx.Err(); err != nil {
		return domain.Stats{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats, nil
}

func (m *Memory) Record(ctx context.Context, result domain.GameResult) (domain.Stats, error) {
	if err := ctx.Err(); err != nil {
		return domain.Stats{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = m.stats.Record(result)
	m.results = append(m.results, result)
	return m.stats, nil
}

func (m *Memory) Recent(ctx context.Context, limit int) ([]domain.GameResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.GameResult, 0, min(limit, len(m.results)))
	for i := len(m.results) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.results[i])
	}
	return out, nil
}

func (m *Memory) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = domain.Stats{}
	m.results = nil
	return nil
}

func (m *Memory) Close() error { return nil }
