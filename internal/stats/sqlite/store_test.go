package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/memora/pkg/domain"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestLoadEmpty(t *testing.T) {
	store := openTempStore(t)
	st, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{}, st)
}

func TestRecordKeepsBestValues(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	at := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)

	_, err := store.Record(ctx, domain.GameResult{GameID: "g1", Difficulty: "easy", Theme: "animals", Moves: 10, Seconds: 40, FinishedAt: at})
	require.NoError(t, err)
	st, err := store.Record(ctx, domain.GameResult{GameID: "g2", Difficulty: "easy", Theme: "animals", Moves: 14, Seconds: 30, FinishedAt: at.Add(time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, 2, st.GamesPlayed)
	assert.Equal(t, 24, st.TotalMoves)
	assert.Equal(t, 70, st.TotalTime)
	assert.Equal(t, 30, st.BestTime)
	assert.Equal(t, 10, st.BestMoves, "worse move count must not replace the best")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.BestMoves, loaded.BestMoves)
	assert.Equal(t, st.GamesPlayed, loaded.GamesPlayed)
}

func TestStatsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	ctx := context.Background()

	first, err := Open(path)
	require.NoError(t, err)
	_, err = first.Record(ctx, domain.GameResult{GameID: "g1", Moves: 8, Seconds: 20, Daily: true, FinishedAt: time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()
	st, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.GamesPlayed)
	assert.Equal(t, 1, st.DailyStreak)
}

func TestRecentNewestFirst(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		_, err := store.Record(ctx, domain.GameResult{GameID: id, Difficulty: "medium", Theme: "space", Moves: 10 + i, Seconds: 60, FinishedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].GameID)
	assert.Equal(t, "b", recent[1].GameID)
	assert.Equal(t, "space", recent[0].Theme)
	assert.True(t, recent[0].FinishedAt.Equal(base.Add(2*time.Minute)))

	none, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReset(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	_, err := store.Record(ctx, domain.GameResult{GameID: "g", Moves: 6, Seconds: 12})
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx))

	st, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.GamesPlayed)
	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestCancelledContext(t *testing.T) {
	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNilStore(t *testing.T) {
	var store *Store
	_, err := store.Load(context.Background())
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}
