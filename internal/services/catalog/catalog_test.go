package catalog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awladnasem/alefbata/internal/storage"
	"github.com/awladnasem/alefbata/internal/storage/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCache records hits so tests can see whether storage was bypassed.
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
	hits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string, result any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	f.hits++
	return true, json.Unmarshal(raw, result)
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = raw
	f.sets++
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func seededStore(t *testing.T) *memory.Storage {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.Seed(context.Background()))
	return store
}

func TestListGames_PopulatesAndHitsCache(t *testing.T) {
	store := seededStore(t)
	cache := newFakeCache()
	svc := New(store, cache, discardLogger())
	ctx := context.Background()

	games, err := svc.ListGames(ctx)
	require.NoError(t, err)
	assert.Len(t, games, 6)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 0, cache.hits)

	again, err := svc.ListGames(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 6)
	assert.Equal(t, 1, cache.hits)
}

func TestListGames_NilCache(t *testing.T) {
	store := seededStore(t)
	svc := New(store, nil, discardLogger())

	games, err := svc.ListGames(context.Background())
	require.NoError(t, err)
	assert.Len(t, games, 6)
}

func TestListFeaturedGames(t *testing.T) {
	svc := New(seededStore(t), newFakeCache(), discardLogger())

	featured, err := svc.ListFeaturedGames(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 2)
	for _, g := range featured {
		assert.True(t, g.Featured)
	}
}

func TestListPlans_Cached(t *testing.T) {
	cache := newFakeCache()
	svc := New(seededStore(t), cache, discardLogger())
	ctx := context.Background()

	plans, err := svc.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)

	again, err := svc.ListPlans(ctx)
	require.NoError(t, err)
	assert.Equal(t, plans[0].Name, again[0].Name)
	assert.Equal(t, 1, cache.hits)
}

func TestListLetters_KeepsExamples(t *testing.T) {
	svc := New(seededStore(t), newFakeCache(), discardLogger())
	ctx := context.Background()

	letters, err := svc.ListLetters(ctx)
	require.NoError(t, err)
	require.Len(t, letters, 8)

	// Examples must survive the cache round trip.
	again, err := svc.ListLetters(ctx)
	require.NoError(t, err)
	assert.Len(t, again[0].Examples, 3)
}

func TestGetGame_NotFound(t *testing.T) {
	svc := New(seededStore(t), nil, discardLogger())

	_, err := svc.GetGame(context.Background(), 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetLetterByChar(t *testing.T) {
	svc := New(seededStore(t), nil, discardLogger())

	l, err := svc.GetLetterByChar(context.Background(), "د")
	require.NoError(t, err)
	assert.Equal(t, "دال", l.Name)
}
