package remote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PutGetRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	type doc struct {
		ID    string `json:"id"`
		Score int    `json:"score"`
	}
	require.NoError(t, m.Put(ctx, "game_results", "r1", doc{ID: "r1", Score: 900}))

	var out doc
	require.NoError(t, m.Get(ctx, "game_results", "r1", &out))
	assert.Equal(t, 900, out.Score)

	err := m.Get(ctx, "game_results", "missing", &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_PutIsIdempotentUpsert(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "profiles", "p1", map[string]int{"xp": 1}))
	require.NoError(t, m.Put(ctx, "profiles", "p1", map[string]int{"xp": 2}))

	assert.Equal(t, 1, m.Len(), "same key overwrites, never duplicates")
	var out map[string]int
	require.NoError(t, m.Get(ctx, "profiles", "p1", &out))
	assert.Equal(t, 2, out["xp"])
}

func TestMemory_InjectedFailures(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.FailPuts(2)
	assert.ErrorIs(t, m.Put(ctx, "c", "1", 1), ErrUnavailable)
	assert.ErrorIs(t, m.Put(ctx, "c", "2", 2), ErrUnavailable)
	require.NoError(t, m.Put(ctx, "c", "3", 3))
	assert.Equal(t, 1, m.Puts())
}
