package resumes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(context.Background(), Analysis{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	items, err := repo.List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "b", items[1].ID)

	items, err = repo.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)

	items, err = repo.List(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryRepoCopiesSlices(t *testing.T) {
	repo := NewMemoryRepo()
	highlights := []string{"Go"}
	require.NoError(t, repo.Create(context.Background(), Analysis{ID: "a", Result: Result{Highlights: highlights}}))
	highlights[0] = "mutated"

	got, err := repo.GetByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Highlights)
}

func TestMemoryRepoNotFoundAndCanceled(t *testing.T) {
	repo := NewMemoryRepo()
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, repo.Create(ctx, Analysis{ID: "x"}), context.Canceled)
}
