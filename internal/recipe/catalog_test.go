package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/storage"
)

func setupCatalog(t *testing.T) (*Catalog, *CustomRepository, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	seed, err := NewSeedSource(log)
	require.NoError(t, err)
	repo := NewCustomRepository(storage.NewMemoryStore(log), log)
	return NewCatalog(seed, repo, log), repo, context.Background()
}

func TestCatalogListsSeedThenCustom(t *testing.T) {
	cat, repo, ctx := setupCatalog(t)

	before, err := cat.List(ctx)
	require.NoError(t, err)

	second := soup()
	second.ID = "2"
	second.Name = "Stew"
	require.NoError(t, repo.SaveAll(ctx, []domain.Recipe{soup(), second}))

	after, err := cat.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+2)

	tail := after[len(before):]
	assert.Equal(t, "Soup", tail[0].Name)
	assert.Equal(t, "Stew", tail[1].Name)
	assert.True(t, tail[0].IsCustom)
	assert.Equal(t, before, after[:len(before)])
}

func TestCatalogGet(t *testing.T) {
	cat, repo, ctx := setupCatalog(t)
	require.NoError(t, repo.SaveAll(ctx, []domain.Recipe{soup()}))

	r, err := cat.Get(ctx, "seed-tuna-nicoise")
	require.NoError(t, err)
	assert.Equal(t, "Tuna Nicoise", r.Name)

	r, err = cat.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Soup", r.Name)

	_, err = cat.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogSearchIncludesCustom(t *testing.T) {
	cat, repo, ctx := setupCatalog(t)
	r := soup()
	r.Area = "Moroccan"
	require.NoError(t, repo.SaveAll(ctx, []domain.Recipe{r}))

	got, err := cat.Search(ctx, "moroc")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}
