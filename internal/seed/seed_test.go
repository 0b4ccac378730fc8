package seed

import (
	"context"
	"testing"

	"ncnews/internal/docstore"
	"ncnews/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)
	assert.Len(t, d.Topics, 3)
	assert.Len(t, d.Users, 4)
	assert.Len(t, d.Articles, 13)
	assert.Len(t, d.Comments, 18)
}

func TestSeedIsRepeatable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := docstore.NewStore(rdb)
	ctx := context.Background()

	d, err := Load()
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, Seed(ctx, store, d))
	}

	topics, err := store.Topics.List(ctx)
	require.NoError(t, err)
	assert.Len(t, topics, 3)

	list, total, err := store.Articles.List(ctx, models.ArticleFilter{
		SortBy: models.SortByID,
		Page:   models.Page{Limit: 100, Page: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 13, total)
	assert.Equal(t, int64(1), list[0].ID, "после Reset последовательности начинаются заново")
	assert.Equal(t, 10, list[0].CommentCount)
	assert.Equal(t, 100, list[0].Votes)
}
