//go:build integration
// +build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"ncnews/internal/db"
	"ncnews/internal/models"
	"ncnews/internal/repository"
	"ncnews/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupStore поднимает PostgreSQL в контейнере, накатывает миграции и сид.
func setupStore(t *testing.T) *repository.Store {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ncnews_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("не удалось остановить контейнер: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(dsn, true))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := repository.NewPostgresStore(pool)
	d, err := seed.Load()
	require.NoError(t, err)
	require.NoError(t, seed.Seed(ctx, store, d))
	return store
}

func TestPostgresStore(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	t.Run("topics", func(t *testing.T) {
		list, err := store.Topics.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 3)

		_, err = store.Topics.Create(ctx, &models.Topic{Slug: "cats", Description: "dup"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		_, err = store.Topics.GetBySlug(ctx, "dogs")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("article comment_count", func(t *testing.T) {
		a, err := store.Articles.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 10, a.CommentCount)
		assert.Equal(t, 100, a.Votes)
	})

	t.Run("list filter and pagination", func(t *testing.T) {
		f := models.ArticleFilter{SortBy: models.SortByVotes, Desc: true, Page: models.Page{Limit: 5, Page: 1}}
		p1, total1, err := store.Articles.List(ctx, f)
		require.NoError(t, err)
		f.Page.Page = 2
		p2, total2, err := store.Articles.List(ctx, f)
		require.NoError(t, err)

		assert.Equal(t, 13, total1)
		assert.Equal(t, total1, total2)
		assert.Equal(t, int64(1), p1[0].ID)
		seen := map[int64]bool{}
		for _, a := range append(p1, p2...) {
			assert.False(t, seen[a.ID])
			seen[a.ID] = true
		}

		list, total, err := store.Articles.List(ctx, models.ArticleFilter{
			SortBy: models.SortByCommentCount,
			Desc:   true,
			Topic:  "mitch",
			Author: "icellusedkars",
			Page:   models.Page{Limit: 10, Page: 1},
		})
		require.NoError(t, err)
		assert.Equal(t, 6, total)
		for i := 1; i < len(list); i++ {
			assert.GreaterOrEqual(t, list[i-1].CommentCount, list[i].CommentCount)
		}
	})

	t.Run("votes round trip", func(t *testing.T) {
		a, err := store.Articles.IncrementVotes(ctx, 2, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, a.Votes)
		a, err = store.Articles.IncrementVotes(ctx, 2, -5)
		require.NoError(t, err)
		assert.Equal(t, 0, a.Votes)

		_, err = store.Articles.IncrementVotes(ctx, 9999, 1)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("comment foreign keys", func(t *testing.T) {
		_, err := store.Comments.Create(ctx, &models.Comment{ArticleID: 1, Author: "ghost", Body: "x"})
		assert.ErrorIs(t, err, repository.ErrForeignKey)

		_, err = store.Comments.Create(ctx, &models.Comment{ArticleID: 9999, Author: "lurker", Body: "x"})
		assert.ErrorIs(t, err, repository.ErrNotFound)

		c, err := store.Comments.Create(ctx, &models.Comment{ArticleID: 6, Author: "lurker", Body: "x"})
		require.NoError(t, err)
		assert.Positive(t, c.ID)
	})

	t.Run("delete cascades", func(t *testing.T) {
		require.NoError(t, store.Articles.Delete(ctx, 1))

		list, total, err := store.Comments.ListByArticle(ctx, 1, models.Page{Limit: 10, Page: 1})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, list)

		assert.ErrorIs(t, store.Articles.Delete(ctx, 1), repository.ErrNotFound)
	})
}
