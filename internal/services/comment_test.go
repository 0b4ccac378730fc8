package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"ncnews/internal/models"
	"ncnews/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(t *testing.T) (CommentService, *mockCommentRepo, int64) {
	t.Helper()
	articles := newMockArticleRepo()
	a, err := articles.Create(context.Background(), &models.Article{Title: "t", Topic: "cats", Author: "rogersop"})
	require.NoError(t, err)
	comments := newMockCommentRepo()
	return NewCommentService(comments, articles, newMockUserRepo("butter_bridge")), comments, a.ID
}

func TestCommentService_Create(t *testing.T) {
	svc, _, articleID := newCommentFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, articleID, models.CreateCommentRequest{})
	requireAppErr(t, err, http.StatusBadRequest, "Bad Request: Missing required fields: author, body")

	_, err = svc.Create(ctx, 404, models.CreateCommentRequest{Author: "butter_bridge", Body: "hi"})
	requireAppErr(t, err, http.StatusNotFound, "Article not found")

	_, err = svc.Create(ctx, articleID, models.CreateCommentRequest{Author: "ghost", Body: "hi"})
	requireAppErr(t, err, http.StatusBadRequest, "Bad Request: author does not exist")

	_, err = svc.Create(ctx, articleID, models.CreateCommentRequest{Author: "butter_bridge", Body: "<script>alert(1)</script>"})
	requireAppErr(t, err, http.StatusBadRequest, "Bad Request: Missing required fields: body")

	c, err := svc.Create(ctx, articleID, models.CreateCommentRequest{Username: "butter_bridge", Body: "<b>nice</b> read"})
	require.NoError(t, err)
	assert.Equal(t, "butter_bridge", c.Author)
	assert.Equal(t, "nice read", c.Body)
	assert.Equal(t, articleID, c.ArticleID)
}

func TestCommentService_CreateArticleDeletedBeforeInsert(t *testing.T) {
	svc, repo, articleID := newCommentFixture(t)
	ctx := context.Background()

	repo.createErr = fmt.Errorf("insert comment: %w", repository.ErrNotFound)
	_, err := svc.Create(ctx, articleID, models.CreateCommentRequest{Author: "butter_bridge", Body: "hi"})
	requireAppErr(t, err, http.StatusNotFound, "Article not found")

	repo.createErr = fmt.Errorf("insert comment: %w", repository.ErrForeignKey)
	_, err = svc.Create(ctx, articleID, models.CreateCommentRequest{Author: "butter_bridge", Body: "hi"})
	requireAppErr(t, err, http.StatusBadRequest, "Bad Request: author does not exist")
}

func TestCommentService_ListByArticle(t *testing.T) {
	svc, repo, articleID := newCommentFixture(t)
	ctx := context.Background()

	_, err := svc.ListByArticle(ctx, 404, models.Page{})
	requireAppErr(t, err, http.StatusNotFound, "Article not found")

	_, err = svc.ListByArticle(ctx, articleID, models.Page{})
	requireAppErr(t, err, http.StatusNotFound, "No comments found for article_id 1")
	assert.Equal(t, models.Page{Limit: models.DefaultLimit, Page: 1}, repo.lastPage)

	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, articleID, models.CreateCommentRequest{Author: "butter_bridge", Body: "c"})
		require.NoError(t, err)
	}

	first, err := svc.ListByArticle(ctx, articleID, models.Page{Limit: 5, Page: 1})
	require.NoError(t, err)
	second, err := svc.ListByArticle(ctx, articleID, models.Page{Limit: 5, Page: 2})
	require.NoError(t, err)

	assert.Len(t, first.Comments, 5)
	assert.Len(t, second.Comments, 2)
	assert.Equal(t, 7, first.TotalCount)
	assert.Equal(t, first.TotalCount, second.TotalCount)
	seen := map[int64]bool{}
	for _, c := range append(first.Comments, second.Comments...) {
		assert.False(t, seen[c.ID], "страницы пересекаются")
		seen[c.ID] = true
	}

	_, err = svc.ListByArticle(ctx, articleID, models.Page{Limit: 5, Page: 3})
	requireAppErr(t, err, http.StatusNotFound, "No comments found for article_id 1")
}

func TestCommentService_VoteAndDelete(t *testing.T) {
	svc, _, articleID := newCommentFixture(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, articleID, models.CreateCommentRequest{Author: "butter_bridge", Body: "c"})
	require.NoError(t, err)

	voted, err := svc.Vote(ctx, c.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, -3, voted.Votes)

	_, err = svc.Vote(ctx, 999, 1)
	requireAppErr(t, err, http.StatusNotFound, "Comment not found")

	require.NoError(t, svc.Delete(ctx, c.ID))
	requireAppErr(t, svc.Delete(ctx, c.ID), http.StatusNotFound, "Comment not found")
}
