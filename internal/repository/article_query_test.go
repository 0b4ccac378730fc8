package repository

import (
	"strings"
	"testing"

	"ncnews/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildArticleListQuery_Defaults(t *testing.T) {
	f := models.ArticleFilter{SortBy: models.SortByCreatedAt, Desc: true, Page: models.Page{Limit: 10, Page: 1}}

	sql, args := buildArticleListQuery(f)

	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY a.created_at DESC, a.article_id DESC LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{10, 0}, args)
}

func TestBuildArticleListQuery_Filters(t *testing.T) {
	f := models.ArticleFilter{
		SortBy: models.SortByCommentCount,
		Topic:  "cats",
		Author: "rogersop",
		Page:   models.Page{Limit: 5, Page: 3},
	}

	sql, args := buildArticleListQuery(f)

	assert.Contains(t, sql, "WHERE a.topic = $1 AND a.author = $2")
	assert.Contains(t, sql, "ORDER BY comment_count ASC, a.article_id ASC LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{"cats", "rogersop", 5, 10}, args)
}

func TestBuildArticleListQuery_UnknownSortFallsBack(t *testing.T) {
	f := models.ArticleFilter{SortBy: "title; DROP TABLE articles", Page: models.Page{Limit: 1, Page: 1}}

	sql, _ := buildArticleListQuery(f)

	assert.NotContains(t, sql, "DROP")
	assert.Contains(t, sql, "ORDER BY a.created_at ASC")
}

func TestBuildArticleListQuery_EverySortColumn(t *testing.T) {
	for col, expr := range articleSortExpr {
		sql, _ := buildArticleListQuery(models.ArticleFilter{SortBy: col, Desc: true, Page: models.Page{Limit: 1, Page: 1}})
		assert.True(t, strings.Contains(sql, "ORDER BY "+expr+" DESC"), "sort by %s", col)
	}
}

func TestBuildArticleCountQuery(t *testing.T) {
	sql, args := buildArticleCountQuery(models.ArticleFilter{Topic: "mitch"})
	assert.Equal(t, "SELECT COUNT(*)::int FROM articles a WHERE a.topic = $1", sql)
	assert.Equal(t, []any{"mitch"}, args)

	sql, args = buildArticleCountQuery(models.ArticleFilter{})
	assert.Equal(t, "SELECT COUNT(*)::int FROM articles a", sql)
	assert.Empty(t, args)
}
