package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ncnews/internal/models"
)

type ArticleRepo interface {
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	List(ctx context.Context, f models.ArticleFilter) ([]*models.Article, int, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	IncrementVotes(ctx context.Context, id int64, delta int) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type articleRepo struct{ db *pgxpool.Pool }

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo { return &articleRepo{db: db} }

// Колонки сортировки берутся только из этой таблицы, пользовательский ввод в SQL не попадает.
var articleSortExpr = map[models.SortColumn]string{
	models.SortByID:           "a.article_id",
	models.SortByTitle:        "a.title",
	models.SortByTopic:        "a.topic",
	models.SortByAuthor:       "a.author",
	models.SortByCreatedAt:    "a.created_at",
	models.SortByVotes:        "a.votes",
	models.SortByCommentCount: "comment_count",
}

const articleSelect = `
		SELECT a.article_id, a.title, a.topic, a.author, a.body, a.created_at, a.votes, a.article_img_url,
		       COUNT(c.comment_id)::int AS comment_count
		FROM articles a
		LEFT JOIN comments c ON c.article_id = a.article_id
	`

func (r *articleRepo) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	const q = `
		INSERT INTO articles (title, topic, author, body, article_img_url, created_at, votes)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()), $7)
		RETURNING article_id, title, topic, author, body, created_at, votes, article_img_url
	`

	var out models.Article
	err := r.db.QueryRow(ctx, q, a.Title, a.Topic, a.Author, a.Body, a.ArticleImgURL, timeOrNil(a.CreatedAt), a.Votes).Scan(
		&out.ID, &out.Title, &out.Topic, &out.Author, &out.Body,
		&out.CreatedAt, &out.Votes, &out.ArticleImgURL,
	)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", mapPgErr(err))
	}
	return &out, nil
}

func (r *articleRepo) List(ctx context.Context, f models.ArticleFilter) ([]*models.Article, int, error) {
	countSQL, countArgs := buildArticleCountQuery(f)
	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	sql, args := buildArticleListQuery(f)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Article, 0, f.Limit)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	q := articleSelect + ` WHERE a.article_id = $1 GROUP BY a.article_id`
	a, err := scanArticle(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return a, nil
}

// IncrementVotes - одно UPDATE-выражение, без read-modify-write.
func (r *articleRepo) IncrementVotes(ctx context.Context, id int64, delta int) (*models.Article, error) {
	const q = `
		WITH updated AS (
			UPDATE articles SET votes = votes + $2 WHERE article_id = $1
			RETURNING article_id, title, topic, author, body, created_at, votes, article_img_url
		)
		SELECT u.article_id, u.title, u.topic, u.author, u.body, u.created_at, u.votes, u.article_img_url,
		       (SELECT COUNT(*) FROM comments c WHERE c.article_id = u.article_id)::int
		FROM updated u
	`
	return scanArticle(r.db.QueryRow(ctx, q, id, delta))
}

// Delete удаляет комментарии и саму статью в одной транзакции.
func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE article_id = $1`, id); err != nil {
		return fmt.Errorf("delete article comments: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM articles WHERE article_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *articleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)`
	var ok bool
	if err := r.db.QueryRow(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func articleWhere(f models.ArticleFilter) ([]string, []any) {
	where := []string{}
	args := []any{}

	if f.Topic != "" {
		args = append(args, f.Topic)
		where = append(where, fmt.Sprintf("a.topic = $%d", len(args)))
	}
	if f.Author != "" {
		args = append(args, f.Author)
		where = append(where, fmt.Sprintf("a.author = $%d", len(args)))
	}
	return where, args
}

func buildArticleCountQuery(f models.ArticleFilter) (string, []any) {
	where, args := articleWhere(f)
	sql := `SELECT COUNT(*)::int FROM articles a`
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	return sql, args
}

func buildArticleListQuery(f models.ArticleFilter) (string, []any) {
	where, args := articleWhere(f)

	sql := articleSelect
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}

	col, ok := articleSortExpr[f.SortBy]
	if !ok {
		col = articleSortExpr[models.SortByCreatedAt]
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}

	i := len(args) + 1
	sql += fmt.Sprintf(" GROUP BY a.article_id ORDER BY %s %s, a.article_id %s LIMIT $%d OFFSET $%d", col, dir, dir, i, i+1)
	args = append(args, f.Limit, f.Offset())
	return sql, args
}

func scanArticle(row pgx.Row) (*models.Article, error) {
	var a models.Article
	var img *string
	if err := row.Scan(
		&a.ID, &a.Title, &a.Topic, &a.Author, &a.Body,
		&a.CreatedAt, &a.Votes, &img, &a.CommentCount,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if img != nil {
		a.ArticleImgURL = *img
	}
	return &a, nil
}
