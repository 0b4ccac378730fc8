package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ncnews/internal/models"
)

type CommentRepo interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID int64, p models.Page) ([]*models.Comment, int, error)
	IncrementVotes(ctx context.Context, id int64, delta int) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type commentRepo struct{ db *pgxpool.Pool }

func NewCommentRepo(db *pgxpool.Pool) CommentRepo { return &commentRepo{db: db} }

const commentColumns = `comment_id, article_id, author, body, votes, created_at`

// имя задано явно в миграции 000001
const commentArticleFK = "comments_article_id_fkey"

func (r *commentRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	q := `INSERT INTO comments (article_id, author, body, created_at, votes)
		VALUES ($1, $2, $3, COALESCE($4, NOW()), $5) RETURNING ` + commentColumns
	out, err := scanComment(r.db.QueryRow(ctx, q, c.ArticleID, c.Author, c.Body, timeOrNil(c.CreatedAt), c.Votes))
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", mapCommentInsertErr(err))
	}
	return out, nil
}

func (r *commentRepo) ListByArticle(ctx context.Context, articleID int64, p models.Page) ([]*models.Comment, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)::int FROM comments WHERE article_id = $1`, articleID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	q := `SELECT ` + commentColumns + `
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC, comment_id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, q, articleID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Comment, 0, p.Limit)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *commentRepo) IncrementVotes(ctx context.Context, id int64, delta int) (*models.Comment, error) {
	q := `UPDATE comments SET votes = votes + $2 WHERE comment_id = $1 RETURNING ` + commentColumns
	return scanComment(r.db.QueryRow(ctx, q, id, delta))
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// mapCommentInsertErr: пропавшая статья - ErrNotFound (как в docstore), прочие FK - ErrForeignKey.
func mapCommentInsertErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" && pgErr.ConstraintName == commentArticleFK {
		return errors.Join(ErrNotFound, err)
	}
	return mapPgErr(err)
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	if err := row.Scan(&c.ID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
