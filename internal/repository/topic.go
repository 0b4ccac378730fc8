package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ncnews/internal/models"
)

type TopicRepo interface {
	Create(ctx context.Context, t *models.Topic) (*models.Topic, error)
	List(ctx context.Context) ([]*models.Topic, error)
	GetBySlug(ctx context.Context, slug string) (*models.Topic, error)
	Exists(ctx context.Context, slug string) (bool, error)
}

type topicRepo struct{ db *pgxpool.Pool }

func NewTopicRepo(db *pgxpool.Pool) TopicRepo { return &topicRepo{db: db} }

// Create не перезаписывает существующий slug: повтор даёт ErrDuplicate.
func (r *topicRepo) Create(ctx context.Context, t *models.Topic) (*models.Topic, error) {
	var out models.Topic
	err := r.db.QueryRow(ctx,
		`INSERT INTO topics (slug, description) VALUES ($1, $2) RETURNING slug, description`,
		t.Slug, t.Description,
	).Scan(&out.Slug, &out.Description)
	if err != nil {
		return nil, fmt.Errorf("insert topic: %w", mapPgErr(err))
	}
	return &out, nil
}

func (r *topicRepo) List(ctx context.Context) ([]*models.Topic, error) {
	rows, err := r.db.Query(ctx, `SELECT slug, description FROM topics ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.Topic{}
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.Slug, &t.Description); err != nil {
			return nil, err
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *topicRepo) GetBySlug(ctx context.Context, slug string) (*models.Topic, error) {
	var t models.Topic
	err := r.db.QueryRow(ctx, `SELECT slug, description FROM topics WHERE slug = $1`, slug).Scan(&t.Slug, &t.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *topicRepo) Exists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM topics WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}
