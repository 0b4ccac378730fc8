package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Admin - служебные операции хранилища (healthcheck, очистка перед сидом).
type Admin interface {
	Ping(ctx context.Context) error
	Reset(ctx context.Context) error
}

// Store собирает репозитории одного хранилища.
type Store struct {
	Topics   TopicRepo
	Users    UserRepo
	Articles ArticleRepo
	Comments CommentRepo
	Admin    Admin
}

func NewPostgresStore(db *pgxpool.Pool) *Store {
	return &Store{
		Topics:   NewTopicRepo(db),
		Users:    NewUserRepository(db),
		Articles: NewArticleRepo(db),
		Comments: NewCommentRepo(db),
		Admin:    &pgAdmin{db: db},
	}
}

type pgAdmin struct{ db *pgxpool.Pool }

func (a *pgAdmin) Ping(ctx context.Context) error { return a.db.Ping(ctx) }

func (a *pgAdmin) Reset(ctx context.Context) error {
	_, err := a.db.Exec(ctx, `TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE`)
	return err
}

// mapPgErr переводит нарушения ограничений в общие ошибки хранилища.
// Исходная *pgconn.PgError остаётся в цепочке для apperr.Translate.
func mapPgErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		return errors.Join(ErrDuplicate, err)
	case "23503":
		return errors.Join(ErrForeignKey, err)
	}
	return err
}

// timeOrNil: нулевое время уходит в SQL как NULL, и срабатывает DEFAULT NOW().
func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
