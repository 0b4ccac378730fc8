package repository

import (
	"context"
	"errors"
	"fmt"

	"ncnews/internal/logger"
	"ncnews/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepo interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	logger.Log.Debug("Создание пользователя (repo)", zap.String("username", u.Username))
	var out models.User
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, name, avatar_url) VALUES ($1, $2, $3)
		 RETURNING username, name, COALESCE(avatar_url, '')`,
		u.Username, u.Name, u.AvatarURL,
	).Scan(&out.Username, &out.Name, &out.AvatarURL)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", mapPgErr(err))
	}
	return &out, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	logger.Log.Debug("Получение списка пользователей (repo)")
	rows, err := r.db.Query(ctx, `SELECT username, name, COALESCE(avatar_url, '') FROM users ORDER BY username`)
	if err != nil {
		logger.Log.Error("Ошибка получения пользователей (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Username, &u.Name, &u.AvatarURL); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по username (repo)", zap.String("username", username))
	query := `SELECT username, name, COALESCE(avatar_url, '') FROM users WHERE username = $1`

	var user models.User
	err := r.db.QueryRow(ctx, query, username).Scan(&user.Username, &user.Name, &user.AvatarURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Exists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, username).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки username (repo)", zap.Error(err))
	}
	return exists, err
}
