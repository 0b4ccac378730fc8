package services

import (
	"context"
	"errors"
	"strings"

	"ncnews/internal/apperr"
	"ncnews/internal/logger"
	"ncnews/internal/models"
	"ncnews/internal/repository"

	"go.uber.org/zap"
)

type TopicService struct{ repo repository.TopicRepo }

func NewTopicService(r repository.TopicRepo) *TopicService {
	return &TopicService{repo: r}
}

func (s *TopicService) List(ctx context.Context) ([]*models.Topic, error) {
	return s.repo.List(ctx)
}

func (s *TopicService) Get(ctx context.Context, slug string) (*models.Topic, error) {
	t, err := s.repo.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("topic")
	}
	return t, err
}

func (s *TopicService) Create(ctx context.Context, t *models.Topic) (*models.Topic, error) {
	log := logger.WithCtx(ctx)
	log.Info("Сервис: создание темы", zap.String("slug", t.Slug))

	var missing []string
	if strings.TrimSpace(t.Slug) == "" {
		missing = append(missing, "slug")
	}
	if strings.TrimSpace(t.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		log.Warn("Сервис: у темы нет обязательных полей", zap.Strings("missing", missing))
		return nil, apperr.MissingField(missing...)
	}

	created, err := s.repo.Create(ctx, t)
	if errors.Is(err, repository.ErrDuplicate) {
		log.Warn("Сервис: тема уже существует", zap.String("slug", t.Slug))
		return nil, apperr.Conflict("topic")
	}
	if err != nil {
		log.Error("Сервис: ошибка создания темы", zap.Error(err))
		return nil, err
	}
	return created, nil
}

type UserService struct{ repo repository.UserRepo }

func NewUserService(r repository.UserRepo) *UserService {
	return &UserService{repo: r}
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("user")
	}
	return u, err
}

func (s *UserService) Create(ctx context.Context, u *models.User) (*models.User, error) {
	log := logger.WithCtx(ctx)
	log.Info("Сервис: создание пользователя", zap.String("username", u.Username))

	var missing []string
	if strings.TrimSpace(u.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(u.Name) == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return nil, apperr.MissingField(missing...)
	}

	created, err := s.repo.Create(ctx, u)
	if errors.Is(err, repository.ErrDuplicate) {
		log.Warn("Сервис: пользователь уже существует", zap.String("username", u.Username))
		return nil, apperr.Conflict("user")
	}
	if err != nil {
		log.Error("Сервис: ошибка создания пользователя", zap.Error(err))
		return nil, err
	}
	return created, nil
}
