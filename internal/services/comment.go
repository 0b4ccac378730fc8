package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ncnews/internal/apperr"
	"ncnews/internal/logger"
	"ncnews/internal/models"
	"ncnews/internal/repository"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type CommentService interface {
	ListByArticle(ctx context.Context, articleID int64, p models.Page) (*models.CommentPage, error)
	Create(ctx context.Context, articleID int64, req models.CreateCommentRequest) (*models.Comment, error)
	Vote(ctx context.Context, id int64, delta int) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type commentService struct {
	comments repository.CommentRepo
	articles repository.ArticleRepo
	users    repository.UserRepo
	policy   *bluemonday.Policy
}

func NewCommentService(comments repository.CommentRepo, articles repository.ArticleRepo, users repository.UserRepo) CommentService {
	return &commentService{
		comments: comments,
		articles: articles,
		users:    users,
		policy:   bluemonday.StrictPolicy(),
	}
}

func (s *commentService) ListByArticle(ctx context.Context, articleID int64, p models.Page) (*models.CommentPage, error) {
	log := logger.WithCtx(ctx)
	p = normalizePage(p)
	log.Debug("Получение комментариев статьи",
		zap.Int64("article_id", articleID),
		zap.Int("limit", p.Limit),
		zap.Int("p", p.Page),
	)

	if err := s.requireArticle(ctx, articleID); err != nil {
		return nil, err
	}

	list, total, err := s.comments.ListByArticle(ctx, articleID, p)
	if err != nil {
		log.Error("Ошибка получения комментариев (repo)", zap.Int64("article_id", articleID), zap.Error(err))
		return nil, err
	}
	if len(list) == 0 {
		log.Warn("Комментарии не найдены", zap.Int64("article_id", articleID), zap.Int("total", total))
		return nil, apperr.NotFoundMsg(fmt.Sprintf("No comments found for article_id %d", articleID))
	}

	return &models.CommentPage{Comments: list, TotalCount: total}, nil
}

func (s *commentService) Create(ctx context.Context, articleID int64, req models.CreateCommentRequest) (*models.Comment, error) {
	log := logger.WithCtx(ctx)

	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = strings.TrimSpace(req.Username)
	}
	log.Info("Создание комментария", zap.Int64("article_id", articleID), zap.String("author", author))

	// проверяем уже очищенный текст: разметка вроде <script> целиком вырезается
	body := strings.TrimSpace(s.policy.Sanitize(req.Body))

	var missing []string
	if author == "" {
		missing = append(missing, "author")
	}
	if body == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		log.Warn("Валидация не пройдена: нет обязательных полей", zap.Strings("missing", missing))
		return nil, apperr.MissingField(missing...)
	}

	if err := s.requireArticle(ctx, articleID); err != nil {
		return nil, err
	}
	if ok, err := s.users.Exists(ctx, author); err != nil {
		log.Error("Ошибка проверки автора (repo)", zap.Error(err))
		return nil, err
	} else if !ok {
		log.Warn("Автор комментария не существует", zap.String("author", author))
		return nil, apperr.UnknownReference("author")
	}

	c, err := s.comments.Create(ctx, &models.Comment{
		ArticleID: articleID,
		Author:    author,
		Body:      body,
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// статью удалили между проверкой и вставкой
		return nil, apperr.NotFound("article")
	case errors.Is(err, repository.ErrForeignKey):
		return nil, apperr.UnknownReference("author")
	case err != nil:
		log.Error("Ошибка создания комментария (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("Комментарий создан", zap.Int64("comment_id", c.ID), zap.Int64("article_id", articleID))
	return c, nil
}

func (s *commentService) Vote(ctx context.Context, id int64, delta int) (*models.Comment, error) {
	log := logger.WithCtx(ctx)
	log.Info("Голосование за комментарий", zap.Int64("comment_id", id), zap.Int("inc_votes", delta))

	c, err := s.comments.IncrementVotes(ctx, id, delta)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Комментарий для голосования не найден", zap.Int64("comment_id", id))
		return nil, apperr.NotFound("comment")
	}
	if err != nil {
		log.Error("Ошибка обновления голосов комментария (repo)", zap.Int64("comment_id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *commentService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление комментария", zap.Int64("comment_id", id))

	err := s.comments.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Комментарий для удаления не найден", zap.Int64("comment_id", id))
		return apperr.NotFound("comment")
	}
	if err != nil {
		log.Error("Ошибка удаления комментария (repo)", zap.Int64("comment_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *commentService) requireArticle(ctx context.Context, id int64) error {
	ok, err := s.articles.Exists(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка проверки статьи (repo)", zap.Int64("article_id", id), zap.Error(err))
		return err
	}
	if !ok {
		logger.WithCtx(ctx).Warn("Статья не найдена", zap.Int64("article_id", id))
		return apperr.NotFound("article")
	}
	return nil
}
