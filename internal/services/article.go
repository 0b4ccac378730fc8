package services

import (
	"context"
	"errors"
	"strings"

	"ncnews/internal/apperr"
	"ncnews/internal/logger"
	"ncnews/internal/models"
	"ncnews/internal/repository"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// ArticleQuery - сырые параметры списка статей; числа уже разобраны хендлером.
type ArticleQuery struct {
	SortBy string
	Order  string
	Topic  string
	Author string
	Page   models.Page
}

type ArticleService interface {
	Create(ctx context.Context, req models.CreateArticleRequest) (*models.Article, error)
	List(ctx context.Context, q ArticleQuery) (*models.ArticlePage, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Vote(ctx context.Context, id int64, delta int) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
}

type articleService struct {
	articles repository.ArticleRepo
	topics   repository.TopicRepo
	users    repository.UserRepo
	policy   *bluemonday.Policy
}

func NewArticleService(articles repository.ArticleRepo, topics repository.TopicRepo, users repository.UserRepo) ArticleService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return &articleService{articles: articles, topics: topics, users: users, policy: p}
}

var sortAliases = map[string]models.SortColumn{
	"id":            models.SortByID,
	"article_id":    models.SortByID,
	"title":         models.SortByTitle,
	"topic":         models.SortByTopic,
	"author":        models.SortByAuthor,
	"created_at":    models.SortByCreatedAt,
	"votes":         models.SortByVotes,
	"comment_count": models.SortByCommentCount,
}

// BuildArticleFilter проверяет sort_by/order по белому списку. Пустые значения - created_at desc.
func BuildArticleFilter(q ArticleQuery) (models.ArticleFilter, error) {
	f := models.ArticleFilter{
		SortBy: models.SortByCreatedAt,
		Desc:   true,
		Topic:  q.Topic,
		Author: q.Author,
		Page:   normalizePage(q.Page),
	}

	if q.SortBy != "" {
		col, ok := sortAliases[q.SortBy]
		if !ok {
			return f, apperr.InvalidQuery("sort_by")
		}
		f.SortBy = col
	}

	switch strings.ToLower(q.Order) {
	case "", "desc":
		f.Desc = true
	case "asc":
		f.Desc = false
	default:
		return f, apperr.InvalidQuery("order")
	}
	return f, nil
}

func (s *articleService) List(ctx context.Context, q ArticleQuery) (*models.ArticlePage, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение списка статей",
		zap.String("sort_by", q.SortBy),
		zap.String("order", q.Order),
		zap.String("topic", q.Topic),
		zap.String("author", q.Author),
		zap.Int("limit", q.Page.Limit),
		zap.Int("p", q.Page.Page),
	)

	f, err := BuildArticleFilter(q)
	if err != nil {
		log.Warn("Невалидные параметры списка статей", zap.Error(err))
		return nil, err
	}

	if f.Topic != "" {
		ok, err := s.topics.Exists(ctx, f.Topic)
		if err != nil {
			log.Error("Ошибка проверки темы (repo)", zap.String("topic", f.Topic), zap.Error(err))
			return nil, err
		}
		if !ok {
			log.Warn("Тема для фильтра не найдена", zap.String("topic", f.Topic))
			return nil, apperr.NotFound("topic")
		}
	}
	if f.Author != "" {
		ok, err := s.users.Exists(ctx, f.Author)
		if err != nil {
			log.Error("Ошибка проверки автора (repo)", zap.String("author", f.Author), zap.Error(err))
			return nil, err
		}
		if !ok {
			log.Warn("Автор для фильтра не найден", zap.String("author", f.Author))
			return nil, apperr.NotFound("user")
		}
	}

	list, total, err := s.articles.List(ctx, f)
	if err != nil {
		log.Error("Ошибка получения списка статей (repo)", zap.Error(err))
		return nil, err
	}

	log.Debug("Список статей получен", zap.Int("count", len(list)), zap.Int("total", total))
	return &models.ArticlePage{Articles: list, TotalCount: total}, nil
}

func (s *articleService) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение статьи по ID", zap.Int64("article_id", id))

	a, err := s.articles.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Статья не найдена", zap.Int64("article_id", id))
		return nil, apperr.NotFound("article")
	}
	if err != nil {
		log.Error("Ошибка получения статьи (repo)", zap.Int64("article_id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *articleService) Create(ctx context.Context, req models.CreateArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание статьи",
		zap.String("author", req.Author),
		zap.String("topic", req.Topic),
		zap.String("title", strings.TrimSpace(req.Title)),
	)

	body := s.policy.Sanitize(req.Body)

	var missing []string
	for _, f := range []struct{ name, val string }{
		{"author", req.Author},
		{"title", req.Title},
		{"body", body},
		{"topic", req.Topic},
	} {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		log.Warn("Валидация не пройдена: нет обязательных полей", zap.Strings("missing", missing))
		return nil, apperr.MissingField(missing...)
	}

	if ok, err := s.users.Exists(ctx, req.Author); err != nil {
		log.Error("Ошибка проверки автора (repo)", zap.Error(err))
		return nil, err
	} else if !ok {
		log.Warn("Автор статьи не существует", zap.String("author", req.Author))
		return nil, apperr.ForeignKey("author")
	}
	if ok, err := s.topics.Exists(ctx, req.Topic); err != nil {
		log.Error("Ошибка проверки темы (repo)", zap.Error(err))
		return nil, err
	} else if !ok {
		log.Warn("Тема статьи не существует", zap.String("topic", req.Topic))
		return nil, apperr.ForeignKey("topic")
	}

	img := strings.TrimSpace(req.ArticleImgURL)
	if img == "" {
		img = models.DefaultArticleImgURL
	}

	a := &models.Article{
		Title:         strings.TrimSpace(req.Title),
		Topic:         req.Topic,
		Author:        req.Author,
		Body:          body,
		ArticleImgURL: img,
	}

	created, err := s.articles.Create(ctx, a)
	if err != nil {
		log.Error("Ошибка создания статьи (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("Статья создана", zap.Int64("article_id", created.ID))
	return created, nil
}

func (s *articleService) Vote(ctx context.Context, id int64, delta int) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Голосование за статью", zap.Int64("article_id", id), zap.Int("inc_votes", delta))

	a, err := s.articles.IncrementVotes(ctx, id, delta)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Статья для голосования не найдена", zap.Int64("article_id", id))
		return nil, apperr.NotFound("article")
	}
	if err != nil {
		log.Error("Ошибка обновления голосов (repo)", zap.Int64("article_id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *articleService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление статьи", zap.Int64("article_id", id))

	err := s.articles.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Статья для удаления не найдена", zap.Int64("article_id", id))
		return apperr.NotFound("article")
	}
	if err != nil {
		log.Error("Ошибка удаления статьи (repo)", zap.Int64("article_id", id), zap.Error(err))
		return err
	}

	log.Info("Статья удалена", zap.Int64("article_id", id))
	return nil
}

// normalizePage подставляет значения по умолчанию и режет limit сверху.
func normalizePage(p models.Page) models.Page {
	if p.Limit < 1 {
		p.Limit = models.DefaultLimit
	}
	if p.Limit > models.MaxLimit {
		p.Limit = models.MaxLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}
