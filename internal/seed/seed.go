// Package seed наполняет хранилище тестовыми данными (темы, пользователи, статьи, комментарии).
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"ncnews/internal/logger"
	"ncnews/internal/models"
	"ncnews/internal/repository"
	"ncnews/internal/services"

	"go.uber.org/zap"
)

//go:embed data/*.json
var dataFS embed.FS

type articleRow struct {
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	Author        string    `json:"author"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
}

// Комментарий ссылается на статью по заголовку: id появляются только при вставке.
type commentRow struct {
	ArticleTitle string    `json:"article_title"`
	Author       string    `json:"author"`
	Body         string    `json:"body"`
	Votes        int       `json:"votes"`
	CreatedAt    time.Time `json:"created_at"`
}

type Data struct {
	Topics   []models.Topic
	Users    []models.User
	Articles []articleRow
	Comments []commentRow
}

// Load читает встроенный набор данных.
func Load() (*Data, error) {
	d := &Data{}
	files := []struct {
		name string
		dst  any
	}{
		{"data/topics.json", &d.Topics},
		{"data/users.json", &d.Users},
		{"data/articles.json", &d.Articles},
		{"data/comments.json", &d.Comments},
	}
	for _, f := range files {
		raw, err := dataFS.ReadFile(f.name)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return d, nil
}

// Seed очищает хранилище и заливает данные заново.
func Seed(ctx context.Context, store *repository.Store, d *Data) error {
	log := logger.WithCtx(ctx)

	if err := store.Admin.Reset(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	log.Info("Хранилище очищено")

	topics := services.NewTopicService(store.Topics)
	for i := range d.Topics {
		if _, err := topics.Create(ctx, &d.Topics[i]); err != nil {
			return fmt.Errorf("topic %q: %w", d.Topics[i].Slug, err)
		}
	}

	users := services.NewUserService(store.Users)
	for i := range d.Users {
		if _, err := users.Create(ctx, &d.Users[i]); err != nil {
			return fmt.Errorf("user %q: %w", d.Users[i].Username, err)
		}
	}

	ids := make(map[string]int64, len(d.Articles))
	for _, row := range d.Articles {
		a, err := store.Articles.Create(ctx, &models.Article{
			Title:         row.Title,
			Topic:         row.Topic,
			Author:        row.Author,
			Body:          row.Body,
			CreatedAt:     row.CreatedAt,
			Votes:         row.Votes,
			ArticleImgURL: row.ArticleImgURL,
		})
		if err != nil {
			return fmt.Errorf("article %q: %w", row.Title, err)
		}
		ids[row.Title] = a.ID
	}

	for _, row := range d.Comments {
		articleID, ok := ids[row.ArticleTitle]
		if !ok {
			return fmt.Errorf("comment references unknown article %q", row.ArticleTitle)
		}
		if _, err := store.Comments.Create(ctx, &models.Comment{
			ArticleID: articleID,
			Author:    row.Author,
			Body:      row.Body,
			Votes:     row.Votes,
			CreatedAt: row.CreatedAt,
		}); err != nil {
			return fmt.Errorf("comment on %q: %w", row.ArticleTitle, err)
		}
	}

	log.Info("Данные загружены",
		zap.Int("topics", len(d.Topics)),
		zap.Int("users", len(d.Users)),
		zap.Int("articles", len(d.Articles)),
		zap.Int("comments", len(d.Comments)),
	)
	return nil
}
