package docstore

import (
	"fmt"
	"strconv"
	"time"

	"ncnews/internal/models"
)

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func articleFromHash(h map[string]string) (*models.Article, error) {
	id, err := strconv.ParseInt(h["article_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("article hash: bad article_id %q", h["article_id"])
	}
	votes, _ := strconv.Atoi(h["votes"])
	created, err := time.Parse(time.RFC3339Nano, h["created_at"])
	if err != nil {
		return nil, fmt.Errorf("article %d: bad created_at: %w", id, err)
	}
	return &models.Article{
		ID:            id,
		Title:         h["title"],
		Topic:         h["topic"],
		Author:        h["author"],
		Body:          h["body"],
		CreatedAt:     created,
		Votes:         votes,
		ArticleImgURL: h["article_img_url"],
	}, nil
}

func commentFromHash(h map[string]string) (*models.Comment, error) {
	id, err := strconv.ParseInt(h["comment_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("comment hash: bad comment_id %q", h["comment_id"])
	}
	articleID, _ := strconv.ParseInt(h["article_id"], 10, 64)
	votes, _ := strconv.Atoi(h["votes"])
	created, err := time.Parse(time.RFC3339Nano, h["created_at"])
	if err != nil {
		return nil, fmt.Errorf("comment %d: bad created_at: %w", id, err)
	}
	return &models.Comment{
		ID:        id,
		ArticleID: articleID,
		Author:    h["author"],
		Body:      h["body"],
		Votes:     votes,
		CreatedAt: created,
	}, nil
}

// pairsToMap разбирает ответ HGETALL, пришедший из Lua как плоский массив.
func pairsToMap(flat []string) map[string]string {
	m := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		m[flat[i]] = flat[i+1]
	}
	return m
}
