package docstore

import (
	"context"
	"errors"
	"sort"

	"ncnews/internal/models"
	"ncnews/internal/repository"

	"github.com/redis/go-redis/v9"
)

type TopicStore struct {
	rdb *redis.Client
	k   keys
}

// Create - slug служит ключом документа; повтор даёт ErrDuplicate, а не перезапись.
func (s *TopicStore) Create(ctx context.Context, t *models.Topic) (*models.Topic, error) {
	ok, err := insertIfAbsentScript.Run(ctx, s.rdb,
		[]string{s.k.topic(t.Slug), s.k.topics()},
		t.Slug, "slug", t.Slug, "description", t.Description,
	).Int()
	if err != nil {
		return nil, err
	}
	if ok == 0 {
		return nil, repository.ErrDuplicate
	}
	out := *t
	return &out, nil
}

func (s *TopicStore) List(ctx context.Context) ([]*models.Topic, error) {
	hashes, err := loadIndexed(ctx, s.rdb, s.k.topics(), s.k.topic)
	if err != nil {
		return nil, err
	}
	list := make([]*models.Topic, 0, len(hashes))
	for _, h := range hashes {
		list = append(list, &models.Topic{Slug: h["slug"], Description: h["description"]})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Slug < list[j].Slug })
	return list, nil
}

func (s *TopicStore) GetBySlug(ctx context.Context, slug string) (*models.Topic, error) {
	h, err := s.rdb.HGetAll(ctx, s.k.topic(slug)).Result()
	if err != nil {
		return nil, err
	}
	if len(h) == 0 {
		return nil, repository.ErrNotFound
	}
	return &models.Topic{Slug: h["slug"], Description: h["description"]}, nil
}

func (s *TopicStore) Exists(ctx context.Context, slug string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.k.topic(slug)).Result()
	return n == 1, err
}

// loadIndexed читает все hash-документы, перечисленные в set-индексе, одним pipeline.
func loadIndexed(ctx context.Context, rdb *redis.Client, index string, key func(string) string) ([]map[string]string, error) {
	ids, err := rdb.SMembers(ctx, index).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, key(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	out := make([]map[string]string, 0, len(ids))
	for _, cmd := range cmds {
		if h := cmd.Val(); len(h) > 0 {
			out = append(out, h)
		}
	}
	return out, nil
}
