package docstore

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"ncnews/internal/models"
	"ncnews/internal/repository"

	"github.com/redis/go-redis/v9"
)

type ArticleStore struct {
	rdb *redis.Client
	k   keys
}

func (s *ArticleStore) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	id, err := insertArticleScript.Run(ctx, s.rdb,
		[]string{s.k.user(a.Author), s.k.topic(a.Topic), s.k.articleSeq(), s.k.articles()},
		s.k.prefix, a.Title, a.Topic, a.Author, a.Body, formatTime(created), a.ArticleImgURL, a.Votes,
	).Int64()
	if err != nil {
		return nil, err
	}
	if id < 0 {
		return nil, repository.ErrForeignKey
	}

	return s.GetByID(ctx, id)
}

// List фильтрует по set-индексам, сортирует и режет страницу в памяти процесса.
// total_count - размер отфильтрованного множества.
func (s *ArticleStore) List(ctx context.Context, f models.ArticleFilter) ([]*models.Article, int, error) {
	ids, err := s.filteredIDs(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	articles, err := s.loadMany(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	sortArticles(articles, f.SortBy, f.Desc)

	total := len(articles)
	from := f.Offset()
	if from > total {
		from = total
	}
	to := from + f.Limit
	if to > total {
		to = total
	}
	return articles[from:to], total, nil
}

func (s *ArticleStore) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	list, err := s.loadMany(ctx, []string{strconv.FormatInt(id, 10)})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, repository.ErrNotFound
	}
	return list[0], nil
}

func (s *ArticleStore) IncrementVotes(ctx context.Context, id int64, delta int) (*models.Article, error) {
	flat, err := incrVotesScript.Run(ctx, s.rdb, []string{s.k.article(id)}, delta).StringSlice()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a, err := articleFromHash(pairsToMap(flat))
	if err != nil {
		return nil, err
	}
	n, err := s.rdb.ZCard(ctx, s.k.articleComments(id)).Result()
	if err != nil {
		return nil, err
	}
	a.CommentCount = int(n)
	return a, nil
}

// Delete - один Lua-скрипт: комментарии, индексы и сама статья удаляются атомарно.
func (s *ArticleStore) Delete(ctx context.Context, id int64) error {
	n, err := deleteArticleScript.Run(ctx, s.rdb,
		[]string{s.k.article(id), s.k.articles()},
		s.k.prefix, id,
	).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *ArticleStore) Exists(ctx context.Context, id int64) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.k.article(id)).Result()
	return n == 1, err
}

func (s *ArticleStore) filteredIDs(ctx context.Context, f models.ArticleFilter) ([]string, error) {
	var sets []string
	if f.Topic != "" {
		sets = append(sets, s.k.articlesByTopic(f.Topic))
	}
	if f.Author != "" {
		sets = append(sets, s.k.articlesByAuthor(f.Author))
	}

	switch len(sets) {
	case 0:
		return s.rdb.ZRange(ctx, s.k.articles(), 0, -1).Result()
	case 1:
		return s.rdb.SMembers(ctx, sets[0]).Result()
	default:
		return s.rdb.SInter(ctx, sets...).Result()
	}
}

// loadMany читает документы статей и число комментариев одним pipeline.
func (s *ArticleStore) loadMany(ctx context.Context, ids []string) ([]*models.Article, error) {
	if len(ids) == 0 {
		return []*models.Article{}, nil
	}

	pipe := s.rdb.Pipeline()
	docs := make([]*redis.MapStringStringCmd, len(ids))
	counts := make([]*redis.IntCmd, len(ids))
	for i, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		docs[i] = pipe.HGetAll(ctx, s.k.article(id))
		counts[i] = pipe.ZCard(ctx, s.k.articleComments(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	out := make([]*models.Article, 0, len(ids))
	for i := range ids {
		h := docs[i].Val()
		if len(h) == 0 {
			continue
		}
		a, err := articleFromHash(h)
		if err != nil {
			return nil, err
		}
		a.CommentCount = int(counts[i].Val())
		out = append(out, a)
	}
	return out, nil
}

// sortArticles - стабильный порядок: при равенстве ключа сравниваем article_id в том же направлении.
func sortArticles(list []*models.Article, by models.SortColumn, desc bool) {
	cmp := func(a, b *models.Article) int {
		switch by {
		case models.SortByTitle:
			return strings.Compare(a.Title, b.Title)
		case models.SortByTopic:
			return strings.Compare(a.Topic, b.Topic)
		case models.SortByAuthor:
			return strings.Compare(a.Author, b.Author)
		case models.SortByVotes:
			return a.Votes - b.Votes
		case models.SortByCommentCount:
			return a.CommentCount - b.CommentCount
		case models.SortByID:
			return 0
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		c := cmp(list[i], list[j])
		if c == 0 {
			if desc {
				return list[i].ID > list[j].ID
			}
			return list[i].ID < list[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}
