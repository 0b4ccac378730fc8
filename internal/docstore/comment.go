package docstore

import (
	"context"
	"errors"
	"strconv"
	"time"

	"ncnews/internal/models"
	"ncnews/internal/repository"

	"github.com/redis/go-redis/v9"
)

type CommentStore struct {
	rdb *redis.Client
	k   keys
}

func (s *CommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	created := c.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	id, err := insertCommentScript.Run(ctx, s.rdb,
		[]string{s.k.article(c.ArticleID), s.k.user(c.Author), s.k.commentSeq()},
		s.k.prefix, c.ArticleID, c.Author, c.Body, formatTime(created), created.UnixMilli(), c.Votes,
	).Int64()
	if err != nil {
		return nil, err
	}
	switch id {
	case -1:
		return nil, repository.ErrNotFound
	case -2:
		return nil, repository.ErrForeignKey
	}

	h, err := s.rdb.HGetAll(ctx, s.k.comment(id)).Result()
	if err != nil {
		return nil, err
	}
	return commentFromHash(h)
}

// ListByArticle: новые комментарии первыми (score - created_at в миллисекундах,
// при равном времени больший comment_id раньше).
func (s *CommentStore) ListByArticle(ctx context.Context, articleID int64, p models.Page) ([]*models.Comment, int, error) {
	key := s.k.articleComments(articleID)

	total, err := s.rdb.ZCard(ctx, key).Result()
	if err != nil {
		return nil, 0, err
	}

	start := int64(p.Offset())
	ids, err := s.rdb.ZRevRange(ctx, key, start, start+int64(p.Limit)-1).Result()
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []*models.Comment{}, int(total), nil
	}

	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, err
		}
		cmds[i] = pipe.HGetAll(ctx, s.k.comment(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, err
	}

	list := make([]*models.Comment, 0, len(ids))
	for _, cmd := range cmds {
		h := cmd.Val()
		if len(h) == 0 {
			continue
		}
		c, err := commentFromHash(h)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	return list, int(total), nil
}

func (s *CommentStore) IncrementVotes(ctx context.Context, id int64, delta int) (*models.Comment, error) {
	flat, err := incrVotesScript.Run(ctx, s.rdb, []string{s.k.comment(id)}, delta).StringSlice()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return commentFromHash(pairsToMap(flat))
}

func (s *CommentStore) Delete(ctx context.Context, id int64) error {
	n, err := deleteCommentScript.Run(ctx, s.rdb, []string{s.k.comment(id)}, s.k.prefix, commentMember(id)).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
