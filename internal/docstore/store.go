// Package docstore - документное хранилище на Redis: каждая сущность лежит в своём hash,
// связи и индексы поддерживаются sets/zsets. Операции, затрагивающие несколько ключей,
// выполняются Lua-скриптами, поэтому атомарны.
package docstore

import (
	"context"
	"fmt"
	"strconv"

	"ncnews/internal/repository"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "ncnews:"

type keys struct{ prefix string }

func (k keys) topic(slug string) string { return k.prefix + "topic:" + slug }
func (k keys) topics() string { return k.prefix + "topics" }
func (k keys) user(username string) string { return k.prefix + "user:" + username }
func (k keys) users() string { return k.prefix + "users" }
func (k keys) article(id int64) string { return k.prefix + "article:" + strconv.FormatInt(id, 10) }
func (k keys) articles() string { return k.prefix + "articles" }
func (k keys) articleComments(id int64) string { return k.article(id) + ":comments" }
func (k keys) articlesByTopic(slug string) string { return k.prefix + "articles:topic:" + slug }
func (k keys) articlesByAuthor(u string) string { return k.prefix + "articles:author:" + u }
func (k keys) comment(id int64) string { return k.prefix + "comment:" + strconv.FormatInt(id, 10) }
func (k keys) articleSeq() string { return k.prefix + "seq:article" }
func (k keys) commentSeq() string { return k.prefix + "seq:comment" }

// commentMember - id комментария в zset статьи, в том же виде, что пишет insertCommentScript.
func commentMember(id int64) string { return fmt.Sprintf("%020d", id) }

// NewStore собирает все репозитории поверх одного клиента.
func NewStore(rdb *redis.Client) *repository.Store {
	return NewStoreWithPrefix(rdb, defaultPrefix)
}

func NewStoreWithPrefix(rdb *redis.Client, prefix string) *repository.Store {
	k := keys{prefix: prefix}
	return &repository.Store{
		Topics:   &TopicStore{rdb: rdb, k: k},
		Users:    &UserStore{rdb: rdb, k: k},
		Articles: &ArticleStore{rdb: rdb, k: k},
		Comments: &CommentStore{rdb: rdb, k: k},
		Admin:    &admin{rdb: rdb, k: k},
	}
}

type admin struct {
	rdb *redis.Client
	k   keys
}

func (a *admin) Ping(ctx context.Context) error { return a.rdb.Ping(ctx).Err() }

// Reset удаляет все ключи приложения (по префиксу), чужие ключи не трогает.
func (a *admin) Reset(ctx context.Context) error {
	iter := a.rdb.Scan(ctx, 0, a.k.prefix+"*", 500).Iterator()
	batch := make([]string, 0, 500)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := a.rdb.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return a.rdb.Del(ctx, batch...).Err()
	}
	return nil
}
