package docstore

import "github.com/redis/go-redis/v9"

// KEYS[1] - hash сущности, KEYS[2] - индекс; ARGV[1] - идентификатор, далее пары поле/значение.
// 0 - ключ уже занят.
var insertIfAbsentScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then return 0 end
redis.call('HSET', KEYS[1], unpack(ARGV, 2))
redis.call('SADD', KEYS[2], ARGV[1])
return 1
`)

// KEYS: user, topic, seq, articles zset. ARGV: prefix, title, topic, author, body, created_at, img, votes.
// -1 - нет автора, -2 - нет темы, иначе id новой статьи.
var insertArticleScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then return -1 end
if redis.call('EXISTS', KEYS[2]) == 0 then return -2 end
local id = redis.call('INCR', KEYS[3])
local key = ARGV[1] .. 'article:' .. id
redis.call('HSET', key, 'article_id', id, 'title', ARGV[2], 'topic', ARGV[3], 'author', ARGV[4],
  'body', ARGV[5], 'created_at', ARGV[6], 'votes', ARGV[8], 'article_img_url', ARGV[7])
redis.call('ZADD', KEYS[4], id, id)
redis.call('SADD', ARGV[1] .. 'articles:topic:' .. ARGV[3], id)
redis.call('SADD', ARGV[1] .. 'articles:author:' .. ARGV[4], id)
return id
`)

// KEYS: article, user, seq. ARGV: prefix, article_id, author, body, created_at, score, votes.
// -1 - нет статьи, -2 - нет автора, иначе id комментария.
// Член zset дополнен нулями до 20 знаков: при равном score ZREVRANGE сравнивает
// строки, и так порядок совпадает с comment_id DESC.
var insertCommentScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then return -1 end
if redis.call('EXISTS', KEYS[2]) == 0 then return -2 end
local id = redis.call('INCR', KEYS[3])
redis.call('HSET', ARGV[1] .. 'comment:' .. id, 'comment_id', id, 'article_id', ARGV[2], 'author', ARGV[3],
  'body', ARGV[4], 'votes', ARGV[7], 'created_at', ARGV[5])
redis.call('ZADD', KEYS[1] .. ':comments', ARGV[6], string.format('%020d', id))
return id
`)

// Атомарный инкремент только существующего документа; nil - документа нет.
var incrVotesScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then return false end
redis.call('HINCRBY', KEYS[1], 'votes', ARGV[1])
return redis.call('HGETALL', KEYS[1])
`)

// KEYS: article, articles zset. ARGV: prefix, id. Каскадно удаляет комментарии статьи.
var deleteArticleScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then return 0 end
local topic = redis.call('HGET', KEYS[1], 'topic')
local author = redis.call('HGET', KEYS[1], 'author')
local comments = KEYS[1] .. ':comments'
for _, cid in ipairs(redis.call('ZRANGE', comments, 0, -1)) do
  redis.call('DEL', ARGV[1] .. 'comment:' .. tonumber(cid))
end
redis.call('DEL', comments, KEYS[1])
redis.call('ZREM', KEYS[2], ARGV[2])
redis.call('SREM', ARGV[1] .. 'articles:topic:' .. topic, ARGV[2])
redis.call('SREM', ARGV[1] .. 'articles:author:' .. author, ARGV[2])
return 1
`)

// KEYS: comment. ARGV: prefix, член zset (commentMember).
var deleteCommentScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then return 0 end
local aid = redis.call('HGET', KEYS[1], 'article_id')
redis.call('ZREM', ARGV[1] .. 'article:' .. aid .. ':comments', ARGV[2])
redis.call('DEL', KEYS[1])
return 1
`)
