package docstore

import (
	"context"
	"sort"

	"ncnews/internal/models"
	"ncnews/internal/repository"

	"github.com/redis/go-redis/v9"
)

type UserStore struct {
	rdb *redis.Client
	k   keys
}

func (s *UserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	ok, err := insertIfAbsentScript.Run(ctx, s.rdb,
		[]string{s.k.user(u.Username), s.k.users()},
		u.Username, "username", u.Username, "name", u.Name, "avatar_url", u.AvatarURL,
	).Int()
	if err != nil {
		return nil, err
	}
	if ok == 0 {
		return nil, repository.ErrDuplicate
	}
	out := *u
	return &out, nil
}

func (s *UserStore) List(ctx context.Context) ([]*models.User, error) {
	hashes, err := loadIndexed(ctx, s.rdb, s.k.users(), s.k.user)
	if err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, len(hashes))
	for _, h := range hashes {
		users = append(users, userFromHash(h))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	h, err := s.rdb.HGetAll(ctx, s.k.user(username)).Result()
	if err != nil {
		return nil, err
	}
	if len(h) == 0 {
		return nil, repository.ErrNotFound
	}
	return userFromHash(h), nil
}

func (s *UserStore) Exists(ctx context.Context, username string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.k.user(username)).Result()
	return n == 1, err
}

func userFromHash(h map[string]string) *models.User {
	return &models.User{Username: h["username"], Name: h["name"], AvatarURL: h["avatar_url"]}
}
