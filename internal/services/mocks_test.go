package services

import (
	"context"
	"sort"

	"ncnews/internal/models"
	"ncnews/internal/repository"
)

// Мок-репозитории (заглушки) в памяти.

type mockTopicRepo struct {
	topics map[string]*models.Topic
	err    error
}

func newMockTopicRepo(slugs ...string) *mockTopicRepo {
	m := &mockTopicRepo{topics: map[string]*models.Topic{}}
	for _, s := range slugs {
		m.topics[s] = &models.Topic{Slug: s, Description: s + " desc"}
	}
	return m
}

func (m *mockTopicRepo) Create(_ context.Context, t *models.Topic) (*models.Topic, error) {
	if _, ok := m.topics[t.Slug]; ok {
		return nil, repository.ErrDuplicate
	}
	m.topics[t.Slug] = t
	return t, nil
}

func (m *mockTopicRepo) List(_ context.Context) ([]*models.Topic, error) {
	out := []*models.Topic{}
	for _, t := range m.topics {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (m *mockTopicRepo) GetBySlug(_ context.Context, slug string) (*models.Topic, error) {
	t, ok := m.topics[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (m *mockTopicRepo) Exists(_ context.Context, slug string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.topics[slug]
	return ok, nil
}

type mockUserRepo struct {
	users map[string]*models.User
}

func newMockUserRepo(names ...string) *mockUserRepo {
	m := &mockUserRepo{users: map[string]*models.User{}}
	for _, n := range names {
		m.users[n] = &models.User{Username: n, Name: n}
	}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if _, ok := m.users[u.Username]; ok {
		return nil, repository.ErrDuplicate
	}
	m.users[u.Username] = u
	return u, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]*models.User, error) {
	out := []*models.User{}
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) Exists(_ context.Context, username string) (bool, error) {
	_, ok := m.users[username]
	return ok, nil
}

type mockArticleRepo struct {
	articles   map[int64]*models.Article
	nextID     int64
	lastFilter models.ArticleFilter
	listCalls  int
}

func newMockArticleRepo() *mockArticleRepo {
	return &mockArticleRepo{articles: map[int64]*models.Article{}}
}

func (m *mockArticleRepo) Create(_ context.Context, a *models.Article) (*models.Article, error) {
	m.nextID++
	cp := *a
	cp.ID = m.nextID
	m.articles[cp.ID] = &cp
	return &cp, nil
}

func (m *mockArticleRepo) List(_ context.Context, f models.ArticleFilter) ([]*models.Article, int, error) {
	m.lastFilter = f
	m.listCalls++
	out := []*models.Article{}
	for _, a := range m.articles {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (m *mockArticleRepo) GetByID(_ context.Context, id int64) (*models.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (m *mockArticleRepo) IncrementVotes(_ context.Context, id int64, delta int) (*models.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.Votes += delta
	return a, nil
}

func (m *mockArticleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.articles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.articles, id)
	return nil
}

func (m *mockArticleRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.articles[id]
	return ok, nil
}

type mockCommentRepo struct {
	comments  map[int64]*models.Comment
	nextID    int64
	lastPage  models.Page
	createErr error
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: map[int64]*models.Comment{}}
}

func (m *mockCommentRepo) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	cp := *c
	cp.ID = m.nextID
	m.comments[cp.ID] = &cp
	return &cp, nil
}

func (m *mockCommentRepo) ListByArticle(_ context.Context, articleID int64, p models.Page) ([]*models.Comment, int, error) {
	m.lastPage = p
	out := []*models.Comment{}
	for _, c := range m.comments {
		if c.ArticleID == articleID {
			out = append(out, c)
		}
	}
	total := len(out)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	from := p.Offset()
	if from > total {
		from = total
	}
	to := from + p.Limit
	if to > total {
		to = total
	}
	return out[from:to], total, nil
}

func (m *mockCommentRepo) IncrementVotes(_ context.Context, id int64, delta int) (*models.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Votes += delta
	return c, nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}
