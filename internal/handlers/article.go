package handlers

import (
	"net/http"

	"ncnews/internal/logger"
	"ncnews/internal/models"
	"ncnews/internal/services"
	"ncnews/internal/utils/helpers"

	"go.uber.org/zap"
)

type ArticleHandler struct {
	svc services.ArticleService
}

func NewArticleHandler(svc services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

type articleResponse struct {
	Article *models.Article `json:"article"`
}

// GetAll
// @Summary      Список статей
// @Description  Фильтр по теме и автору, сортировка по белому списку колонок, offset-пагинация.
// @Tags         articles
// @Produce      json
// @Param        sort_by  query  string  false  "article_id|title|topic|author|created_at|votes|comment_count"
// @Param        order    query  string  false  "asc|desc"
// @Param        topic    query  string  false  "slug темы"
// @Param        author   query  string  false  "username автора"
// @Param        limit    query  int     false  "размер страницы (по умолчанию 10, максимум 100)"
// @Param        p        query  int     false  "номер страницы (с 1)"
// @Success      200  {object}  models.ArticlePage
// @Failure      400  {object}  helpers.ErrorResponse
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/articles [get]
func (h *ArticleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := allowParams(q, "sort_by", "order", "topic", "author", "limit", "p"); err != nil {
		helpers.Fail(w, r, err)
		return
	}
	page, err := parsePage(q)
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}

	out, err := h.svc.List(r.Context(), services.ArticleQuery{
		SortBy: q.Get("sort_by"),
		Order:  q.Get("order"),
		Topic:  q.Get("topic"),
		Author: q.Get("author"),
		Page:   page,
	})
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, out)
}

// GetByID
// @Summary      Статья по ID
// @Tags         articles
// @Produce      json
// @Param        article_id  path  int  true  "ID статьи"
// @Success      200  {object}  articleResponse
// @Failure      400  {object}  helpers.ErrorResponse
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/articles/{article_id} [get]
func (h *ArticleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	a, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, articleResponse{Article: a})
}

// Create
// @Summary      Создать статью
// @Description  author и topic должны существовать; article_img_url необязателен.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body  models.CreateArticleRequest  true  "Данные статьи"
// @Success      201  {object}  articleResponse
// @Failure      400  {object}  helpers.ErrorResponse
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидный JSON при создании статьи")
		helpers.Fail(w, r, err)
		return
	}

	a, err := h.svc.Create(r.Context(), req)
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("Статья успешно создана", zap.Int64("article_id", a.ID))
	helpers.JSON(w, http.StatusCreated, articleResponse{Article: a})
}

// Vote
// @Summary      Изменить голоса статьи
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        article_id  path  int                  true  "ID статьи"
// @Param        body        body  models.VotesRequest  true  "Приращение голосов"
// @Success      200  {object}  articleResponse
// @Failure      400  {object}  helpers.ErrorResponse
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/articles/{article_id} [patch]
func (h *ArticleHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	delta, err := decodeVotes(r)
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}

	a, err := h.svc.Vote(r.Context(), id, delta)
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, articleResponse{Article: a})
}

// Delete
// @Summary      Удалить статью вместе с комментариями
// @Tags         articles
// @Param        article_id  path  int  true  "ID статьи"
// @Success      204
// @Failure      400  {object}  helpers.ErrorResponse
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/articles/{article_id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		helpers.Fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
