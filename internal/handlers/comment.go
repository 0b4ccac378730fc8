package handlers

import (
	"net/http"

	"ncnews/internal/models"
	"ncnews/internal/services"
	"ncnews/internal/utils/helpers"
)

type CommentHandler struct {
	svc services.CommentService
}

func NewCommentHandler(svc services.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type commentResponse struct {
	Comment *models.Comment `json:"comment"`
}

// ListByArticle
// @Summary      Комментарии статьи
// @Description  Новые первыми. Пустая страница у существующей статьи - 404.
// @Tags         comments
// @Produce      json
// @Param        article_id  path   int  true   "ID статьи"
// @Param        limit       query  int  false  "размер страницы"
// @Param        p           query  int  false  "номер страницы"
// @Success      200  {object}  models.CommentPage
// @Failure      400  {object}  helpers.ErrorResponse
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/articles/{article_id}/comments [get]
func (h *CommentHandler) ListByArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	q := r.URL.Query()
	if err := allowParams(q, "limit", "p"); err != nil {
		helpers.Fail(w, r, err)
		return
	}
	page, err := parsePage(q)
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}

	out, err := h.svc.ListByArticle(r.Context(), id, page)
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, out)
}

// Create
// @Summary      Добавить комментарий
// @Description  Вместо author можно передать username.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        article_id  path  int                          true  "ID статьи"
// @Param        body        body  models.CreateCommentRequest  true  "Комментарий"
// @Success      201  {object}  commentResponse
// @Failure      400  {object}  helpers.ErrorResponse
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/articles/{article_id}/comments [post]
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article_id")
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	var req models.CreateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		helpers.Fail(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), id, req)
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, commentResponse{Comment: c})
}

// Vote
// @Summary      Изменить голоса комментария
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        comment_id  path  int                  true  "ID комментария"
// @Param        body        body  models.VotesRequest  true  "Приращение голосов"
// @Success      200  {object}  commentResponse
// @Failure      400  {object}  helpers.ErrorResponse
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/comments/{comment_id} [patch]
func (h *CommentHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "comment_id")
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	delta, err := decodeVotes(r)
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}

	c, err := h.svc.Vote(r.Context(), id, delta)
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, commentResponse{Comment: c})
}

// Delete
// @Summary      Удалить комментарий
// @Tags         comments
// @Param        comment_id  path  int  true  "ID комментария"
// @Success      204
// @Failure      404  {object}  helpers.ErrorResponse
// @Router       /api/comments/{comment_id} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "comment_id")
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
