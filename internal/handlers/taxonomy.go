package handlers

import (
	"net/http"

	"ncnews/internal/models"
	"ncnews/internal/services"
	"ncnews/internal/utils/helpers"

	"github.com/gorilla/mux"
)

type TaxonomyHandler struct {
	topics *services.TopicService
	users  *services.UserService
}

func NewTaxonomyHandler(topics *services.TopicService, users *services.UserService) *TaxonomyHandler {
	return &TaxonomyHandler{topics: topics, users: users}
}

// ListTopics
// @Summary  Все темы
// @Tags     topics
// @Produce  json
// @Success  200  {object}  map[string][]models.Topic
// @Router   /api/topics [get]
func (h *TaxonomyHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	list, err := h.topics.List(r.Context())
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, map[string][]*models.Topic{"topics": list})
}

// CreateTopic
// @Summary  Создать тему
// @Tags     topics
// @Accept   json
// @Produce  json
// @Param    body  body  models.Topic  true  "slug и description"
// @Success  201  {object}  map[string]models.Topic
// @Failure  400  {object}  helpers.ErrorResponse
// @Router   /api/topics [post]
func (h *TaxonomyHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var t models.Topic
	if err := decodeJSON(r, &t); err != nil {
		helpers.Fail(w, r, err)
		return
	}
	created, err := h.topics.Create(r.Context(), &t)
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, map[string]*models.Topic{"topic": created})
}

// ListUsers
// @Summary  Все пользователи
// @Tags     users
// @Produce  json
// @Success  200  {object}  map[string][]models.User
// @Router   /api/users [get]
func (h *TaxonomyHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context())
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, map[string][]*models.User{"users": list})
}

// GetUser
// @Summary  Пользователь по username
// @Tags     users
// @Produce  json
// @Param    username  path  string  true  "username"
// @Success  200  {object}  map[string]models.User
// @Failure  404  {object}  helpers.ErrorResponse
// @Router   /api/users/{username} [get]
func (h *TaxonomyHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		helpers.Fail(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]*models.User{"user": u})
}
