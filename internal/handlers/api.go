package handlers

import (
	"net/http"

	"ncnews/internal/apperr"
	"ncnews/internal/utils/helpers"
)

type endpoint struct {
	Description string   `json:"description"`
	Queries     []string `json:"queries,omitempty"`
	Body        any      `json:"exampleBody,omitempty"`
}

var endpoints = map[string]endpoint{
	"GET /api": {
		Description: "serves up a json representation of all the available endpoints of the api",
	},
	"GET /api/topics": {
		Description: "serves an array of all topics",
	},
	"POST /api/topics": {
		Description: "adds a topic",
		Body:        map[string]string{"slug": "coding", "description": "Code is love, code is life"},
	},
	"GET /api/articles": {
		Description: "serves a page of articles with total_count",
		Queries:     []string{"sort_by", "order", "topic", "author", "limit", "p"},
	},
	"POST /api/articles": {
		Description: "adds an article; article_img_url is optional",
		Body:        map[string]string{"author": "butter_bridge", "title": "Living in the shadow of a great man", "body": "I find this existence challenging", "topic": "mitch"},
	},
	"GET /api/articles/:article_id": {
		Description: "serves an article by id with its comment_count",
	},
	"PATCH /api/articles/:article_id": {
		Description: "increments article votes",
		Body:        map[string]int{"inc_votes": 1},
	},
	"DELETE /api/articles/:article_id": {
		Description: "deletes an article and its comments",
	},
	"GET /api/articles/:article_id/comments": {
		Description: "serves a page of comments for an article, newest first, with total_count",
		Queries:     []string{"limit", "p"},
	},
	"POST /api/articles/:article_id/comments": {
		Description: "adds a comment to an article",
		Body:        map[string]string{"author": "butter_bridge", "body": "Great read!"},
	},
	"PATCH /api/comments/:comment_id": {
		Description: "increments comment votes",
		Body:        map[string]int{"inc_votes": -1},
	},
	"DELETE /api/comments/:comment_id": {
		Description: "deletes a comment",
	},
	"GET /api/users": {
		Description: "serves an array of all users",
	},
	"GET /api/users/:username": {
		Description: "serves a user by username with properties username, name and avatar_url",
	},
}

// Endpoints
// @Summary  Описание всех эндпоинтов
// @Tags     api
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Router   /api [get]
func Endpoints(w http.ResponseWriter, r *http.Request) {
	helpers.JSON(w, http.StatusOK, endpoints)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	helpers.Error(w, http.StatusNotFound, apperr.MsgNotFound)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	helpers.Error(w, http.StatusMethodNotAllowed, apperr.MsgMethodNotAllowed)
}
