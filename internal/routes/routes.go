package routes

import (
	"net/http"

	"ncnews/internal/handlers"
	"ncnews/internal/middleware"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

func InitRoutes(
	router *mux.Router,
	articleH *handlers.ArticleHandler,
	commentH *handlers.CommentHandler,
	taxonomyH *handlers.TaxonomyHandler,
	metrics *middleware.Metrics,
	health http.HandlerFunc,
) {
	router.Use(middleware.RequestID, middleware.Recoverer, middleware.Logging, metrics.Middleware)

	router.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", health).Methods(http.MethodGet)
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("", handlers.Endpoints).Methods(http.MethodGet)

	api.HandleFunc("/topics", taxonomyH.ListTopics).Methods(http.MethodGet)
	api.HandleFunc("/topics", taxonomyH.CreateTopic).Methods(http.MethodPost)

	api.HandleFunc("/users", taxonomyH.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{username}", taxonomyH.GetUser).Methods(http.MethodGet)

	// id в пути без регулярки: нечисловой id должен давать 400, а не 404
	api.HandleFunc("/articles", articleH.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/articles", articleH.Create).Methods(http.MethodPost)
	api.HandleFunc("/articles/{article_id}", articleH.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/articles/{article_id}", articleH.Vote).Methods(http.MethodPatch)
	api.HandleFunc("/articles/{article_id}", articleH.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/articles/{article_id}/comments", commentH.ListByArticle).Methods(http.MethodGet)
	api.HandleFunc("/articles/{article_id}/comments", commentH.Create).Methods(http.MethodPost)
	api.HandleFunc("/comments/{comment_id}", commentH.Vote).Methods(http.MethodPatch)
	api.HandleFunc("/comments/{comment_id}", commentH.Delete).Methods(http.MethodDelete)
}
