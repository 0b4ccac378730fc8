package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ncnews/internal/config"
	"ncnews/internal/db"
	"ncnews/internal/docstore"
	"ncnews/internal/handlers"
	"ncnews/internal/logger"
	"ncnews/internal/middleware"
	"ncnews/internal/repository"
	"ncnews/internal/routes"
	"ncnews/internal/services"
	"ncnews/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// OpenStore подключается к хранилищу из cfg.Store. Второе значение закрывает соединение.
func OpenStore(ctx context.Context, cfg *config.Config) (*repository.Store, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		rdb, err := db.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return docstore.NewStore(rdb), func() { _ = rdb.Close() }, nil
	case config.StorePostgres, "":
		pool, err := db.NewPostgresConnection(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("неизвестное хранилище STORE=%q", cfg.Store)
	}
}

func InitApp(ctx context.Context, cfg *config.Config) (*mux.Router, func(), error) {
	store, closeFn, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Log.Info("Хранилище подключено", zap.String("store", cfg.Store))
	return NewRouter(store), closeFn, nil
}

// NewRouter собирает репозитории → сервисы → хендлеры → маршруты поверх готового хранилища.
func NewRouter(store *repository.Store) *mux.Router {
	// Сервисы
	articleSvc := services.NewArticleService(store.Articles, store.Topics, store.Users)
	commentSvc := services.NewCommentService(store.Comments, store.Articles, store.Users)
	topicSvc := services.NewTopicService(store.Topics)
	userSvc := services.NewUserService(store.Users)

	// Хендлеры
	articleH := handlers.NewArticleHandler(articleSvc)
	commentH := handlers.NewCommentHandler(commentSvc)
	taxonomyH := handlers.NewTaxonomyHandler(topicSvc, userSvc)

	router := mux.NewRouter()
	routes.InitRoutes(router, articleH, commentH, taxonomyH, middleware.NewMetrics(), healthHandler(store.Admin))
	return router
}

func healthHandler(admin repository.Admin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := admin.Ping(ctx); err != nil {
			logger.WithCtx(r.Context()).Warn("Хранилище недоступно", zap.Error(err))
			helpers.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		helpers.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
