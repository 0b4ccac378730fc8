package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "ncnews/docs"
	"ncnews/internal/app"
	"ncnews/internal/config"
	"ncnews/internal/db"
	"ncnews/internal/logger"
	"ncnews/internal/seed"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ncnews",
	Short: "NC News API: статьи, комментарии, темы и пользователи",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("ошибка загрузки конфига: %w", err)
		}
		logger.InitLogger(cfg)

		warnings, err := cfg.Validate()
		for _, w := range warnings {
			logger.Log.Warn("Конфигурация", zap.String("warning", w))
		}
		return err
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP-сервер",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Миграции схемы PostgreSQL",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Применить все миграции",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(true)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Откатить все миграции",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(false)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Очистить хранилище и загрузить тестовые данные",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// @title          NC News API
// @version        1.0
// @description    Статьи, комментарии, темы и пользователи. Хранилище: PostgreSQL или Redis.
// @BasePath       /
func main() {
	defer func() { _ = logger.Log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe() error {
	router, closeStore, err := app.InitApp(rootCmd.Context(), cfg)
	if err != nil {
		logger.Log.Error("Ошибка инициализации приложения", zap.Error(err))
		return err
	}
	defer closeStore()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsMiddleware.Handler(router),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Сервер запущен", zap.String("port", cfg.Port), zap.String("store", cfg.Store))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Ошибка запуска сервера", zap.Error(err))
			return err
		}
		return nil
	case <-rootCmd.Context().Done():
	}

	logger.Log.Info("Остановка сервера")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func runMigrate(up bool) error {
	if cfg.Store != config.StorePostgres {
		return fmt.Errorf("миграции нужны только для STORE=%s", config.StorePostgres)
	}
	logger.Log.Info("Миграции", zap.Bool("up", up), zap.String("dsn", cfg.GetDSNSafe()))
	if err := db.Migrate(cfg.GetDSN(), up); err != nil {
		logger.Log.Error("Ошибка миграции", zap.Error(err))
		return err
	}
	logger.Log.Info("Миграции выполнены")
	return nil
}

func runSeed(ctx context.Context) error {
	store, closeStore, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	data, err := seed.Load()
	if err != nil {
		return err
	}
	if err := seed.Seed(ctx, store, data); err != nil {
		logger.Log.Error("Ошибка загрузки данных", zap.Error(err))
		return err
	}
	return nil
}
