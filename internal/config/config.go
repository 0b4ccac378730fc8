package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	Port  string
	Store string // postgres|redis

	DatabaseURL string
	DbHost      string
	DbPort      string
	DbUser      string
	DbPass      string
	DbName      string
	DbSSLMode   string

	RedisURL string

	Log      string
	LogLevel string
	Env      string // dev|prod

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	CORSOrigins      []string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует: logger инициализируется уже из конфига.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	readTimeout, err := time.ParseDuration(def(os.Getenv("HTTP_READ_TIMEOUT"), "10s"))
	if err != nil {
		return nil, fmt.Errorf("HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(def(os.Getenv("HTTP_WRITE_TIMEOUT"), "15s"))
	if err != nil {
		return nil, fmt.Errorf("HTTP_WRITE_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:  def(os.Getenv("PORT"), "9090"),
		Store: strings.ToLower(def(os.Getenv("STORE"), StorePostgres)),

		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DbHost:      os.Getenv("DB_HOST"),
		DbPort:      def(os.Getenv("DB_PORT"), "5432"),
		DbUser:      os.Getenv("DB_USER"),
		DbPass:      os.Getenv("DB_PASSWORD"),
		DbName:      os.Getenv("DB_NAME"),
		DbSSLMode:   def(os.Getenv("DB_SSLMODE"), "disable"),

		RedisURL: def(os.Getenv("REDIS_URL"), "redis://localhost:6379/0"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		HTTPReadTimeout:  readTimeout,
		HTTPWriteTimeout: writeTimeout,
		CORSOrigins:      splitList(def(os.Getenv("CORS_ORIGINS"), "*")),
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" && (c.DbHost == "" || c.DbUser == "" || c.DbName == "") {
			return nil, fmt.Errorf("incomplete DB config (DATABASE_URL or DB_HOST/DB_USER/DB_NAME)")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is empty")
		}
	default:
		return nil, fmt.Errorf("unknown STORE %q (expected %s or %s)", c.Store, StorePostgres, StoreRedis)
	}

	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 9090")
	}
	if len(c.CORSOrigins) == 1 && c.CORSOrigins[0] == "*" && c.Env == "prod" {
		warnings = append(warnings, "CORS allows any origin in prod")
	}

	return warnings, nil
}

// GetDSN - полная DSN (с паролем)
func (c *Config) GetDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe - DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	if c.DatabaseURL != "" {
		return "DATABASE_URL(***)"
	}
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
