package db

import (
	"context"
	"fmt"
	"strings"

	"ncnews/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient принимает как redis://-URL, так и голый host:port.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(cfg.RedisURL, "://") {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: cfg.RedisURL}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
