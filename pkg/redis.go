package pkg

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/schoolit/asset-service/internal/config"
)

// NewRedisClient builds the cache client from the configured URL.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}
