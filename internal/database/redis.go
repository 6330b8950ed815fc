package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"error-report-api/internal/config"
)

// NewRedis creates a redis client for the stats cache. Returns nil when the
// connection cannot be established; callers treat a nil client as cache off.
func NewRedis(cfg config.RedisConfig, log *zap.Logger) *redis.Client {
	var client *redis.Client

	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			log.Warn("Invalid redis URL, stats cache disabled", zap.Error(err))
			return nil
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, stats cache disabled", zap.Error(err))
		return nil
	}

	log.Info("Redis connection established", zap.String("addr", cfg.Addr))
	return client
}
