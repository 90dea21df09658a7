package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/repository"
)

// RedisRepository is a redis backed CacheRepository
type RedisRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisRepository creates a cache repository on an existing client
func NewRedisRepository(client *redis.Client, logger *zap.Logger) repository.CacheRepository {
	return &RedisRepository{
		client: client,
		logger: logger,
	}
}

// Set stores value under key
func (r *RedisRepository) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		r.logger.Error("Redis Set failed",
			zap.String("key", key),
			zap.Error(err))
		return err
	}
	return nil
}

// Get returns the value under key. A missing key yields redis.Nil.
func (r *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", err
		}
		r.logger.Error("Redis Get failed",
			zap.String("key", key),
			zap.Error(err))
		return "", err
	}
	return value, nil
}

// Delete removes key
func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Redis Delete failed",
			zap.String("key", key),
			zap.Error(err))
		return err
	}
	return nil
}

// IsNotFound reports whether err is a cache miss
func (r *RedisRepository) IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
