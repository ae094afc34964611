package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheRepository stores JSON documents in Redis. With a nil client every
// lookup misses and every write is dropped.
type CacheRepository struct {
	Redis *redis.Client
}

func NewCacheRepository(rdb *redis.Client) *CacheRepository {
	return &CacheRepository{Redis: rdb}
}

// GetJSON reports whether key was present and decoded into dst.
func (r *CacheRepository) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	if r.Redis == nil {
		return false, nil
	}
	raw, err := r.Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next Set.
		return false, nil
	}
	return true, nil
}

func (r *CacheRepository) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.Redis == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, key, raw, ttl).Err()
}

func (r *CacheRepository) Ping(ctx context.Context) error {
	if r.Redis == nil {
		return errors.New("redis not configured")
	}
	return r.Redis.Ping(ctx).Err()
}
