package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis stores each key as a plain redis string with no TTL; the document
// is durable, not a cache.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(addr, pass string, db int) *Redis {
	return &Redis{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

// NewRedisWithClient wraps an existing client (tests use miniredis).
func NewRedisWithClient(c *redis.Client) *Redis { return &Redis{rdb: c} }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Del(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
