package session

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/octabyte/campus-portal/db/redis"
)

// DefaultKeyPrefix namespaces session keys in a shared Redis database.
const DefaultKeyPrefix = "campus-portal:"

// RedisStore keeps session keys in Redis under a prefix. Keys never expire;
// the server decides when credentials stop working.
type RedisStore struct {
	client goredis.Cmdable
	prefix string
}

func NewRedisStore(client goredis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := redis.Get(ctx, s.client, s.prefix+key)
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session: redis get %s: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := redis.Set(ctx, s.client, s.prefix+key, value, 0); err != nil {
		return fmt.Errorf("session: redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	keys, err := redis.ScanKeys(ctx, s.client, s.prefix+"*")
	if err != nil {
		return fmt.Errorf("session: redis scan: %w", err)
	}
	if err := redis.Del(ctx, s.client, keys...); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}
