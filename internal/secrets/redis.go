package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	platformredis "did-ecosystem/internal/platform/redis"
	"did-ecosystem/pkg/platform/sentinel"
)

// RedisStore reads secrets stored as plain string keys under a prefix.
type RedisStore struct {
	client *platformredis.Client
	prefix string
}

func NewRedisStore(client *platformredis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) GetSecret(ctx context.Context, name string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+name).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("secret %q: %w", name, sentinel.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("secret %q: %w: %w", name, sentinel.ErrUnavailable, err)
	}
	return value, nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
