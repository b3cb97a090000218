package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore holds short-lived verification codes. Entries auto-expire
// after their TTL; Get returns "" for absent or expired keys.
type CodeStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

type redisCodeStore struct {
	client *redis.Client
}

func NewRedisCodeStore(client *redis.Client) CodeStore {
	return &redisCodeStore{client: client}
}

func (s *redisCodeStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisCodeStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (s *redisCodeStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
