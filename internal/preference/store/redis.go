package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"atelier/pkg/platform/sentinel"
)

const keyPrefix = "pref:"

// Redis persists values per visitor so a choice follows the visitor across every
// instance behind the load balancer.
type Redis struct {
	client  *redis.Client
	visitor string
	ttl     time.Duration
}

// NewRedis scopes client to visitor. A zero ttl keeps keys forever.
func NewRedis(client *redis.Client, visitor string, ttl time.Duration) *Redis {
	return &Redis{client: client, visitor: visitor, ttl: ttl}
}

func (s *Redis) key(key string) string {
	return keyPrefix + s.visitor + ":" + key
}

func (s *Redis) Get(ctx context.Context, key string) (string, error) {
	defer observe("redis", "get", time.Now())
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: redis get: %v", sentinel.ErrUnavailable, err)
	}
	return v, nil
}

func (s *Redis) Set(ctx context.Context, key, value string) error {
	defer observe("redis", "set", time.Now())
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *Redis) Remove(ctx context.Context, key string) error {
	defer observe("redis", "remove", time.Now())
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: redis del: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}
