package otp

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
}

// NewRedis returns a Redis-backed store so codes survive restarts and are
// shared across replicas.
func NewRedis(addr string) (Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &redisStore{client: client}, nil
}

func codeKey(phone string) string     { return "otp:code:" + phone }
func attemptsKey(phone string) string { return "otp:tries:" + phone }

func (s *redisStore) Put(ctx context.Context, phone, code string) error {
	if err := s.client.Set(ctx, codeKey(phone), code, TTL).Err(); err != nil {
		return err
	}
	return s.client.Set(ctx, attemptsKey(phone), 0, TTL).Err()
}

func (s *redisStore) Verify(ctx context.Context, phone, code string) (bool, error) {
	stored, err := s.client.Get(ctx, codeKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	tries, err := s.client.Incr(ctx, attemptsKey(phone)).Result()
	if err != nil {
		return false, err
	}
	if tries > maxAttempts {
		s.client.Del(ctx, codeKey(phone), attemptsKey(phone))
		return false, nil
	}

	if stored == code {
		s.client.Del(ctx, codeKey(phone), attemptsKey(phone))
		return true, nil
	}
	return false, nil
}
