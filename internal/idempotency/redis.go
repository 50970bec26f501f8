package idempotency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "kirana:idempotency:"
	pendingValue     = "pending"
	donePrefix       = "done:"
)

// RedisStore shares keys between API instances.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, ""), nil
}

func NewRedisStoreWithClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}

	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, pendingValue, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserving key: %w", err)
	}

	return ok, nil
}

func (s *RedisStore) Complete(ctx context.Context, key, resourceID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, donePrefix+resourceID, ttl).Err(); err != nil {
		return fmt.Errorf("completing key: %w", err)
	}

	return nil
}

func (s *RedisStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("looking up key: %w", err)
	}

	id, done := strings.CutPrefix(val, donePrefix)
	if !done {
		return "", false, nil
	}

	return id, true, nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("releasing key: %w", err)
	}

	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
