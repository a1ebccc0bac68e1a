package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nutrisnack/catalog/internal/config"
)

// tokenKeyPrefix namespaces token keys in Redis.
const tokenKeyPrefix = "catalog:token:"

// RedisTokenStore implements TokenStore using Redis. Token expiry is
// delegated to Redis key TTLs, so revocation and expiry are consistent
// across server instances.
type RedisTokenStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisTokenStore creates a new Redis-backed token store and
// verifies connectivity.
func NewRedisTokenStore(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (*RedisTokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.Info().Str("addr", cfg.Addr()).Int("db", cfg.DB).Msg("connected to Redis")

	return &RedisTokenStore{
		client: client,
		logger: logger.With().Str("component", "token_store").Logger(),
	}, nil
}

// Close closes the underlying Redis client.
func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}

// Save stores a token for a user with the given TTL.
func (s *RedisTokenStore) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	err := s.client.Set(ctx, tokenKeyPrefix+token, userID, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Resolve returns the user ID a token belongs to.
func (s *RedisTokenStore) Resolve(ctx context.Context, token string) (int64, error) {
	val, err := s.client.Get(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrTokenNotFound
		}
		return 0, fmt.Errorf("failed to resolve token: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		s.logger.Error().Str("value", val).Msg("corrupt token entry")
		return 0, ErrTokenNotFound
	}
	return userID, nil
}

// Delete revokes a token.
func (s *RedisTokenStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, tokenKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Ensure RedisTokenStore implements TokenStore.
var _ TokenStore = (*RedisTokenStore)(nil)
