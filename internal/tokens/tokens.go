// Package tokens issues and resolves opaque access tokens for accounts.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when a token is unknown, expired, or revoked
var ErrTokenNotFound = errors.New("token not found")

// Service defines the token contract consumed by the registration and
// login flows.
type Service interface {
	Issue(ctx context.Context, accountID string) (string, error)
	Revoke(ctx context.Context, token string) error
	Lookup(ctx context.Context, token string) (string, error)
}

// RedisStore keeps token -> account mappings in Redis with a TTL.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore creates a token store. A zero ttl means tokens never expire.
func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: redisClient, ttl: ttl}
}

func (s *RedisStore) key(token string) string {
	return fmt.Sprintf("auth:token:%s", token)
}

// Issue creates a fresh opaque token for the account.
func (s *RedisStore) Issue(ctx context.Context, accountID string) (string, error) {
	token := uuid.New().String()
	if err := s.redis.Set(ctx, s.key(token), accountID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("tokens: issue: %w", err)
	}
	return token, nil
}

// Revoke invalidates a token. Revoking an unknown token is not an error.
func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("tokens: revoke: %w", err)
	}
	return nil
}

// Lookup resolves a token to its account ID.
func (s *RedisStore) Lookup(ctx context.Context, token string) (string, error) {
	accountID, err := s.redis.Get(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("tokens: lookup: %w", err)
	}
	return accountID, nil
}
