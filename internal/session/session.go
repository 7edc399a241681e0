// Package session stores opaque session tokens in Redis. Token expiry is
// enforced by the key TTL, so an expired session simply stops resolving.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store resolves opaque session tokens to user ids.
type Store interface {
	// Create issues a new token for the user, valid for ttl.
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)

	// Get returns the user id for a token, or "" when the token is
	// unknown or expired.
	Get(ctx context.Context, token string) (string, error)

	// Delete invalidates a token. Deleting an unknown token is a no-op.
	Delete(ctx context.Context, token string) error

	// Close releases the underlying connection.
	Close() error
}

const keyPrefix = "session:"

// redisStore implements Store on top of a Redis client.
type redisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore connects to Redis and verifies connectivity.
func NewRedisStore(ctx context.Context, redisURL string, logger zerolog.Logger) (Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info().Str("addr", opt.Addr).Msg("session store connected")

	return &redisStore{
		client: client,
		logger: logger.With().Str("component", "session-store").Logger(),
	}, nil
}

func (s *redisStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, keyPrefix+token, userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Debug().Str("user_id", userID).Dur("ttl", ttl).Msg("session created")
	return token, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up session: %w", err)
	}
	return userID, nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
