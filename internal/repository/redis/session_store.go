package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/redis/go-redis/v9"
)

// Interface defines the minimal Redis interface needed by the session store
type Interface interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// SessionStore keeps every session as one redis hash whose lifetime is
// refreshed on each write.
type SessionStore struct {
	client Interface
	prefix string
	ttl    time.Duration
}

func NewSessionStore(client Interface, prefix string, ttl time.Duration) *SessionStore {
	if prefix == "" {
		prefix = "hris:session"
	}
	return &SessionStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *SessionStore) hashKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", s.prefix, sessionID)
}

// Get implements session.Store.
func (s *SessionStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	value, err := s.client.HGet(ctx, s.hashKey(sessionID), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", session.ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get session value: %w", err)
	}
	return value, nil
}

// Set implements session.Store.
func (s *SessionStore) Set(ctx context.Context, sessionID, key, value string) error {
	hk := s.hashKey(sessionID)
	if err := s.client.HSet(ctx, hk, key, value).Err(); err != nil {
		return fmt.Errorf("failed to set session value: %w", err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, hk, s.ttl).Err(); err != nil {
			return fmt.Errorf("failed to set session expiry: %w", err)
		}
	}
	return nil
}

// Delete implements session.Store.
func (s *SessionStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, s.hashKey(sessionID), keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete session values: %w", err)
	}
	return nil
}

// Touch implements session.Expirer.
func (s *SessionStore) Touch(ctx context.Context, sessionID string, ttl time.Duration) error {
	if err := s.client.Expire(ctx, s.hashKey(sessionID), ttl).Err(); err != nil {
		return fmt.Errorf("failed to extend session: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
