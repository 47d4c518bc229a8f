package session

import (
	"context"
	"time"
)

// Keys persisted per session.
const (
	KeyCurrentUser = "currentUser"
	KeyAuthToken   = "authToken"
)

// Store is the key-value store backing portal sessions. Every entry lives in
// the namespace of one session id.
type Store interface {
	// Get returns the value stored under key, or ErrKeyNotFound
	Get(ctx context.Context, sessionID, key string) (string, error)

	// Set writes value under key; last write wins
	Set(ctx context.Context, sessionID, key, value string) error

	// Delete removes the given keys; missing keys are not an error
	Delete(ctx context.Context, sessionID string, keys ...string) error
}

// Expirer is implemented by stores that keep entries for a bounded time.
type Expirer interface {
	// Touch extends the lifetime of every entry of the session
	Touch(ctx context.Context, sessionID string, ttl time.Duration) error
}

// Purger is implemented by stores that need explicit cleanup of expired entries.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
