package crypto

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
)

// SealedStore encrypts the values of the listed keys before they reach the
// underlying store. Other keys pass through unchanged.
type SealedStore struct {
	next   session.Store
	sealer *Sealer
	keys   map[string]struct{}
}

func NewSealedStore(next session.Store, sealer *Sealer, keys ...string) *SealedStore {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return &SealedStore{next: next, sealer: sealer, keys: set}
}

func (s *SealedStore) sealed(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Get implements session.Store.
func (s *SealedStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	value, err := s.next.Get(ctx, sessionID, key)
	if err != nil || !s.sealed(key) {
		return value, err
	}
	plain, err := s.sealer.Open(value)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", key, err)
	}
	return plain, nil
}

// Set implements session.Store.
func (s *SealedStore) Set(ctx context.Context, sessionID, key, value string) error {
	if s.sealed(key) {
		sealed, err := s.sealer.Seal(value)
		if err != nil {
			return err
		}
		value = sealed
	}
	return s.next.Set(ctx, sessionID, key, value)
}

// Delete implements session.Store.
func (s *SealedStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	return s.next.Delete(ctx, sessionID, keys...)
}

// Touch implements session.Expirer when the underlying store does.
func (s *SealedStore) Touch(ctx context.Context, sessionID string, ttl time.Duration) error {
	if e, ok := s.next.(session.Expirer); ok {
		return e.Touch(ctx, sessionID, ttl)
	}
	return nil
}

// PurgeExpired implements session.Purger when the underlying store does.
func (s *SealedStore) PurgeExpired(ctx context.Context) (int64, error) {
	if p, ok := s.next.(session.Purger); ok {
		return p.PurgeExpired(ctx)
	}
	return 0, nil
}
