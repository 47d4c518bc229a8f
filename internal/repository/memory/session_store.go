package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// SessionStore is a process-local session store for development and tests.
// Entries written with a positive ttl expire; PurgeExpired reclaims them.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

// Get implements session.Store.
func (s *SessionStore) Get(_ context.Context, sessionID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[sessionID][key]
	if !ok || s.expired(e) {
		return "", session.ErrKeyNotFound
	}
	return e.value, nil
}

// Set implements session.Store.
func (s *SessionStore) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.sessions[sessionID]
	if !ok {
		entries = make(map[string]entry)
		s.sessions[sessionID] = entries
	}

	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	entries[key] = e
	return nil
}

// Delete implements session.Store.
func (s *SessionStore) Delete(_ context.Context, sessionID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(entries, k)
	}
	if len(entries) == 0 {
		delete(s.sessions, sessionID)
	}
	return nil
}

// Touch implements session.Expirer.
func (s *SessionStore) Touch(_ context.Context, sessionID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := s.now().Add(ttl)
	for k, e := range s.sessions[sessionID] {
		if s.expired(e) {
			continue
		}
		e.expiresAt = expiresAt
		s.sessions[sessionID][k] = e
	}
	return nil
}

// PurgeExpired implements session.Purger.
func (s *SessionStore) PurgeExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var purged int64
	for sid, entries := range s.sessions {
		for k, e := range entries {
			if s.expired(e) {
				delete(entries, k)
				purged++
			}
		}
		if len(entries) == 0 {
			delete(s.sessions, sid)
		}
	}
	return purged, nil
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
