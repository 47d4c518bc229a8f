package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const sessionSchema = `
	CREATE TABLE IF NOT EXISTS portal_session_values (
		session_id TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		expires_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (session_id, key)
	)
`

// SessionStore keeps session entries in postgres. A zero ttl stores entries
// without expiry.
type SessionStore struct {
	db  database.Querier
	ttl time.Duration
	now func() time.Time
}

func NewSessionStore(db database.Querier, ttl time.Duration) *SessionStore {
	return &SessionStore{db: db, ttl: ttl, now: time.Now}
}

// EnsureSchema creates the session table when missing.
func (s *SessionStore) EnsureSchema(ctx context.Context) error {
	if _, err := GetQuerier(ctx, s.db).Exec(ctx, sessionSchema); err != nil {
		return fmt.Errorf("failed to create session table: %w", err)
	}
	return nil
}

func (s *SessionStore) expiresAt() *time.Time {
	if s.ttl <= 0 {
		return nil
	}
	t := s.now().Add(s.ttl).UTC()
	return &t
}

// Get implements session.Store.
func (s *SessionStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT value
		FROM portal_session_values
		WHERE session_id = $1 AND key = $2
		  AND (expires_at IS NULL OR expires_at > NOW())
	`

	var value string
	err := q.QueryRow(ctx, query, sessionID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", session.ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get session value: %w", err)
	}

	return value, nil
}

// Set implements session.Store.
func (s *SessionStore) Set(ctx context.Context, sessionID, key, value string) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO portal_session_values (session_id, key, value, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (session_id, key)
		DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, sessionID, key, value, s.expiresAt()); err != nil {
		return fmt.Errorf("failed to set session value: %w", err)
	}

	return nil
}

// Delete implements session.Store.
func (s *SessionStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	q := GetQuerier(ctx, s.db)

	query := `
		DELETE FROM portal_session_values
		WHERE session_id = $1 AND key = ANY($2)
	`

	if _, err := q.Exec(ctx, query, sessionID, keys); err != nil {
		return fmt.Errorf("failed to delete session values: %w", err)
	}

	return nil
}

// Touch implements session.Expirer.
func (s *SessionStore) Touch(ctx context.Context, sessionID string, ttl time.Duration) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE portal_session_values
		SET expires_at = $2
		WHERE session_id = $1
	`

	if _, err := q.Exec(ctx, query, sessionID, s.now().Add(ttl).UTC()); err != nil {
		return fmt.Errorf("failed to extend session: %w", err)
	}

	return nil
}

// PurgeExpired implements session.Purger.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx, `DELETE FROM portal_session_values WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}
