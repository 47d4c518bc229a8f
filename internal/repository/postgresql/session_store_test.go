package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T, ttl time.Duration) (*SessionStore, pgxmock.PgxPoolIface) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	store := NewSessionStore(mockPool, ttl)
	store.now = func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) }
	return store, mockPool
}

func TestSessionStore_Get(t *testing.T) {
	t.Run("Should return stored value", func(t *testing.T) {
		store, mockPool := newMockStore(t, time.Hour)
		rows := mockPool.NewRows([]string{"value"}).AddRow(`{"id":"1"}`)
		mockPool.ExpectQuery("SELECT value FROM portal_session_values").
			WithArgs("sid-1", session.KeyCurrentUser).
			WillReturnRows(rows)

		value, err := store.Get(context.Background(), "sid-1", session.KeyCurrentUser)
		require.NoError(t, err)
		assert.Equal(t, `{"id":"1"}`, value)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should map no rows to ErrKeyNotFound", func(t *testing.T) {
		store, mockPool := newMockStore(t, time.Hour)
		mockPool.ExpectQuery("SELECT value FROM portal_session_values").
			WithArgs("sid-1", session.KeyAuthToken).
			WillReturnError(pgx.ErrNoRows)

		_, err := store.Get(context.Background(), "sid-1", session.KeyAuthToken)
		assert.ErrorIs(t, err, session.ErrKeyNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should wrap driver errors", func(t *testing.T) {
		store, mockPool := newMockStore(t, time.Hour)
		mockPool.ExpectQuery("SELECT value FROM portal_session_values").
			WithArgs("sid-1", session.KeyAuthToken).
			WillReturnError(errors.New("connection reset"))

		_, err := store.Get(context.Background(), "sid-1", session.KeyAuthToken)
		require.Error(t, err)
		assert.NotErrorIs(t, err, session.ErrKeyNotFound)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestSessionStore_Set(t *testing.T) {
	t.Run("Should upsert with expiry", func(t *testing.T) {
		store, mockPool := newMockStore(t, time.Hour)
		expires := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
		mockPool.ExpectExec("INSERT INTO portal_session_values").
			WithArgs("sid-1", session.KeyAuthToken, "tok", &expires).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := store.Set(context.Background(), "sid-1", session.KeyAuthToken, "tok")
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should store without expiry when ttl is zero", func(t *testing.T) {
		store, mockPool := newMockStore(t, 0)
		var noExpiry *time.Time
		mockPool.ExpectExec("INSERT INTO portal_session_values").
			WithArgs("sid-1", session.KeyAuthToken, "tok", noExpiry).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, store.Set(context.Background(), "sid-1", session.KeyAuthToken, "tok"))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestSessionStore_Delete(t *testing.T) {
	store, mockPool := newMockStore(t, time.Hour)
	mockPool.ExpectExec("DELETE FROM portal_session_values").
		WithArgs("sid-1", []string{session.KeyCurrentUser, session.KeyAuthToken}).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	err := store.Delete(context.Background(), "sid-1", session.KeyCurrentUser, session.KeyAuthToken)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())

	// no keys, no statement
	assert.NoError(t, store.Delete(context.Background(), "sid-1"))
}

func TestSessionStore_PurgeExpired(t *testing.T) {
	store, mockPool := newMockStore(t, time.Hour)
	mockPool.ExpectExec("DELETE FROM portal_session_values WHERE expires_at").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := store.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSessionStore_Touch(t *testing.T) {
	store, mockPool := newMockStore(t, time.Hour)
	mockPool.ExpectExec("UPDATE portal_session_values").
		WithArgs("sid-1", time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	assert.NoError(t, store.Touch(context.Background(), "sid-1", 30*time.Minute))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSessionStore_EnsureSchema(t *testing.T) {
	store, mockPool := newMockStore(t, time.Hour)
	mockPool.ExpectExec("CREATE TABLE IF NOT EXISTS portal_session_values").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	assert.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSessionStore_UsesTransactionFromContext(t *testing.T) {
	store, mockPool := newMockStore(t, time.Hour)
	mockPool.ExpectBegin()
	mockPool.ExpectExec("DELETE FROM portal_session_values").
		WithArgs("sid-1", []string{session.KeyCurrentUser}).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mockPool.ExpectCommit()

	ctx := context.Background()
	tx, err := mockPool.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Delete(WithTx(ctx, tx), "sid-1", session.KeyCurrentUser))
	require.NoError(t, tx.Commit(ctx))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
