package crypto

import (
	"context"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewSealer_RejectsShortSecret(t *testing.T) {
	_, err := NewSealer("short")
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer(testSecret)
	require.NoError(t, err)

	sealed, err := s.Seal("eyJhbGciOiJIUzI1NiJ9.payload.sig")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, sealedPrefix))
	assert.NotContains(t, sealed, "payload")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOiJIUzI1NiJ9.payload.sig", plain)

	again, err := s.Seal("eyJhbGciOiJIUzI1NiJ9.payload.sig")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonces must differ")
}

func TestSealer_OpenRejectsForeignValues(t *testing.T) {
	s, err := NewSealer(testSecret)
	require.NoError(t, err)
	other, err := NewSealer(strings.Repeat("z", 40))
	require.NoError(t, err)

	sealed, err := other.Seal("token")
	require.NoError(t, err)

	_, err = s.Open(sealed)
	assert.ErrorIs(t, err, ErrOpenFailed)

	_, err = s.Open("plain-token")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = s.Open(sealedPrefix + "!!")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSealedStore(t *testing.T) {
	sealer, err := NewSealer(testSecret)
	require.NoError(t, err)
	backing := memory.NewSessionStore(0)
	store := NewSealedStore(backing, sealer, session.KeyAuthToken)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid", session.KeyAuthToken, "secret-token"))
	require.NoError(t, store.Set(ctx, "sid", session.KeyCurrentUser, `{"id":"1"}`))

	raw, err := backing.Get(ctx, "sid", session.KeyAuthToken)
	require.NoError(t, err)
	assert.NotEqual(t, "secret-token", raw)

	raw, err = backing.Get(ctx, "sid", session.KeyCurrentUser)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, raw)

	token, err := store.Get(ctx, "sid", session.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)

	require.NoError(t, store.Delete(ctx, "sid", session.KeyAuthToken))
	_, err = store.Get(ctx, "sid", session.KeyAuthToken)
	assert.ErrorIs(t, err, session.ErrKeyNotFound)
}
