package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateSessionToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", false)

	token, expiresAt, err := svc.GenerateSessionToken("sid-1", "42", "team_lead")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims["session_id"])
	assert.Equal(t, "42", claims["user_id"])
	assert.Equal(t, "team_lead", claims["role"])
	assert.Equal(t, TokenTypeSession, claims["type"])
}

func TestGenerateSessionToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService(testSecret, "forever", false)
	_, _, err := svc.GenerateSessionToken("sid-1", "42", "employee")
	assert.Error(t, err)
}

func TestStreamToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", false)

	token, expiresIn, err := svc.GenerateStreamToken("sid-9")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	sessionID, err := svc.ValidateStreamToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-9", sessionID)

	sessionToken, _, err := svc.GenerateSessionToken("sid-9", "1", "employee")
	require.NoError(t, err)
	_, err = svc.ValidateStreamToken(sessionToken)
	assert.Error(t, err, "session tokens must not open streams")

	_, err = svc.ValidateStreamToken("garbage")
	assert.Error(t, err)
}

func TestRevokeAndPurge(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", false).(*JWTService)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.RevokeToken("expired", now.Add(-time.Minute).Unix())
	svc.RevokeToken("live", now.Add(time.Minute).Unix())
	assert.True(t, svc.IsTokenRevoked("expired"))
	assert.True(t, svc.IsTokenRevoked("live"))
	assert.False(t, svc.IsTokenRevoked("other"))

	assert.Equal(t, 1, svc.PurgeRevoked())
	assert.False(t, svc.IsTokenRevoked("expired"))
	assert.True(t, svc.IsTokenRevoked("live"))
}

func TestCookies(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", true)

	c := svc.SessionCookie("tok", time.Now().Add(time.Hour).Unix())
	assert.Equal(t, CookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	cleared := svc.ClearedCookie()
	assert.Equal(t, -1, cleared.MaxAge)
	assert.Empty(t, cleared.Value)
}

func TestSessionIDFromContext(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", false)
	token, expiresAt, err := svc.GenerateSessionToken("sid-3", "7", "intern")
	require.NoError(t, err)

	var gotID, gotRaw string
	var gotExp int64
	h := jwtauth.Verifier(svc.JWTAuth())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithRawToken(r.Context(), token)
		gotID, gotRaw, gotExp, err = SessionFromContext(ctx)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NoError(t, err)
	assert.Equal(t, "sid-3", gotID)
	assert.Equal(t, token, gotRaw)
	assert.Equal(t, expiresAt, gotExp)

	_, err = SessionIDFromContext(context.Background())
	assert.Error(t, err)
}
