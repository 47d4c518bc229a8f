package jwt

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeSession = "session"
	TokenTypeStream  = "stream"

	CookieName = "jwt"
)

var ErrSessionClaimMissing = errors.New("session_id claim is missing or invalid")

type Service interface {
	GenerateSessionToken(sessionID string, userID string, role string) (token string, expiresAt int64, err error)
	GenerateStreamToken(sessionID string) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (sessionID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	SessionCookie(token string, expiresAt int64) *http.Cookie
	ClearedCookie() *http.Cookie
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
	PurgeRevoked() int
}

type JWTService struct {
	sessionExpirationTime string
	secureCookie          bool
	tokenAuth             *jwtauth.JWTAuth
	revokedTokens         map[string]int64
	mu                    sync.RWMutex
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, sessionExpirationTime string, secureCookie bool) Service {
	return &JWTService{
		sessionExpirationTime: sessionExpirationTime,
		secureCookie:          secureCookie,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:         make(map[string]int64),
		now:                   time.Now,
	}
}

func (j *JWTService) GenerateSessionToken(sessionID string, userID string, role string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.sessionExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"session_id": sessionID,
		"user_id":    userID,
		"role":       role,
		"type":       TokenTypeSession,
		"exp":        expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) SessionCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) ClearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// RevokeToken remembers token until its expiry.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// PurgeRevoked forgets revoked tokens that have expired anyway.
func (j *JWTService) PurgeRevoked() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	purged := 0
	for token, exp := range j.revokedTokens {
		if exp <= now {
			delete(j.revokedTokens, token)
			purged++
		}
	}
	return purged
}

// GenerateStreamToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateStreamToken(sessionID string) (token string, expiresIn int, err error) {
	// Stream tokens are short-lived (5 minutes)
	expiresIn = 300
	expiresAt := j.now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"session_id": sessionID,
		"type":       TokenTypeStream,
		"exp":        expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateStreamToken validates a stream token and returns the session ID
func (j *JWTService) ValidateStreamToken(tokenString string) (sessionID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeStream {
		return "", jwt.ErrInvalidJWT()
	}

	sessionIDVal, ok := token.Get("session_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	sessionID, ok = sessionIDVal.(string)
	if !ok || sessionID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return sessionID, nil
}

// SessionIDFromContext extracts the session_id claim verified by jwtauth.
func SessionIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", ErrSessionClaimMissing
	}
	return sessionID, nil
}

// SessionFromContext returns the raw token and its expiry alongside the session id.
func SessionFromContext(ctx context.Context) (sessionID string, raw string, expiresAt int64, err error) {
	sessionID, err = SessionIDFromContext(ctx)
	if err != nil {
		return "", "", 0, err
	}
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return "", "", 0, ErrSessionClaimMissing
	}
	expiresAt = token.Expiration().Unix()
	raw, _ = ctx.Value(rawTokenKey{}).(string)
	return sessionID, raw, expiresAt, nil
}

type rawTokenKey struct{}

// WithRawToken stores the encoded session token so logout can revoke it.
func WithRawToken(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, rawTokenKey{}, raw)
}
