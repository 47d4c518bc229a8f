package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/jwt"
)

// TouchSession extends the lifetime of the caller's stored session values on
// every authenticated request. Stores without expiry are left alone.
func TouchSession(store session.Store, ttl time.Duration) func(http.Handler) http.Handler {
	expirer, ok := store.(session.Expirer)
	return func(next http.Handler) http.Handler {
		if !ok || ttl <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, err := jwt.SessionIDFromContext(r.Context())
			if err == nil {
				if err := expirer.Touch(r.Context(), sessionID, ttl); err != nil {
					slog.Warn("Failed to extend session", "session_id", sessionID, "error", err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
