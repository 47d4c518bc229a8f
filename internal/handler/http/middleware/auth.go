package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired admits requests carrying a verified, unrevoked session token.
// It must run after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, session.ErrNotAuthenticated)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeSession || !ok {
				response.HandleError(w, session.ErrNotAuthenticated)
				return
			}

			// Session ids are minted as UUIDv7; anything else never named a session
			sessionID, _ := claims["session_id"].(string)
			if !validator.IsValidUUID(sessionID) {
				response.HandleError(w, session.ErrSessionIDRequired)
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if raw == "" {
				raw = jwtauth.TokenFromCookie(r)
			}
			if jwtService.IsTokenRevoked(raw) {
				response.HandleError(w, session.ErrSessionExpired)
				return
			}

			ctx := jwt.WithRawToken(r.Context(), raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
