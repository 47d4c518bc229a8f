package session

import (
	"context"

	"github.com/cmlabs-hris/hris-portal/internal/domain/user"
)

// Resolver reads and writes the signed-in user of one session.
type Resolver interface {
	// GetCurrentUser decodes the persisted user; nil when absent or unreadable
	GetCurrentUser(ctx context.Context) *user.User

	SetCurrentUser(ctx context.Context, u user.User) error

	// ClearCurrentUser removes both the user and the auth token
	ClearCurrentUser(ctx context.Context) error

	StoreAuthToken(ctx context.Context, token string) error

	GetAuthToken(ctx context.Context) (string, bool)

	// IsAuthenticated reports whether a current user is resolvable
	IsAuthenticated(ctx context.Context) bool
}

// SessionService manages portal sessions.
type SessionService interface {
	// Start persists the login handoff under a new session and issues its token
	Start(ctx context.Context, req StartSessionRequest) (StartSessionResponse, error)

	// Current returns the session state of the caller
	Current(ctx context.Context) (CurrentSessionResponse, error)

	// End clears the session of the caller and revokes its token
	End(ctx context.Context) error

	// Resolver returns the resolver bound to sessionID
	Resolver(sessionID string) Resolver
}
