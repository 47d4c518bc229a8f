package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal/internal/domain/user"
)

// storeResolver reads straight from the store on every call; nothing about
// the user is cached in process.
type storeResolver struct {
	store     session.Store
	sessionID string
}

func newResolver(store session.Store, sessionID string) session.Resolver {
	return &storeResolver{store: store, sessionID: sessionID}
}

// GetCurrentUser implements session.Resolver.
func (r *storeResolver) GetCurrentUser(ctx context.Context) *user.User {
	raw, err := r.store.Get(ctx, r.sessionID, session.KeyCurrentUser)
	if err != nil {
		if !errors.Is(err, session.ErrKeyNotFound) {
			slog.Error("Failed to read currentUser", "session_id", r.sessionID, "error", err)
		}
		return nil
	}

	var u user.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		slog.Error("Failed to parse currentUser", "session_id", r.sessionID, "error", err)
		return nil
	}
	return &u
}

// SetCurrentUser implements session.Resolver.
func (r *storeResolver) SetCurrentUser(ctx context.Context, u user.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode currentUser: %w", err)
	}
	if err := r.store.Set(ctx, r.sessionID, session.KeyCurrentUser, string(raw)); err != nil {
		return fmt.Errorf("failed to store currentUser: %w", err)
	}
	return nil
}

// ClearCurrentUser implements session.Resolver.
func (r *storeResolver) ClearCurrentUser(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.sessionID, session.KeyCurrentUser, session.KeyAuthToken); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// StoreAuthToken implements session.Resolver.
func (r *storeResolver) StoreAuthToken(ctx context.Context, token string) error {
	if err := r.store.Set(ctx, r.sessionID, session.KeyAuthToken, token); err != nil {
		return fmt.Errorf("failed to store authToken: %w", err)
	}
	return nil
}

// GetAuthToken implements session.Resolver.
func (r *storeResolver) GetAuthToken(ctx context.Context) (string, bool) {
	token, err := r.store.Get(ctx, r.sessionID, session.KeyAuthToken)
	if err != nil {
		if !errors.Is(err, session.ErrKeyNotFound) {
			slog.Error("Failed to read authToken", "session_id", r.sessionID, "error", err)
		}
		return "", false
	}
	return token, token != ""
}

// IsAuthenticated implements session.Resolver.
func (r *storeResolver) IsAuthenticated(ctx context.Context) bool {
	return r.GetCurrentUser(ctx) != nil
}
