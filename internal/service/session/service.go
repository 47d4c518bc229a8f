package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/jwt"
	"github.com/google/uuid"
)

type SessionServiceImpl struct {
	store session.Store
	jwt.Service
}

func NewSessionService(store session.Store, jwtService jwt.Service) session.SessionService {
	return &SessionServiceImpl{
		store:   store,
		Service: jwtService,
	}
}

// Resolver implements session.SessionService.
func (s *SessionServiceImpl) Resolver(sessionID string) session.Resolver {
	return newResolver(s.store, sessionID)
}

// Start implements session.SessionService.
func (s *SessionServiceImpl) Start(ctx context.Context, req session.StartSessionRequest) (session.StartSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return session.StartSessionResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return session.StartSessionResponse{}, fmt.Errorf("failed to generate session id: %w", err)
	}
	sessionID := id.String()
	resolver := s.Resolver(sessionID)

	// The token is persisted under its own key only.
	token := req.AuthToken()
	u := req.User
	u.Token = ""

	if err := resolver.SetCurrentUser(ctx, u); err != nil {
		return session.StartSessionResponse{}, err
	}
	if err := resolver.StoreAuthToken(ctx, token); err != nil {
		s.discard(ctx, resolver, sessionID)
		return session.StartSessionResponse{}, err
	}

	sessionToken, expiresAt, err := s.Service.GenerateSessionToken(sessionID, u.ID.String(), string(u.Role))
	if err != nil {
		s.discard(ctx, resolver, sessionID)
		return session.StartSessionResponse{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	slog.Info("Session started", "session_id", sessionID, "user_id", u.ID.String(), "role", u.Role)

	return session.StartSessionResponse{
		SessionToken: sessionToken,
		ExpiresAt:    expiresAt,
		Profile:      user.NewProfileResponse(u),
	}, nil
}

func (s *SessionServiceImpl) discard(ctx context.Context, resolver session.Resolver, sessionID string) {
	if err := resolver.ClearCurrentUser(ctx); err != nil {
		slog.Error("Failed to discard partial session", "session_id", sessionID, "error", err)
	}
}

// Current implements session.SessionService.
func (s *SessionServiceImpl) Current(ctx context.Context) (session.CurrentSessionResponse, error) {
	sessionID, err := jwt.SessionIDFromContext(ctx)
	if err != nil {
		return session.CurrentSessionResponse{}, session.ErrNotAuthenticated
	}

	u := s.Resolver(sessionID).GetCurrentUser(ctx)
	if u == nil {
		return session.CurrentSessionResponse{Authenticated: false}, nil
	}

	profile := user.NewProfileResponse(*u)
	return session.CurrentSessionResponse{
		Authenticated: true,
		Profile:       &profile,
	}, nil
}

// End implements session.SessionService.
func (s *SessionServiceImpl) End(ctx context.Context) error {
	sessionID, raw, expiresAt, err := jwt.SessionFromContext(ctx)
	if err != nil {
		return session.ErrNotAuthenticated
	}

	if err := s.Resolver(sessionID).ClearCurrentUser(ctx); err != nil {
		return err
	}

	if raw != "" {
		s.Service.RevokeToken(raw, expiresAt)
	}

	slog.Info("Session ended", "session_id", sessionID)
	return nil
}
