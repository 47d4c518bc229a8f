package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/sse"
)

type SessionHandler interface {
	// Start handles the login handoff
	Start(w http.ResponseWriter, r *http.Request)
	Current(w http.ResponseWriter, r *http.Request)
	// End logs the session out
	End(w http.ResponseWriter, r *http.Request)
	// StreamToken issues a short-lived token for the attendance event stream
	StreamToken(w http.ResponseWriter, r *http.Request)
}

type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type sessionHandlerImpl struct {
	sessionService    session.SessionService
	attendanceService attendance.AttendanceService
	jwtService        jwt.Service
	hub               *sse.Hub
}

func NewSessionHandler(sessionService session.SessionService, attendanceService attendance.AttendanceService, jwtService jwt.Service, hub *sse.Hub) SessionHandler {
	return &sessionHandlerImpl{
		sessionService:    sessionService,
		attendanceService: attendanceService,
		jwtService:        jwtService,
		hub:               hub,
	}
}

// Start handles POST /session
func (h *sessionHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	var req session.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Session start decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.sessionService.Start(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.SessionCookie(result.SessionToken, result.ExpiresAt))
	response.Created(w, "Session started", result)
}

// Current handles GET /session
func (h *sessionHandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.Current(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// End handles DELETE /session
func (h *sessionHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	sessionID, err := jwt.SessionIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, session.ErrNotAuthenticated)
		return
	}

	if err := h.sessionService.End(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	h.attendanceService.Forget(sessionID)
	h.hub.CloseSession(sessionID)

	http.SetCookie(w, h.jwtService.ClearedCookie())
	response.SuccessWithMessage(w, "Logged out", nil)
}

// StreamToken handles GET /session/stream-token
func (h *sessionHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	sessionID, err := jwt.SessionIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, session.ErrNotAuthenticated)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(sessionID)
	if err != nil {
		slog.Error("Failed to generate stream token", "session_id", sessionID, "error", err)
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, StreamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}
