package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/timesheet"
)

type AttendanceHandler interface {
	// Get loads the attendance records and returns the view
	Get(w http.ResponseWriter, r *http.Request)
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	// Events streams view updates as server-sent events
	Events(w http.ResponseWriter, r *http.Request)
	// Timesheet renders the weekly window as a PDF download
	Timesheet(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	sessionService    session.SessionService
	jwtService        jwt.Service
	hub               *sse.Hub
	keepalive         time.Duration
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, sessionService session.SessionService, jwtService jwt.Service, hub *sse.Hub) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		sessionService:    sessionService,
		jwtService:        jwtService,
		hub:               hub,
		keepalive:         30 * time.Second,
	}
}

// Get handles GET /attendance
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, err := jwt.SessionIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	view, err := h.attendanceService.Load(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// PunchIn handles POST /attendance/punch-in
func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	sessionID, err := jwt.SessionIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	view, err := h.attendanceService.PunchIn(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, punchMessage(view, "Punched in"), view)
}

// PunchOut handles POST /attendance/punch-out
func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	sessionID, err := jwt.SessionIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	view, err := h.attendanceService.PunchOut(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, punchMessage(view, "Punched out"), view)
}

// Timesheet handles GET /attendance/timesheet.pdf
func (h *attendanceHandlerImpl) Timesheet(w http.ResponseWriter, r *http.Request) {
	sessionID, err := jwt.SessionIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	current := h.sessionService.Resolver(sessionID).GetCurrentUser(r.Context())
	if current == nil {
		response.HandleError(w, attendance.ErrNotAuthenticated)
		return
	}

	view, err := h.attendanceService.Load(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Render into a buffer so a failure can still produce a JSON error
	var buf bytes.Buffer
	if err := timesheet.Render(&buf, user.NewProfileResponse(*current), view); err != nil {
		slog.Error("Failed to render timesheet", "session_id", sessionID, "error", err)
		response.InternalServerError(w, "Failed to render timesheet")
		return
	}

	w.Header().Set("Content-Type", timesheet.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="timesheet-%s.pdf"`, view.Date))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// punchMessage reports a rejected punch; the view itself carries the
// failed state.
func punchMessage(view attendance.ViewResponse, ok string) string {
	if view.Punch.State == attendance.PunchFailed {
		return "Punch rejected: " + view.Punch.LastError
	}
	return ok
}

// Events handles GET /attendance/events?token=
func (h *attendanceHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers; the short-lived stream token travels in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	sessionID, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	// Stream tokens outlive logout; the session itself must still resolve
	if !h.sessionService.Resolver(sessionID).IsAuthenticated(r.Context()) {
		response.HandleError(w, session.ErrSessionExpired)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sessionID)
	defer cleanup()

	// The current view goes first so the client never waits for a change
	initial := sse.Event{Event: "attendance", Data: h.attendanceService.View(r.Context(), sessionID)}
	if _, err := initial.WriteTo(w); err != nil {
		return
	}
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if _, err := event.WriteTo(w); err != nil {
				slog.Debug("Attendance stream closed", "session_id", sessionID, "error", err)
				return
			}
			flusher.Flush()

		case <-keepalive.C:
			ping := sse.Event{Event: "ping", Data: map[string]int64{"timestamp": time.Now().Unix()}}
			if _, err := ping.WriteTo(w); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
