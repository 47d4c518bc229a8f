package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/hrapi"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Upstream API errors keep their message; auth failures stay auth failures
	var apiErr *hrapi.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized:
			Unauthorized(w, apiErr.Message)
		case http.StatusForbidden:
			Forbidden(w, apiErr.Message)
		case http.StatusNotFound:
			NotFound(w, apiErr.Message)
		default:
			BadGateway(w, apiErr.Message)
		}
		return
	}

	switch {
	// Session domain errors
	case errors.Is(err, session.ErrNotAuthenticated):
		Unauthorized(w, "Not authenticated")
	case errors.Is(err, session.ErrSessionExpired):
		Unauthorized(w, "Session expired")
	case errors.Is(err, session.ErrSessionIDRequired):
		Unauthorized(w, "Session id is required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNotAuthenticated):
		Unauthorized(w, "User not authenticated")
	case errors.Is(err, attendance.ErrPunchInProgress):
		Conflict(w, "A punch is already being submitted")
	case errors.Is(err, attendance.ErrUpstreamFailed), errors.Is(err, hrapi.ErrTokenRequired):
		BadGateway(w, "Attendance service unavailable")

	case errors.Is(err, context.DeadlineExceeded):
		GatewayTimeout(w, "Upstream request timed out")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
