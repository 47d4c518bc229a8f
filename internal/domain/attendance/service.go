package attendance

import (
	"context"
	"time"
)

// AttendanceService drives the attendance view-model of one session at a time.
type AttendanceService interface {
	// Load fetches the records of the signed-in user and returns the view.
	// An unauthenticated session yields the current view without error.
	Load(ctx context.Context, sessionID string) (ViewResponse, error)

	// View returns the current view without contacting the upstream API
	View(ctx context.Context, sessionID string) ViewResponse

	PunchIn(ctx context.Context, sessionID string) (ViewResponse, error)

	PunchOut(ctx context.Context, sessionID string) (ViewResponse, error)

	// Forget drops the view state of a session
	Forget(sessionID string)

	// Sweep drops view state untouched for longer than idle and returns the count
	Sweep(idle time.Duration) int
}
