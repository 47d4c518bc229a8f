package attendance

import "errors"

// Attendance domain errors
var (
	ErrPunchInProgress  = errors.New("a punch is already being submitted")
	ErrNotAuthenticated = errors.New("no authenticated user for this session")
	ErrUpstreamFailed   = errors.New("attendance service unavailable")
)
