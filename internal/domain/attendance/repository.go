package attendance

import (
	"context"
)

// Client is the upstream attendance API. Every call is authorized with the
// caller's bearer token.
type Client interface {
	// ListRecords fetches the attendance history of an employee
	ListRecords(ctx context.Context, token, employeeID string) ([]Record, error)

	// SubmitPunch posts a punch-in or punch-out event
	SubmitPunch(ctx context.Context, token string, req PunchRequest) error
}
