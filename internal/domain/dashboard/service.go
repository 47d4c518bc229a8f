package dashboard

import "context"

type DashboardService interface {
	// GetDashboard resolves the session user and builds its dashboard
	GetDashboard(ctx context.Context, sessionID string) (*DashboardResponse, error)
}
