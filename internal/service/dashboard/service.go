package dashboard

import (
	"context"

	"github.com/cmlabs-hris/hris-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type resolverSource interface {
	Resolver(sessionID string) session.Resolver
}

type DashboardServiceImpl struct {
	sessions   resolverSource
	attendance attendance.AttendanceService
}

func NewDashboardService(sessions resolverSource, attendanceService attendance.AttendanceService) dashboard.DashboardService {
	return &DashboardServiceImpl{
		sessions:   sessions,
		attendance: attendanceService,
	}
}

// GetDashboard implements dashboard.DashboardService. The user and the
// attendance card are loaded concurrently; the card is dropped for the
// unauthorized variant.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, sessionID string) (*dashboard.DashboardResponse, error) {
	var (
		current *user.User
		view    attendance.ViewResponse
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		current = s.sessions.Resolver(sessionID).GetCurrentUser(gctx)
		return nil
	})

	g.Go(func() error {
		var err error
		view, err = s.attendance.Load(gctx, sessionID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	variant := dashboard.Select(current)
	if variant == dashboard.VariantUnauthorized {
		return &dashboard.DashboardResponse{
			Variant: variant,
			Message: dashboard.UnauthorizedMessage,
		}, nil
	}

	profile := user.NewProfileResponse(*current)
	return &dashboard.DashboardResponse{
		Variant:    variant,
		Profile:    &profile,
		Attendance: dashboard.NewAttendanceSummary(view),
	}, nil
}
