package dashboard

import (
	"github.com/cmlabs-hris/hris-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal/internal/domain/user"
)

// AttendanceSummary is the attendance card shown on every dashboard.
type AttendanceSummary struct {
	Date         string                         `json:"date"`
	Today        *attendance.RecordResponse     `json:"today"`
	WeeklyTotal  float64                        `json:"weekly_total"`
	DailyAverage float64                        `json:"daily_average"`
	Punch        attendance.PunchStatusResponse `json:"punch"`
}

func NewAttendanceSummary(v attendance.ViewResponse) *AttendanceSummary {
	return &AttendanceSummary{
		Date:         v.Date,
		Today:        v.Today,
		WeeklyTotal:  v.WeeklyTotal,
		DailyAverage: v.DailyAverage,
		Punch:        v.Punch,
	}
}

type DashboardResponse struct {
	Variant    Variant               `json:"variant"`
	Message    string                `json:"message,omitempty"`
	Profile    *user.ProfileResponse `json:"profile,omitempty"`
	Attendance *AttendanceSummary    `json:"attendance,omitempty"`
}
