package attendance

import (
	"github.com/cmlabs-hris/hris-portal/internal/pkg/utils"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/validator"
)

// ========================================
// UPSTREAM DTOs
// ========================================

// PunchRequest is the body of POST /api/employee/attendance.
type PunchRequest struct {
	Date     string  `json:"date"`
	PunchIn  string  `json:"punch_in"`
	PunchOut *string `json:"punch_out"`
	Status   string  `json:"status"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsValidClock(r.PunchIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_in",
			Message: "punch_in must be in HH:MM format",
		})
	}

	if r.PunchOut != nil && !validator.IsValidClock(*r.PunchOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_out",
			Message: "punch_out must be in HH:MM format",
		})
	}

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// VIEW DTOs
// ========================================

type Summary struct {
	Days         int     `json:"days"`
	WeeklyTotal  float64 `json:"weekly_total"`
	DailyAverage float64 `json:"daily_average"`
}

type RecordResponse struct {
	ID         string          `json:"id"`
	Date       string          `json:"date"`
	PunchIn    *string         `json:"punch_in"`
	PunchOut   *string         `json:"punch_out"`
	TotalHours utils.FlexFloat `json:"total_hours"`
	Hours      float64         `json:"hours"`
	Status     string          `json:"status"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:         r.ID.String(),
		Date:       r.Day(),
		PunchIn:    r.PunchIn,
		PunchOut:   r.PunchOut,
		TotalHours: r.TotalHours,
		Hours:      r.Hours(),
		Status:     r.Status,
	}
}

type PunchStatusResponse struct {
	State       PunchState  `json:"state"`
	Action      PunchAction `json:"action,omitempty"`
	PunchedIn   bool        `json:"punched_in"`
	PunchInTime string      `json:"punch_in_time,omitempty"`
	LastError   string      `json:"last_error,omitempty"`
}

func NewPunchStatusResponse(p PunchStatus) PunchStatusResponse {
	state := p.State
	if state == "" {
		state = PunchIdle
	}
	return PunchStatusResponse{
		State:       state,
		Action:      p.Action,
		PunchedIn:   p.PunchedIn,
		PunchInTime: p.PunchInTime,
		LastError:   p.LastError,
	}
}

// ViewResponse is the attendance view-model returned to the browser.
type ViewResponse struct {
	Date         string              `json:"date"`
	Records      []RecordResponse    `json:"records"`
	Today        *RecordResponse     `json:"today"`
	WeeklyTotal  float64             `json:"weekly_total"`
	DailyAverage float64             `json:"daily_average"`
	Punch        PunchStatusResponse `json:"punch"`
}

// NewViewResponse builds the view for the local date day.
func NewViewResponse(day string, records []Record, punch PunchStatus) ViewResponse {
	window := Window(records)
	summary := Summarize(records)

	items := make([]RecordResponse, 0, len(window))
	for _, r := range window {
		items = append(items, NewRecordResponse(r))
	}

	view := ViewResponse{
		Date:         day,
		Records:      items,
		WeeklyTotal:  utils.Round2(summary.WeeklyTotal),
		DailyAverage: utils.Round2(summary.DailyAverage),
		Punch:        NewPunchStatusResponse(punch),
	}
	if today := Today(records, day); today != nil {
		resp := NewRecordResponse(*today)
		view.Today = &resp
	}
	return view
}
