package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-portal/internal/pkg/utils"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	// DefaultPunchIn is sent on punch-out when no punch-in time is known.
	DefaultPunchIn = "09:00"

	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"

	WeeklyWindow = 7
)

// Record is one attendance entry as served by the upstream API.
type Record struct {
	ID         utils.FlexString `json:"id"`
	Date       string           `json:"date"`
	PunchIn    *string          `json:"punch_in"`
	PunchOut   *string          `json:"punch_out"`
	TotalHours utils.FlexFloat  `json:"total_hours"`
	Status     string           `json:"status"`
}

// Day returns the record date as YYYY-MM-DD. Timestamps are truncated to
// their date part.
func (r Record) Day() string {
	if len(r.Date) >= len(DateLayout) {
		if _, err := time.Parse(DateLayout, r.Date[:len(DateLayout)]); err == nil {
			return r.Date[:len(DateLayout)]
		}
	}
	return r.Date
}

// Hours returns the worked hours of the record. The server value wins; when
// it is missing the hours are derived from punch_in and punch_out.
func (r Record) Hours() float64 {
	if r.TotalHours.Valid {
		return r.TotalHours.Value
	}
	if r.PunchIn == nil || r.PunchOut == nil {
		return 0
	}
	in, okIn := parseClock(*r.PunchIn)
	out, okOut := parseClock(*r.PunchOut)
	if !okIn || !okOut || out < in {
		return 0
	}
	return utils.Round2((out - in).Hours())
}

// IsOpen reports whether the record has a punch-in without a punch-out.
func (r Record) IsOpen() bool {
	return r.PunchIn != nil && *r.PunchIn != "" && (r.PunchOut == nil || *r.PunchOut == "")
}

func parseClock(s string) (time.Duration, bool) {
	for _, layout := range []string{ClockLayout, "15:04:05"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}
