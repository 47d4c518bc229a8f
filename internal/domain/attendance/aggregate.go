package attendance

import (
	"sort"
)

// Normalize collapses records sharing a date and orders the result by date,
// newest first. Among same-date records the one with the latest punch_out
// wins; a missing punch_out loses to any present one; on a tie the entry that
// came later in the input wins.
func Normalize(records []Record) []Record {
	byDay := make(map[string]int, len(records))
	out := make([]Record, 0, len(records))

	for _, r := range records {
		day := r.Day()
		idx, seen := byDay[day]
		if !seen {
			byDay[day] = len(out)
			out = append(out, r)
			continue
		}
		if !punchOutBefore(r, out[idx]) {
			out[idx] = r
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Day() > out[j].Day()
	})
	return out
}

// punchOutBefore reports whether a punched out strictly before b.
func punchOutBefore(a, b Record) bool {
	aOut, aOK := clockOf(a.PunchOut)
	bOut, bOK := clockOf(b.PunchOut)
	switch {
	case !aOK && !bOK:
		return false
	case !aOK:
		return true
	case !bOK:
		return false
	default:
		return aOut < bOut
	}
}

func clockOf(s *string) (int64, bool) {
	if s == nil {
		return 0, false
	}
	d, ok := parseClock(*s)
	return int64(d), ok
}

// Window returns the most recent WeeklyWindow days of records.
func Window(records []Record) []Record {
	normalized := Normalize(records)
	if len(normalized) > WeeklyWindow {
		normalized = normalized[:WeeklyWindow]
	}
	return normalized
}

// Summarize computes the weekly total and daily average over the window.
func Summarize(records []Record) Summary {
	window := Window(records)

	var total float64
	for _, r := range window {
		total += r.Hours()
	}

	var avg float64
	if len(window) > 0 {
		avg = total / float64(len(window))
	}

	return Summary{
		Days:         len(window),
		WeeklyTotal:  total,
		DailyAverage: avg,
	}
}

// Today returns the record dated day, if any.
func Today(records []Record, day string) *Record {
	for _, r := range Normalize(records) {
		if r.Day() == day {
			rec := r
			return &rec
		}
	}
	return nil
}
