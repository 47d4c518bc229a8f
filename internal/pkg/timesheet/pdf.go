// Package timesheet renders the weekly attendance window as a printable PDF.
package timesheet

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/cmlabs-hris/hris-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal/internal/domain/user"
)

const ContentType = "application/pdf"

var columns = []struct {
	title string
	width float64
}{
	{"Date", 40},
	{"Punch in", 30},
	{"Punch out", 30},
	{"Hours", 30},
	{"Status", 40},
}

// Render writes a one-page timesheet of view for profile to w.
func Render(w io.Writer, profile user.ProfileResponse, view attendance.ViewResponse) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Weekly timesheet", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Weekly timesheet")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Employee: %s", displayName(profile))))
	pdf.Ln(7)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Role: %s (%s)", profile.RoleDisplayName, profile.Designation)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated for: %s", view.Date))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	for _, c := range columns {
		pdf.CellFormat(c.width, 8, c.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	if len(view.Records) == 0 {
		pdf.CellFormat(170, 8, "No attendance recorded", "1", 1, "C", false, 0, "")
	}
	for _, r := range view.Records {
		pdf.CellFormat(columns[0].width, 8, r.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(columns[1].width, 8, clock(r.PunchIn), "1", 0, "C", false, 0, "")
		pdf.CellFormat(columns[2].width, 8, clock(r.PunchOut), "1", 0, "C", false, 0, "")
		pdf.CellFormat(columns[3].width, 8, fmt.Sprintf("%.2f", r.Hours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columns[4].width, 8, tr(r.Status), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Weekly total: %.2f h", view.WeeklyTotal))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Daily average: %.2f h", view.DailyAverage))

	return pdf.Output(w)
}

func displayName(p user.ProfileResponse) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

func clock(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
