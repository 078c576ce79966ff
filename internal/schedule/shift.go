package schedule

import "time"

// Kind classifies a shift record.
type Kind string

const (
	KindWork    Kind = "WORK"
	KindAbsence Kind = "ABSENCE"
	// KindOther covers every type tag the portal emits that is not
	// recognized. Unknown tags are never treated as work.
	KindOther Kind = "OTHER"
)

// Shift is a normalized planning record: timezone-aware instants instead
// of portal timestamp strings, a classified kind, and parsed durations.
// Invariants: Start is before End and BreakMinutes is never negative.
type Shift struct {
	ID           string
	EmployeeID   string
	Kind         Kind
	Code         string
	Label        string
	Start        time.Time
	End          time.Time
	DurationText string
	// DurationMinutes is DurationText parsed, or 0 when the text is
	// malformed (totals skip such shifts the same way).
	DurationMinutes int
	BreakMinutes    int
	// BreakStart/BreakEnd are zero when the shift has no break window.
	BreakStart  time.Time
	BreakEnd    time.Time
	SiteName    string
	Description string
}

// Date returns the calendar date of the shift's start instant in the
// offset the portal supplied, formatted YYYY-MM-DD.
func (s Shift) Date() string {
	return s.Start.Format("2006-01-02")
}

// Summary is a display-oriented rendering of a shift.
type Summary struct {
	Date         string
	Kind         Kind
	Label        string
	Code         string
	StartTime    string
	EndTime      string
	Duration     string
	BreakMinutes int
	// BreakStart/BreakEnd are only populated when BreakMinutes > 0.
	BreakStart string
	BreakEnd   string
}
