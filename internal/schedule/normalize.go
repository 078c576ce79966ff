package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mdelaunay/shiftsync/internal/portal"
)

var (
	// ErrTimeFormat means a portal timestamp could not be parsed. The
	// affected shift is skipped; the run continues.
	ErrTimeFormat = errors.New("unparseable portal timestamp")
	// ErrDurationFormat means a duration text was not of the <H>h[MM] form.
	ErrDurationFormat = errors.New("unparseable duration text")
)

// The portal embeds a 3-4 letter timezone abbreviation right before the
// numeric UTC offset ("2025-10-22 10:30 CEST+0200"). The abbreviation is
// not resolvable to a canonical zone without a lookup table, but the
// offset alone is authoritative, so the abbreviation is stripped and the
// offset kept.
var zoneAbbrev = regexp.MustCompile(`\s+[A-Z]{3,4}([+\-]\d{4})`)

var timeLayouts = []string{
	"2006-01-02 15:04 -0700",
	"2006-01-02 15:04:05 -0700",
}

// ParseTime parses a portal timestamp into an offset-aware instant.
func ParseTime(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(zoneAbbrev.ReplaceAllString(raw, " $1"))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrTimeFormat, raw)
}

// Duration texts look like "7h30" or "8h"; an absent or empty minutes
// token means zero minutes.
var durationText = regexp.MustCompile(`^(\d+)h(\d*)$`)

// ParseDurationText converts a portal duration text to minutes.
func ParseDurationText(text string) (int, error) {
	m := durationText.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrDurationFormat, text)
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrDurationFormat, text)
	}
	minutes := 0
	if m[2] != "" {
		if minutes, err = strconv.Atoi(m[2]); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrDurationFormat, text)
		}
	}
	return hours*60 + minutes, nil
}

// FormatMinutes renders a minute total as "<H>h<MM>" with the minutes
// zero-padded to two digits, e.g. 930 -> "15h30".
func FormatMinutes(total int) string {
	return fmt.Sprintf("%dh%02d", total/60, total%60)
}

// Classify normalizes one raw planning record into a Shift. The type tag
// is mapped verbatim onto the Kind enum; anything unrecognized becomes
// KindOther without error. Timestamp problems, or a start that is not
// before its end, return ErrTimeFormat so the caller can skip the record.
func Classify(raw portal.RawShift) (Shift, error) {
	start, err := ParseTime(raw.Start)
	if err != nil {
		return Shift{}, err
	}
	end, err := ParseTime(raw.End)
	if err != nil {
		return Shift{}, err
	}
	if !start.Before(end) {
		return Shift{}, fmt.Errorf("%w: start %q is not before end %q", ErrTimeFormat, raw.Start, raw.End)
	}

	kind := KindOther
	switch raw.Type {
	case string(KindWork):
		kind = KindWork
	case string(KindAbsence):
		kind = KindAbsence
	}

	// Malformed duration text is tolerated; the shift just contributes
	// nothing to work-minute totals.
	durationMinutes, _ := ParseDurationText(raw.DurationText)

	breakMinutes := raw.BreakTime
	if breakMinutes < 0 {
		breakMinutes = 0
	}

	s := Shift{
		ID:              raw.ID.String(),
		EmployeeID:      raw.Employee.String(),
		Kind:            kind,
		Code:            raw.Code,
		Label:           raw.Label,
		Start:           start,
		End:             end,
		DurationText:    raw.DurationText,
		DurationMinutes: durationMinutes,
		BreakMinutes:    breakMinutes,
		SiteName:        raw.SiteName,
		Description:     strings.TrimSpace(raw.Description),
	}

	// Break window timestamps are best-effort; absence is normal.
	if raw.BreakTimeStart != "" {
		if t, err := ParseTime(raw.BreakTimeStart); err == nil {
			s.BreakStart = t
		}
	}
	if raw.BreakTimeEnd != "" {
		if t, err := ParseTime(raw.BreakTimeEnd); err == nil {
			s.BreakEnd = t
		}
	}
	return s, nil
}

// FilterByEmployee returns the shifts belonging to the given employee.
// Ids are compared as normalized strings since the portal emits them as
// numbers on some endpoints and strings on others. When fromDate and
// toDate (both YYYY-MM-DD) are non-empty, only shifts whose start date
// falls inside the inclusive range are kept; the comparison is lexical,
// which is equivalent to chronological for this format.
func FilterByEmployee(shifts []Shift, employeeID, fromDate, toDate string) []Shift {
	id := strings.TrimSpace(employeeID)
	var out []Shift
	for _, s := range shifts {
		if s.EmployeeID != id {
			continue
		}
		if fromDate != "" && toDate != "" {
			d := s.Date()
			if d < fromDate || d > toDate {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// TotalWorkMinutes sums the duration text of WORK shifts only. Shifts
// whose duration text is malformed contribute nothing.
func TotalWorkMinutes(shifts []Shift) int {
	total := 0
	for _, s := range shifts {
		if s.Kind != KindWork {
			continue
		}
		minutes, err := ParseDurationText(s.DurationText)
		if err != nil {
			continue
		}
		total += minutes
	}
	return total
}

// Summarize renders a shift for display. The break clock times are only
// present when the shift actually has break minutes.
func Summarize(s Shift) Summary {
	sum := Summary{
		Date:         s.Date(),
		Kind:         s.Kind,
		Label:        s.Label,
		Code:         s.Code,
		StartTime:    s.Start.Format("15:04"),
		EndTime:      s.End.Format("15:04"),
		Duration:     s.DurationText,
		BreakMinutes: s.BreakMinutes,
	}
	if s.BreakMinutes > 0 {
		if !s.BreakStart.IsZero() {
			sum.BreakStart = s.BreakStart.Format("15:04")
		}
		if !s.BreakEnd.IsZero() {
			sum.BreakEnd = s.BreakEnd.Format("15:04")
		}
	}
	return sum
}
