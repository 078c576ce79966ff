package sync

import "time"

// Window is the half-open [Start, End) date range a sync pass covers:
// a Monday midnight through the following Monday midnight in the
// configured zone.
type Window struct {
	Start time.Time
	End   time.Time
}

// NextWindow computes the target window from "now": the Monday of the
// week after next, through its Sunday. The nearer Monday is always
// skipped, even when today is itself a Monday, so the window starts at
// least one full week in the future. This arithmetic is deliberate —
// the sync runs well ahead of the published schedule — and must not be
// narrowed to the adjacent week.
func NextWindow(now time.Time, loc *time.Location) Window {
	now = now.In(loc)
	weekday := (int(now.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	daysAhead := (7 - weekday) + 7
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, daysAhead)
	return Window{Start: monday, End: monday.AddDate(0, 0, 7)}
}

// FromDate is the first day of the window as a portal query date.
func (w Window) FromDate() string {
	return w.Start.Format("2006-01-02")
}

// ToDate is the last day of the window (the Sunday) as a portal query
// date; the portal's to parameter is inclusive.
func (w Window) ToDate() string {
	return w.End.AddDate(0, 0, -1).Format("2006-01-02")
}
