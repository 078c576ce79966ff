package sync_test

import (
	"testing"
	"time"

	"github.com/mdelaunay/shiftsync/internal/sync"
)

func TestNextWindow_FromWednesday(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	// Wednesday 2025-10-22: the window starts on the Monday 12 days
	// later and ends on the Sunday 18 days later (two full weeks ahead).
	now := time.Date(2025, 10, 22, 14, 45, 0, 0, loc)

	w := sync.NextWindow(now, loc)
	if got := w.FromDate(); got != "2025-11-03" {
		t.Errorf("FromDate = %s, want 2025-11-03", got)
	}
	if got := w.ToDate(); got != "2025-11-09" {
		t.Errorf("ToDate = %s, want 2025-11-09", got)
	}
	if w.Start.Weekday() != time.Monday {
		t.Errorf("Start weekday = %s, want Monday", w.Start.Weekday())
	}
	if !w.End.Equal(w.Start.AddDate(0, 0, 7)) {
		t.Errorf("End = %s, want Start + 7 days", w.End)
	}
	if w.Start.Hour() != 0 || w.Start.Minute() != 0 {
		t.Errorf("Start = %s, want midnight", w.Start)
	}
}

func TestNextWindow_MondayStillSkipsAFullWeek(t *testing.T) {
	loc := time.UTC
	// Monday 2025-10-20: the nearer Monday one week out is skipped too.
	now := time.Date(2025, 10, 20, 9, 0, 0, 0, loc)

	w := sync.NextWindow(now, loc)
	if got := w.FromDate(); got != "2025-11-03" {
		t.Errorf("FromDate = %s, want 2025-11-03", got)
	}
	if got := w.ToDate(); got != "2025-11-09" {
		t.Errorf("ToDate = %s, want 2025-11-09", got)
	}
}

func TestNextWindow_FromSunday(t *testing.T) {
	loc := time.UTC
	// Sunday 2025-10-26 is the last day of its week; the next Monday is
	// tomorrow, so the window starts a week after that.
	now := time.Date(2025, 10, 26, 23, 0, 0, 0, loc)

	w := sync.NextWindow(now, loc)
	if got := w.FromDate(); got != "2025-11-03" {
		t.Errorf("FromDate = %s, want 2025-11-03", got)
	}
}

func TestNextWindow_UsesConfiguredZone(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	// 23:30 UTC on a Sunday is already Monday in Paris; the window must
	// be computed from the Paris date.
	now := time.Date(2025, 10, 26, 23, 30, 0, 0, time.UTC)

	w := sync.NextWindow(now, paris)
	if got := w.FromDate(); got != "2025-11-10" {
		t.Errorf("FromDate = %s, want 2025-11-10", got)
	}
}
