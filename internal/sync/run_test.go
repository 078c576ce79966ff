package sync_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/mdelaunay/shiftsync/internal/config"
	"github.com/mdelaunay/shiftsync/internal/portal"
	"github.com/mdelaunay/shiftsync/internal/sync"
)

const runLoginPage = `<form><input type="hidden" name="_csrf_token" value="tok"/></form>`

// Planning data for the window computed from runNow (2025-11-03 .. 09):
// one WORK shift for employee 42, one for someone else, one absence and
// one record with a broken timestamp.
const runEventsJSON = `[
  {"id": 1, "employee": 42, "type": "WORK", "code": "M1", "label": "Matin",
   "start": "2025-11-03 10:30 CET+0100", "end": "2025-11-03 18:30 CET+0100",
   "durationText": "7h30", "breakTime": 30, "siteName": "Hotel Central"},
  {"id": 2, "employee": 7, "type": "WORK", "code": "S1", "label": "Soir",
   "start": "2025-11-03 14:00 CET+0100", "end": "2025-11-03 22:00 CET+0100",
   "durationText": "8h"},
  {"id": 3, "employee": 42, "type": "ABSENCE", "code": "RH", "label": "Repos",
   "start": "2025-11-04 00:00 CET+0100", "end": "2025-11-05 00:00 CET+0100",
   "durationText": "0h"},
  {"id": 4, "employee": 42, "type": "WORK", "code": "M1", "label": "Matin",
   "start": "garbage", "end": "2025-11-05 18:30 CET+0100", "durationText": "8h"}
]`

// Wednesday, so the window is Monday 2025-11-03 through Sunday 2025-11-09.
var runNow = time.Date(2025, 10, 22, 8, 0, 0, 0, time.UTC)

func newRunPortal(t *testing.T, loginBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(loginBody))
	})
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("GET /planning/json/employee/events", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("from") != "2025-11-03" || q.Get("to") != "2025-11-09" {
			t.Errorf("fetch window = %s..%s, want 2025-11-03..2025-11-09", q.Get("from"), q.Get("to"))
		}
		w.Write([]byte(runEventsJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	cfg := &config.Config{Timezone: "UTC", Location: time.UTC}
	cfg.Portal.BaseURL = baseURL
	cfg.Portal.Username = "alice"
	cfg.Portal.Password = "s3cret"
	cfg.Portal.EmployeeID = "42"
	cfg.Google.CalendarID = "cal"
	return cfg
}

func TestRun(t *testing.T) {
	srv := newRunPortal(t, runLoginPage)
	fake := &fakeCalendar{
		events: []*calendar.Event{existingEvent("old-1", "2025-11-03T09:00:00+01:00")},
	}

	runner := sync.NewRunner(runConfig(t, srv.URL), fake)
	res, err := runner.Run(context.Background(), runNow, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if runner.State() != sync.StateComplete {
		t.Errorf("state = %s, want complete", runner.State())
	}
	// Only employee 42's parseable WORK shift is reconciled; the broken
	// record is skipped, the absence and the other employee are ignored.
	if res.ShiftsProcessed != 1 || res.Deleted != 1 || res.Created != 1 {
		t.Errorf("result = %+v, want 1 processed, 1 deleted, 1 created", res)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1 for the unparseable record", res.Skipped)
	}
	if res.Failures != 0 {
		t.Errorf("Failures = %d, want 0", res.Failures)
	}

	onDate := fake.eventsOn("2025-11-03")
	if len(onDate) != 1 || onDate[0].Summary != "Matin" {
		t.Errorf("events on 2025-11-03 = %+v, want only the created shift", onDate)
	}
}

func TestRun_AuthFailureIsFatal(t *testing.T) {
	srv := newRunPortal(t, `<form>no token here</form>`)
	fake := &fakeCalendar{
		events: []*calendar.Event{existingEvent("old-1", "2025-11-03T09:00:00+01:00")},
	}

	runner := sync.NewRunner(runConfig(t, srv.URL), fake)
	_, err := runner.Run(context.Background(), runNow, false)
	if !errors.Is(err, portal.ErrCSRFNotFound) {
		t.Fatalf("error = %v, want ErrCSRFNotFound", err)
	}
	if runner.State() != sync.StateFailed {
		t.Errorf("state = %s, want failed", runner.State())
	}
	// Fatal before reconciliation: nothing was written or deleted.
	if len(fake.created) != 0 || len(fake.events) != 1 {
		t.Error("calendar was mutated despite the fatal auth failure")
	}
}

func TestRun_DryRun(t *testing.T) {
	srv := newRunPortal(t, runLoginPage)
	fake := &fakeCalendar{
		events: []*calendar.Event{existingEvent("old-1", "2025-11-03T09:00:00+01:00")},
	}

	runner := sync.NewRunner(runConfig(t, srv.URL), fake)
	res, err := runner.Run(context.Background(), runNow, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Deleted != 1 || res.Created != 1 {
		t.Errorf("result = %+v, want planned counts", res)
	}
	if len(fake.created) != 0 || len(fake.events) != 1 {
		t.Error("dry run mutated the calendar")
	}
}
