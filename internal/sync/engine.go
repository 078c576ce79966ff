package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"

	"github.com/mdelaunay/shiftsync/internal/gcal"
	"github.com/mdelaunay/shiftsync/internal/schedule"
)

// CalendarAPI is the destination-calendar surface the engine consumes.
// *gcal.Client satisfies it; tests use a fake.
type CalendarAPI interface {
	ListEventsInRange(ctx context.Context, calendarID string, start, end time.Time) ([]*calendar.Event, error)
	CreateEvent(ctx context.Context, calendarID string, in gcal.EventInput) (*calendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// Result accumulates the outcome counters of one sync pass. It is never
// persisted; the process exit code stays 0 even with Failures > 0, since
// the next scheduled run reconciles the same dates again.
type Result struct {
	ShiftsProcessed int
	Created         int
	Deleted         int
	Skipped         int
	Failures        int
}

// reminderMinutes is the fixed popup lead time on created events.
const reminderMinutes = 30

// Engine applies the per-date replace algorithm against the destination
// calendar: for each WORK shift, every existing event on the shift's
// date is deleted, then one event is created for the shift. The
// destination calendar therefore has to be dedicated to shift events —
// anything else sharing a synced date gets deleted.
type Engine struct {
	Calendar   CalendarAPI
	CalendarID string
	// Timezone is attached to created events.
	Timezone string
	// DryRun logs planned mutations without performing them.
	DryRun bool
}

// Reconcile runs the replace loop over the shifts, in source order, one
// iteration per WORK shift. The existing events are listed once for the
// whole window up front; a listing failure aborts before any mutation.
// Individual delete or create failures are logged, counted and skipped —
// partial syncs are self-healing because the next run repeats the same
// per-date replace.
func (e *Engine) Reconcile(ctx context.Context, shifts []schedule.Shift, w Window) (Result, error) {
	var res Result

	existing, err := e.Calendar.ListEventsInRange(ctx, e.CalendarID, w.Start, w.End)
	if err != nil {
		return res, err
	}
	logrus.WithField("events", len(existing)).Info("existing calendar events in window")

	for _, shift := range shifts {
		if shift.Kind != schedule.KindWork {
			continue
		}
		res.ShiftsProcessed++

		date := shift.Date()
		log := logrus.WithFields(logrus.Fields{
			"shift": shift.ID,
			"label": shift.Label,
			"date":  date,
		})
		log.Info("processing work shift")

		// Destructive full-day replace: empty the date first.
		for _, ev := range eventsOnDate(existing, date) {
			log.WithFields(logrus.Fields{"event": ev.Id, "summary": ev.Summary}).Info("deleting existing event")
			if e.DryRun {
				res.Deleted++
				continue
			}
			if err := e.Calendar.DeleteEvent(ctx, e.CalendarID, ev.Id); err != nil {
				log.WithError(err).Error("delete failed")
				res.Failures++
				continue
			}
			res.Deleted++
			existing = removeEvent(existing, ev.Id)
		}

		input := e.eventInput(shift)
		if e.DryRun {
			log.WithField("summary", input.Summary).Info("would create event")
			res.Created++
			continue
		}
		created, err := e.Calendar.CreateEvent(ctx, e.CalendarID, input)
		if err != nil {
			log.WithError(err).Error("create failed")
			res.Failures++
			continue
		}
		log.WithField("event", created.Id).Info("created event")
		res.Created++
	}

	return res, nil
}

// eventInput maps a shift onto the destination event: summary is the
// shift label, times carry the configured zone, and the private metadata
// tags the originating shift for auditing (it is never read back; the
// replace matches purely on date).
func (e *Engine) eventInput(s schedule.Shift) gcal.EventInput {
	return gcal.EventInput{
		Summary:         s.Label,
		Start:           s.Start,
		End:             s.End,
		Description:     shiftDescription(s),
		Location:        s.SiteName,
		Timezone:        e.Timezone,
		ColorID:         "1",
		ReminderMinutes: reminderMinutes,
		Metadata: map[string]string{
			"silae_shift_id":   s.ID,
			"silae_shift_code": s.Code,
			"sync_script":      "shiftsync",
		},
	}
}

func shiftDescription(s schedule.Shift) string {
	return strings.TrimSpace(fmt.Sprintf(`Shift Details:
- Code: %s (%s)
- Duration: %s
- Site: %s
- Break: %d min
- Description: %s`,
		s.Code, s.Label, s.DurationText, s.SiteName, s.BreakMinutes, s.Description))
}

// eventsOnDate selects events whose start falls on the given YYYY-MM-DD
// date, by string prefix over the event's dateTime (or all-day date).
func eventsOnDate(events []*calendar.Event, date string) []*calendar.Event {
	var out []*calendar.Event
	for _, ev := range events {
		if strings.HasPrefix(eventStart(ev), date) {
			out = append(out, ev)
		}
	}
	return out
}

func eventStart(ev *calendar.Event) string {
	if ev.Start == nil {
		return ""
	}
	if ev.Start.DateTime != "" {
		return ev.Start.DateTime
	}
	return ev.Start.Date
}

func removeEvent(events []*calendar.Event, id string) []*calendar.Event {
	out := events[:0]
	for _, ev := range events {
		if ev.Id != id {
			out = append(out, ev)
		}
	}
	return out
}
