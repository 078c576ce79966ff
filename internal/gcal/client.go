package gcal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client is an authenticated Google Calendar client.
type Client struct {
	svc *calendar.Service
}

// NewClient builds a Calendar API client from a token source.
func NewClient(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("building calendar service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// EventInput describes a calendar event to create.
type EventInput struct {
	Summary     string
	Start       time.Time
	End         time.Time
	Description string
	Location    string
	// Timezone is the IANA zone attached to both event times.
	Timezone string
	ColorID  string
	// ReminderMinutes configures a single popup reminder that many
	// minutes before the event; default reminders are disabled. Zero
	// means no override block at all.
	ReminderMinutes int
	// Metadata is written as private extended properties. It is never
	// read back by this program; it exists for auditing.
	Metadata map[string]string
}

// EventPatch is an explicit partial update: only non-nil fields are sent,
// everything else is left untouched on the event.
type EventPatch struct {
	Summary     *string
	Description *string
	Location    *string
	Start       *time.Time
	End         *time.Time
	// Timezone applies to Start/End when they are set.
	Timezone string
}

func buildEvent(in EventInput) *calendar.Event {
	ev := &calendar.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Location:    in.Location,
		ColorId:     in.ColorID,
		Start: &calendar.EventDateTime{
			DateTime: in.Start.Format(time.RFC3339),
			TimeZone: in.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: in.End.Format(time.RFC3339),
			TimeZone: in.Timezone,
		},
	}
	if in.ReminderMinutes > 0 {
		ev.Reminders = &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: int64(in.ReminderMinutes)},
			},
			// UseDefault is false, which encoding/json would omit.
			ForceSendFields: []string{"UseDefault"},
		}
	}
	if len(in.Metadata) > 0 {
		ev.ExtendedProperties = &calendar.EventExtendedProperties{
			Private: in.Metadata,
		}
	}
	return ev
}

func buildPatch(p EventPatch) *calendar.Event {
	ev := &calendar.Event{}
	if p.Summary != nil {
		ev.Summary = *p.Summary
		ev.ForceSendFields = append(ev.ForceSendFields, "Summary")
	}
	if p.Description != nil {
		ev.Description = *p.Description
		ev.ForceSendFields = append(ev.ForceSendFields, "Description")
	}
	if p.Location != nil {
		ev.Location = *p.Location
		ev.ForceSendFields = append(ev.ForceSendFields, "Location")
	}
	if p.Start != nil {
		ev.Start = &calendar.EventDateTime{DateTime: p.Start.Format(time.RFC3339), TimeZone: p.Timezone}
	}
	if p.End != nil {
		ev.End = &calendar.EventDateTime{DateTime: p.End.Format(time.RFC3339), TimeZone: p.Timezone}
	}
	return ev
}

// ListEventsInRange returns the single-instance events of a calendar in
// [start, end), ordered by start time, following pagination.
func (c *Client) ListEventsInRange(ctx context.Context, calendarID string, start, end time.Time) ([]*calendar.Event, error) {
	var all []*calendar.Event
	err := c.svc.Events.List(calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Pages(ctx, func(page *calendar.Events) error {
			all = append(all, page.Items...)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListFailed, err)
	}
	return all, nil
}

// CreateEvent inserts a new event into the calendar.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, in EventInput) (*calendar.Event, error) {
	created, err := c.svc.Events.Insert(calendarID, buildEvent(in)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}
	return created, nil
}

// DeleteEvent removes an event from the calendar.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDeleteFailed, eventID, err)
	}
	return nil
}

// UpdateEvent applies a partial update to an existing event. Fields left
// nil in the patch are untouched.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, p EventPatch) (*calendar.Event, error) {
	updated, err := c.svc.Events.Patch(calendarID, eventID, buildPatch(p)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpdateFailed, eventID, err)
	}
	return updated, nil
}

// ListCalendars returns the calendars visible to the authorized account.
func (c *Client) ListCalendars(ctx context.Context) ([]*calendar.CalendarListEntry, error) {
	var all []*calendar.CalendarListEntry
	err := c.svc.CalendarList.List().Pages(ctx, func(page *calendar.CalendarList) error {
		all = append(all, page.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListFailed, err)
	}
	return all, nil
}

// CreateCalendar creates a new calendar, e.g. a dedicated shift calendar.
func (c *Client) CreateCalendar(ctx context.Context, summary, description, timezone, location string) (*calendar.Calendar, error) {
	created, err := c.svc.Calendars.Insert(&calendar.Calendar{
		Summary:     summary,
		Description: description,
		TimeZone:    timezone,
		Location:    location,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}
	return created, nil
}
