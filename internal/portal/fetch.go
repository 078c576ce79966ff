package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	eventsPath    = "/planning/json/employee/events"
	resourcesPath = "/planning/json/resources"
)

// View selects the portal planning view mode for the events query.
type View string

const (
	ViewWeek         View = "week"
	ViewTimelineWeek View = "timelineWeek"
	ViewTimelineDay  View = "timelineDay"
	ViewMonth        View = "month"
)

// ParseView validates a view mode string.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewWeek, ViewTimelineWeek, ViewTimelineDay, ViewMonth:
		return v, nil
	}
	return "", fmt.Errorf("unknown planning view %q", s)
}

// FlexID is an identifier the portal emits either as a JSON number or a
// JSON string depending on the endpoint. It normalizes to a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// RawShift is a portal-native planning record, decoded as-is. Timestamps
// keep their original "2025-10-22 10:30 CEST+0200" form; normalization
// happens in the schedule package.
type RawShift struct {
	ID             FlexID `json:"id"`
	Employee       FlexID `json:"employee"`
	Type           string `json:"type"`
	Code           string `json:"code"`
	Label          string `json:"label"`
	Start          string `json:"start"`
	End            string `json:"end"`
	DurationText   string `json:"durationText"`
	BreakTime      int    `json:"breakTime"`
	BreakTimeStart string `json:"breakTimeStart"`
	BreakTimeEnd   string `json:"breakTimeEnd"`
	SiteName       string `json:"siteName"`
	Description    string `json:"description"`
}

// Resource is an entry of the portal resource directory. Only entries
// with Type "employee" are of interest here.
type Resource struct {
	ID        FlexID `json:"id"`
	Type      string `json:"type"`
	Text      string `json:"text"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Function  struct {
		Label string `json:"label"`
	} `json:"function"`
	WeekHours     float64 `json:"weekHours"`
	ContractStart string  `json:"contractStart"`
}

// Employee is the read-only directory view of an employee.
type Employee struct {
	ID            string
	Name          string
	Function      string
	WeekHours     float64
	ContractStart string
}

// FetchEvents retrieves the raw planning records for [from, to] (both
// YYYY-MM-DD, inclusive) in the given view mode. An empty result is
// success with an empty slice, not an error.
func (s *Session) FetchEvents(ctx context.Context, from, to string, view View) ([]RawShift, error) {
	query := url.Values{
		"from": {from},
		"to":   {to},
		"view": {string(view)},
	}
	logrus.WithFields(logrus.Fields{"from": from, "to": to, "view": view}).Debug("fetching planning events")

	var shifts []RawShift
	if err := s.getJSON(ctx, eventsPath, query, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

// FetchResources retrieves the full resource directory.
func (s *Session) FetchResources(ctx context.Context) ([]Resource, error) {
	var resources []Resource
	if err := s.getJSON(ctx, resourcesPath, nil, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (s *Session) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := s.get(ctx, path, query)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrHTTPStatus, path, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrJSONDecode, path, err)
	}
	return nil
}

// Employees filters the directory down to employee entries.
func Employees(resources []Resource) []Employee {
	var out []Employee
	for _, r := range resources {
		if r.Type != "employee" {
			continue
		}
		out = append(out, Employee{
			ID:            r.ID.String(),
			Name:          r.Text,
			Function:      r.Function.Label,
			WeekHours:     r.WeekHours,
			ContractStart: r.ContractStart,
		})
	}
	return out
}

// FindEmployeesByName returns directory employees whose display name
// contains the query, case-insensitively.
func FindEmployeesByName(resources []Resource, name string) []Employee {
	query := strings.ToLower(name)
	var out []Employee
	for _, e := range Employees(resources) {
		if strings.Contains(strings.ToLower(e.Name), query) {
			out = append(out, e)
		}
	}
	return out
}

// LookupEmployee returns the directory entry with the given id, if any.
func LookupEmployee(resources []Resource, id string) (Employee, bool) {
	for _, e := range Employees(resources) {
		if e.ID == strings.TrimSpace(id) {
			return e, true
		}
	}
	return Employee{}, false
}
