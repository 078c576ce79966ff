package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mdelaunay/shiftsync/internal/config"
	"github.com/mdelaunay/shiftsync/internal/portal"
	"github.com/mdelaunay/shiftsync/internal/schedule"
)

// State tracks how far a sync pass has progressed. Authentication and
// fetch failures leave the run Failed with nothing written; reconciliation
// failures on individual events do not fail the run.
type State int

const (
	StateIdle State = iota
	StateAuthenticated
	StateFetched
	StateNormalized
	StateReconciling
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAuthenticated:
		return "authenticated"
	case StateFetched:
		return "fetched"
	case StateNormalized:
		return "normalized"
	case StateReconciling:
		return "reconciling"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Runner drives one end-to-end sync pass: authenticate, fetch, normalize,
// reconcile. It is single-shot and sequential; a Runner must not be
// shared across concurrent runs, and overlapping invocations racing on
// the same calendar dates would interleave deletes and creates
// unpredictably.
type Runner struct {
	cfg   *config.Config
	auth  *portal.Authenticator
	cal   CalendarAPI
	state State
}

// NewRunner wires a runner from the validated configuration and an
// authenticated calendar client.
func NewRunner(cfg *config.Config, cal CalendarAPI) *Runner {
	return &Runner{
		cfg:   cfg,
		auth:  portal.NewAuthenticator(cfg.Portal.BaseURL),
		cal:   cal,
		state: StateIdle,
	}
}

func (r *Runner) transition(s State) {
	r.state = s
	logrus.WithField("state", s.String()).Debug("sync state")
}

// State reports the runner's current stage.
func (r *Runner) State() State { return r.state }

// Run executes one sync pass for the window computed from now. The
// returned Result is meaningful even on error for the stages that did
// run; a non-nil error means the run was fatal (nothing was written to
// the calendar unless reconciliation had already begun).
func (r *Runner) Run(ctx context.Context, now time.Time, dryRun bool) (Result, error) {
	var res Result

	w := NextWindow(now, r.cfg.Location)
	logrus.WithFields(logrus.Fields{
		"from": w.FromDate(),
		"to":   w.ToDate(),
	}).Info("starting shift sync")

	sess, err := r.auth.Login(ctx, r.cfg.Portal.Username, r.cfg.Portal.Password)
	if err != nil {
		r.transition(StateFailed)
		return res, fmt.Errorf("portal authentication: %w", err)
	}
	r.transition(StateAuthenticated)

	raws, err := sess.FetchEvents(ctx, w.FromDate(), w.ToDate(), portal.ViewWeek)
	if err != nil {
		r.transition(StateFailed)
		return res, fmt.Errorf("fetching schedule: %w", err)
	}
	r.transition(StateFetched)
	logrus.WithField("records", len(raws)).Info("fetched planning records")

	shifts := r.normalize(raws, &res)
	shifts = schedule.FilterByEmployee(shifts, r.cfg.Portal.EmployeeID, "", "")
	r.transition(StateNormalized)

	work := 0
	for _, s := range shifts {
		if s.Kind == schedule.KindWork {
			work++
		}
	}
	logrus.WithFields(logrus.Fields{
		"shifts": len(shifts),
		"work":   work,
	}).Info("normalized employee shifts")

	r.transition(StateReconciling)
	engine := &Engine{
		Calendar:   r.cal,
		CalendarID: r.cfg.Google.CalendarID,
		Timezone:   r.cfg.Timezone,
		DryRun:     dryRun,
	}
	engineRes, err := engine.Reconcile(ctx, shifts, w)
	res.ShiftsProcessed = engineRes.ShiftsProcessed
	res.Created = engineRes.Created
	res.Deleted = engineRes.Deleted
	res.Failures = engineRes.Failures
	if err != nil {
		r.transition(StateFailed)
		return res, fmt.Errorf("reconciling calendar: %w", err)
	}
	r.transition(StateComplete)

	logrus.WithFields(logrus.Fields{
		"processed": res.ShiftsProcessed,
		"created":   res.Created,
		"deleted":   res.Deleted,
		"skipped":   res.Skipped,
		"failures":  res.Failures,
	}).Info("sync complete")
	return res, nil
}

// normalize classifies the raw records, skipping (and counting) the ones
// whose timestamps cannot be parsed.
func (r *Runner) normalize(raws []portal.RawShift, res *Result) []schedule.Shift {
	shifts := make([]schedule.Shift, 0, len(raws))
	for _, raw := range raws {
		s, err := schedule.Classify(raw)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"shift": raw.ID.String(),
				"label": raw.Label,
			}).WithError(err).Warn("skipping unparseable shift")
			res.Skipped++
			continue
		}
		shifts = append(shifts, s)
	}
	return shifts
}
