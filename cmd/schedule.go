package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdelaunay/shiftsync/internal/portal"
	"github.com/mdelaunay/shiftsync/internal/schedule"
	"github.com/mdelaunay/shiftsync/internal/sync"
)

var (
	scheduleFrom string
	scheduleTo   string
	scheduleView string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the employee's upcoming shift schedule",
	Long: `Fetches and prints the configured employee's shifts for the upcoming
sync window (or an explicit --from/--to range), with a worked-hours
summary. Nothing is written to the calendar.`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleFrom, "from", "", "Start date (YYYY-MM-DD); requires --to")
	scheduleCmd.Flags().StringVar(&scheduleTo, "to", "", "End date (YYYY-MM-DD); requires --from")
	scheduleCmd.Flags().StringVar(&scheduleView, "view", "week", "Planning view mode (week, timelineWeek, timelineDay, month)")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	view, err := portal.ParseView(scheduleView)
	if err != nil {
		return err
	}

	from, to := scheduleFrom, scheduleTo
	if (from == "") != (to == "") {
		return fmt.Errorf("--from and --to must be given together")
	}
	if from == "" {
		w := sync.NextWindow(time.Now(), cfg.Location)
		from, to = w.FromDate(), w.ToDate()
	} else {
		for _, d := range []string{from, to} {
			if _, err := time.Parse("2006-01-02", d); err != nil {
				return fmt.Errorf("invalid date %q: %w", d, err)
			}
		}
	}

	ctx := context.Background()
	auth := portal.NewAuthenticator(cfg.Portal.BaseURL)
	sess, err := auth.Login(ctx, cfg.Portal.Username, cfg.Portal.Password)
	if err != nil {
		return fmt.Errorf("portal authentication: %w", err)
	}

	raws, err := sess.FetchEvents(ctx, from, to, view)
	if err != nil {
		return fmt.Errorf("fetching schedule: %w", err)
	}

	var shifts []schedule.Shift
	for _, raw := range raws {
		s, err := schedule.Classify(raw)
		if err != nil {
			fmt.Printf("  ! skipping shift %s: %v\n", raw.ID, err)
			continue
		}
		shifts = append(shifts, s)
	}
	shifts = schedule.FilterByEmployee(shifts, cfg.Portal.EmployeeID, from, to)

	// Directory lookup is best-effort; the schedule prints without it.
	header := "Schedule for employee " + cfg.Portal.EmployeeID
	if resources, err := sess.FetchResources(ctx); err == nil {
		if emp, ok := portal.LookupEmployee(resources, cfg.Portal.EmployeeID); ok {
			header = fmt.Sprintf("Schedule for %s — %s, %gh/week, since %s",
				emp.Name, emp.Function, emp.WeekHours, emp.ContractStart)
		}
	}
	fmt.Printf("%s (%s → %s)\n\n", header, from, to)

	if len(shifts) == 0 {
		fmt.Println("No shifts found for this period.")
		return nil
	}

	workDays, absenceDays := 0, 0
	for _, s := range shifts {
		sum := schedule.Summarize(s)
		switch sum.Kind {
		case schedule.KindWork:
			workDays++
			fmt.Printf("  %s  %s (%s)\n", sum.Date, sum.Label, sum.Code)
			fmt.Printf("          %s → %s (%s)\n", sum.StartTime, sum.EndTime, sum.Duration)
			if sum.BreakMinutes > 0 {
				fmt.Printf("          break: %d min (%s - %s)\n", sum.BreakMinutes, sum.BreakStart, sum.BreakEnd)
			}
		case schedule.KindAbsence:
			absenceDays++
			fmt.Printf("  %s  %s (%s) — absence\n", sum.Date, sum.Label, sum.Code)
		default:
			fmt.Printf("  %s  %s (%s)\n", sum.Date, sum.Label, sum.Code)
		}
	}

	fmt.Println()
	fmt.Printf("Summary:\n")
	fmt.Printf("  %d work days\n", workDays)
	fmt.Printf("  %d absence days\n", absenceDays)
	fmt.Printf("  total hours: %s\n", schedule.FormatMinutes(schedule.TotalWorkMinutes(shifts)))
	return nil
}
