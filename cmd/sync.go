package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdelaunay/shiftsync/internal/gcal"
	"github.com/mdelaunay/shiftsync/internal/sync"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one shift-to-calendar sync pass",
	Long: `Fetches the shifts for the Monday-to-Sunday window two weeks out and
replaces the destination calendar's events on each shift date. Per-event
failures are counted but do not fail the run; the next scheduled run
repeats the same per-date replace.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Log planned operations without writing to the calendar")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	ts, err := gcal.TokenSource(ctx, cfg.Google.CredentialsFile, cfg.Google.TokenFile)
	if err != nil {
		return fmt.Errorf("calendar authentication: %w", err)
	}
	client, err := gcal.NewClient(ctx, ts)
	if err != nil {
		return err
	}

	runner := sync.NewRunner(cfg, client)
	result, err := runner.Run(ctx, time.Now(), syncDryRun)
	if err != nil {
		return err
	}

	dryTag := ""
	if syncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Printf("Summary%s:\n", dryTag)
	fmt.Printf("  %d shifts processed\n", result.ShiftsProcessed)
	fmt.Printf("  %d events created\n", result.Created)
	fmt.Printf("  %d events deleted\n", result.Deleted)
	if result.Skipped > 0 {
		fmt.Printf("  %d shifts skipped\n", result.Skipped)
	}
	if result.Failures > 0 {
		// Partial failures are an accepted outcome; the exit code stays 0.
		fmt.Printf("  %d failures\n", result.Failures)
	}
	return nil
}
