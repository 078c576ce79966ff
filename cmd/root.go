package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mdelaunay/shiftsync/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "shiftsync",
	Short: "Sync Silae work shifts into a Google calendar",
	Long: `shiftsync pulls an employee's shift schedule from the Silae HR portal
and reconciles it into a dedicated Google calendar, replacing each
synced day's events with the shift scheduled for that day.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(employeesCmd)
	rootCmd.AddCommand(calendarsCmd)
}

// loadConfig builds the validated configuration and applies the log
// level. Every subcommand calls it first; a config error is fatal.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	logrus.SetLevel(cfg.Level)
	return cfg, nil
}
