package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdelaunay/shiftsync/internal/gcal"
)

var (
	calendarsCreate      string
	calendarsDescription string
	calendarsLocation    string
)

var calendarsCmd = &cobra.Command{
	Use:   "calendars",
	Short: "List destination Google calendars",
	Long: `Lists the calendars visible to the authorized Google account, to find
or verify the destination calendar id. --create sets up a new dedicated
shift calendar instead.`,
	Args: cobra.NoArgs,
	RunE: runCalendars,
}

func init() {
	calendarsCmd.Flags().StringVar(&calendarsCreate, "create", "", "Create a calendar with this summary instead of listing")
	calendarsCmd.Flags().StringVar(&calendarsDescription, "description", "", "Description for the created calendar")
	calendarsCmd.Flags().StringVar(&calendarsLocation, "location", "", "Location for the created calendar")
}

func runCalendars(cmd *cobra.Command, args []string) error {
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

	if calendarsCreate != "" {
		created, err := client.CreateCalendar(ctx, calendarsCreate, calendarsDescription, cfg.Timezone, calendarsLocation)
		if err != nil {
			return err
		}
		fmt.Println("Calendar created:")
		fmt.Printf("  %s (ID: %s)\n", created.Summary, created.Id)
		fmt.Println("Set GOOGLE_CALENDAR_ID to this id to sync into it.")
		return nil
	}

	calendars, err := client.ListCalendars(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Available calendars:")
	for _, c := range calendars {
		fmt.Printf("  %s (ID: %s)\n", c.Summary, c.Id)
	}
	return nil
}
