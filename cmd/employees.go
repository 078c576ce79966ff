package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdelaunay/shiftsync/internal/portal"
)

var employeesFind string

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "List the portal employee directory",
	Long: `Prints the employee entries of the portal resource directory, useful
for finding the employee id to configure. --find filters by a
case-insensitive partial name match.`,
	Args: cobra.NoArgs,
	RunE: runEmployees,
}

func init() {
	employeesCmd.Flags().StringVar(&employeesFind, "find", "", "Filter by partial name match")
}

func runEmployees(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	auth := portal.NewAuthenticator(cfg.Portal.BaseURL)
	sess, err := auth.Login(ctx, cfg.Portal.Username, cfg.Portal.Password)
	if err != nil {
		return fmt.Errorf("portal authentication: %w", err)
	}

	resources, err := sess.FetchResources(ctx)
	if err != nil {
		return fmt.Errorf("fetching directory: %w", err)
	}

	var employees []portal.Employee
	if employeesFind != "" {
		employees = portal.FindEmployeesByName(resources, employeesFind)
	} else {
		employees = portal.Employees(resources)
	}

	if len(employees) == 0 {
		fmt.Println("No matching employees.")
		return nil
	}
	for _, e := range employees {
		fmt.Printf("  %s  %s", e.ID, e.Name)
		if e.Function != "" {
			fmt.Printf(" — %s", e.Function)
		}
		if e.WeekHours > 0 {
			fmt.Printf(", %gh/week", e.WeekHours)
		}
		fmt.Println()
	}
	return nil
}
