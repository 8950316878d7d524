package cmd

import (
	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/forms"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/views"
)

func newCalendarCommand(app *App) *cobra.Command {
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show tasks and appointments in a date range",
	}

	var employeeRange forms.DateRange
	employeeCmd := &cobra.Command{
		Use:   "employee",
		Short: "Your tasks and appointments (employee, admin)",
		Long: `Show your tasks and appointments between two dates.

Examples:
  staffdesk calendar employee --start 2026-05-01 --end 2026-05-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := employeeRange.Validate(); err != nil {
				return err
			}
			cal, err := app.Client.EmployeeCalendar(app.ctx(cmd), app.Session.UserID(), employeeRange.Start, employeeRange.End)
			if err != nil {
				return err
			}
			return app.render(cmd, views.Calendar(cal))
		},
	}
	employeeCmd.Flags().StringVar(&employeeRange.Start, "start", "", "first day, YYYY-MM-DD")
	employeeCmd.Flags().StringVar(&employeeRange.End, "end", "", "last day, YYYY-MM-DD")
	withView(employeeCmd, router.ViewEmployeeCalendar)

	var customerRange forms.DateRange
	customerCmd := &cobra.Command{
		Use:   "customer",
		Short: "Your appointments (customer)",
		Long: `Show your appointments between two dates.

Examples:
  staffdesk calendar customer --start 2026-05-01 --end 2026-05-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := customerRange.Validate(); err != nil {
				return err
			}
			appts, err := app.Client.CustomerCalendar(app.ctx(cmd), app.Session.UserID(), customerRange.Start, customerRange.End)
			if err != nil {
				return err
			}
			return app.render(cmd, views.Appointments("My Calendar", appts))
		},
	}
	customerCmd.Flags().StringVar(&customerRange.Start, "start", "", "first day, YYYY-MM-DD")
	customerCmd.Flags().StringVar(&customerRange.End, "end", "", "last day, YYYY-MM-DD")
	withView(customerCmd, router.ViewCustomerCalendar)

	calendarCmd.AddCommand(employeeCmd, customerCmd)
	return calendarCmd
}
