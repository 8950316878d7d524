package cmd

import (
	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/forms"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/views"
)

// Messages printed by the appointment commands.
const (
	AppointmentBookedMessage  = "Appointment booked successfully!"
	AppointmentUpdatedMessage = "Appointment updated successfully!"
)

func newAppointmentsCommand(app *App) *cobra.Command {
	apptCmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appts"},
		Short:   "Book, review and manage appointments",
	}
	apptCmd.AddCommand(
		newAppointmentsManageCommand(app),
		newAppointmentsBookCommand(app),
		newAppointmentsHistoryCommand(app),
	)
	return apptCmd
}

func newAppointmentsManageCommand(app *App) *cobra.Command {
	manageCmd := &cobra.Command{
		Use:   "manage",
		Short: "Manage customer appointments (employee, admin)",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			appts, err := app.Client.ListAppointments(app.ctx(cmd))
			if err != nil {
				return err
			}
			return app.render(cmd, views.Appointments("Appointments", appts))
		},
	}
	withView(listCmd, router.ViewEmployeeAppointments)

	var f forms.AppointmentUpdate
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change status, notes or treatment details",
		Long: `Update an appointment. Fields that are not given keep their values.

Examples:
  staffdesk appointments manage update 4 --status COMPLETED --treatment "Full service"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "appointment id")
			if err != nil {
				return err
			}
			if err := f.Validate(); err != nil {
				return err
			}
			ctx := app.ctx(cmd)
			appt, err := app.Client.GetAppointment(ctx, id)
			if err != nil {
				return err
			}
			updated, err := app.Client.UpdateAppointment(ctx, f.Apply(*appt))
			if err != nil {
				return err
			}
			app.say(cmd, AppointmentUpdatedMessage)
			return app.render(cmd, views.Appointments("Appointment", oneOrNone(updated)))
		},
	}
	updateCmd.Flags().StringVar(&f.Status, "status", "", "SCHEDULED, COMPLETED or CANCELLED")
	updateCmd.Flags().StringVar(&f.Notes, "notes", "", "notes")
	updateCmd.Flags().StringVar(&f.TreatmentDetails, "treatment", "", "treatment details")
	withView(updateCmd, router.ViewEmployeeAppointments)

	manageCmd.AddCommand(listCmd, updateCmd)
	return manageCmd
}

func newAppointmentsBookCommand(app *App) *cobra.Command {
	var (
		f        forms.Booking
		employee int64
	)
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment with an employee (customer)",
		Long: `Book an appointment. The description becomes the requested service.

Examples:
  staffdesk appointments book --employee 2 --date 2026-06-01 --time 14:30 --description "Haircut"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			who := app.Session.Snapshot()
			f.CustomerID = who.UserID
			f.Role = who.Role
			f.EmployeeID = session.UserID(employee)
			if f.Role == session.RoleCustomer {
				id, err := pickEmployee(app, cmd, f.EmployeeID, "book with")
				if err != nil {
					return err
				}
				f.EmployeeID = id
			}
			if err := f.Validate(); err != nil {
				return err
			}

			appt, err := app.Client.BookAppointment(app.ctx(cmd), f.Payload(), f.CustomerID, f.EmployeeID)
			if err != nil {
				return err
			}
			app.say(cmd, AppointmentBookedMessage)
			return app.render(cmd, views.Appointments("Appointment", oneOrNone(appt)))
		},
	}
	flags := cmd.Flags()
	flags.Int64Var(&employee, "employee", 0, "employee user id")
	flags.StringVar(&f.Date, "date", "", "date, YYYY-MM-DD")
	flags.StringVar(&f.Time, "time", "", "time, HH:MM")
	flags.StringVar(&f.Description, "description", "", "service you need")
	return withView(cmd, router.ViewAppointmentBook)
}

func newAppointmentsHistoryCommand(app *App) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Your appointment history (customer)",
		Long: `List your appointments.

Filters:
  all       every appointment
  upcoming  scheduled appointments that have not started
  past      everything else`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := forms.ParseHistoryFilter(filter)
			if err != nil {
				return err
			}
			appts, err := views.LoadHistory(app.ctx(cmd), app.Client, app.Session.Snapshot(), f, app.Now())
			if err != nil {
				return err
			}
			return app.render(cmd, views.Appointments("Appointment History", appts))
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all, upcoming or past")
	return withView(cmd, router.ViewAppointmentHistory)
}

func oneOrNone[T any](v *T) []T {
	if v == nil {
		return nil
	}
	return []T{*v}
}
