package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/api"
	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/tui"
	"github.com/staffdesk/staffdesk/internal/views"
)

func newUsersCommand(app *App) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin)",
	}

	var role string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long: `List every user account. Only administrators may open this view.

Examples:
  staffdesk users list
  staffdesk users list --role EMPLOYEE -o xlsx --out-file users.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var want session.Role
			if role != "" {
				r, err := session.ParseRole(strings.ToUpper(role))
				if err != nil {
					return errors.NewInvalidFieldError("--role", "Role must be ADMIN, EMPLOYEE or CUSTOMER.")
				}
				want = r
			}

			users, err := app.Client.ListUsers(app.ctx(cmd))
			if err != nil {
				return err
			}
			if want != session.RoleAnonymous {
				filtered := users[:0]
				for _, u := range users {
					if u.Role == want {
						filtered = append(filtered, u)
					}
				}
				users = filtered
			}
			return app.render(cmd, views.Users(users))
		},
	}
	listCmd.Flags().StringVar(&role, "role", "", "only show users with this role")
	withView(listCmd, router.ViewUsers)

	usersCmd.AddCommand(listCmd)
	return usersCmd
}

// pickEmployee asks for an employee when id is unset and a terminal is
// available. It returns id unchanged otherwise.
func pickEmployee(app *App, cmd *cobra.Command, id session.UserID, purpose string) (session.UserID, error) {
	if id != 0 || !app.interactive() {
		return id, nil
	}
	employees, err := app.Client.ListEmployees(app.ctx(cmd))
	if err != nil {
		return 0, err
	}
	if len(employees) == 0 {
		return 0, NoEmployeesError(purpose)
	}
	options := make([]tui.Option, len(employees))
	for i := range employees {
		options[i] = tui.Option{Label: employeeLabel(&employees[i]), Value: employees[i].ID.String()}
	}
	choice, err := tui.PromptForSelect("Employee", options)
	if err != nil {
		return 0, err
	}
	n, err := parseID(choice, "employee")
	if err != nil {
		return 0, err
	}
	return session.UserID(n), nil
}

func employeeLabel(u *api.User) string {
	if u.Name != "" && u.Name != u.Username {
		return u.Name + " (" + u.Username + ")"
	}
	return u.Username
}
