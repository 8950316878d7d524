package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/errors"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/views"
)

func newNavCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "List the views available to you",
		Long: `List the views the current session may open, with the command for each.

Anonymous sessions see the public pages plus login and sign up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.render(cmd, views.Nav(router.BuildNavBar(app.Session.Snapshot())))
		},
	}
}

func newDashboardCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show your dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			nav := views.Nav(router.BuildNavBar(app.Session.Snapshot()))
			nav.Title = "Dashboard - " + nav.Title
			return app.render(cmd, nav)
		},
	}
	return withView(cmd, router.ViewDashboard)
}

var infoPages = map[string]router.View{
	"":         router.ViewHome,
	"admin":    router.ViewAdminInfo,
	"services": router.ViewServices,
	"contacts": router.ViewContacts,
}

func newInfoCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "info [admin|services|contacts]",
		Short:     "Show the public information pages",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"admin", "services", "contacts"},
		RunE: func(cmd *cobra.Command, args []string) error {
			page := ""
			if len(args) == 1 {
				page = args[0]
			}
			view, ok := infoPages[page]
			if !ok {
				return errors.NewInvalidFieldError("page", fmt.Sprintf("unknown page %q; use admin, services or contacts", page))
			}
			if err := app.open(view); err != nil {
				return err
			}
			text, _ := views.Page(view)
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newTUICommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive client",
		Long: `Open the full-screen client. It shows the menu for your role, the login
form when you are signed out and an access denied notice for views your role
cannot open.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app, cmd)
		},
	}
}
