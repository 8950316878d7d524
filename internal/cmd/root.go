package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/ux"
)

// NewRootCommand builds the staffdesk command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "staffdesk",
		Short: "Employee and customer management client",
		Long: `staffdesk is the command-line client of the staff management backend.

Employees manage tasks, documents and appointments. Customers book
appointments, review their history, send feedback and message staff.
Administrators see every user and task.

Every command checks the signed in role before it talks to the backend.
Run 'staffdesk auth login' to sign in and 'staffdesk nav' to see what you can open.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsSetup(cmd) {
				return nil
			}
			if err := app.setup(cmd); err != nil {
				return err
			}
			return app.guard(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.ConfigPath, "config", "", "config file (default is ~/.staffdesk/config.yaml)")
	flags.StringVarP(&app.Format, "output", "o", ux.FormatText, "output format: text, json, yaml or xlsx")
	flags.StringVar(&app.OutFile, "out-file", "", "file written by --output xlsx")
	flags.BoolVar(&app.NoColor, "no-color", false, "disable colored output")
	flags.StringVar(&app.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&app.LogFormat, "log-format", "", "log format: text or json")
	flags.StringVar(&app.BaseURL, "base-url", "", "backend base URL (overrides api.base_url)")
	flags.StringVar(&app.MetricsFile, "metrics-file", "", "write prometheus metrics to this file on exit")

	rootCmd.AddCommand(
		newAuthCommand(app),
		newNavCommand(app),
		newDashboardCommand(app),
		newInfoCommand(app),
		newUsersCommand(app),
		newTasksCommand(app),
		newCalendarCommand(app),
		newDocumentsCommand(app),
		newAppointmentsCommand(app),
		newFeedbackCommand(app),
		newMessagesCommand(app),
		newTUICommand(app),
		newDoctorCommand(app),
		newConfigCommand(app),
		newVersionCommand(app),
	)
	return rootCmd
}

// execute runs one command tree built around app and records it.
func execute(ctx context.Context, app *App, root *cobra.Command) error {
	start := time.Now()
	cmd, err := root.ExecuteContextC(ctx)
	app.finish(cmd, time.Since(start), err)
	return err
}

// ExecuteContext runs the root command with the process arguments.
func ExecuteContext(ctx context.Context) error {
	app := NewApp()
	return execute(ctx, app, NewRootCommand(app))
}
