package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/health"
	"github.com/staffdesk/staffdesk/internal/ux"
)

// DoctorReport is the result of all health checks.
type DoctorReport struct {
	Status  health.Status             `json:"status" yaml:"status"`
	BaseURL string                    `json:"base_url" yaml:"base_url"`
	Checks  map[string]*health.Result `json:"checks" yaml:"checks"`
}

func newDoctorCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the backend, session storage and session",
		Long: `Run diagnostics for this client.

Checks include:
  • Backend reachability (api.base_url)
  • Session storage read and write
  • Whether a session is signed in

Examples:
  staffdesk doctor
  staffdesk doctor -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := health.NewManager()
			manager.AddChecker(health.NewBackendChecker(app.Client, app.Config.API.BaseURL))
			manager.AddChecker(health.NewStoreChecker(app.Store))
			manager.AddChecker(health.NewSessionChecker(app.Session))

			results := manager.Check(app.ctx(cmd))
			report := &DoctorReport{
				Status:  health.OverallStatus(results),
				BaseURL: app.Config.API.BaseURL,
				Checks:  results,
			}
			app.Logger.Debug("doctor finished", "status", report.Status.String())

			if err := app.render(cmd, doctorTable(report)); err != nil {
				return err
			}
			if report.Status == health.StatusUnhealthy {
				return NewErrorWithSuggestions("Health checks failed", nil,
					"Fix the unhealthy checks listed above",
					"Run with --log-level debug for request details")
			}
			return nil
		},
	}
}

func doctorTable(r *DoctorReport) *ux.Table {
	names := make([]string, 0, len(r.Checks))
	for name := range r.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	t := &ux.Table{
		Title:   fmt.Sprintf("Health: %s", r.Status),
		Headers: []string{"Check", "Status", "Message"},
		Data:    r,
	}
	for _, name := range names {
		res := r.Checks[name]
		t.Rows = append(t.Rows, []string{name, res.Status.String(), res.Message})
	}
	return t
}
