package cmd

import (
	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/tui"
)

func runTUI(app *App, cmd *cobra.Command) error {
	return tui.Run(app.ctx(cmd), app.Router, app.Client, app.Client, app.Logger)
}
