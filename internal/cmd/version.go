package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/ux"
	"github.com/staffdesk/staffdesk/internal/version"
)

func newVersionCommand(app *App) *cobra.Command {
	var verbose bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print version information including version number, git commit,
build date, Go version, and platform.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()

			if app.Format == ux.FormatJSON || app.Format == ux.FormatYAML {
				formatter, err := ux.NewFormatter(app.Format, &ux.FormatterOptions{Writer: cmd.OutOrStdout()})
				if err != nil {
					return err
				}
				return formatter.Format(info)
			}

			if verbose {
				fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "staffdesk %s\n", info.Version)
			return nil
		},
	}
	versionCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed version information")
	return noSetup(versionCmd)
}
