package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/staffdesk/staffdesk/internal/config"
	"github.com/staffdesk/staffdesk/internal/ux"
)

func newConfigCommand(app *App) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or create the staffdesk configuration",
		Long: `Manage the configuration stored at ~/.staffdesk/config.yaml

Configuration includes:
  • Backend base URL and request timeout
  • Session storage driver (file or sqlite) and path
  • Default output format
  • Logging and metrics settings

Every key can be overridden with a STAFFDESK_ environment variable,
for example STAFFDESK_API_BASE_URL.

Examples:
  # Write the default configuration
  staffdesk config init

  # View the effective configuration
  staffdesk config view

  # Show configuration file path
  staffdesk config path
`,
	}
	noSetup(configCmd)

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.configPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return ConfigExistsError(path)
			}
			dir, err := config.Dir()
			if err != nil {
				return err
			}
			if err := config.Default(dir).Save(path); err != nil {
				return ux.FormatError(err, "writing configuration")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Display the effective configuration",
		Long:  `Display the configuration after defaults, the config file and STAFFDESK_ environment variables are merged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.ConfigPath)
			if err != nil {
				return err
			}

			if app.Format == ux.FormatJSON || app.Format == ux.FormatYAML {
				formatter, err := ux.NewFormatter(app.Format, &ux.FormatterOptions{
					Writer:  cmd.OutOrStdout(),
					NoColor: app.NoColor,
				})
				if err != nil {
					return err
				}
				return formatter.Format(cfg)
			}

			path, _ := app.configPath()
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file: %s\n\n%s", path, data)
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	configCmd.AddCommand(initCmd, viewCmd, pathCmd)
	return configCmd
}

func (a *App) configPath() (string, error) {
	if a.ConfigPath != "" {
		return a.ConfigPath, nil
	}
	return config.DefaultPath()
}
