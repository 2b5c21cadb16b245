package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/capmap/pkg/constants"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/logging"
)

// Execute runs the CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Business capability and vendor product map",
		Version: a.version,
		Long: `capmap maps business processes to the capabilities that compose them
and to the vendor products that fulfill those capabilities.

It ships with an embedded catalog and can load fresh CSV data from a
directory, an HTTP base URL or an S3 bucket. Capability assignments and
saved collections persist in a memory, file, SQLite or Postgres store.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "catalog", Title: "Catalog Commands:"},
		&cobra.Group{ID: "assignments", Title: "Assignment Commands:"},
		&cobra.Group{ID: "management", Title: "Management Commands:"},
	)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.capmap.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, wide, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("log-format", "", "log format: auto, console, json")
	flags.String("log-output", "", "log output: stderr, stdout or a file path")
	flags.String("source", "", "catalog source: bootstrap or csv")
	flags.String("data-dir", "", "directory holding the CSV files")
	flags.String("data-url", "", "base URL serving the CSV files")
	flags.String("domain", "", "active domain: ALL, CRM, ERP, AI")
	flags.String("vendor", "", "selected vendor for implicit assignments")
	flags.String("store-driver", "", "assignment store: memory, file, sqlite, postgres")
	flags.String("store-path", "", "file or sqlite store path")
	flags.String("store-dsn", "", "postgres connection string")

	rootCmd.SetVersionTemplate(constants.AppName + " {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand applies flags and the config file before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if !a.fixedConfig {
		if err := bindFlags(a.viper, cmd.Flags()); err != nil {
			return errors.NewConfigError("flags", "failed to bind flags", err)
		}
		if err := readConfigFile(a.viper, a.viper.GetString("config")); err != nil {
			return errors.NewConfigError("file", "failed to read config file", err)
		}
		a.config = configFromViper(a.viper)
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
