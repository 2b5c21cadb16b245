package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/capmap/cmd/capmap/cmd/assign"
	"github.com/agentstation/capmap/cmd/capmap/cmd/data"
	"github.com/agentstation/capmap/cmd/capmap/cmd/explore"
	"github.com/agentstation/capmap/cmd/capmap/cmd/list"
	"github.com/agentstation/capmap/cmd/capmap/cmd/serve"
)

// registerCommands adds every subcommand to the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Catalog
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(explore.NewBestCommand(a))
	rootCmd.AddCommand(explore.NewDetailCommand(a))
	rootCmd.AddCommand(explore.NewEvaluateCommand(a))
	rootCmd.AddCommand(explore.NewReportCommand(a))

	// Assignments
	rootCmd.AddCommand(explore.NewBoardCommand(a))
	rootCmd.AddCommand(assign.NewAssignCommand(a))
	rootCmd.AddCommand(assign.NewUnassignCommand(a))
	rootCmd.AddCommand(assign.NewAssignmentsCommand(a))
	rootCmd.AddCommand(assign.NewResolveCommand(a))

	// Management
	rootCmd.AddCommand(data.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))
	rootCmd.AddCommand(a.createVersionCommand())
}

// createVersionCommand creates the version command.
func (a *App) createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "management",
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("capmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
