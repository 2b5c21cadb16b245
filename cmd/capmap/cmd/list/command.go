// Package list provides the catalog listing commands.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/pkg/errors"
)

// NewCommand creates the list command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [resource]",
		GroupID: "catalog",
		Short:   "List catalog records",
		Long: `List displays records from the loaded catalog.

Available subcommands:
  processes     - business processes in the active domain
  capabilities  - capabilities, optionally by process or domain column
  vendors       - vendors
  products      - products, optionally by vendor or capability`,
		Example: `  capmap list processes --domain CRM
  capmap list capabilities --process lead-to-opportunity
  capmap list products --capability lead-capture --vendor-id hubspot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return errors.NewValidationError("resource", args[0], "unknown resource")
		},
	}

	cmd.AddCommand(NewProcessesCommand(app))
	cmd.AddCommand(NewCapabilitiesCommand(app))
	cmd.AddCommand(NewVendorsCommand(app))
	cmd.AddCommand(NewProductsCommand(app))

	return cmd
}
