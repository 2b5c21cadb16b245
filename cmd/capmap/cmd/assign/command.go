// Package assign provides commands that manage capability assignments.
package assign

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/internal/cmd/output"
	"github.com/agentstation/capmap/pkg/errors"
)

// NewAssignCommand assigns a product to a capability.
func NewAssignCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "assign <capability-id> <product-id>",
		GroupID: "assignments",
		Short:   "Assign a product to a capability",
		Long: `Assign records that a product fulfills a capability. The assignment
overrides the selected vendor and is persisted in the configured store.
Both IDs must exist in the loaded catalog.`,
		Example: `  capmap assign lead-capture hubspot-sales-hub
  capmap assign lead-capture hubspot-sales-hub --store-driver sqlite`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			store := client.Store()
			if _, ok := store.Capability(args[0]); !ok {
				return errors.NewNotFoundError("capability", args[0])
			}
			if _, ok := store.Product(args[1]); !ok {
				return errors.NewNotFoundError("product", args[1])
			}
			if err := client.Assign(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			cmd.Printf("Assigned %s to %s\n", args[1], args[0])
			return nil
		},
	}
}

// NewUnassignCommand removes an explicit assignment.
func NewUnassignCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "unassign <capability-id>",
		GroupID: "assignments",
		Short:   "Remove the explicit assignment of a capability",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			if err := client.Unassign(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Printf("Cleared assignment for %s\n", args[0])
			return nil
		},
	}
}

// NewAssignmentsCommand lists explicit assignments.
func NewAssignmentsCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignments",
		GroupID: "assignments",
		Short:   "List explicit capability assignments",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			assignments := client.Store().Assignments()
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), assignments, func(wide bool) output.Data {
				return output.AssignmentsTable(assignments, wide)
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Remove every explicit assignment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			if err := client.Assignments().Reset(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("Cleared all assignments")
			return nil
		},
	})
	return cmd
}
