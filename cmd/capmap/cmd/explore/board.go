package explore

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/internal/cmd/output"
)

// NewBoardCommand shows every capability in the active domain with its
// effective product.
func NewBoardCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "board",
		GroupID: "assignments",
		Short:   "Show capabilities with their assigned products",
		Long: `Board lists the capabilities of the active domain with the product that
fulfills each one: the explicit assignment when present, otherwise the
first product of the selected vendor covering the capability.`,
		Example: `  capmap board --domain CRM --vendor salesforce`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			cards := client.Query().Board(client.Store().Selection().ActiveDomain, client.Assignments().Resolve)
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), cards, func(wide bool) output.Data {
				return output.BoardTable(cards, wide)
			})
		},
	}
}
