// Package explore provides commands that answer questions about the
// catalog: best products, evaluations, product detail, the capability
// board and the Markdown report.
package explore

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/internal/cmd/output"
	"github.com/agentstation/capmap/pkg/errors"
)

// NewBestCommand shows the best product per vendor for a process.
func NewBestCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "best <process-id>",
		GroupID: "catalog",
		Short:   "Best product per vendor for a business process",
		Long: `Best lists, for every vendor with a product in the business process,
the product covering the most of the process's capabilities. Ties go to
the product that comes first in the catalog.`,
		Example: `  capmap best lead-to-opportunity
  capmap best procure-to-pay -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			if _, ok := client.Store().BusinessProcess(args[0]); !ok {
				return errors.NewNotFoundError("business process", args[0])
			}
			best := client.Query().BestProductPerVendorForProcess(args[0])
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), best, func(wide bool) output.Data {
				return output.BestTable(best, wide)
			})
		},
	}
}
