package explore

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/internal/cmd/output"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/query"
)

// NewDetailCommand shows one product within one business process.
func NewDetailCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "detail <product-id> <process-id>",
		GroupID: "catalog",
		Short:   "Show a product within a business process",
		Long: `Detail shows the capabilities a product covers in a business process,
its vendor's evaluation for that process and the vendor's other products
in the process.`,
		Example: `  capmap detail sales-cloud lead-to-opportunity`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			detail, ok := client.Query().ProcessDetail(args[0], args[1])
			if !ok {
				return errors.NewNotFoundError("product in process", args[0]+"/"+args[1])
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), detail, func(bool) output.Data {
				return detailTable(detail)
			})
		},
	}
}

func detailTable(d query.ProcessDetail) output.Data {
	names := make([]string, 0, len(d.Capabilities))
	for _, c := range d.Capabilities {
		names = append(names, c.Name)
	}
	siblings := make([]string, 0, len(d.VendorProducts))
	for _, p := range d.VendorProducts {
		siblings = append(siblings, p.Name)
	}
	fit := "-"
	if d.Evaluation != nil && d.Evaluation.OverallFit != "" {
		fit = d.Evaluation.OverallFit
	}
	return output.Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Product", d.Product.Name},
			{"Vendor", d.Vendor.Name},
			{"Process", d.Process.Name},
			{"Capabilities", strconv.Itoa(len(names)) + ": " + strings.Join(names, ", ")},
			{"Overall fit", fit},
			{"Vendor products", strings.Join(siblings, ", ")},
		},
	}
}
