package explore

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/internal/cmd/output"
	"github.com/agentstation/capmap/internal/report"
	"github.com/agentstation/capmap/pkg/errors"
)

// NewEvaluateCommand creates the evaluate command.
func NewEvaluateCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "evaluate",
		GroupID: "catalog",
		Short:   "Show vendor and product evaluations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newProcessEvaluationCommand(app))
	cmd.AddCommand(newProductEvaluationCommand(app))
	return cmd
}

func newProcessEvaluationCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "process <vendor-id> <process-id>",
		Short: "How well a vendor covers a business process",
		Long: `Show the vendor's evaluation for a business process. Table output is
rendered as Markdown; json and yaml print the raw evaluation.`,
		Example: `  capmap evaluate process salesforce lead-to-opportunity`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			vendorID, processID := args[0], args[1]
			ev, ok := client.Query().BusinessProcessEvaluation(vendorID, processID)
			if !ok {
				return errors.NewNotFoundError("evaluation", vendorID+"/"+processID)
			}
			if structured(app.OutputFormat()) {
				return output.Print(cmd.OutOrStdout(), app.OutputFormat(), ev, nil)
			}
			vendor, _ := client.Store().Vendor(vendorID)
			process, _ := client.Store().BusinessProcess(processID)
			return report.WriteEvaluation(cmd.OutOrStdout(), ev, vendor, process)
		},
	}
}

func newProductEvaluationCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "product <product-id> <capability-id>",
		Short:   "How well a product serves a capability",
		Example: `  capmap evaluate product sales-cloud lead-capture -o yaml`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			ev, ok := client.Query().ProductEvaluation(args[0], args[1])
			if !ok {
				return errors.NewNotFoundError("evaluation", args[0]+"/"+args[1])
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), ev, nil)
		},
	}
}

// structured reports whether the requested format prints raw data.
func structured(format string) bool {
	f := output.DetectFormat(strings.ToLower(format))
	return f == output.FormatJSON || f == output.FormatYAML
}
