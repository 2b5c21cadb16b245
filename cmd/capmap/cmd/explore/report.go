package explore

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/pkg/constants"
	"github.com/agentstation/capmap/pkg/errors"
)

// NewReportCommand writes the Markdown capability map report.
func NewReportCommand(app application.Application) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:     "report",
		GroupID: "catalog",
		Short:   "Write a Markdown capability map report",
		Example: `  capmap report --domain ERP
  capmap report --out capability-map.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.OpenFile(out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
				if err != nil {
					return errors.WrapIO("open", out, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			return client.Report(w)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the report to a file instead of stdout")
	return cmd
}
