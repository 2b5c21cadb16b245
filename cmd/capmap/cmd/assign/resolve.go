package assign

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/internal/cmd/output"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
)

// Resolution is the effective product of one capability.
type Resolution struct {
	CapabilityID string           `json:"capabilityId" yaml:"capabilityId"`
	Product      *catalog.Product `json:"product,omitempty" yaml:"product,omitempty"`
	Explicit     bool             `json:"explicit" yaml:"explicit"`
}

// NewResolveCommand shows the product that fulfills a capability.
func NewResolveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve <capability-id>",
		GroupID: "assignments",
		Short:   "Show the effective product of a capability",
		Example: `  capmap resolve lead-capture --vendor salesforce`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			capID := args[0]
			if _, ok := client.Store().Capability(capID); !ok {
				return errors.NewNotFoundError("capability", capID)
			}
			overlay := client.Assignments()
			res := Resolution{CapabilityID: capID, Explicit: overlay.Explicit(capID)}
			if p, ok := overlay.Resolve(capID); ok {
				res.Product = &p
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), res, func(bool) output.Data {
				product, source := "-", "none"
				if res.Product != nil {
					product, source = res.Product.Name, "vendor"
					if res.Explicit {
						source = "assignment"
					}
				}
				return output.Data{
					Headers: []string{"Capability", "Product", "Source"},
					Rows:    [][]string{{capID, product, source}},
				}
			})
		},
	}
}
