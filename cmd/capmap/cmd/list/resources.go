package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/internal/cmd/output"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/query"
)

// NewProcessesCommand lists business processes in the active domain.
func NewProcessesCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "processes",
		Aliases: []string{"process", "bp"},
		Short:   "List business processes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			store := client.Store()
			bps := client.Query().FilterBusinessProcesses(store.Selection().ActiveDomain, store.BusinessProcesses())
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), bps, func(wide bool) output.Data {
				return output.ProcessesTable(bps, wide)
			})
		},
	}
}

// NewCapabilitiesCommand lists capabilities.
func NewCapabilitiesCommand(app application.Application) *cobra.Command {
	var process, column string
	cmd := &cobra.Command{
		Use:     "capabilities",
		Aliases: []string{"capability", "caps"},
		Short:   "List capabilities",
		Long: `List capabilities in the active domain.

--process keeps the capabilities of one business process. --column picks
a domain column (CRM, ERP, AI) of the board the way the capability map
lays it out: tagged capabilities first, otherwise those of the column's
processes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			store := client.Store()
			engine := client.Query()
			active := store.Selection().ActiveDomain

			var caps []catalog.Capability
			if column != "" {
				d, err := catalog.ParseDomain(column)
				if err != nil {
					return err
				}
				caps = engine.DomainColumn(active, d)
			} else {
				caps = engine.FilterCapabilities(active, store.Capabilities())
			}
			if process != "" {
				kept := caps[:0:0]
				for _, c := range caps {
					if c.BusinessProcessID == process {
						kept = append(kept, c)
					}
				}
				caps = kept
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), caps, func(wide bool) output.Data {
				return output.CapabilitiesTable(caps, wide)
			})
		},
	}
	cmd.Flags().StringVar(&process, "process", "", "only capabilities of this business process")
	cmd.Flags().StringVar(&column, "column", "", "domain column: CRM, ERP, AI")
	return cmd
}

// NewVendorsCommand lists vendors.
func NewVendorsCommand(app application.Application) *cobra.Command {
	var process string
	cmd := &cobra.Command{
		Use:     "vendors",
		Aliases: []string{"vendor"},
		Short:   "List vendors",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			vendors := client.Store().Vendors()
			if process != "" {
				vendors = client.Query().VendorsForBusinessProcess(process)
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), vendors, func(wide bool) output.Data {
				return output.VendorsTable(vendors, wide)
			})
		},
	}
	cmd.Flags().StringVar(&process, "process", "", "only vendors with a product in this business process")
	return cmd
}

// NewProductsCommand lists products.
func NewProductsCommand(app application.Application) *cobra.Command {
	var vendor, capability, search, process, productDomain string
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "List products",
		Args:    cobra.NoArgs,
		Example: `  capmap list products --process lead-to-opportunity
  capmap list products --capability lead-capture --vendor-id salesforce --search cloud --product-domain CRM`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			engine := client.Query()

			var products []catalog.Product
			switch {
			case capability != "":
				f := query.ProductFilter{VendorID: vendor, Search: search}
				if productDomain != "" {
					if f.Domain, err = catalog.ParseDomain(productDomain); err != nil {
						return err
					}
				}
				products = engine.ProductsForCapability(capability, f)
			case process != "" && vendor != "":
				products = engine.VendorProductsForProcess(vendor, process)
			case process != "":
				products = engine.ProductsForBusinessProcess(process)
			default:
				products = []catalog.Product{}
				for _, p := range client.Store().Products() {
					if vendor == "" || p.VendorID == vendor {
						products = append(products, p)
					}
				}
			}
			return output.Print(cmd.OutOrStdout(), app.OutputFormat(), products, func(wide bool) output.Data {
				return output.ProductsTable(products, wide)
			})
		},
	}
	cmd.Flags().StringVar(&vendor, "vendor-id", "", "only products of this vendor")
	cmd.Flags().StringVar(&capability, "capability", "", "only products covering this capability")
	cmd.Flags().StringVar(&process, "process", "", "only products covering a capability of this business process")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive product name filter (with --capability)")
	cmd.Flags().StringVar(&productDomain, "product-domain", "", "product domain filter (with --capability)")
	return cmd
}
