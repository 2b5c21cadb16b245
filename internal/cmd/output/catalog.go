package output

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/query"
)

// Write formats raw for structured formats and table for table formats.
// table is built lazily so JSON and YAML output skip it. A nil table
// renders raw by reflection.
func Write(w io.Writer, format Format, raw any, table func(wide bool) Data) error {
	formatter := NewFormatter(format)
	switch format {
	case FormatTable, FormatWide, "":
		if table == nil {
			return formatter.Format(w, raw)
		}
		return formatter.Format(w, table(format == FormatWide))
	default:
		return formatter.Format(w, raw)
	}
}

// ProcessesTable renders business processes.
func ProcessesTable(bps []catalog.BusinessProcess, wide bool) Data {
	headers := []string{"ID", "Name", "Domain", "Order"}
	if wide {
		headers = append(headers, "Description")
	}
	rows := make([][]string, 0, len(bps))
	for _, bp := range bps {
		row := []string{bp.ID, bp.Name, bp.Domain.String(), strconv.Itoa(bp.Order)}
		if wide {
			row = append(row, bp.Description)
		}
		rows = append(rows, row)
	}
	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignCenter, AlignRight, AlignLeft},
	}
}

// CapabilitiesTable renders capabilities.
func CapabilitiesTable(caps []catalog.Capability, wide bool) Data {
	headers := []string{"ID", "Name", "Process", "Tags"}
	if wide {
		headers = append(headers, "Color", "Value Proposition")
	}
	rows := make([][]string, 0, len(caps))
	for _, c := range caps {
		row := []string{c.ID, c.Name, c.BusinessProcessID, c.Tags}
		if wide {
			row = append(row, c.Color, c.ValueProposition)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// VendorsTable renders vendors.
func VendorsTable(vendors []catalog.Vendor, wide bool) Data {
	headers := []string{"ID", "Name", "Domains", "Market Position"}
	if wide {
		headers = append(headers, "Brand Color", "Website", "Best For")
	}
	rows := make([][]string, 0, len(vendors))
	for _, v := range vendors {
		row := []string{v.ID, v.Name, v.Domains, v.MarketPosition}
		if wide {
			row = append(row, v.BrandColor, v.Website, v.BestFor)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// ProductsTable renders products.
func ProductsTable(products []catalog.Product, wide bool) Data {
	headers := []string{"ID", "Name", "Vendor", "Type", "Capabilities"}
	if wide {
		headers = append(headers, "Pricing", "Domains", "Deployment")
	}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		row := []string{p.ID, p.Name, p.VendorID, p.ProductType, strings.Join(p.CapabilityIDs, ", ")}
		if wide {
			row = append(row, p.PricingTier, p.Domains, p.DeploymentModels)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// BestTable renders the best product per vendor for one process.
func BestTable(best []query.VendorProduct, wide bool) Data {
	headers := []string{"Vendor", "Product", "Capabilities"}
	if wide {
		headers = append(headers, "Vendor ID", "Product ID")
	}
	rows := make([][]string, 0, len(best))
	for _, vp := range best {
		row := []string{vp.Vendor.Name, vp.Product.Name, strconv.Itoa(vp.CapabilityCount)}
		if wide {
			row = append(row, vp.Vendor.ID, vp.Product.ID)
		}
		rows = append(rows, row)
	}
	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft},
	}
}

// BoardTable renders capability cards with their resolved products.
func BoardTable(cards []query.Card, wide bool) Data {
	headers := []string{"Capability", "Product", "Vendor"}
	if wide {
		headers = append(headers, "Capability ID", "Product ID")
	}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		product, vendor, productID := "-", "-", ""
		if c.Assigned() {
			product, vendor, productID = c.Product.Name, c.VendorName, c.Product.ID
		}
		row := []string{c.Capability.Name, product, vendor}
		if wide {
			row = append(row, c.Capability.ID, productID)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// AssignmentsTable renders explicit capability assignments sorted by
// capability ID.
func AssignmentsTable(assignments map[string]string, _ bool) Data {
	keys := make([]string, 0, len(assignments))
	for k := range assignments {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, assignments[k]})
	}
	return Data{Headers: []string{"Capability", "Product"}, Rows: rows}
}

// Print writes raw or its table rendering in the requested format. An
// empty format is detected from the terminal.
func Print(w io.Writer, requested string, raw any, table func(wide bool) Data) error {
	format, err := ParseFormat(requested)
	if err != nil {
		return err
	}
	if format == "" {
		format = DetectFormat("")
	}
	return Write(w, format, raw, table)
}
