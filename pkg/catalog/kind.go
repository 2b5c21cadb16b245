package catalog

import "slices"

// Kind identifies one of the six entity collections. The string value is
// used as the storage key of a saved collection overlay, as the CSV file
// stem for external rows and as a metrics label.
type Kind string

// Collection kinds.
const (
	KindBusinessProcesses          Kind = "businessProcesses"
	KindCapabilities               Kind = "capabilities"
	KindVendors                    Kind = "vendors"
	KindProducts                   Kind = "products"
	KindProductEvaluations         Kind = "productEvaluations"
	KindBusinessProcessEvaluations Kind = "businessProcessEvaluations"
)

// Kinds returns every collection kind in load order.
func Kinds() []Kind {
	return []Kind{
		KindBusinessProcesses,
		KindCapabilities,
		KindVendors,
		KindProducts,
		KindProductEvaluations,
		KindBusinessProcessEvaluations,
	}
}

// String returns the string representation of a kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the kind is one of the defined constants.
func (k Kind) IsValid() bool {
	return slices.Contains(Kinds(), k)
}

// FileStem returns the base name (without extension) of the tabular
// file holding rows of this kind.
func (k Kind) FileStem() string {
	switch k {
	case KindBusinessProcesses:
		return "business_processes"
	case KindCapabilities:
		return "capabilities"
	case KindVendors:
		return "vendors"
	case KindProducts:
		return "platform_products"
	case KindProductEvaluations:
		return "product_evaluations"
	case KindBusinessProcessEvaluations:
		return "business_process_evaluations"
	}
	return string(k)
}
