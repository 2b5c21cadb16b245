package catalog

import "slices"

// Collections bundles the six entity collections. Slices keep source
// order, which the query engine relies on for tie-breaking.
type Collections struct {
	BusinessProcesses          []BusinessProcess           `json:"businessProcesses" yaml:"businessProcesses"`
	Capabilities               []Capability                `json:"capabilities" yaml:"capabilities"`
	Vendors                    []Vendor                    `json:"vendors" yaml:"vendors"`
	Products                   []Product                   `json:"products" yaml:"products"`
	ProductEvaluations         []ProductEvaluation         `json:"productEvaluations" yaml:"productEvaluations"`
	BusinessProcessEvaluations []BusinessProcessEvaluation `json:"businessProcessEvaluations" yaml:"businessProcessEvaluations"`
}

// Len returns the number of records held for kind k.
func (c *Collections) Len(k Kind) int {
	switch k {
	case KindBusinessProcesses:
		return len(c.BusinessProcesses)
	case KindCapabilities:
		return len(c.Capabilities)
	case KindVendors:
		return len(c.Vendors)
	case KindProducts:
		return len(c.Products)
	case KindProductEvaluations:
		return len(c.ProductEvaluations)
	case KindBusinessProcessEvaluations:
		return len(c.BusinessProcessEvaluations)
	}
	return 0
}

// Take copies the collection of kind k from src into c, leaving the
// other five untouched.
func (c *Collections) Take(k Kind, src *Collections) {
	switch k {
	case KindBusinessProcesses:
		c.BusinessProcesses = slices.Clone(src.BusinessProcesses)
	case KindCapabilities:
		c.Capabilities = slices.Clone(src.Capabilities)
	case KindVendors:
		c.Vendors = slices.Clone(src.Vendors)
	case KindProducts:
		c.Products = copyProducts(src.Products)
	case KindProductEvaluations:
		c.ProductEvaluations = copyProductEvaluations(src.ProductEvaluations)
	case KindBusinessProcessEvaluations:
		c.BusinessProcessEvaluations = copyProcessEvaluations(src.BusinessProcessEvaluations)
	}
}

// Copy returns a deep copy of the collections.
func (c *Collections) Copy() Collections {
	var out Collections
	for _, k := range Kinds() {
		out.Take(k, c)
	}
	return out
}

func copyProducts(in []Product) []Product {
	if in == nil {
		return nil
	}
	out := make([]Product, len(in))
	for i, p := range in {
		p.CapabilityIDs = slices.Clone(p.CapabilityIDs)
		out[i] = p
	}
	return out
}

func copyProductEvaluations(in []ProductEvaluation) []ProductEvaluation {
	if in == nil {
		return nil
	}
	out := make([]ProductEvaluation, len(in))
	for i, e := range in {
		e.GoodFor = slices.Clone(e.GoodFor)
		e.NotIdealFor = slices.Clone(e.NotIdealFor)
		e.BestUseCases = slices.Clone(e.BestUseCases)
		e.SpecialFeatures = slices.Clone(e.SpecialFeatures)
		e.CompetitiveAdvantages = slices.Clone(e.CompetitiveAdvantages)
		e.CompetitiveDisadvantages = slices.Clone(e.CompetitiveDisadvantages)
		out[i] = e
	}
	return out
}

func copyProcessEvaluations(in []BusinessProcessEvaluation) []BusinessProcessEvaluation {
	if in == nil {
		return nil
	}
	out := make([]BusinessProcessEvaluation, len(in))
	for i, e := range in {
		e.KeyProducts = slices.Clone(e.KeyProducts)
		e.GoodFor = slices.Clone(e.GoodFor)
		e.NotIdealFor = slices.Clone(e.NotIdealFor)
		e.BestUseCases = slices.Clone(e.BestUseCases)
		e.Strengths = slices.Clone(e.Strengths)
		e.Weaknesses = slices.Clone(e.Weaknesses)
		out[i] = e
	}
	return out
}
