// Package catalog defines the capability catalog entity model and the
// Entity Store that owns it.
//
// The catalog is made of six collections: business processes, the
// capabilities that compose them, vendors, vendor products, product
// evaluations (product x capability) and business process evaluations
// (vendor x process). References between collections are plain string
// identifiers and are never required to resolve.
//
// Example usage:
//
//	store := catalog.NewStore()
//	store.Replace(collections)
//
//	if p, ok := store.Product("hubspot-sales-hub"); ok {
//	    fmt.Println(p.Name, p.CapabilityIDs)
//	}
package catalog

import (
	"slices"
	"strings"

	"github.com/agentstation/capmap/pkg/constants"
)

// BusinessProcess is a top-level grouping of capabilities.
type BusinessProcess struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Order       int    `json:"order" yaml:"order"` // display sort hint
	Domain      Domain `json:"domain" yaml:"domain"`
}

// Capability is a unit of business functionality within one process.
type Capability struct {
	ID                string `json:"id" yaml:"id"`
	Name              string `json:"name" yaml:"name"`
	BusinessProcessID string `json:"businessProcessId" yaml:"businessProcessId"`
	Description       string `json:"description" yaml:"description"`
	ValueProposition  string `json:"valueProposition" yaml:"valueProposition"`
	ProcessTypes      string `json:"processTypes" yaml:"processTypes"`
	Color             string `json:"color" yaml:"color"`
	Order             int    `json:"order" yaml:"order"`
	Tags              string `json:"tags" yaml:"tags"` // raw delimited text
}

// HasTag reports whether the free-text tags mention the domain,
// ignoring case.
func (c Capability) HasTag(d Domain) bool {
	if d == "" {
		return false
	}
	return strings.Contains(strings.ToUpper(c.Tags), strings.ToUpper(string(d)))
}

// Vendor is a company offering products.
type Vendor struct {
	ID                string `json:"id" yaml:"id"`
	Name              string `json:"name" yaml:"name"`
	BrandColor        string `json:"brandColor" yaml:"brandColor"`
	MarketPosition    string `json:"marketPosition" yaml:"marketPosition"`
	BestFor           string `json:"bestFor" yaml:"bestFor"`
	Website           string `json:"website" yaml:"website"`
	TargetCompanySize string `json:"targetCompanySize" yaml:"targetCompanySize"`
	OverallStrengths  string `json:"overallStrengths" yaml:"overallStrengths"`
	OverallWeaknesses string `json:"overallWeaknesses" yaml:"overallWeaknesses"`
	Domains           string `json:"domains" yaml:"domains"`
}

// UnknownVendor returns the placeholder used when a product references
// a vendor ID that is not in the catalog.
func UnknownVendor(id string) Vendor {
	return Vendor{
		ID:         id,
		Name:       constants.UnknownName,
		BrandColor: constants.DefaultBrandColor,
	}
}

// Product is a vendor offering that fulfills one or more capabilities.
type Product struct {
	ID                 string   `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	VendorID           string   `json:"vendorId" yaml:"vendorId"`
	Description        string   `json:"description" yaml:"description"`
	ProductType        string   `json:"productType" yaml:"productType"`
	CapabilityIDs      []string `json:"capabilityIds" yaml:"capabilityIds"` // order irrelevant
	Features           string   `json:"features" yaml:"features"`
	PricingTier        string   `json:"pricingTier" yaml:"pricingTier"`
	MarketPosition     string   `json:"marketPosition" yaml:"marketPosition"`
	PerformanceMetrics string   `json:"performanceMetrics" yaml:"performanceMetrics"`
	DeploymentModels   string   `json:"deploymentModels" yaml:"deploymentModels"`
	Integrations       string   `json:"integrations" yaml:"integrations"`
	Domains            string   `json:"domains" yaml:"domains"`
}

// HasCapability reports whether the product lists the capability.
func (p Product) HasCapability(capabilityID string) bool {
	return slices.Contains(p.CapabilityIDs, capabilityID)
}

// InDomain reports whether the product's domain list mentions d.
// DomainAll matches every product.
func (p Product) InDomain(d Domain) bool {
	if d.IsAll() {
		return true
	}
	return strings.Contains(strings.ToUpper(p.Domains), string(d))
}

// ProductEvaluation describes how well a product serves one capability.
// Several rows may share a (ProductID, CapabilityID) pair; the first one
// in collection order is authoritative.
type ProductEvaluation struct {
	ID                        string   `json:"id" yaml:"id"`
	ProductID                 string   `json:"productId" yaml:"productId"`
	CapabilityID              string   `json:"capabilityId" yaml:"capabilityId"`
	GoodFor                   []string `json:"goodFor" yaml:"goodFor"`
	NotIdealFor               []string `json:"notIdealFor" yaml:"notIdealFor"`
	BestUseCases              []string `json:"bestUseCases" yaml:"bestUseCases"`
	SpecialFeatures           []string `json:"specialFeatures" yaml:"specialFeatures"`
	CompetitiveAdvantages     []string `json:"competitiveAdvantages" yaml:"competitiveAdvantages"`
	CompetitiveDisadvantages  []string `json:"competitiveDisadvantages" yaml:"competitiveDisadvantages"`
	ImplementationComplexity  string   `json:"implementationComplexity" yaml:"implementationComplexity"`
	TypicalImplementationTime string   `json:"typicalImplementationTime" yaml:"typicalImplementationTime"`
	Confidence                string   `json:"confidence" yaml:"confidence"`
}

// BusinessProcessEvaluation describes how well a vendor covers a whole
// business process. First match in collection order wins for duplicate
// (VendorID, BusinessProcessID) pairs.
type BusinessProcessEvaluation struct {
	ID                        string   `json:"id" yaml:"id"`
	VendorID                  string   `json:"vendorId" yaml:"vendorId"`
	BusinessProcessID         string   `json:"businessProcessId" yaml:"businessProcessId"`
	OverallFit                string   `json:"overallFit" yaml:"overallFit"`
	KeyProducts               []string `json:"keyProducts" yaml:"keyProducts"`
	GoodFor                   []string `json:"goodFor" yaml:"goodFor"`
	NotIdealFor               []string `json:"notIdealFor" yaml:"notIdealFor"`
	BestUseCases              []string `json:"bestUseCases" yaml:"bestUseCases"`
	Strengths                 []string `json:"strengths" yaml:"strengths"`
	Weaknesses                []string `json:"weaknesses" yaml:"weaknesses"`
	ImplementationComplexity  string   `json:"implementationComplexity" yaml:"implementationComplexity"`
	TypicalImplementationTime string   `json:"typicalImplementationTime" yaml:"typicalImplementationTime"`
	TotalCostOfOwnership      string   `json:"totalCostOfOwnership" yaml:"totalCostOfOwnership"`
	Confidence                string   `json:"confidence" yaml:"confidence"`
}
