// Package normalize converts raw tabular rows into typed catalog records.
//
// A Row maps column header to cell text. Every text field is trimmed and
// blank optional fields take their defaults. Identifier lists are comma
// separated, narrative lists are pipe separated. Rows without an id are
// dropped. The package is pure: it touches no store and does not log.
package normalize

import (
	"strconv"
	"strings"

	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/constants"
)

// Row is one raw record keyed by column header.
type Row map[string]string

// text returns the trimmed value of a column, or "" if absent.
func (r Row) text(key string) string {
	return strings.TrimSpace(r[key])
}

// textOr returns the trimmed value of a column, or def when blank.
func (r Row) textOr(key, def string) string {
	if v := r.text(key); v != "" {
		return v
	}
	return def
}

// int parses the leading base-10 integer of a column, so "3.5" is 3 and
// "12px" is 12. A value without leading digits is 0.
func (r Row) int(key string) int {
	v := r.text(key)
	end := 0
	if end < len(v) && (v[end] == '-' || v[end] == '+') {
		end++
	}
	digits := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0
	}
	return n
}

func (r Row) list(key, sep string) []string {
	return SplitList(r[key], sep)
}

// SplitList splits s on sep, trims every item and drops empty ones.
// A blank input yields an empty, non-nil slice.
func SplitList(s, sep string) []string {
	out := []string{}
	if strings.TrimSpace(s) == "" {
		return out
	}
	for _, item := range strings.Split(s, sep) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// BusinessProcesses normalizes business process rows.
func BusinessProcesses(rows []Row) []catalog.BusinessProcess {
	out := make([]catalog.BusinessProcess, 0, len(rows))
	for _, r := range rows {
		id := r.text("id")
		if id == "" {
			continue
		}
		out = append(out, catalog.BusinessProcess{
			ID:          id,
			Name:        r.text("name"),
			Description: r.text("description"),
			Order:       r.int("order"),
			Domain:      catalog.Domain(r.text("domain")),
		})
	}
	return out
}

// Capabilities normalizes capability rows.
func Capabilities(rows []Row) []catalog.Capability {
	out := make([]catalog.Capability, 0, len(rows))
	for _, r := range rows {
		id := r.text("id")
		if id == "" {
			continue
		}
		out = append(out, catalog.Capability{
			ID:                id,
			Name:              r.text("name"),
			BusinessProcessID: r.text("businessProcessId"),
			Description:       r.text("description"),
			ValueProposition:  r.text("valueProposition"),
			ProcessTypes:      r.text("processTypes"),
			Color:             r.textOr("color", constants.DefaultCapabilityColor),
			Order:             r.int("order"),
			Tags:              r.text("tags"),
		})
	}
	return out
}

// Vendors normalizes vendor rows.
func Vendors(rows []Row) []catalog.Vendor {
	out := make([]catalog.Vendor, 0, len(rows))
	for _, r := range rows {
		id := r.text("id")
		if id == "" {
			continue
		}
		out = append(out, catalog.Vendor{
			ID:                id,
			Name:              r.text("name"),
			BrandColor:        r.textOr("brandColor", constants.DefaultBrandColor),
			MarketPosition:    r.text("marketPosition"),
			BestFor:           r.text("bestFor"),
			Website:           r.text("website"),
			TargetCompanySize: r.text("targetCompanySize"),
			OverallStrengths:  r.text("overallStrengths"),
			OverallWeaknesses: r.text("overallWeaknesses"),
			Domains:           r.text("domains"),
		})
	}
	return out
}

// Products normalizes product rows.
func Products(rows []Row) []catalog.Product {
	out := make([]catalog.Product, 0, len(rows))
	for _, r := range rows {
		id := r.text("id")
		if id == "" {
			continue
		}
		out = append(out, catalog.Product{
			ID:                 id,
			Name:               r.text("name"),
			VendorID:           r.text("vendorId"),
			Description:        r.text("description"),
			ProductType:        r.textOr("productType", constants.DefaultProductType),
			CapabilityIDs:      r.list("capabilityIds", constants.IDListSeparator),
			Features:           r.text("features"),
			PricingTier:        r.text("pricingTier"),
			MarketPosition:     r.text("marketPosition"),
			PerformanceMetrics: r.text("performanceMetrics"),
			DeploymentModels:   r.text("deploymentModels"),
			Integrations:       r.text("integrations"),
			Domains:            r.text("domains"),
		})
	}
	return out
}

// ProductEvaluations normalizes product evaluation rows.
func ProductEvaluations(rows []Row) []catalog.ProductEvaluation {
	const sep = constants.NarrativeListSeparator
	out := make([]catalog.ProductEvaluation, 0, len(rows))
	for _, r := range rows {
		id := r.text("id")
		if id == "" {
			continue
		}
		out = append(out, catalog.ProductEvaluation{
			ID:                        id,
			ProductID:                 r.text("productId"),
			CapabilityID:              r.text("capabilityId"),
			GoodFor:                   r.list("goodFor", sep),
			NotIdealFor:               r.list("notIdealFor", sep),
			BestUseCases:              r.list("bestUseCases", sep),
			SpecialFeatures:           r.list("specialFeatures", sep),
			CompetitiveAdvantages:     r.list("competitiveAdvantages", sep),
			CompetitiveDisadvantages:  r.list("competitiveDisadvantages", sep),
			ImplementationComplexity:  r.text("implementationComplexity"),
			TypicalImplementationTime: r.text("typicalImplementationTime"),
			Confidence:                r.text("confidence"),
		})
	}
	return out
}

// BusinessProcessEvaluations normalizes vendor by process evaluation rows.
func BusinessProcessEvaluations(rows []Row) []catalog.BusinessProcessEvaluation {
	const sep = constants.NarrativeListSeparator
	out := make([]catalog.BusinessProcessEvaluation, 0, len(rows))
	for _, r := range rows {
		id := r.text("id")
		if id == "" {
			continue
		}
		out = append(out, catalog.BusinessProcessEvaluation{
			ID:                        id,
			VendorID:                  r.text("vendorId"),
			BusinessProcessID:         r.text("businessProcessId"),
			OverallFit:                r.text("overallFit"),
			KeyProducts:               r.list("keyProducts", sep),
			GoodFor:                   r.list("goodFor", sep),
			NotIdealFor:               r.list("notIdealFor", sep),
			BestUseCases:              r.list("bestUseCases", sep),
			Strengths:                 r.list("strengths", sep),
			Weaknesses:                r.list("weaknesses", sep),
			ImplementationComplexity:  r.text("implementationComplexity"),
			TypicalImplementationTime: r.text("typicalImplementationTime"),
			TotalCostOfOwnership:      r.text("totalCostOfOwnership"),
			Confidence:                r.text("confidence"),
		})
	}
	return out
}

// Collection normalizes rows of the given kind and returns a Collections
// value holding only that kind. An unknown kind yields empty collections.
func Collection(kind catalog.Kind, rows []Row) *catalog.Collections {
	c := &catalog.Collections{}
	switch kind {
	case catalog.KindBusinessProcesses:
		c.BusinessProcesses = BusinessProcesses(rows)
	case catalog.KindCapabilities:
		c.Capabilities = Capabilities(rows)
	case catalog.KindVendors:
		c.Vendors = Vendors(rows)
	case catalog.KindProducts:
		c.Products = Products(rows)
	case catalog.KindProductEvaluations:
		c.ProductEvaluations = ProductEvaluations(rows)
	case catalog.KindBusinessProcessEvaluations:
		c.BusinessProcessEvaluations = BusinessProcessEvaluations(rows)
	}
	return c
}
