package catalog

import (
	"slices"
	"strings"

	"github.com/agentstation/capmap/pkg/errors"
)

// Domain is a business domain tag such as CRM or ERP.
type Domain string

// Known domains. DomainAll is the wildcard and matches everything.
const (
	DomainAll Domain = "ALL"
	DomainCRM Domain = "CRM"
	DomainERP Domain = "ERP"
	DomainAI  Domain = "AI"
)

// Domains returns the closed set of selectable domains, wildcard first.
func Domains() []Domain {
	return []Domain{DomainAll, DomainCRM, DomainERP, DomainAI}
}

// String returns the string representation of a domain.
func (d Domain) String() string {
	return string(d)
}

// IsAll reports whether d is the wildcard. The empty domain is treated
// as the wildcard as well.
func (d Domain) IsAll() bool {
	return d == DomainAll || d == ""
}

// ParseDomain upper-cases s and validates it against Domains.
// An empty string parses to DomainAll.
func ParseDomain(s string) (Domain, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DomainAll, nil
	}
	d := Domain(s)
	if !slices.Contains(Domains(), d) {
		return "", errors.NewValidationError("domain", s, "must be one of ALL, CRM, ERP, AI")
	}
	return d, nil
}
