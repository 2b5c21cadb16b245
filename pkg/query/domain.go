package query

import (
	"strings"

	"github.com/agentstation/capmap/pkg/catalog"
)

// BusinessProcessInDomain reports whether the process belongs to d.
func (e *Engine) BusinessProcessInDomain(bp catalog.BusinessProcess, d catalog.Domain) bool {
	return d.IsAll() || bp.Domain == d
}

// CapabilityInDomain reports whether the capability's process belongs to
// d or its tags mention d, ignoring case.
func (e *Engine) CapabilityInDomain(c catalog.Capability, d catalog.Domain) bool {
	if d.IsAll() {
		return true
	}
	if bp, ok := e.r.BusinessProcess(c.BusinessProcessID); ok && bp.Domain == d {
		return true
	}
	return c.HasTag(d)
}

// FilterCapabilities keeps the capabilities in d. DomainAll returns the
// input unchanged.
func (e *Engine) FilterCapabilities(d catalog.Domain, caps []catalog.Capability) []catalog.Capability {
	if d.IsAll() {
		return caps
	}
	out := []catalog.Capability{}
	for _, c := range caps {
		if e.CapabilityInDomain(c, d) {
			out = append(out, c)
		}
	}
	return out
}

// FilterBusinessProcesses keeps the processes in d. DomainAll returns the
// input unchanged.
func (e *Engine) FilterBusinessProcesses(d catalog.Domain, bps []catalog.BusinessProcess) []catalog.BusinessProcess {
	if d.IsAll() {
		return bps
	}
	out := []catalog.BusinessProcess{}
	for _, bp := range bps {
		if e.BusinessProcessInDomain(bp, d) {
			out = append(out, bp)
		}
	}
	return out
}

// DomainColumn returns the capabilities shown in the column of a board
// while the active domain filter is applied. A capability lands in the
// column when its process belongs to the column domain or its tags
// contain the lower-case column name. Cross-domain capabilities appear
// in more than one column.
func (e *Engine) DomainColumn(active, column catalog.Domain) []catalog.Capability {
	tag := strings.ToLower(string(column))
	out := []catalog.Capability{}
	for _, c := range e.FilterCapabilities(active, e.r.Capabilities()) {
		bp, ok := e.r.BusinessProcess(c.BusinessProcessID)
		if (ok && bp.Domain == column) || strings.Contains(c.Tags, tag) {
			out = append(out, c)
		}
	}
	return out
}
