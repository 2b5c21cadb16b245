// Package report renders catalog summaries as Markdown.
package report

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/query"
)

// Source is what a report reads.
type Source interface {
	BusinessProcesses() []catalog.BusinessProcess
	Capabilities() []catalog.Capability
}

// Options selects report content.
type Options struct {
	Title   string
	Domain  catalog.Domain
	Resolve query.Resolver // nil omits the assignment board
}

// Write renders the catalog report: one section per business process in
// the domain with the best product of every vendor, followed by the
// assignment board.
func Write(w io.Writer, src Source, e *query.Engine, opts Options) error {
	title := opts.Title
	if title == "" {
		title = "Capability Map"
	}
	domain := opts.Domain
	if domain == "" {
		domain = catalog.DomainAll
	}

	doc := md.NewMarkdown(w)
	doc.H1(title)
	doc.PlainTextf("Domain: %s", md.Bold(domain.String())).LF()

	processes := e.FilterBusinessProcesses(domain, src.BusinessProcesses())
	if len(processes) == 0 {
		doc.PlainText(md.Italic("No business processes in this domain.")).LF()
	}
	for _, bp := range processes {
		writeProcess(doc, e, bp, len(processCapabilities(src, bp.ID)))
	}

	if opts.Resolve != nil {
		writeBoard(doc, e, domain, opts.Resolve)
	}

	if err := doc.Build(); err != nil {
		return errors.WrapResource("render", "report", "markdown", err)
	}
	return nil
}

func processCapabilities(src Source, processID string) []catalog.Capability {
	var out []catalog.Capability
	for _, c := range src.Capabilities() {
		if c.BusinessProcessID == processID {
			out = append(out, c)
		}
	}
	return out
}

func writeProcess(doc *md.Markdown, e *query.Engine, bp catalog.BusinessProcess, total int) {
	doc.H2(bp.Name)
	if bp.Description != "" {
		doc.PlainText(bp.Description).LF()
	}

	best := e.BestProductPerVendorForProcess(bp.ID)
	if len(best) == 0 {
		doc.PlainText(md.Italic("No products cover this process.")).LF()
		return
	}

	rows := make([][]string, 0, len(best))
	for _, vp := range best {
		fit := "-"
		if ev, ok := e.BusinessProcessEvaluation(vp.Vendor.ID, bp.ID); ok && ev.OverallFit != "" {
			fit = ev.OverallFit
		}
		rows = append(rows, []string{
			vp.Vendor.Name,
			vp.Product.Name,
			fmt.Sprintf("%d/%d", vp.CapabilityCount, total),
			fit,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Vendor", "Best product", "Coverage", "Fit"},
		Rows:   rows,
	})
}

func writeBoard(doc *md.Markdown, e *query.Engine, domain catalog.Domain, resolve query.Resolver) {
	doc.H2("Assignments")
	cards := e.Board(domain, resolve)
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		product, vendor := "Unassigned", ""
		if c.Assigned() {
			product, vendor = c.Product.Name, c.VendorName
		}
		rows = append(rows, []string{c.Capability.Name, product, vendor})
	}
	doc.Table(md.TableSet{
		Header: []string{"Capability", "Product", "Vendor"},
		Rows:   rows,
	})
}

// WriteEvaluation renders a full vendor by process evaluation.
func WriteEvaluation(w io.Writer, ev catalog.BusinessProcessEvaluation, vendor catalog.Vendor, process catalog.BusinessProcess) error {
	doc := md.NewMarkdown(w)
	doc.H1(fmt.Sprintf("%s: %s", vendor.Name, process.Name))
	if ev.OverallFit != "" {
		doc.PlainTextf("Overall fit: %s", md.Bold(strings.ToUpper(ev.OverallFit))).LF()
	}

	section(doc, "Key products", ev.KeyProducts)
	section(doc, "Good for", ev.GoodFor)
	section(doc, "Not ideal for", ev.NotIdealFor)
	section(doc, "Best use cases", ev.BestUseCases)
	section(doc, "Strengths", ev.Strengths)
	section(doc, "Weaknesses", ev.Weaknesses)

	doc.H2("Implementation")
	doc.Table(md.TableSet{
		Header: []string{"Complexity", "Typical time", "Total cost of ownership", "Confidence"},
		Rows: [][]string{{
			orDash(ev.ImplementationComplexity),
			orDash(ev.TypicalImplementationTime),
			orDash(ev.TotalCostOfOwnership),
			orDash(ev.Confidence),
		}},
	})

	if err := doc.Build(); err != nil {
		return errors.WrapResource("render", "evaluation", ev.ID, err)
	}
	return nil
}

func section(doc *md.Markdown, title string, items []string) {
	if len(items) == 0 {
		return
	}
	doc.H2(title)
	doc.BulletList(items...)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
