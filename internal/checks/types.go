package checks

import (
	"github.com/thoreinstein/edmx/internal/rdf"
	"github.com/thoreinstein/edmx/internal/report"
	"github.com/thoreinstein/edmx/internal/schema"
)

// CheckTypes reports every resource without an rdf:type and every
// (resource, type) pair whose type is not supported. Resources are the
// subjects of the graph in order of first appearance.
func CheckTypes(g *rdf.Graph, supported schema.TypeSet, profile schema.Profile) []report.Item {
	var items []report.Item
	for _, res := range g.Subjects() {
		name := describe(res, profile)
		var opts []report.ItemOption
		if subject, ok := render(res, profile); ok {
			opts = append(opts, report.WithSubject(subject))
		}

		untyped := true
		for _, typ := range g.Types(res) {
			if !typ.IsIRI() {
				continue
			}
			untyped = false
			if !supported.Contains(typ.Value) {
				items = append(items, report.NewError(
					"Resource "+name+" has unsupported rdf:type "+typ.Value+".", opts...))
			}
		}
		if untyped {
			items = append(items, report.NewError(
				"Resource "+name+" has no declared rdf:type.", opts...))
		}
	}
	return items
}
