package checks

import (
	"github.com/thoreinstein/edmx/internal/rdf"
	"github.com/thoreinstein/edmx/internal/report"
	"github.com/thoreinstein/edmx/internal/schema"
)

// Identity check messages.
const (
	MsgNoRecordID       = "No unique provided CHO ID found."
	MsgMultipleRecordID = "Multiple unique provided CHO ID found."
)

// RecordIDs returns the distinct IRIs typed exactly with the profile's
// primary type, in graph order. Subtypes do not count and blank nodes are
// skipped. The IRIs are returned as they appear in the graph.
func RecordIDs(g *rdf.Graph, profile schema.Profile) []string {
	var ids []string
	for _, s := range g.SubjectsWith(rdf.Type, rdf.IRI(profile.PrimaryType)) {
		if s.IsIRI() {
			ids = append(ids, s.Value)
		}
	}
	return ids
}

// CheckIdentity requires exactly one primary resource. On success it
// returns that resource's identifier without the local base; otherwise it
// returns an Error item and ok is false.
func CheckIdentity(g *rdf.Graph, profile schema.Profile) (recordID string, ok bool, item *report.Item) {
	ids := RecordIDs(g, profile)
	switch len(ids) {
	case 0:
		it := report.NewError(MsgNoRecordID)
		return "", false, &it
	case 1:
		return profile.StripLocalBase(ids[0]), true, nil
	default:
		it := report.NewError(MsgMultipleRecordID)
		return "", false, &it
	}
}
