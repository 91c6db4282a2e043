package checks

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/edmx/internal/rdf"
	"github.com/thoreinstein/edmx/internal/report"
	"github.com/thoreinstein/edmx/internal/schema"
)

// maxListedOrphans bounds how many resources one orphan item names.
const maxListedOrphans = 10

// CheckOrphans reports, in one Warning item, the resources that cannot be
// reached from a resource of one of the profile's root types by following
// statements forward. rdf:type statements are not references. It returns
// nil when every resource is reachable.
func CheckOrphans(g *rdf.Graph, profile schema.Profile) *report.Item {
	var queue []rdf.Term
	reached := make(map[rdf.Term]bool)
	for _, root := range profile.RootTypes {
		for _, s := range g.SubjectsWith(rdf.Type, rdf.IRI(root)) {
			if !reached[s] {
				reached[s] = true
				queue = append(queue, s)
			}
		}
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, t := range g.Match(node, rdf.Term{}, rdf.Term{}) {
			if t.P == rdf.Type || !t.O.IsResource() || reached[t.O] {
				continue
			}
			reached[t.O] = true
			queue = append(queue, t.O)
		}
	}

	var orphans []string
	for _, s := range g.Subjects() {
		if !reached[s] {
			orphans = append(orphans, describe(s, profile))
		}
	}
	if len(orphans) == 0 {
		return nil
	}

	listed := orphans
	if len(listed) > maxListedOrphans {
		listed = listed[:maxListedOrphans]
	}
	msg := fmt.Sprintf("Found %d resource(s) not reachable from a resource of type %s: %s",
		len(orphans), strings.Join(profile.RootTypes, " or "), strings.Join(listed, ", "))
	if len(orphans) > len(listed) {
		msg += ", ..."
	}
	item := report.NewItem(report.Warning, msg+".")
	return &item
}
