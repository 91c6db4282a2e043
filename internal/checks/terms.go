package checks

import (
	"github.com/thoreinstein/edmx/internal/rdf"
	"github.com/thoreinstein/edmx/internal/schema"
)

// blankResource stands in for a blank node in messages.
const blankResource = "[BLANK RESOURCE]"

// render returns the reported form of t: IRIs without the local base,
// literals with their language or datatype. Blank nodes and absent terms
// have no reported form.
func render(t rdf.Term, profile schema.Profile) (string, bool) {
	switch t.Kind {
	case rdf.KindIRI:
		return profile.StripLocalBase(t.Value), true
	case rdf.KindLiteral:
		return t.LiteralString(), true
	default:
		return "", false
	}
}

// describe names a resource in a message.
func describe(t rdf.Term, profile schema.Profile) string {
	if s, ok := render(t, profile); ok {
		return s
	}
	return blankResource
}
