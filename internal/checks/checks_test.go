package checks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/edmx/internal/rdf"
	"github.com/thoreinstein/edmx/internal/schema"
)

const prefixes = `
@prefix rdf:  <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix edm:  <http://www.europeana.eu/schemas/edm/> .
@prefix ore:  <http://www.openarchives.org/ore/terms/> .
@prefix dc:   <http://purl.org/dc/elements/1.1/> .
@prefix ex:   <http://example.org/> .
`

var profile = schema.DefaultProfile()

// record parses Turtle against the local base, as the validator does.
func record(t *testing.T, ttl string) *rdf.Graph {
	t.Helper()
	g, err := rdf.ParseString(prefixes+ttl, rdf.FormatTurtle, schema.LocalBaseURL)
	require.NoError(t, err)
	return g
}
