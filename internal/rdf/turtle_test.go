package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/edmx/internal/errors"
)

func parseTurtle(t *testing.T, src string) *Graph {
	t.Helper()
	g, err := ParseString(src, FormatTurtle, "http://example.com/base/")
	require.NoError(t, err)
	return g
}

func TestTurtle_Directives(t *testing.T) {
	g := parseTurtle(t, `
		@prefix ex: <http://example.com/ns#> .
		PREFIX dc: <http://purl.org/dc/elements/1.1/>
		@base <http://other.org/> .
		ex:a dc:title "Title" ; a ex:Thing .
		<rel> ex:p ex:b .
	`)

	assert.True(t, g.Has(IRI("http://example.com/ns#a"), IRI("http://purl.org/dc/elements/1.1/title"), Literal("Title")))
	assert.True(t, g.Has(IRI("http://example.com/ns#a"), Type, IRI("http://example.com/ns#Thing")))
	assert.True(t, g.Has(IRI("http://other.org/rel"), IRI("http://example.com/ns#p"), IRI("http://example.com/ns#b")))
}

func TestTurtle_Literals(t *testing.T) {
	g := parseTurtle(t, `
		@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
		<s> <p> "plain", 'single', "tab\there", "café",
			"""long
"quoted" text""", "chat"@FR, "5"^^xsd:int, 42, -1.5, 1e3, true .
	`)

	objs := g.Objects(IRI("http://example.com/base/s"), IRI("http://example.com/base/p"))
	assert.ElementsMatch(t, []Term{
		Literal("plain"),
		Literal("single"),
		Literal("tab\there"),
		Literal("café"),
		Literal("long\n\"quoted\" text"),
		LangLiteral("chat", "FR"),
		TypedLiteral("5", XSDNS+"int"),
		TypedLiteral("42", XSDInteger),
		TypedLiteral("-1.5", XSDDecimal),
		TypedLiteral("1e3", XSDDouble),
		TypedLiteral("true", XSDBoolean),
	}, objs)
}

func TestTurtle_BlankNodes(t *testing.T) {
	g := parseTurtle(t, `
		@prefix ex: <http://example.com/ns#> .
		_:x ex:knows _:y .
		_:y ex:name "y" .
		ex:s ex:addr [ ex:city "Delft" ; ex:zip "2611" ] .
		[ ex:anon true ] .
	`)

	require.Equal(t, 6, g.Len())

	knows := g.Match(Term{}, IRI("http://example.com/ns#knows"), Term{})
	require.Len(t, knows, 1)
	assert.True(t, knows[0].S.IsBlank())
	assert.True(t, g.Has(knows[0].O, IRI("http://example.com/ns#name"), Literal("y")), "same label is the same node")

	addr, ok := g.Object(IRI("http://example.com/ns#s"), IRI("http://example.com/ns#addr"))
	require.True(t, ok)
	assert.True(t, addr.IsBlank())
	assert.True(t, g.Has(addr, IRI("http://example.com/ns#city"), Literal("Delft")))
}

func TestTurtle_TrailingDotsAndSemicolons(t *testing.T) {
	g := parseTurtle(t, `@prefix ex: <http://example.com/ns#> .
ex:a ex:p ex:b.
ex:c ex:p ex:d ; ; .`)
	assert.Equal(t, 2, g.Len())
	assert.True(t, g.Has(IRI("http://example.com/ns#a"), IRI("http://example.com/ns#p"), IRI("http://example.com/ns#b")))
}

func TestTurtle_RelativeReferences(t *testing.T) {
	g := parseTurtle(t, `<../up> <#p> <> .`)
	assert.True(t, g.Has(IRI("http://example.com/up"), IRI("http://example.com/base/#p"), IRI("http://example.com/base/")))
}

func TestTurtle_ErrorPosition(t *testing.T) {
	_, err := ParseString("<a> <b> <c> .\n<d> <e> \"bad\\q\" .\n", FormatTurtle, "")
	require.Error(t, err)
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Line)
	assert.NotContains(t, se.Msg, "2:")
}

func TestTurtle_BlankScopePerParse(t *testing.T) {
	a := parseTurtle(t, `_:n <p> "1" .`)
	b := parseTurtle(t, `_:n <p> "2" .`)

	merged := a.Clone()
	merged.AddAll(b)
	assert.Len(t, merged.Subjects(), 2, "_:n from different documents must stay distinct")
}

func TestTurtle_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"undefined prefix", `ex:a ex:b ex:c .`},
		{"missing dot", `<a> <b> <c>`},
		{"unterminated string", `<a> <b> "open .`},
		{"unterminated IRI", `<a> <b> <c .`},
		{"bad escape", `<a> <b> "\q" .`},
		{"missing object", `<a> <b> .`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.src, FormatTurtle, "")
			require.Error(t, err)
			var se *SyntaxError
			assert.True(t, errors.As(err, &se), "want *SyntaxError, got %T", err)
			assert.Equal(t, FormatTurtle, se.Format)
		})
	}
}
