package shacl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/edmx/internal/rdf"
)

const ex = "http://example.org/"

const prefixes = `
@prefix sh:   <http://www.w3.org/ns/shacl#> .
@prefix ex:   <http://example.org/> .
@prefix xsd:  <http://www.w3.org/2001/XMLSchema#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
`

func mustGraph(t *testing.T, ttl string) *rdf.Graph {
	t.Helper()
	g, err := rdf.ParseString(prefixes+ttl, rdf.FormatTurtle, "")
	require.NoError(t, err)
	return g
}

func mustShapes(t *testing.T, ttl string) *Shapes {
	t.Helper()
	shapes, err := Parse(mustGraph(t, ttl))
	require.NoError(t, err)
	return shapes
}

func validate(t *testing.T, shapesTTL, dataTTL string) []Result {
	t.Helper()
	results, err := NewEngine().Validate(context.Background(), mustGraph(t, dataTTL), mustShapes(t, shapesTTL))
	require.NoError(t, err)
	return results
}

func components(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Constraint
	}
	return out
}

func TestEngine_CardinalityWithSubclassTargets(t *testing.T) {
	results := validate(t, `
ex:ThingShape a sh:NodeShape ;
    sh:targetClass ex:Thing ;
    sh:property [ sh:path ex:title ; sh:minCount 1 ; sh:maxCount 2 ] .
`, `
ex:Sub rdfs:subClassOf ex:Thing .
ex:a a ex:Thing ; ex:title "x" .
ex:b a ex:Sub .
ex:c a ex:Thing ; ex:title "1", "2", "3" .
`)

	require.Len(t, results, 2)

	assert.Equal(t, rdf.IRI(ex+"c"), results[0].FocusNode)
	assert.Equal(t, NS+"MaxCountConstraintComponent", results[0].Constraint)
	assert.True(t, results[0].Value.IsZero())

	assert.Equal(t, rdf.IRI(ex+"b"), results[1].FocusNode)
	assert.Equal(t, NS+"MinCountConstraintComponent", results[1].Constraint)
	assert.Equal(t, Violation, results[1].Severity)
	require.NotNil(t, results[1].Path)
	assert.Equal(t, []rdf.Term{rdf.IRI(ex + "title")}, results[1].Path.Links())
}

func TestEngine_ValueConstraints(t *testing.T) {
	results := validate(t, `
ex:S sh:targetNode ex:a ;
    sh:property [ sh:path ex:date ; sh:datatype xsd:date ] ;
    sh:property [ sh:path ex:code ; sh:pattern "^ab" ; sh:flags "i" ] ;
    sh:property [ sh:path ex:link ; sh:nodeKind sh:IRI ] ;
    sh:property [ sh:path ex:kind ; sh:in ( "TEXT" "IMAGE" ) ] ;
    sh:property [ sh:path ex:kind ; sh:hasValue "TEXT" ] .
`, `
ex:a ex:date "2020-13"^^xsd:date, "2020-01-01", "2021-02-03"^^xsd:date ;
     ex:code "ABc", "xab" ;
     ex:link "http://example.org/x", ex:ok ;
     ex:kind "TEXT", "SOUND" .
`)

	assert.Equal(t, []string{
		NS + "DatatypeConstraintComponent",
		NS + "DatatypeConstraintComponent",
		NS + "PatternConstraintComponent",
		NS + "NodeKindConstraintComponent",
		NS + "InConstraintComponent",
	}, components(results))

	assert.Equal(t, rdf.TypedLiteral("2020-13", rdf.XSDNS+"date"), results[0].Value)
	assert.Equal(t, rdf.Literal("2020-01-01"), results[1].Value)
	assert.Equal(t, rdf.Literal("xab"), results[2].Value)
	assert.Equal(t, rdf.Literal("http://example.org/x"), results[3].Value)
	assert.Equal(t, rdf.Literal("SOUND"), results[4].Value)
}

func TestEngine_StringLengthAndUniqueLang(t *testing.T) {
	results := validate(t, `
ex:S sh:targetSubjectsOf ex:label ;
    sh:property [ sh:path ex:label ; sh:uniqueLang true ; sh:minLength 2 ; sh:maxLength 4 ] .
`, `
ex:x ex:label "ab"@en, "cd"@EN, "ef"@fr, "g", "hijkl" .
`)

	assert.ElementsMatch(t, []string{
		NS + "MinLengthConstraintComponent",
		NS + "MaxLengthConstraintComponent",
		NS + "UniqueLangConstraintComponent",
	}, components(results))
}

func TestEngine_UniqueLangIgnoresTagCase(t *testing.T) {
	results := validate(t, `
ex:S sh:targetNode ex:x ;
    sh:property [ sh:path ex:label ; sh:uniqueLang true ; sh:message "Duplicate language"@EN-gb ] .
`, `
ex:x ex:label "colour"@en-GB, "color"@en-gb, "kleur"@nl .
`)

	require.Len(t, results, 1)
	assert.Equal(t, NS+"UniqueLangConstraintComponent", results[0].Constraint)
	assert.Equal(t, "Duplicate language", results[0].Message)
}

func TestEngine_EnglishMessageAnyCase(t *testing.T) {
	results := validate(t, `
ex:S sh:targetNode ex:x ;
    sh:property [ sh:path ex:label ; sh:minCount 1 ; sh:message "Fehlt"@de, "Missing"@EN ] .
`, `
ex:x ex:other "v" .
`)

	require.Len(t, results, 1)
	assert.Equal(t, "Missing", results[0].Message)
}

func TestEngine_LogicalConstraints(t *testing.T) {
	results := validate(t, `
ex:ChoShape a sh:NodeShape ;
    sh:targetClass ex:CHO ;
    sh:or ( [ sh:path ex:title ; sh:minCount 1 ] [ sh:path ex:description ; sh:minCount 1 ] ) .

ex:CreatorShape sh:targetNode ex:x ;
    sh:property [ sh:path ex:creator ; sh:node ex:AgentShape ] .

ex:AgentShape sh:property [ sh:path ex:name ; sh:minCount 1 ] .

ex:NotShape sh:targetNode ex:x ;
    sh:not [ sh:class ex:Forbidden ] .
`, `
ex:c1 a ex:CHO ; ex:title "t" .
ex:c2 a ex:CHO .
ex:c3 a ex:CHO ; ex:description "d" .
ex:x a ex:Forbidden ; ex:creator ex:ag1, ex:ag2 .
ex:ag1 ex:name "n" .
`)

	require.Len(t, results, 3)

	assert.Equal(t, NS+"OrConstraintComponent", results[0].Constraint)
	assert.Equal(t, rdf.IRI(ex+"c2"), results[0].FocusNode)
	assert.Equal(t, rdf.IRI(ex+"c2"), results[0].Value)
	assert.Nil(t, results[0].Path)

	assert.Equal(t, NS+"NodeConstraintComponent", results[1].Constraint)
	assert.Equal(t, rdf.IRI(ex+"ag2"), results[1].Value)

	assert.Equal(t, NS+"NotConstraintComponent", results[2].Constraint)
	assert.Equal(t, rdf.IRI(ex+"NotShape"), results[2].SourceShape)
}

func TestEngine_ClassConstraintFollowsHierarchy(t *testing.T) {
	results := validate(t, `
ex:S sh:targetNode ex:agg ;
    sh:property [ sh:path ex:aggregatedCHO ; sh:class ex:CHO ] .
`, `
ex:Book rdfs:subClassOf ex:CHO .
ex:agg ex:aggregatedCHO ex:book, ex:person, "literal" .
ex:book a ex:Book .
ex:person a ex:Person .
`)

	require.Len(t, results, 2)
	assert.Equal(t, rdf.IRI(ex+"person"), results[0].Value)
	assert.Equal(t, rdf.Literal("literal"), results[1].Value)
}

func TestEngine_SeverityMessageAndDeactivation(t *testing.T) {
	results := validate(t, `
ex:W sh:targetNode ex:x ;
    sh:property [
        sh:path ex:label ;
        sh:minCount 1 ;
        sh:severity ex:Custom ;
        sh:message "Fehlt"@de, "Label missing on {$this}"@en
    ] .

ex:D sh:targetNode ex:x ;
    sh:deactivated true ;
    sh:property [ sh:path ex:other ; sh:minCount 1 ] .
`, `
ex:x ex:unrelated "v" .
`)

	require.Len(t, results, 1)
	assert.Equal(t, ex+"Custom", results[0].Severity)
	assert.Equal(t, "Label missing on http://example.org/x", results[0].Message)
}

func TestEngine_ImplicitClassTarget(t *testing.T) {
	results := validate(t, `
ex:Person a rdfs:Class, sh:NodeShape ;
    sh:property [ sh:path ex:name ; sh:minCount 1 ] .
`, `
ex:p a ex:Person .
ex:q a ex:Person ; ex:name "Q" .
`)

	require.Len(t, results, 1)
	assert.Equal(t, rdf.IRI(ex+"p"), results[0].FocusNode)
}

func TestEngine_CancelledContext(t *testing.T) {
	shapes := mustShapes(t, `ex:S sh:targetNode ex:x ; sh:property [ sh:path ex:p ; sh:minCount 1 ] .`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Validate(ctx, rdf.NewGraph(), shapes)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Conforms(t *testing.T) {
	shapes := mustShapes(t, `ex:Named a sh:NodeShape ; sh:property [ sh:path ex:name ; sh:minCount 1 ] .`)
	data := mustGraph(t, `ex:a ex:name "A" .`)

	named, ok := shapes.Shape(rdf.IRI(ex + "Named"))
	require.True(t, ok)
	assert.True(t, NewEngine().Conforms(data, rdf.IRI(ex+"a"), named))
	assert.False(t, NewEngine().Conforms(data, rdf.IRI(ex+"b"), named))
}
