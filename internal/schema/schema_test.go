package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/edmx/internal/rdf"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{
		CCNS + "License",
		SVCSNS + "Service",
		EDMNS + "Agent",
		EDMNS + "Place",
		EDMNS + "ProvidedCHO",
		EDMNS + "TimeSpan",
		EDMNS + "WebResource",
		ORENS + "Aggregation",
		SKOSNS + "Concept",
	}, s.Supported().Sorted())
	assert.False(t, s.Supported().Contains(ExtNS+"EdmClass"))
	assert.False(t, s.Supported().Contains(ExtNS+"ContextualClass"))

	assert.NotEmpty(t, s.Shapes().Targeted())
	assert.Empty(t, s.CustomSeverities())
	assert.Equal(t, "embedded:edm_ext_shacl_shapes.ttl", s.ShapesSource())
	assert.Equal(t, "embedded:edm_ext_class_definitions.ttl", s.ClassesSource())
	assert.Equal(t, DefaultProfile(), s.Profile())

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, s, again)
}

func TestSchema_AugmentLeavesHierarchyUntouched(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)
	before := s.HierarchyLen()

	g := rdf.NewGraph()
	g.Add(rdf.Triple{S: rdf.IRI("http://example.org/r"), P: rdf.Type, O: rdf.IRI(EDMNS + "Agent")})
	s.Augment(g)

	assert.Equal(t, before+1, g.Len())
	assert.Equal(t, before, s.HierarchyLen())
}

func TestSubClassClosure(t *testing.T) {
	g, err := rdf.ParseString(`
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix ex: <http://example.org/> .
ex:A rdfs:subClassOf ex:Root .
ex:B rdfs:subClassOf ex:A .
ex:C rdfs:subClassOf ex:B .
ex:Root rdfs:subClassOf ex:C .
ex:Other rdfs:subClassOf ex:Elsewhere .
<http://example.org/meta/Hidden> rdfs:subClassOf ex:Root .
`, rdf.FormatTurtle, "")
	require.NoError(t, err)

	closure := SubClassClosure(g, rdf.IRI("http://example.org/Root"))
	assert.Equal(t, []rdf.Term{
		rdf.IRI("http://example.org/Root"),
		rdf.IRI("http://example.org/A"),
		rdf.IRI("http://example.org/meta/Hidden"),
		rdf.IRI("http://example.org/B"),
		rdf.IRI("http://example.org/C"),
	}, closure)

	supported := SupportedTypes(g, rdf.IRI("http://example.org/Root"), "http://example.org/meta/")
	assert.Equal(t, []string{
		"http://example.org/A",
		"http://example.org/B",
		"http://example.org/C",
		"http://example.org/Root",
	}, supported.Sorted())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Overrides(t *testing.T) {
	shapes := writeFile(t, "shapes.ttl", `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .
ex:S sh:targetClass ex:Thing ; sh:severity ex:Critical ;
    sh:property [ sh:path ex:p ; sh:minCount 1 ; sh:severity sh:Warning ] .
`)

	s, err := Load(Options{ShapesPath: shapes})
	require.NoError(t, err)
	assert.Equal(t, shapes, s.ShapesSource())
	assert.Equal(t, []string{"http://example.org/Critical"}, s.CustomSeverities())

	t.Run("no supported types", func(t *testing.T) {
		classes := writeFile(t, "classes.ttl", `<http://example.org/A> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/B> .`)
		_, err := Load(Options{ClassesPath: classes})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no supported types")
	})

	t.Run("broken shapes", func(t *testing.T) {
		broken := writeFile(t, "broken.ttl", `<http://example.org/S> <http://www.w3.org/ns/shacl#targetNode> .`)
		_, err := Load(Options{ShapesPath: broken})
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(Options{ClassesPath: filepath.Join(t.TempDir(), "absent.ttl")})
		require.Error(t, err)
	})
}
