package schema

import (
	"embed"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/rdf"
	"github.com/thoreinstein/edmx/internal/shacl"
	"github.com/thoreinstein/edmx/pkg/fileutil"
)

//go:embed resources
var resources embed.FS

const (
	embeddedShapes  = "resources/edm_ext_shacl_shapes.ttl"
	embeddedClasses = "resources/edm_ext_class_definitions.ttl"
)

// maxResourceSize bounds schema and profile files read from disk.
const maxResourceSize int64 = 64 << 20

// Options selects the resources a Schema is built from. Empty paths and a
// zero Profile mean the embedded defaults.
type Options struct {
	Profile     Profile
	ShapesPath  string
	ClassesPath string
}

// Schema is the loaded, read-only validation schema: the profile, the
// parsed shapes, the class hierarchy graph and the supported types derived
// from it. A Schema is safe for concurrent use.
type Schema struct {
	profile   Profile
	shapes    *shacl.Shapes
	hierarchy *rdf.Graph
	supported TypeSet

	shapesSource  string
	classesSource string
}

// Load builds a Schema. It is expensive and meant to run once per process.
func Load(opts Options) (*Schema, error) {
	profile := opts.Profile
	if profile.Name == "" {
		profile = DefaultProfile()
	}

	shapesGraph, shapesSource, err := readGraph(opts.ShapesPath, embeddedShapes)
	if err != nil {
		return nil, errors.Wrap(err, "loading shapes")
	}
	shapes, err := shacl.Parse(shapesGraph)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing shapes from %s", shapesSource)
	}

	hierarchy, classesSource, err := readGraph(opts.ClassesPath, embeddedClasses)
	if err != nil {
		return nil, errors.Wrap(err, "loading class definitions")
	}

	supported := SupportedTypes(hierarchy, rdf.IRI(profile.MarkerType), profile.ExcludedNamespace)
	if supported.Len() == 0 {
		return nil, errors.WithHintf(
			errors.Newf("no supported types below %s in %s", profile.MarkerType, classesSource),
			"declare record classes with rdfs:subClassOf <%s>", profile.MarkerType,
		)
	}

	return &Schema{
		profile:       profile,
		shapes:        shapes,
		hierarchy:     hierarchy,
		supported:     supported,
		shapesSource:  shapesSource,
		classesSource: classesSource,
	}, nil
}

// Default returns the Schema built from the embedded resources, loading it
// on first use.
var Default = sync.OnceValues(func() (*Schema, error) {
	return Load(Options{})
})

func readGraph(path, embedded string) (*rdf.Graph, string, error) {
	if path == "" {
		data, err := resources.ReadFile(embedded)
		if err != nil {
			return nil, "", errors.Wrap(err, "reading embedded resource")
		}
		source := "embedded:" + strings.TrimPrefix(embedded, "resources/")
		g, err := rdf.ParseString(string(data), rdf.FormatTurtle, "")
		return g, source, errors.Wrapf(err, "parsing %s", source)
	}

	data, err := fileutil.ReadFileWithLimit(path, maxResourceSize)
	if err != nil {
		return nil, path, err
	}
	g, err := rdf.ParseString(string(data), rdf.FormatForPath(path), "")
	return g, path, errors.Wrapf(err, "parsing %s", path)
}

// Profile returns the profile the schema was built for.
func (s *Schema) Profile() Profile { return s.profile }

// Shapes returns the parsed shapes.
func (s *Schema) Shapes() *shacl.Shapes { return s.shapes }

// Supported returns the record types the schema accepts.
func (s *Schema) Supported() TypeSet { return s.supported }

// ShapesSource describes where the shapes were read from.
func (s *Schema) ShapesSource() string { return s.shapesSource }

// ClassesSource describes where the class definitions were read from.
func (s *Schema) ClassesSource() string { return s.classesSource }

// HierarchyLen returns the number of class-definition statements.
func (s *Schema) HierarchyLen() int { return s.hierarchy.Len() }

// Augment adds the class hierarchy to g so that shape targets and sh:class
// see subclass relations. The schema's own graph is not modified.
func (s *Schema) Augment(g *rdf.Graph) {
	g.AddAll(s.hierarchy)
}

// CustomSeverities returns, sorted, the severity IRIs used by the shapes
// outside sh:Violation, sh:Warning and sh:Info.
func (s *Schema) CustomSeverities() []string {
	var out []string
	for _, sh := range s.shapes.All() {
		switch sh.Severity {
		case shacl.Violation, shacl.Warning, shacl.Info:
		default:
			if !slices.Contains(out, sh.Severity) {
				out = append(out, sh.Severity)
			}
		}
	}
	sort.Strings(out)
	return out
}

// TypeSet is an immutable set of class IRIs.
type TypeSet struct {
	m map[string]struct{}
}

// NewTypeSet returns a set holding iris.
func NewTypeSet(iris ...string) TypeSet {
	m := make(map[string]struct{}, len(iris))
	for _, iri := range iris {
		m[iri] = struct{}{}
	}
	return TypeSet{m: m}
}

// Contains reports whether iri is in the set.
func (s TypeSet) Contains(iri string) bool {
	_, ok := s.m[iri]
	return ok
}

// Len returns the size of the set.
func (s TypeSet) Len() int { return len(s.m) }

// Sorted returns the members in lexical order.
func (s TypeSet) Sorted() []string {
	out := make([]string, 0, len(s.m))
	for iri := range s.m {
		out = append(out, iri)
	}
	sort.Strings(out)
	return out
}

// SubClassClosure returns root and every class that is a transitive
// rdfs:subClassOf root in g, in breadth-first order.
func SubClassClosure(g *rdf.Graph, root rdf.Term) []rdf.Term {
	subClassOf := rdf.IRI(rdf.RDFSSubClassOf)
	out := []rdf.Term{root}
	seen := map[rdf.Term]bool{root: true}
	for i := 0; i < len(out); i++ {
		for _, sub := range g.SubjectsWith(subClassOf, out[i]) {
			if !seen[sub] {
				seen[sub] = true
				out = append(out, sub)
			}
		}
	}
	return out
}

// SupportedTypes returns the IRIs in the subclass closure of marker that
// are outside excludedNS.
func SupportedTypes(g *rdf.Graph, marker rdf.Term, excludedNS string) TypeSet {
	var iris []string
	for _, c := range SubClassClosure(g, marker) {
		if !c.IsIRI() {
			continue
		}
		if excludedNS != "" && strings.HasPrefix(c.Value, excludedNS) {
			continue
		}
		iris = append(iris, c.Value)
	}
	return NewTypeSet(iris...)
}
