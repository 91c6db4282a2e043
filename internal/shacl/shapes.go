package shacl

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/rdf"
)

// ErrInvalidShape is wrapped by every error Parse returns.
var ErrInvalidShape = errors.New("invalid shape")

// TargetKind selects how a target picks focus nodes.
type TargetKind int

const (
	TargetClass TargetKind = iota
	TargetNode
	TargetSubjectsOf
	TargetObjectsOf
)

// Target is one focus-node declaration of a shape.
type Target struct {
	Kind TargetKind
	Term rdf.Term
}

// Shape is a node shape, or a property shape when Path is non-nil.
type Shape struct {
	ID          rdf.Term
	Path        Path
	Targets     []Target
	Severity    string
	Messages    []rdf.Term
	Deactivated bool
	Properties  []*Shape

	constraints []constraint
}

// IsProperty reports whether s is a property shape.
func (s *Shape) IsProperty() bool { return s.Path != nil }

// Shapes is a parsed shapes graph. It is immutable and safe for concurrent use.
type Shapes struct {
	shapes []*Shape
	byID   map[rdf.Term]*Shape
}

// Len returns the number of shapes, nested ones included.
func (s *Shapes) Len() int { return len(s.shapes) }

// Shape returns the shape with the given node, if any.
func (s *Shapes) Shape(id rdf.Term) (*Shape, bool) {
	sh, ok := s.byID[id]
	return sh, ok
}

// All returns every shape in shapes-graph order.
func (s *Shapes) All() []*Shape { return slices.Clone(s.shapes) }

// Targeted returns the shapes that declare at least one target, in
// shapes-graph order.
func (s *Shapes) Targeted() []*Shape {
	var out []*Shape
	for _, sh := range s.shapes {
		if len(sh.Targets) > 0 {
			out = append(out, sh)
		}
	}
	return out
}

type parser struct {
	g      *rdf.Graph
	result *Shapes
}

// Parse reads every shape declared in g.
func Parse(g *rdf.Graph) (*Shapes, error) {
	p := &parser{
		g:      g,
		result: &Shapes{byID: make(map[rdf.Term]*Shape)},
	}

	for _, node := range p.candidates() {
		if _, err := p.shape(node); err != nil {
			return nil, err
		}
	}
	return p.result, nil
}

// candidates lists the nodes that are shapes by declaration or by use.
func (p *parser) candidates() []rdf.Term {
	var out []rdf.Term
	seen := make(map[rdf.Term]bool)
	add := func(t rdf.Term) {
		if t.IsResource() && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}

	targetPreds := []rdf.Term{shTargetClass, shTargetNode, shTargetSubjectsOf, shTargetObjectsOf}
	for _, s := range p.g.Subjects() {
		for _, typ := range p.g.Types(s) {
			if typ == shNodeShape || typ == shPropertyShape {
				add(s)
			}
		}
		for _, pred := range targetPreds {
			if len(p.g.Objects(s, pred)) > 0 {
				add(s)
			}
		}
	}
	return out
}

func (p *parser) shape(node rdf.Term) (*Shape, error) {
	if sh, ok := p.result.byID[node]; ok {
		return sh, nil
	}

	sh := &Shape{ID: node, Severity: Violation}
	p.result.byID[node] = sh
	p.result.shapes = append(p.result.shapes, sh)

	if pathNode, ok := p.g.Object(node, shPath); ok {
		path, err := p.path(pathNode, 0)
		if err != nil {
			return nil, p.errorf(node, "sh:path: %v", err)
		}
		sh.Path = path
	}

	if err := p.targets(sh); err != nil {
		return nil, err
	}

	if sev, ok := p.g.Object(node, shSeverity); ok {
		if !sev.IsIRI() {
			return nil, p.errorf(node, "sh:severity must be an IRI, got %s", sev)
		}
		sh.Severity = sev.Value
	}
	sh.Messages = p.g.Objects(node, shMessage)

	if d, ok := p.g.Object(node, shDeactivated); ok {
		b, err := strconv.ParseBool(d.Value)
		if err != nil || !d.IsLiteral() {
			return nil, p.errorf(node, "sh:deactivated must be a boolean, got %s", d)
		}
		sh.Deactivated = b
	}

	for _, propNode := range p.g.Objects(node, shProperty) {
		prop, err := p.shape(propNode)
		if err != nil {
			return nil, err
		}
		if !prop.IsProperty() {
			return nil, p.errorf(propNode, "property shape has no sh:path")
		}
		sh.Properties = append(sh.Properties, prop)
	}

	return sh, p.constraints(sh)
}

func (p *parser) targets(sh *Shape) error {
	add := func(kind TargetKind, pred rdf.Term, iriOnly bool) error {
		for _, o := range p.g.Objects(sh.ID, pred) {
			if iriOnly && !o.IsIRI() {
				return p.errorf(sh.ID, "%s must be an IRI, got %s", pred, o)
			}
			sh.Targets = append(sh.Targets, Target{Kind: kind, Term: o})
		}
		return nil
	}

	if sh.ID.IsIRI() && p.isClass(sh.ID) {
		sh.Targets = append(sh.Targets, Target{Kind: TargetClass, Term: sh.ID})
	}
	if err := add(TargetClass, shTargetClass, true); err != nil {
		return err
	}
	if err := add(TargetNode, shTargetNode, false); err != nil {
		return err
	}
	if err := add(TargetSubjectsOf, shTargetSubjectsOf, true); err != nil {
		return err
	}
	return add(TargetObjectsOf, shTargetObjectsOf, true)
}

// isClass reports whether node is also declared as a class, which makes it
// an implicit class target.
func (p *parser) isClass(node rdf.Term) bool {
	for _, t := range p.g.Types(node) {
		if t == rdfsClass || t == owlClass {
			return true
		}
	}
	return false
}

const maxPathDepth = 32

func (p *parser) path(node rdf.Term, depth int) (Path, error) {
	if depth > maxPathDepth {
		return nil, errors.New("path nested too deeply")
	}
	if node.IsIRI() {
		return PredicatePath{Predicate: node}, nil
	}
	if !node.IsBlank() {
		return nil, errors.Newf("unexpected path node %s", node)
	}

	if _, ok := p.g.Object(node, rdf.IRI(rdf.RDFFirst)); ok {
		steps, err := p.pathList(node, depth)
		if err != nil {
			return nil, err
		}
		if len(steps) < 2 {
			return nil, errors.New("sequence path needs at least two members")
		}
		return SequencePath{Steps: steps}, nil
	}
	if alt, ok := p.g.Object(node, shAlternativePath); ok {
		alts, err := p.pathList(alt, depth)
		if err != nil {
			return nil, err
		}
		if len(alts) < 2 {
			return nil, errors.New("alternative path needs at least two members")
		}
		return AlternativePath{Alternatives: alts}, nil
	}

	unary := []struct {
		pred rdf.Term
		wrap func(Path) Path
	}{
		{shInversePath, func(in Path) Path { return InversePath{Inner: in} }},
		{shZeroOrMorePath, func(in Path) Path { return RepeatPath{Inner: in, Min: 0, Unbounded: true} }},
		{shOneOrMorePath, func(in Path) Path { return RepeatPath{Inner: in, Min: 1, Unbounded: true} }},
		{shZeroOrOnePath, func(in Path) Path { return RepeatPath{Inner: in, Min: 0} }},
	}
	for _, u := range unary {
		if inner, ok := p.g.Object(node, u.pred); ok {
			in, err := p.path(inner, depth+1)
			if err != nil {
				return nil, err
			}
			return u.wrap(in), nil
		}
	}
	return nil, errors.Newf("unrecognized path node %s", node)
}

func (p *parser) pathList(head rdf.Term, depth int) ([]Path, error) {
	members, ok := p.g.List(head)
	if !ok {
		return nil, errors.New("malformed RDF list")
	}
	paths := make([]Path, 0, len(members))
	for _, m := range members {
		sub, err := p.path(m, depth+1)
		if err != nil {
			return nil, err
		}
		paths = append(paths, sub)
	}
	return paths, nil
}

func (p *parser) constraints(sh *Shape) error {
	node := sh.ID

	for _, o := range p.g.Objects(node, shMinCount) {
		n, err := p.nonNegative(node, shMinCount, o)
		if err != nil {
			return err
		}
		sh.constraints = append(sh.constraints, minCount{min: n})
	}
	for _, o := range p.g.Objects(node, shMaxCount) {
		n, err := p.nonNegative(node, shMaxCount, o)
		if err != nil {
			return err
		}
		sh.constraints = append(sh.constraints, maxCount{max: n})
	}
	if (hasAny(p.g, node, shMinCount) || hasAny(p.g, node, shMaxCount)) && !sh.IsProperty() {
		return p.errorf(node, "cardinality constraints require sh:path")
	}

	for _, o := range p.g.Objects(node, shClass) {
		if !o.IsIRI() {
			return p.errorf(node, "sh:class must be an IRI, got %s", o)
		}
		sh.constraints = append(sh.constraints, classConstraint{class: o})
	}
	for _, o := range p.g.Objects(node, shDatatype) {
		if !o.IsIRI() {
			return p.errorf(node, "sh:datatype must be an IRI, got %s", o)
		}
		sh.constraints = append(sh.constraints, datatypeConstraint{datatype: o.Value})
	}
	for _, o := range p.g.Objects(node, shNodeKind) {
		if !validNodeKind(o.Value) || !o.IsIRI() {
			return p.errorf(node, "unknown sh:nodeKind %s", o)
		}
		sh.constraints = append(sh.constraints, nodeKindConstraint{kind: o.Value})
	}
	for _, o := range p.g.Objects(node, shIn) {
		members, ok := p.g.List(o)
		if !ok {
			return p.errorf(node, "sh:in must be an RDF list")
		}
		sh.constraints = append(sh.constraints, inConstraint{members: members})
	}
	for _, o := range p.g.Objects(node, shHasValue) {
		sh.constraints = append(sh.constraints, hasValue{value: o})
	}

	for _, o := range p.g.Objects(node, shPattern) {
		flags := ""
		if f, ok := p.g.Object(node, shFlags); ok {
			flags = f.Value
		}
		re, err := compilePattern(o.Value, flags)
		if err != nil {
			return p.errorf(node, "sh:pattern %q: %v", o.Value, err)
		}
		sh.constraints = append(sh.constraints, pattern{source: o.Value, re: re})
	}
	for _, o := range p.g.Objects(node, shMinLength) {
		n, err := p.nonNegative(node, shMinLength, o)
		if err != nil {
			return err
		}
		sh.constraints = append(sh.constraints, minLength{min: n})
	}
	for _, o := range p.g.Objects(node, shMaxLength) {
		n, err := p.nonNegative(node, shMaxLength, o)
		if err != nil {
			return err
		}
		sh.constraints = append(sh.constraints, maxLength{max: n})
	}
	if o, ok := p.g.Object(node, shUniqueLang); ok {
		b, err := strconv.ParseBool(o.Value)
		if err != nil || !o.IsLiteral() {
			return p.errorf(node, "sh:uniqueLang must be a boolean, got %s", o)
		}
		if b {
			if !sh.IsProperty() {
				return p.errorf(node, "sh:uniqueLang requires sh:path")
			}
			sh.constraints = append(sh.constraints, uniqueLang{})
		}
	}

	for _, o := range p.g.Objects(node, shNode) {
		target, err := p.shape(o)
		if err != nil {
			return err
		}
		sh.constraints = append(sh.constraints, nodeConstraint{shape: target})
	}
	for _, o := range p.g.Objects(node, shNot) {
		target, err := p.shape(o)
		if err != nil {
			return err
		}
		sh.constraints = append(sh.constraints, notConstraint{shape: target})
	}
	for _, o := range p.g.Objects(node, shAnd) {
		members, err := p.shapeList(node, shAnd, o)
		if err != nil {
			return err
		}
		sh.constraints = append(sh.constraints, andConstraint{shapes: members})
	}
	for _, o := range p.g.Objects(node, shOr) {
		members, err := p.shapeList(node, shOr, o)
		if err != nil {
			return err
		}
		sh.constraints = append(sh.constraints, orConstraint{shapes: members})
	}
	return nil
}

func (p *parser) shapeList(node, pred, head rdf.Term) ([]*Shape, error) {
	members, ok := p.g.List(head)
	if !ok {
		return nil, p.errorf(node, "%s must be an RDF list", pred)
	}
	out := make([]*Shape, 0, len(members))
	for _, m := range members {
		sh, err := p.shape(m)
		if err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, nil
}

func (p *parser) nonNegative(node, pred, o rdf.Term) (int, error) {
	n, err := strconv.Atoi(o.Value)
	if err != nil || !o.IsLiteral() || n < 0 {
		return 0, p.errorf(node, "%s must be a non-negative integer, got %s", pred, o)
	}
	return n, nil
}

func (p *parser) errorf(node rdf.Term, format string, args ...any) error {
	return errors.Wrapf(ErrInvalidShape, "shape %s: %s", node, fmt.Sprintf(format, args...))
}

func hasAny(g *rdf.Graph, s, pred rdf.Term) bool {
	_, ok := g.Object(s, pred)
	return ok
}

func validNodeKind(kind string) bool {
	switch kind {
	case NodeKindIRI, NodeKindBlankNode, NodeKindLiteral,
		NodeKindBlankNodeOrIRI, NodeKindBlankNodeOrLiteral, NodeKindIRIOrLiteral:
		return true
	}
	return false
}

// compilePattern translates SHACL regex flags into RE2 inline flags. The
// x and q flags have no RE2 equivalent and are rejected.
func compilePattern(source, flags string) (*regexp.Regexp, error) {
	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(inline.String(), f) {
				inline.WriteRune(f)
			}
		default:
			return nil, errors.Newf("unsupported flag %q", f)
		}
	}
	if inline.Len() > 0 {
		source = "(?" + inline.String() + ")" + source
	}
	return regexp.Compile(source)
}
