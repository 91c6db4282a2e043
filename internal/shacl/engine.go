package shacl

import (
	"context"
	"strings"

	"github.com/thoreinstein/edmx/internal/logging"
	"github.com/thoreinstein/edmx/internal/rdf"
)

// Result is one validation result.
type Result struct {
	FocusNode rdf.Term
	// Path is nil for results of node shapes.
	Path Path
	// Value is zero when the result concerns the value set as a whole,
	// such as a cardinality violation.
	Value   rdf.Term
	Message string
	// Severity is the shape's sh:severity IRI, sh:Violation by default.
	// Custom severities are passed through unchanged.
	Severity    string
	SourceShape rdf.Term
	Constraint  string
}

// Engine validates data graphs against parsed shapes. The zero value is
// ready to use and safe for concurrent use.
type Engine struct{}

// NewEngine returns an Engine.
func NewEngine() *Engine { return &Engine{} }

// Validate checks every targeted shape against data and returns the results
// in shape order, then focus-node order. Class targets and sh:class follow
// rdfs:subClassOf statements present in data.
func (e *Engine) Validate(ctx context.Context, data *rdf.Graph, shapes *Shapes) ([]Result, error) {
	logger := logging.FromContext(ctx)
	ec := newEvalContext(data)

	var results []Result
	for _, sh := range shapes.Targeted() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if sh.Deactivated {
			continue
		}
		focus := ec.focusNodes(sh)
		logger.Log(ctx, logging.LevelTrace, "evaluating shape", "shape", sh.ID.String(), "focus_nodes", len(focus))
		for _, node := range focus {
			results = append(results, ec.validate(sh, node)...)
		}
	}
	return results, nil
}

// Conforms reports whether node satisfies sh in data.
func (e *Engine) Conforms(data *rdf.Graph, node rdf.Term, sh *Shape) bool {
	return newEvalContext(data).conforms(node, sh)
}

type visit struct {
	node  rdf.Term
	shape *Shape
}

// evalContext holds per-call state: the data graph, memoized superclasses
// and the conformance checks in progress.
type evalContext struct {
	g        *rdf.Graph
	supers   map[rdf.Term][]rdf.Term
	visiting map[visit]bool
}

func newEvalContext(g *rdf.Graph) *evalContext {
	return &evalContext{
		g:        g,
		supers:   make(map[rdf.Term][]rdf.Term),
		visiting: make(map[visit]bool),
	}
}

func (ec *evalContext) focusNodes(sh *Shape) []rdf.Term {
	var out []rdf.Term
	seen := make(map[rdf.Term]bool)
	add := func(t rdf.Term) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}

	for _, target := range sh.Targets {
		switch target.Kind {
		case TargetClass:
			for _, t := range ec.instances(target.Term) {
				add(t)
			}
		case TargetNode:
			add(target.Term)
		case TargetSubjectsOf:
			for _, tr := range ec.g.Match(rdf.Term{}, target.Term, rdf.Term{}) {
				add(tr.S)
			}
		case TargetObjectsOf:
			for _, tr := range ec.g.Match(rdf.Term{}, target.Term, rdf.Term{}) {
				add(tr.O)
			}
		}
	}
	return out
}

// instances returns the nodes typed with class or any of its subclasses.
func (ec *evalContext) instances(class rdf.Term) []rdf.Term {
	var out []rdf.Term
	seenNode := make(map[rdf.Term]bool)
	seenClass := map[rdf.Term]bool{class: true}
	queue := []rdf.Term{class}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range ec.g.SubjectsWith(rdf.Type, c) {
			if !seenNode[n] {
				seenNode[n] = true
				out = append(out, n)
			}
		}
		for _, sub := range ec.g.SubjectsWith(rdfsSubClassOf, c) {
			if !seenClass[sub] {
				seenClass[sub] = true
				queue = append(queue, sub)
			}
		}
	}
	return out
}

// superclasses returns class and everything it is a transitive subclass of.
func (ec *evalContext) superclasses(class rdf.Term) []rdf.Term {
	if cached, ok := ec.supers[class]; ok {
		return cached
	}
	out := []rdf.Term{class}
	seen := map[rdf.Term]bool{class: true}
	for i := 0; i < len(out); i++ {
		for _, sup := range ec.g.Objects(out[i], rdfsSubClassOf) {
			if !seen[sup] {
				seen[sup] = true
				out = append(out, sup)
			}
		}
	}
	ec.supers[class] = out
	return out
}

func (ec *evalContext) instanceOf(node, class rdf.Term) bool {
	if node.IsLiteral() {
		return false
	}
	for _, t := range ec.g.Types(node) {
		for _, sup := range ec.superclasses(t) {
			if sup == class {
				return true
			}
		}
	}
	return false
}

func (ec *evalContext) conforms(node rdf.Term, sh *Shape) bool {
	key := visit{node: node, shape: sh}
	if ec.visiting[key] {
		return true
	}
	ec.visiting[key] = true
	defer delete(ec.visiting, key)
	return len(ec.validate(sh, node)) == 0
}

func (ec *evalContext) validate(sh *Shape, focus rdf.Term) []Result {
	if sh.Deactivated {
		return nil
	}

	values := []rdf.Term{focus}
	if sh.IsProperty() {
		values = sh.Path.Eval(ec.g, focus)
	}

	var results []Result
	for _, c := range sh.constraints {
		for _, f := range c.check(ec, values) {
			value := f.value
			if !sh.IsProperty() && value.IsZero() {
				value = focus
			}
			results = append(results, Result{
				FocusNode:   focus,
				Path:        sh.Path,
				Value:       value,
				Message:     message(sh, f, focus),
				Severity:    sh.Severity,
				SourceShape: sh.ID,
				Constraint:  c.component(),
			})
		}
	}

	// Nested property shapes apply to the focus node of a node shape and
	// to each value node of a property shape.
	for _, prop := range sh.Properties {
		if sh.IsProperty() {
			for _, v := range values {
				results = append(results, ec.validate(prop, v)...)
			}
			continue
		}
		results = append(results, ec.validate(prop, focus)...)
	}
	return results
}

// message prefers the shape's own sh:message, untagged or English, and
// substitutes {$this} and {$value}. Without one the constraint's default
// text is used.
func message(sh *Shape, f failure, focus rdf.Term) string {
	if len(sh.Messages) == 0 {
		return f.message
	}

	chosen := sh.Messages[0]
	for _, m := range sh.Messages {
		if m.Lang == "" || rdf.SameLang(m.Lang, "en") {
			chosen = m
			break
		}
	}

	r := strings.NewReplacer(
		"{$this}", render(focus),
		"{?this}", render(focus),
		"{$value}", render(f.value),
		"{?value}", render(f.value),
	)
	return r.Replace(chosen.Value)
}

func render(t rdf.Term) string {
	switch {
	case t.IsZero():
		return ""
	case t.IsLiteral():
		return t.LiteralString()
	default:
		return t.Value
	}
}
