package shacl

import (
	"slices"
	"strings"

	"github.com/thoreinstein/edmx/internal/rdf"
)

// Path is a SHACL property path.
type Path interface {
	// Eval returns the distinct nodes reachable from focus, in discovery order.
	Eval(g *rdf.Graph, focus rdf.Term) []rdf.Term
	// Links returns the distinct predicate IRIs the path is built from.
	// An inverse step contributes its predicate unchanged.
	Links() []rdf.Term
	// String renders the path in SPARQL property path syntax.
	String() string

	walk(g *rdf.Graph, from rdf.Term, inverse bool, visit func(rdf.Term))
}

func eval(p Path, g *rdf.Graph, focus rdf.Term) []rdf.Term {
	var out []rdf.Term
	seen := make(map[rdf.Term]bool)
	p.walk(g, focus, false, func(t rdf.Term) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	})
	return out
}

func appendLinks(dst []rdf.Term, p Path) []rdf.Term {
	for _, l := range p.Links() {
		if !slices.Contains(dst, l) {
			dst = append(dst, l)
		}
	}
	return dst
}

// PredicatePath is a single predicate step.
type PredicatePath struct {
	Predicate rdf.Term
}

func (p PredicatePath) Eval(g *rdf.Graph, focus rdf.Term) []rdf.Term { return eval(p, g, focus) }
func (p PredicatePath) Links() []rdf.Term                            { return []rdf.Term{p.Predicate} }
func (p PredicatePath) String() string                               { return p.Predicate.String() }

func (p PredicatePath) walk(g *rdf.Graph, from rdf.Term, inverse bool, visit func(rdf.Term)) {
	var next []rdf.Term
	if inverse {
		next = g.SubjectsWith(p.Predicate, from)
	} else {
		next = g.Objects(from, p.Predicate)
	}
	for _, t := range next {
		visit(t)
	}
}

// InversePath follows its inner path backwards.
type InversePath struct {
	Inner Path
}

func (p InversePath) Eval(g *rdf.Graph, focus rdf.Term) []rdf.Term { return eval(p, g, focus) }
func (p InversePath) Links() []rdf.Term                            { return p.Inner.Links() }
func (p InversePath) String() string                               { return "^" + group(p.Inner) }

func (p InversePath) walk(g *rdf.Graph, from rdf.Term, inverse bool, visit func(rdf.Term)) {
	p.Inner.walk(g, from, !inverse, visit)
}

// SequencePath chains its steps.
type SequencePath struct {
	Steps []Path
}

func (p SequencePath) Eval(g *rdf.Graph, focus rdf.Term) []rdf.Term { return eval(p, g, focus) }

func (p SequencePath) Links() []rdf.Term {
	var out []rdf.Term
	for _, s := range p.Steps {
		out = appendLinks(out, s)
	}
	return out
}

func (p SequencePath) String() string {
	parts := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		parts[i] = group(s)
	}
	return strings.Join(parts, "/")
}

func (p SequencePath) walk(g *rdf.Graph, from rdf.Term, inverse bool, visit func(rdf.Term)) {
	steps := p.Steps
	if inverse {
		steps = slices.Clone(steps)
		slices.Reverse(steps)
	}
	current := []rdf.Term{from}
	for _, step := range steps {
		var next []rdf.Term
		seen := make(map[rdf.Term]bool)
		for _, node := range current {
			step.walk(g, node, inverse, func(t rdf.Term) {
				if !seen[t] {
					seen[t] = true
					next = append(next, t)
				}
			})
		}
		current = next
	}
	for _, t := range current {
		visit(t)
	}
}

// AlternativePath is the union of its alternatives.
type AlternativePath struct {
	Alternatives []Path
}

func (p AlternativePath) Eval(g *rdf.Graph, focus rdf.Term) []rdf.Term { return eval(p, g, focus) }

func (p AlternativePath) Links() []rdf.Term {
	var out []rdf.Term
	for _, a := range p.Alternatives {
		out = appendLinks(out, a)
	}
	return out
}

func (p AlternativePath) String() string {
	parts := make([]string, len(p.Alternatives))
	for i, a := range p.Alternatives {
		parts[i] = group(a)
	}
	return strings.Join(parts, "|")
}

func (p AlternativePath) walk(g *rdf.Graph, from rdf.Term, inverse bool, visit func(rdf.Term)) {
	for _, a := range p.Alternatives {
		a.walk(g, from, inverse, visit)
	}
}

// RepeatPath is one of the zeroOrMore, oneOrMore and zeroOrOne paths.
type RepeatPath struct {
	Inner     Path
	Min       int  // 0 or 1
	Unbounded bool // false for zeroOrOne
}

func (p RepeatPath) Eval(g *rdf.Graph, focus rdf.Term) []rdf.Term { return eval(p, g, focus) }
func (p RepeatPath) Links() []rdf.Term                            { return p.Inner.Links() }

func (p RepeatPath) String() string {
	switch {
	case !p.Unbounded:
		return group(p.Inner) + "?"
	case p.Min == 0:
		return group(p.Inner) + "*"
	default:
		return group(p.Inner) + "+"
	}
}

func (p RepeatPath) walk(g *rdf.Graph, from rdf.Term, inverse bool, visit func(rdf.Term)) {
	if p.Min == 0 {
		visit(from)
	}
	if !p.Unbounded {
		p.Inner.walk(g, from, inverse, visit)
		return
	}

	seen := map[rdf.Term]bool{}
	queue := []rdf.Term{from}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		p.Inner.walk(g, node, inverse, func(t rdf.Term) {
			if seen[t] {
				return
			}
			seen[t] = true
			visit(t)
			queue = append(queue, t)
		})
	}
}

func group(p Path) string {
	switch p.(type) {
	case PredicatePath:
		return p.String()
	default:
		return "(" + p.String() + ")"
	}
}
