package rdf

import "slices"

// Graph is an in-memory set of triples indexed by subject and by predicate.
// Triples keep their insertion order. A Graph is safe for concurrent reads;
// writes must not overlap with any other access.
type Graph struct {
	triples []Triple
	set     map[Triple]struct{}
	spo     map[Term]map[Term][]Term
	pos     map[Term]map[Term][]Term
	subj    []Term
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		set: make(map[Triple]struct{}),
		spo: make(map[Term]map[Term][]Term),
		pos: make(map[Term]map[Term][]Term),
	}
}

// Add inserts t and reports whether it was not already present.
func (g *Graph) Add(t Triple) bool {
	if _, ok := g.set[t]; ok {
		return false
	}
	g.set[t] = struct{}{}
	g.triples = append(g.triples, t)

	byPred, ok := g.spo[t.S]
	if !ok {
		byPred = make(map[Term][]Term)
		g.spo[t.S] = byPred
		g.subj = append(g.subj, t.S)
	}
	byPred[t.P] = append(byPred[t.P], t.O)

	byObj, ok := g.pos[t.P]
	if !ok {
		byObj = make(map[Term][]Term)
		g.pos[t.P] = byObj
	}
	byObj[t.O] = append(byObj[t.O], t.S)
	return true
}

// AddAll inserts every triple of other into g.
func (g *Graph) AddAll(other *Graph) {
	for _, t := range other.triples {
		g.Add(t)
	}
}

// Clone returns an independent copy of g.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	c.AddAll(g)
	return c
}

// Len returns the number of triples.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns a copy of all triples in insertion order.
func (g *Graph) Triples() []Triple { return slices.Clone(g.triples) }

// Has reports whether the exact triple is present.
func (g *Graph) Has(s, p, o Term) bool {
	_, ok := g.set[Triple{S: s, P: p, O: o}]
	return ok
}

// Subjects returns, in first-appearance order, every term that is the
// subject of at least one triple.
func (g *Graph) Subjects() []Term { return slices.Clone(g.subj) }

// Objects returns the objects of triples with subject s and predicate p.
func (g *Graph) Objects(s, p Term) []Term {
	return slices.Clone(g.spo[s][p])
}

// Object returns the first object of (s, p), if any.
func (g *Graph) Object(s, p Term) (Term, bool) {
	objs := g.spo[s][p]
	if len(objs) == 0 {
		return Term{}, false
	}
	return objs[0], true
}

// SubjectsWith returns the subjects of triples with predicate p and object o.
func (g *Graph) SubjectsWith(p, o Term) []Term {
	return slices.Clone(g.pos[p][o])
}

// Predicates returns the distinct predicates used with subject s.
func (g *Graph) Predicates(s Term) []Term {
	var preds []Term
	for _, t := range g.triples {
		if t.S == s && !slices.Contains(preds, t.P) {
			preds = append(preds, t.P)
		}
	}
	return preds
}

// Match returns the triples matching the pattern; a zero Term matches any
// term in that position.
func (g *Graph) Match(s, p, o Term) []Triple {
	var out []Triple
	switch {
	case !s.IsZero() && !p.IsZero():
		for _, obj := range g.spo[s][p] {
			if o.IsZero() || obj == o {
				out = append(out, Triple{S: s, P: p, O: obj})
			}
		}
	case !p.IsZero() && !o.IsZero():
		for _, subj := range g.pos[p][o] {
			out = append(out, Triple{S: subj, P: p, O: o})
		}
	default:
		for _, t := range g.triples {
			if (s.IsZero() || t.S == s) && (p.IsZero() || t.P == p) && (o.IsZero() || t.O == o) {
				out = append(out, t)
			}
		}
	}
	return out
}

// Types returns the rdf:type objects of s.
func (g *Graph) Types(s Term) []Term {
	return g.Objects(s, Type)
}

// List reads the RDF collection starting at head. It returns false when the
// structure is not a well-formed list.
func (g *Graph) List(head Term) ([]Term, bool) {
	var items []Term
	seen := make(map[Term]bool)
	nilTerm := IRI(RDFNil)
	for head != nilTerm {
		if seen[head] {
			return nil, false
		}
		seen[head] = true

		first, ok := g.Object(head, IRI(RDFFirst))
		if !ok {
			return nil, false
		}
		rest, ok := g.Object(head, IRI(RDFRest))
		if !ok {
			return nil, false
		}
		items = append(items, first)
		head = rest
	}
	return items, true
}
