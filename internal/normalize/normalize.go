package normalize

import (
	"encoding/xml"
	"io"
	"maps"
	"strings"

	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/rdf"
	"github.com/thoreinstein/edmx/internal/report"
	"github.com/thoreinstein/edmx/internal/schema"
)

// Result is the outcome of normalizing one document.
type Result struct {
	// Output is the normalized document. It is empty when Normalize fails.
	Output string
	// Items are the structural findings, in document order.
	Items []report.Item
	// Stripped counts the provenance attributes removed.
	Stripped int
}

// Normalizer rewrites RDF/XML records into the form the RDF parser and the
// shapes expect. It holds no per-document state and is safe for concurrent use.
type Normalizer struct {
	profile schema.Profile
}

// New returns a Normalizer for the given profile.
func New(profile schema.Profile) *Normalizer {
	return &Normalizer{profile: profile}
}

// Normalize streams raw once. It removes provenance attributes and reports
// every element of a top-level type that is nested two or more levels below
// the document root. On a malformed document the error describes the
// problem and Result carries the items found before it, with no Output.
func (n *Normalizer) Normalize(raw string) (Result, error) {
	st := newState(n.profile)
	dec := xml.NewDecoder(strings.NewReader(raw))
	dec.Strict = true
	dec.Entity = st.entities
	dec.CharsetReader = rdf.CharsetReader

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{Items: st.items}, err
		}
		if err := st.step(xml.CopyToken(tok)); err != nil {
			return Result{Items: st.items}, err
		}
	}
	if err := st.finish(); err != nil {
		return Result{Items: st.items}, err
	}
	return Result{Output: st.out.String(), Items: st.items, Stripped: st.stripped}, nil
}

// state is the fold over the token stream.
type state struct {
	profile schema.Profile
	out     writer

	depth    int
	scopes   []map[string]string
	open     []xml.Name
	rootDone bool

	// entities is shared with the decoder so declarations in the DOCTYPE
	// apply to the rest of the document.
	entities map[string]string

	items    []report.Item
	stripped int
}

func newState(profile schema.Profile) *state {
	return &state{
		profile:  profile,
		scopes:   []map[string]string{{"xml": rdf.XMLNS}},
		entities: make(map[string]string),
	}
}

func (s *state) step(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.StartElement:
		return s.startElement(t)
	case xml.EndElement:
		return s.endElement(t)
	case xml.CharData:
		if s.depth == 0 && len(strings.TrimSpace(string(t))) > 0 {
			return errors.New("character data outside the root element")
		}
	case xml.Directive:
		if s.depth > 0 || s.rootDone {
			return errors.New("markup declaration inside or after the root element")
		}
		rdf.DeclareEntities(string(t), s.entities)
	}
	s.out.token(tok)
	return nil
}

func (s *state) startElement(el xml.StartElement) error {
	if s.depth == 0 && s.rootDone {
		return errors.Newf("second root element <%s>", rawName(el.Name))
	}

	scope := s.pushScope(el.Attr)
	space, err := s.resolve(scope, el.Name.Space, true)
	if err != nil {
		return err
	}

	kept := el.Attr[:0:0]
	for _, a := range el.Attr {
		if isDeclaration(a.Name) {
			kept = append(kept, a)
			continue
		}
		attrSpace, err := s.resolve(scope, a.Name.Space, false)
		if err != nil {
			return err
		}
		if s.profile.IsProvenanceAttribute(attrSpace, a.Name.Local) {
			s.stripped++
			continue
		}
		kept = append(kept, a)
	}

	if s.depth > 1 {
		s.checkNested(space+el.Name.Local, el.Attr, scope)
	}

	s.depth++
	s.open = append(s.open, el.Name)
	el.Attr = kept
	s.out.start(el)
	return nil
}

func (s *state) endElement(el xml.EndElement) error {
	if len(s.open) == 0 {
		return errors.Newf("unexpected end element </%s>", rawName(el.Name))
	}
	top := s.open[len(s.open)-1]
	if top != el.Name {
		return errors.Newf("element <%s> closed by </%s>", rawName(top), rawName(el.Name))
	}

	s.open = s.open[:len(s.open)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	s.depth--
	if s.depth == 0 {
		s.rootDone = true
	}
	s.out.end(el)
	return nil
}

func (s *state) finish() error {
	if len(s.open) > 0 {
		return errors.Newf("unexpected end of document: element <%s> is not closed", rawName(s.open[len(s.open)-1]))
	}
	if !s.rootDone {
		return errors.New("document has no root element")
	}
	return nil
}

func (s *state) checkNested(typeIRI string, attrs []xml.Attr, scope map[string]string) {
	if !s.profile.IsTopLevel(typeIRI) {
		return
	}

	var opts []report.ItemOption
	for _, a := range attrs {
		space, err := s.resolve(scope, a.Name.Space, false)
		if err == nil && space == rdf.RDFNS && a.Name.Local == "about" {
			opts = append(opts, report.WithSubject(a.Value))
			break
		}
	}
	s.items = append(s.items, report.NewError(
		"XML Elements of type "+typeIRI+" must be top-level elements and may not be nested inside other elements.",
		opts...,
	))
}

// pushScope opens the namespace scope of an element, inheriting from its
// parent and applying its own declarations.
func (s *state) pushScope(attrs []xml.Attr) map[string]string {
	parent := s.scopes[len(s.scopes)-1]
	scope := parent
	copied := false
	for _, a := range attrs {
		if !isDeclaration(a.Name) {
			continue
		}
		if !copied {
			scope = maps.Clone(parent)
			copied = true
		}
		if a.Name.Space == "xmlns" {
			scope[a.Name.Local] = a.Value
		} else {
			scope[""] = a.Value
		}
	}
	s.scopes = append(s.scopes, scope)
	return scope
}

// resolve maps a prefix to its namespace. Unprefixed attributes are in no
// namespace; unprefixed elements take the default namespace.
func (s *state) resolve(scope map[string]string, prefix string, element bool) (string, error) {
	if prefix == "" && !element {
		return "", nil
	}
	ns, ok := scope[prefix]
	if !ok {
		if prefix == "" {
			return "", nil
		}
		return "", errors.Newf("undeclared namespace prefix %q", prefix)
	}
	return ns, nil
}

func isDeclaration(n xml.Name) bool {
	return n.Space == "xmlns" || (n.Space == "" && n.Local == "xmlns")
}
