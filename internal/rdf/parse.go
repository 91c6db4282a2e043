package rdf

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/thoreinstein/edmx/internal/errors"
)

// Format is an RDF serialization.
type Format string

const (
	// FormatXML is RDF/XML.
	FormatXML Format = "rdfxml"
	// FormatTurtle is Turtle.
	FormatTurtle Format = "turtle"
)

// ParseFormat accepts "xml", "rdfxml", "rdf", "ttl" and "turtle".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "xml", "rdfxml", "rdf/xml", "rdf":
		return FormatXML, nil
	case "ttl", "turtle":
		return FormatTurtle, nil
	default:
		return "", errors.Wrapf(errors.ErrUnsupportedFormat, "RDF format %q", name)
	}
}

// FormatForPath guesses the serialization from a file extension. Anything
// other than .ttl is treated as RDF/XML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".ttl") {
		return FormatTurtle
	}
	return FormatXML
}

// SyntaxError describes malformed input.
type SyntaxError struct {
	Format Format
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s: line %d:%d: %s", e.Format, e.Line, e.Column, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %s", e.Format, e.Line, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Format, e.Msg)
	}
}

// Parse reads one document in the given format into a new graph. Relative
// IRIs resolve against base.
func Parse(r io.Reader, format Format, base string) (*Graph, error) {
	g := NewGraph()
	if err := ParseInto(g, r, format, base); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseString is Parse over a string.
func ParseString(s string, format Format, base string) (*Graph, error) {
	return Parse(strings.NewReader(s), format, base)
}

// ParseInto adds the triples of one document to g. Blank node labels are
// scoped to this call, so documents parsed into the same graph never share
// blank nodes by accident. On error g may hold a prefix of the document.
func ParseInto(g *Graph, r io.Reader, format Format, base string) error {
	blanks := newBlankScope()
	emit := func(t Triple) { g.Add(t) }

	switch format {
	case FormatXML:
		return decodeRDFXML(r, base, blanks, emit)
	case FormatTurtle:
		return decodeTurtle(r, base, blanks, emit)
	default:
		return errors.Wrapf(errors.ErrUnsupportedFormat, "RDF format %q", format)
	}
}

// blankScope allocates blank node identifiers unique to one parse.
type blankScope struct {
	prefix string
	labels map[string]Term
	next   int
}

func newBlankScope() *blankScope {
	return &blankScope{
		prefix: uuid.NewString(),
		labels: make(map[string]Term),
	}
}

// labeled returns the node for a document label, the same node for the same
// label within one document.
func (s *blankScope) labeled(label string) Term {
	if t, ok := s.labels[label]; ok {
		return t
	}
	t := Blank(s.prefix + ":" + label)
	s.labels[label] = t
	return t
}

// fresh returns a new anonymous node. Generated identifiers contain '~',
// which is not valid in document labels.
func (s *blankScope) fresh() Term {
	s.next++
	return Blank(s.prefix + "~" + strconv.Itoa(s.next))
}
