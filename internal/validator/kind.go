package validator

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/rdf"
)

// Kind is the serialization of a record.
type Kind string

const (
	// KindXML is RDF/XML. XML records are normalized before parsing.
	KindXML Kind = "xml"
	// KindTurtle is Turtle.
	KindTurtle Kind = "turtle"
)

// ParseKind parses a kind name. "rdfxml" and "ttl" are accepted aliases.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "xml", "rdfxml", "rdf":
		return KindXML, nil
	case "turtle", "ttl":
		return KindTurtle, nil
	}
	return "", errors.WithHint(
		errors.Wrapf(errors.ErrUnsupportedFormat, "record kind %q", name),
		"use xml or turtle",
	)
}

// KindForPath guesses the kind from a file extension; anything other than
// .ttl is treated as RDF/XML.
func KindForPath(path string) Kind {
	if strings.EqualFold(filepath.Ext(path), ".ttl") {
		return KindTurtle
	}
	return KindXML
}

func (k Kind) format() rdf.Format {
	if k == KindTurtle {
		return rdf.FormatTurtle
	}
	return rdf.FormatXML
}
