package rdf

import (
	"strconv"
	"strings"
)

// TermKind distinguishes the three kinds of RDF term. The zero value is not a
// valid kind; a zero Term acts as a wildcard in Graph.Match.
type TermKind uint8

const (
	// KindIRI is a resource identified by an IRI.
	KindIRI TermKind = iota + 1
	// KindBlank is an anonymous resource.
	KindBlank
	// KindLiteral is a lexical value with a datatype or language tag.
	KindLiteral
)

// Term is an RDF term. Terms are comparable and may be used as map keys.
//
// For literals, Datatype is always set: xsd:string for simple literals and
// rdf:langString when Lang is non-empty.
type Term struct {
	Kind     TermKind
	Value    string
	Lang     string
	Datatype string
}

// IRI returns an IRI term.
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// Blank returns a blank node term with the given label.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: label}
}

// Literal returns a simple literal (xsd:string).
func Literal(lexical string) Term {
	return Term{Kind: KindLiteral, Value: lexical, Datatype: XSDString}
}

// LangLiteral returns a language-tagged literal. The tag is kept as written;
// compare tags with [SameLang].
func LangLiteral(lexical, lang string) Term {
	if lang == "" {
		return Literal(lexical)
	}
	return Term{Kind: KindLiteral, Value: lexical, Lang: lang, Datatype: RDFLangString}
}

// SameLang reports whether two language tags are equal. Tags are
// case-insensitive.
func SameLang(a, b string) bool {
	return strings.EqualFold(a, b)
}

// TypedLiteral returns a literal with an explicit datatype IRI.
func TypedLiteral(lexical, datatype string) Term {
	if datatype == "" {
		return Literal(lexical)
	}
	return Term{Kind: KindLiteral, Value: lexical, Datatype: datatype}
}

// IsZero reports whether t is the wildcard term.
func (t Term) IsZero() bool { return t.Kind == 0 }

// IsIRI reports whether t is an IRI.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsBlank reports whether t is a blank node.
func (t Term) IsBlank() bool { return t.Kind == KindBlank }

// IsLiteral reports whether t is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsResource reports whether t can be the subject of a statement.
func (t Term) IsResource() bool { return t.Kind == KindIRI || t.Kind == KindBlank }

// LiteralString renders a literal as lexical form followed by "@lang" or
// "^^datatype" unless it is a simple xsd:string literal.
func (t Term) LiteralString() string {
	switch {
	case t.Lang != "":
		return t.Value + "@" + t.Lang
	case t.Datatype != "" && t.Datatype != XSDString:
		return t.Value + "^^" + t.Datatype
	default:
		return t.Value
	}
}

// String renders t in N-Triples syntax.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		s := strconv.Quote(t.Value)
		switch {
		case t.Lang != "":
			return s + "@" + t.Lang
		case t.Datatype != "" && t.Datatype != XSDString:
			return s + "^^<" + t.Datatype + ">"
		default:
			return s
		}
	default:
		return "*"
	}
}

// Triple is a single (subject, predicate, object) statement.
type Triple struct {
	S, P, O Term
}

// String renders the triple as one N-Triples line without the trailing dot.
func (t Triple) String() string {
	return t.S.String() + " " + t.P.String() + " " + t.O.String()
}
