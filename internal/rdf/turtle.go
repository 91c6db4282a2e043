package rdf

import (
	"fmt"
	"io"
	"strings"

	knakk "github.com/knakk/rdf"

	"github.com/thoreinstein/edmx/internal/errors"
)

// decodeTurtle reads a Turtle document with the knakk/rdf decoder. The
// decoder joins @base and relative references by concatenation, so it runs
// without a base and relative IRIs are resolved here instead.
func decodeTurtle(r io.Reader, base string, blanks *blankScope, emit func(Triple)) error {
	dec := knakk.NewTripleDecoder(r, knakk.Turtle)
	conv := turtleTerms{base: base, blanks: blanks}

	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			drain(dec)
			return turtleError(err)
		}
		emit(Triple{S: conv.term(t.Subj), P: conv.term(t.Pred), O: conv.term(t.Obj)})
	}
}

// drain consumes the rest of the token stream. The lexer sends tokens on an
// unbuffered channel and only exits once every token has been received.
func drain(dec knakk.TripleDecoder) {
	for {
		if _, err := dec.Decode(); errors.Is(err, io.EOF) {
			return
		}
	}
}

type turtleTerms struct {
	base   string
	blanks *blankScope
}

func (c turtleTerms) iri(s string) string {
	if IsAbsolute(s) {
		return s
	}
	return Resolve(c.base, s)
}

func (c turtleTerms) term(t knakk.Term) Term {
	switch v := t.(type) {
	case knakk.IRI:
		return IRI(c.iri(v.String()))
	case knakk.Blank:
		return c.blanks.labeled(v.String())
	case knakk.Literal:
		if lang := v.Lang(); lang != "" {
			return LangLiteral(v.String(), lang)
		}
		dt := v.DataType.String()
		if dt == "" {
			return Literal(v.String())
		}
		return TypedLiteral(v.String(), c.iri(dt))
	default:
		return Term{}
	}
}

// turtleError lifts the "line:col" prefix of decoder messages into a
// SyntaxError.
func turtleError(err error) error {
	se := &SyntaxError{Format: FormatTurtle, Msg: err.Error()}
	head, rest, ok := strings.Cut(se.Msg, " ")
	if !ok {
		return se
	}
	var line, col int
	if n, _ := fmt.Sscanf(strings.TrimSuffix(head, ":"), "%d:%d", &line, &col); n == 2 && line > 0 {
		se.Line, se.Column, se.Msg = line, col, rest
	}
	return se
}
