package rdf

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/thoreinstein/edmx/internal/errors"
)

// CharsetReader is an xml.Decoder CharsetReader. Records usually reach the
// decoder as text that is already UTF-8 whatever the declaration says, and
// those pass through unchanged. Anything else is decoded from the declared
// charset.
func CharsetReader(label string, r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if utf8.Valid(data) {
		return bytes.NewReader(data), nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "character encoding %q", label)
	}
	return enc.NewDecoder().Reader(bytes.NewReader(data)), nil
}

// DeclareEntities adds the internal general entities of a DOCTYPE directive
// to into, which is meant to be an xml.Decoder's Entity map. Parameter and
// external entities are skipped.
func DeclareEntities(directive string, into map[string]string) {
	const decl = "<!ENTITY"

	rest := directive
	for {
		i := strings.Index(rest, decl)
		if i < 0 {
			return
		}
		rest = strings.TrimLeft(rest[i+len(decl):], " \t\r\n")
		if strings.HasPrefix(rest, "%") {
			continue
		}

		end := strings.IndexAny(rest, " \t\r\n")
		if end <= 0 {
			return
		}
		name := rest[:end]
		rest = strings.TrimLeft(rest[end:], " \t\r\n")
		if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
			continue
		}

		quote := rest[0]
		closing := strings.IndexByte(rest[1:], quote)
		if closing < 0 {
			return
		}
		if _, ok := into[name]; !ok {
			into[name] = rest[1 : 1+closing]
		}
		rest = rest[closing+2:]
	}
}
