package rdf

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/edmx/internal/errors"
)

func TestDeclareEntities(t *testing.T) {
	entities := map[string]string{}
	DeclareEntities(`DOCTYPE rdf:RDF [
  <!ENTITY edm "http://www.europeana.eu/schemas/edm/">
  <!ENTITY edm "http://example.org/shadowed/">
  <!ENTITY % param "parameter">
  <!ENTITY ext SYSTEM "http://example.org/external.dtd">
  <!ENTITY	single	'one'>
]`, entities)

	assert.Equal(t, map[string]string{
		"edm":    "http://www.europeana.eu/schemas/edm/",
		"single": "one",
	}, entities)
}

func TestCharsetReader(t *testing.T) {
	r, err := CharsetReader("ISO-8859-1", strings.NewReader("caf\xe9"))
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "café", string(got))

	r, err = CharsetReader("ISO-8859-1", strings.NewReader("café"))
	require.NoError(t, err)
	got, err = io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "café", string(got), "utf-8 text passes through")

	_, err = CharsetReader("x-no-such-charset", strings.NewReader("\xff"))
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
}

func TestRDFXML_EntitiesAndDeclaredEncoding(t *testing.T) {
	g := parseXML(t, `<?xml version="1.0" encoding="ISO-8859-1"?>
<!DOCTYPE rdf:RDF [
  <!ENTITY edm "http://www.europeana.eu/schemas/edm/">
]>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:edm="http://www.europeana.eu/schemas/edm/"
         xmlns:dc="http://purl.org/dc/elements/1.1/">
  <rdf:Description rdf:about="item/1">
    <rdf:type rdf:resource="&edm;ProvidedCHO"/>
    <dc:title xml:lang="en-GB">Caf`+"\xe9"+`</dc:title>
  </rdf:Description>
</rdf:RDF>`)

	cho := IRI(base + "item/1")
	assert.True(t, g.Has(cho, Type, IRI(edmNS+"ProvidedCHO")))
	assert.True(t, g.Has(cho, IRI(dcNS+"title"), LangLiteral("Café", "en-GB")))
}
