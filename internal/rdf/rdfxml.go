package rdf

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/thoreinstein/edmx/internal/errors"
)

// rdfxmlDecoder is a recursive-descent RDF/XML reader over namespace-resolved
// encoding/xml tokens. It supports node elements (typed or rdf:Description)
// identified by rdf:about, rdf:ID, rdf:nodeID or anonymous; property
// attributes; property elements with rdf:resource, rdf:nodeID, rdf:datatype,
// xml:lang, nested node elements and parseType Resource, Literal and
// Collection; rdf:li numbering; and xml:base. Reification via rdf:ID on
// property elements is accepted and ignored.
type rdfxmlDecoder struct {
	dec    *xml.Decoder
	blanks *blankScope
	emit   func(Triple)
	ids    map[string]struct{}
}

type xmlContext struct {
	base string
	lang string
}

func decodeRDFXML(r io.Reader, base string, blanks *blankScope, emit func(Triple)) error {
	d := &rdfxmlDecoder{
		dec:    xml.NewDecoder(r),
		blanks: blanks,
		emit:   emit,
		ids:    make(map[string]struct{}),
	}
	d.dec.Strict = true
	d.dec.Entity = make(map[string]string)
	d.dec.CharsetReader = CharsetReader

	root, err := d.firstElement()
	if err != nil {
		return err
	}

	ctx := d.enter(xmlContext{base: base}, root)
	if root.Name.Space == RDFNS && root.Name.Local == "RDF" {
		if err := d.nodeElementList(ctx); err != nil {
			return err
		}
	} else if _, err := d.nodeElement(ctx, root); err != nil {
		return err
	}
	return d.expectEOF()
}

func (d *rdfxmlDecoder) token() (xml.Token, error) {
	tok, err := d.dec.Token()
	if err == io.EOF {
		return nil, d.syntaxError("unexpected end of document")
	}
	if err != nil {
		return nil, wrapXMLError(err)
	}
	return tok, nil
}

func (d *rdfxmlDecoder) syntaxError(format string, args ...any) error {
	line, col := d.dec.InputPos()
	return &SyntaxError{Format: FormatXML, Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func wrapXMLError(err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &SyntaxError{Format: FormatXML, Line: se.Line, Msg: se.Msg}
	}
	return errors.Wrap(err, "reading XML")
}

func (d *rdfxmlDecoder) firstElement() (xml.StartElement, error) {
	for {
		tok, err := d.dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, d.syntaxError("document has no root element")
		}
		if err != nil {
			return xml.StartElement{}, wrapXMLError(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.Directive:
			DeclareEntities(string(t), d.dec.Entity)
		case xml.CharData:
			if !isBlankText(t) {
				return xml.StartElement{}, d.syntaxError("text before root element")
			}
		}
	}
}

func (d *rdfxmlDecoder) expectEOF() error {
	for {
		tok, err := d.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return wrapXMLError(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return d.syntaxError("content after root element <%s>", t.Name.Local)
		case xml.CharData:
			if !isBlankText(t) {
				return d.syntaxError("text after root element")
			}
		}
	}
}

// enter applies xml:base and xml:lang of el to ctx.
func (d *rdfxmlDecoder) enter(ctx xmlContext, el xml.StartElement) xmlContext {
	for _, a := range el.Attr {
		if a.Name.Space != XMLNS && a.Name.Space != "xml" {
			continue
		}
		switch a.Name.Local {
		case "base":
			ref := a.Value
			if i := strings.IndexByte(ref, '#'); i >= 0 {
				ref = ref[:i]
			}
			ctx.base = Resolve(ctx.base, ref)
		case "lang":
			ctx.lang = a.Value
		}
	}
	return ctx
}

// nodeElementList reads node elements until the enclosing end element.
func (d *rdfxmlDecoder) nodeElementList(ctx xmlContext) error {
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if _, err := d.nodeElement(d.enter(ctx, t), t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		case xml.CharData:
			if !isBlankText(t) {
				return d.syntaxError("unexpected text %q between node elements", truncateText(string(t)))
			}
		}
	}
}

// nodeElement reads a node element whose start tag has been consumed,
// including its end tag, and returns its subject.
func (d *rdfxmlDecoder) nodeElement(ctx xmlContext, el xml.StartElement) (Term, error) {
	if el.Name.Space == RDFNS && isForbiddenNodeName(el.Name.Local) {
		return Term{}, d.syntaxError("rdf:%s is not allowed as a node element", el.Name.Local)
	}

	subject, err := d.subjectOf(ctx, el)
	if err != nil {
		return Term{}, err
	}

	if el.Name.Space != RDFNS || el.Name.Local != "Description" {
		d.emit(Triple{S: subject, P: Type, O: IRI(qname(el.Name))})
	}

	if err := d.propertyAttributes(ctx, subject, el.Attr, true); err != nil {
		return Term{}, err
	}

	li := 0
	for {
		tok, err := d.token()
		if err != nil {
			return Term{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.propertyElement(d.enter(ctx, t), subject, t, &li); err != nil {
				return Term{}, err
			}
		case xml.EndElement:
			return subject, nil
		case xml.CharData:
			if !isBlankText(t) {
				return Term{}, d.syntaxError("unexpected text %q in node element <%s>", truncateText(string(t)), el.Name.Local)
			}
		}
	}
}

func (d *rdfxmlDecoder) subjectOf(ctx xmlContext, el xml.StartElement) (Term, error) {
	about, hasAbout := rdfAttr(el.Attr, "about")
	id, hasID := rdfAttr(el.Attr, "ID")
	nodeID, hasNodeID := rdfAttr(el.Attr, "nodeID")

	n := 0
	for _, has := range []bool{hasAbout, hasID, hasNodeID} {
		if has {
			n++
		}
	}
	if n > 1 {
		return Term{}, d.syntaxError("rdf:about, rdf:ID and rdf:nodeID are mutually exclusive")
	}

	switch {
	case hasAbout:
		return IRI(Resolve(ctx.base, about)), nil
	case hasID:
		return d.idTerm(ctx, id)
	case hasNodeID:
		if !isXMLName(nodeID) {
			return Term{}, d.syntaxError("invalid rdf:nodeID %q", nodeID)
		}
		return d.blanks.labeled(nodeID), nil
	default:
		return d.blanks.fresh(), nil
	}
}

func (d *rdfxmlDecoder) idTerm(ctx xmlContext, id string) (Term, error) {
	if !isXMLName(id) {
		return Term{}, d.syntaxError("invalid rdf:ID %q", id)
	}
	iri := Resolve(ctx.base, "#"+id)
	if _, dup := d.ids[iri]; dup {
		return Term{}, d.syntaxError("duplicate rdf:ID %q", id)
	}
	d.ids[iri] = struct{}{}
	return IRI(iri), nil
}

// propertyAttributes emits a triple for every non-syntax attribute. On node
// elements rdf:type yields an IRI object; elsewhere all values are literals.
func (d *rdfxmlDecoder) propertyAttributes(ctx xmlContext, subject Term, attrs []xml.Attr, onNode bool) error {
	for _, a := range attrs {
		if isSyntaxAttr(a.Name) {
			continue
		}
		if a.Name.Space == "" {
			// Unqualified attributes carry no predicate IRI.
			continue
		}
		pred := qname(a.Name)
		if a.Name.Space == RDFNS {
			if isForbiddenPropertyName(a.Name.Local) || a.Name.Local == "li" {
				return d.syntaxError("rdf:%s is not allowed as a property attribute", a.Name.Local)
			}
			if a.Name.Local == "type" && onNode {
				d.emit(Triple{S: subject, P: Type, O: IRI(Resolve(ctx.base, a.Value))})
				continue
			}
		}
		d.emit(Triple{S: subject, P: IRI(pred), O: LangLiteral(a.Value, ctx.lang)})
	}
	return nil
}

func (d *rdfxmlDecoder) propertyElement(ctx xmlContext, subject Term, el xml.StartElement, li *int) error {
	pred := qname(el.Name)
	if el.Name.Space == RDFNS {
		switch {
		case el.Name.Local == "li":
			*li++
			pred = RDFNS + "_" + strconv.Itoa(*li)
		case isForbiddenPropertyName(el.Name.Local) || el.Name.Local == "Description":
			return d.syntaxError("rdf:%s is not allowed as a property element", el.Name.Local)
		}
	}
	if id, ok := rdfAttr(el.Attr, "ID"); ok {
		if _, err := d.idTerm(ctx, id); err != nil {
			return err
		}
	}

	_, hasResource := rdfAttr(el.Attr, "resource")
	_, hasNodeID := rdfAttr(el.Attr, "nodeID")
	parseType, hasParseType := rdfAttr(el.Attr, "parseType")
	_, hasDatatype := rdfAttr(el.Attr, "datatype")

	if hasResource && hasNodeID {
		return d.syntaxError("rdf:resource and rdf:nodeID are mutually exclusive")
	}
	if hasParseType && (hasResource || hasNodeID || hasDatatype) {
		return d.syntaxError("rdf:parseType cannot be combined with rdf:resource, rdf:nodeID or rdf:datatype")
	}

	if hasParseType {
		switch parseType {
		case "Resource":
			obj := d.blanks.fresh()
			d.emit(Triple{S: subject, P: IRI(pred), O: obj})
			inner := 0
			return d.propertyElementList(ctx, obj, &inner)
		case "Collection":
			return d.collection(ctx, subject, IRI(pred))
		default:
			// "Literal" and unknown parse types are XML literals.
			lexical, err := d.xmlLiteral()
			if err != nil {
				return err
			}
			d.emit(Triple{S: subject, P: IRI(pred), O: TypedLiteral(lexical, RDFXMLLiteral)})
			return nil
		}
	}

	var text strings.Builder
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			if hasResource || hasNodeID || hasDatatype || !isBlankText([]byte(text.String())) {
				return d.syntaxError("property element <%s> mixes content with a nested element", el.Name.Local)
			}
			obj, err := d.nodeElement(d.enter(ctx, t), t)
			if err != nil {
				return err
			}
			d.emit(Triple{S: subject, P: IRI(pred), O: obj})
			return d.closeAfterNode(el)
		case xml.EndElement:
			return d.emptyOrLiteral(ctx, subject, pred, el, text.String())
		}
	}
}

// emptyOrLiteral finishes a property element that had no nested element.
func (d *rdfxmlDecoder) emptyOrLiteral(ctx xmlContext, subject Term, pred string, el xml.StartElement, text string) error {
	resource, hasResource := rdfAttr(el.Attr, "resource")
	nodeID, hasNodeID := rdfAttr(el.Attr, "nodeID")
	datatype, hasDatatype := rdfAttr(el.Attr, "datatype")
	hasPropAttrs := hasPropertyAttributes(el.Attr)

	if text != "" && (hasResource || hasNodeID) {
		return d.syntaxError("property element <%s> has both rdf:resource and text content", el.Name.Local)
	}

	switch {
	case hasResource || hasNodeID || (hasPropAttrs && text == "" && !hasDatatype):
		var obj Term
		switch {
		case hasResource:
			obj = IRI(Resolve(ctx.base, resource))
		case hasNodeID:
			if !isXMLName(nodeID) {
				return d.syntaxError("invalid rdf:nodeID %q", nodeID)
			}
			obj = d.blanks.labeled(nodeID)
		default:
			obj = d.blanks.fresh()
		}
		d.emit(Triple{S: subject, P: IRI(pred), O: obj})
		return d.propertyAttributes(ctx, obj, el.Attr, false)
	case hasDatatype:
		d.emit(Triple{S: subject, P: IRI(pred), O: TypedLiteral(text, Resolve(ctx.base, datatype))})
	default:
		d.emit(Triple{S: subject, P: IRI(pred), O: LangLiteral(text, ctx.lang)})
	}
	return nil
}

// closeAfterNode consumes whitespace up to the end tag of a property element
// whose single nested node element has been read.
func (d *rdfxmlDecoder) closeAfterNode(el xml.StartElement) error {
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return nil
		case xml.StartElement:
			return d.syntaxError("property element <%s> has more than one nested node element", el.Name.Local)
		case xml.CharData:
			if !isBlankText(t) {
				return d.syntaxError("property element <%s> mixes content with a nested element", el.Name.Local)
			}
		}
	}
}

func (d *rdfxmlDecoder) propertyElementList(ctx xmlContext, subject Term, li *int) error {
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.propertyElement(d.enter(ctx, t), subject, t, li); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		case xml.CharData:
			if !isBlankText(t) {
				return d.syntaxError("unexpected text %q in rdf:parseType=\"Resource\"", truncateText(string(t)))
			}
		}
	}
}

func (d *rdfxmlDecoder) collection(ctx xmlContext, subject, pred Term) error {
	var items []Term
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			item, err := d.nodeElement(d.enter(ctx, t), t)
			if err != nil {
				return err
			}
			items = append(items, item)
		case xml.CharData:
			if !isBlankText(t) {
				return d.syntaxError("unexpected text in rdf:parseType=\"Collection\"")
			}
		case xml.EndElement:
			d.emit(Triple{S: subject, P: pred, O: d.emitList(items)})
			return nil
		}
	}
}

func (d *rdfxmlDecoder) emitList(items []Term) Term {
	head := IRI(RDFNil)
	for i := len(items) - 1; i >= 0; i-- {
		cell := d.blanks.fresh()
		d.emit(Triple{S: cell, P: IRI(RDFFirst), O: items[i]})
		d.emit(Triple{S: cell, P: IRI(RDFRest), O: head})
		head = cell
	}
	return head
}

// xmlLiteral re-serializes element content up to the matching end tag.
// Namespace prefixes are not reconstructed; names are written with their
// namespace IRI as a default xmlns declaration.
func (d *rdfxmlDecoder) xmlLiteral() (string, error) {
	var sb strings.Builder
	depth := 0
	for {
		tok, err := d.token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			sb.WriteString("<" + t.Name.Local)
			if t.Name.Space != "" {
				sb.WriteString(` xmlns="` + escapeAttr(t.Name.Space) + `"`)
			}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				sb.WriteString(" " + a.Name.Local + `="` + escapeAttr(a.Value) + `"`)
			}
			sb.WriteString(">")
		case xml.EndElement:
			if depth == 0 {
				return sb.String(), nil
			}
			depth--
			sb.WriteString("</" + t.Name.Local + ">")
		case xml.CharData:
			sb.WriteString(escapeText(string(t)))
		}
	}
}

func qname(n xml.Name) string {
	return n.Space + n.Local
}

func rdfAttr(attrs []xml.Attr, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Space == RDFNS && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func hasPropertyAttributes(attrs []xml.Attr) bool {
	for _, a := range attrs {
		if !isSyntaxAttr(a.Name) && a.Name.Space != "" {
			return true
		}
	}
	return false
}

func isSyntaxAttr(n xml.Name) bool {
	switch {
	case n.Space == "xmlns", n.Space == "" && n.Local == "xmlns":
		return true
	case n.Space == XMLNS, n.Space == "xml":
		return true
	case n.Space == RDFNS:
		switch n.Local {
		case "about", "ID", "nodeID", "resource", "parseType", "datatype", "bagID", "aboutEach", "aboutEachPrefix":
			return true
		}
	}
	return false
}

func isForbiddenNodeName(local string) bool {
	switch local {
	case "RDF", "ID", "about", "bagID", "parseType", "resource", "nodeID", "li", "aboutEach", "aboutEachPrefix", "datatype":
		return true
	}
	return false
}

func isForbiddenPropertyName(local string) bool {
	switch local {
	case "RDF", "ID", "about", "bagID", "parseType", "resource", "nodeID", "aboutEach", "aboutEachPrefix", "datatype":
		return true
	}
	return false
}

// isXMLName checks the NCName production closely enough for rdf:ID and
// rdf:nodeID values.
func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

func isBlankText(b []byte) bool {
	return strings.TrimSpace(string(b)) == ""
}

func truncateText(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 40 {
		return s[:37] + "..."
	}
	return s
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
