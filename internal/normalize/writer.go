package normalize

import (
	"encoding/xml"
	"strings"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;",
	)
)

// writer serializes raw tokens with their original prefixes. It always
// uses the same quoting and escaping, so writing the tokens of its own
// output reproduces that output exactly.
type writer struct {
	sb strings.Builder
}

func rawName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func (w *writer) start(el xml.StartElement) {
	w.sb.WriteByte('<')
	w.sb.WriteString(rawName(el.Name))
	for _, a := range el.Attr {
		w.sb.WriteByte(' ')
		w.sb.WriteString(rawName(a.Name))
		w.sb.WriteString(`="`)
		w.sb.WriteString(attrEscaper.Replace(a.Value))
		w.sb.WriteByte('"')
	}
	w.sb.WriteByte('>')
}

func (w *writer) end(el xml.EndElement) {
	w.sb.WriteString("</")
	w.sb.WriteString(rawName(el.Name))
	w.sb.WriteByte('>')
}

func (w *writer) token(tok xml.Token) {
	switch t := tok.(type) {
	case xml.StartElement:
		w.start(t)
	case xml.EndElement:
		w.end(t)
	case xml.CharData:
		w.sb.WriteString(textEscaper.Replace(string(t)))
	case xml.Comment:
		w.sb.WriteString("<!--")
		w.sb.Write(t)
		w.sb.WriteString("-->")
	case xml.ProcInst:
		w.sb.WriteString("<?")
		w.sb.WriteString(t.Target)
		if len(t.Inst) > 0 {
			w.sb.WriteByte(' ')
			w.sb.Write(t.Inst)
		}
		w.sb.WriteString("?>")
	case xml.Directive:
		w.sb.WriteString("<!")
		w.sb.Write(t)
		w.sb.WriteByte('>')
	}
}

func (w *writer) String() string { return w.sb.String() }
