package rdf

import (
	"regexp"
	"strings"
)

// uriPattern is the RFC 3986 appendix B decomposition.
var uriPattern = regexp.MustCompile(`^(([^:/?#]+):)?(//([^/?#]*))?([^?#]*)(\?([^#]*))?(#(.*))?`)

type iriParts struct {
	scheme, authority, path, query, fragment string

	hasScheme, hasAuthority, hasQuery, hasFragment bool
}

func splitIRI(s string) iriParts {
	m := uriPattern.FindStringSubmatch(s)
	return iriParts{
		scheme:       m[2],
		hasScheme:    m[1] != "",
		authority:    m[4],
		hasAuthority: m[3] != "",
		path:         m[5],
		query:        m[7],
		hasQuery:     m[6] != "",
		fragment:     m[9],
		hasFragment:  m[8] != "",
	}
}

func (p iriParts) String() string {
	var sb strings.Builder
	if p.hasScheme {
		sb.WriteString(p.scheme)
		sb.WriteByte(':')
	}
	if p.hasAuthority {
		sb.WriteString("//")
		sb.WriteString(p.authority)
	}
	sb.WriteString(p.path)
	if p.hasQuery {
		sb.WriteByte('?')
		sb.WriteString(p.query)
	}
	if p.hasFragment {
		sb.WriteByte('#')
		sb.WriteString(p.fragment)
	}
	return sb.String()
}

// IsAbsolute reports whether s has a scheme.
func IsAbsolute(s string) bool {
	return splitIRI(s).hasScheme
}

// Resolve resolves ref against base following RFC 3986 section 5.2. Characters
// are not escaped or unescaped, so non-ASCII IRIs survive unchanged. An empty
// base returns ref as-is.
func Resolve(base, ref string) string {
	if base == "" {
		return ref
	}
	r := splitIRI(ref)
	if r.hasScheme {
		r.path = removeDotSegments(r.path)
		return r.String()
	}

	b := splitIRI(base)
	var t iriParts
	t.scheme, t.hasScheme = b.scheme, b.hasScheme

	switch {
	case r.hasAuthority:
		t.authority, t.hasAuthority = r.authority, true
		t.path = removeDotSegments(r.path)
		t.query, t.hasQuery = r.query, r.hasQuery
	case r.path == "":
		t.authority, t.hasAuthority = b.authority, b.hasAuthority
		t.path = b.path
		if r.hasQuery {
			t.query, t.hasQuery = r.query, true
		} else {
			t.query, t.hasQuery = b.query, b.hasQuery
		}
	default:
		t.authority, t.hasAuthority = b.authority, b.hasAuthority
		if strings.HasPrefix(r.path, "/") {
			t.path = removeDotSegments(r.path)
		} else {
			t.path = removeDotSegments(mergePaths(b, r.path))
		}
		t.query, t.hasQuery = r.query, r.hasQuery
	}
	t.fragment, t.hasFragment = r.fragment, r.hasFragment
	return t.String()
}

func mergePaths(base iriParts, ref string) string {
	if base.hasAuthority && base.path == "" {
		return "/" + ref
	}
	if i := strings.LastIndexByte(base.path, '/'); i >= 0 {
		return base.path[:i+1] + ref
	}
	return ref
}

func removeDotSegments(path string) string {
	if !strings.Contains(path, ".") {
		return path
	}
	in := path
	var out []string
	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "/..":
			in = "/"
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "." || in == "..":
			in = ""
		default:
			start := 0
			if in[0] == '/' {
				start = 1
			}
			end := strings.IndexByte(in[start:], '/')
			if end < 0 {
				end = len(in)
			} else {
				end += start
			}
			out = append(out, in[:end])
			in = in[end:]
		}
	}
	return strings.Join(out, "")
}
