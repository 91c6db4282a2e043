package shacl

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/thoreinstein/edmx/internal/rdf"
)

// failure is one constraint violation before it is turned into a Result.
// value is zero when the failure concerns the value set as a whole.
type failure struct {
	value   rdf.Term
	message string
}

type constraint interface {
	component() string
	check(ec *evalContext, values []rdf.Term) []failure
}

type minCount struct{ min int }

func (c minCount) component() string { return NS + "MinCountConstraintComponent" }

func (c minCount) check(_ *evalContext, values []rdf.Term) []failure {
	if len(values) >= c.min {
		return nil
	}
	return []failure{{message: fmt.Sprintf("Expected at least %d value(s), found %d.", c.min, len(values))}}
}

type maxCount struct{ max int }

func (c maxCount) component() string { return NS + "MaxCountConstraintComponent" }

func (c maxCount) check(_ *evalContext, values []rdf.Term) []failure {
	if len(values) <= c.max {
		return nil
	}
	return []failure{{message: fmt.Sprintf("Expected at most %d value(s), found %d.", c.max, len(values))}}
}

type classConstraint struct{ class rdf.Term }

func (c classConstraint) component() string { return NS + "ClassConstraintComponent" }

func (c classConstraint) check(ec *evalContext, values []rdf.Term) []failure {
	var out []failure
	for _, v := range values {
		if !ec.instanceOf(v, c.class) {
			out = append(out, failure{value: v, message: fmt.Sprintf("Value is not an instance of %s.", c.class)})
		}
	}
	return out
}

type datatypeConstraint struct{ datatype string }

func (c datatypeConstraint) component() string { return NS + "DatatypeConstraintComponent" }

func (c datatypeConstraint) check(_ *evalContext, values []rdf.Term) []failure {
	var out []failure
	for _, v := range values {
		switch {
		case !v.IsLiteral() || v.Datatype != c.datatype:
			out = append(out, failure{value: v, message: fmt.Sprintf("Value does not have datatype <%s>.", c.datatype)})
		case !wellFormed(v):
			out = append(out, failure{value: v, message: fmt.Sprintf("Value is not a valid lexical form of <%s>.", c.datatype)})
		}
	}
	return out
}

var lexicalForms = map[string]*regexp.Regexp{
	rdf.XSDInteger:                   regexp.MustCompile(`^[+-]?[0-9]+$`),
	rdf.XSDDecimal:                   regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`),
	rdf.XSDBoolean:                   regexp.MustCompile(`^(true|false|1|0)$`),
	rdf.XSDNS + "date":               regexp.MustCompile(`^-?[0-9]{4,}-[0-9]{2}-[0-9]{2}(Z|[+-][0-9]{2}:[0-9]{2})?$`),
	rdf.XSDNS + "dateTime":           regexp.MustCompile(`^-?[0-9]{4,}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?(Z|[+-][0-9]{2}:[0-9]{2})?$`),
	rdf.XSDNS + "gYear":              regexp.MustCompile(`^-?[0-9]{4,}(Z|[+-][0-9]{2}:[0-9]{2})?$`),
	rdf.XSDNS + "nonNegativeInteger": regexp.MustCompile(`^\+?[0-9]+$`),
}

func wellFormed(v rdf.Term) bool {
	if v.Datatype == rdf.XSDDouble || v.Datatype == rdf.XSDNS+"float" {
		switch v.Value {
		case "INF", "-INF", "+INF", "NaN":
			return true
		}
		_, err := strconv.ParseFloat(v.Value, 64)
		return err == nil
	}
	if re, ok := lexicalForms[v.Datatype]; ok {
		return re.MatchString(v.Value)
	}
	return true
}

type nodeKindConstraint struct{ kind string }

func (c nodeKindConstraint) component() string { return NS + "NodeKindConstraintComponent" }

func (c nodeKindConstraint) check(_ *evalContext, values []rdf.Term) []failure {
	var out []failure
	for _, v := range values {
		if !matchesNodeKind(v, c.kind) {
			out = append(out, failure{value: v, message: fmt.Sprintf("Value does not have node kind <%s>.", c.kind)})
		}
	}
	return out
}

func matchesNodeKind(v rdf.Term, kind string) bool {
	switch kind {
	case NodeKindIRI:
		return v.IsIRI()
	case NodeKindBlankNode:
		return v.IsBlank()
	case NodeKindLiteral:
		return v.IsLiteral()
	case NodeKindBlankNodeOrIRI:
		return v.IsResource()
	case NodeKindBlankNodeOrLiteral:
		return v.IsBlank() || v.IsLiteral()
	case NodeKindIRIOrLiteral:
		return v.IsIRI() || v.IsLiteral()
	}
	return false
}

type inConstraint struct{ members []rdf.Term }

func (c inConstraint) component() string { return NS + "InConstraintComponent" }

func (c inConstraint) check(_ *evalContext, values []rdf.Term) []failure {
	var out []failure
	for _, v := range values {
		if !slices.Contains(c.members, v) {
			out = append(out, failure{value: v, message: "Value is not in the list of allowed values."})
		}
	}
	return out
}

type hasValue struct{ value rdf.Term }

func (c hasValue) component() string { return NS + "HasValueConstraintComponent" }

func (c hasValue) check(_ *evalContext, values []rdf.Term) []failure {
	if slices.Contains(values, c.value) {
		return nil
	}
	return []failure{{message: fmt.Sprintf("Missing expected value %s.", c.value)}}
}

type pattern struct {
	source string
	re     *regexp.Regexp
}

func (c pattern) component() string { return NS + "PatternConstraintComponent" }

func (c pattern) check(_ *evalContext, values []rdf.Term) []failure {
	var out []failure
	for _, v := range values {
		if v.IsBlank() || !c.re.MatchString(v.Value) {
			out = append(out, failure{value: v, message: fmt.Sprintf("Value does not match pattern %q.", c.source)})
		}
	}
	return out
}

type minLength struct{ min int }

func (c minLength) component() string { return NS + "MinLengthConstraintComponent" }

func (c minLength) check(_ *evalContext, values []rdf.Term) []failure {
	var out []failure
	for _, v := range values {
		if v.IsBlank() || utf8.RuneCountInString(v.Value) < c.min {
			out = append(out, failure{value: v, message: fmt.Sprintf("Value is shorter than %d character(s).", c.min)})
		}
	}
	return out
}

type maxLength struct{ max int }

func (c maxLength) component() string { return NS + "MaxLengthConstraintComponent" }

func (c maxLength) check(_ *evalContext, values []rdf.Term) []failure {
	var out []failure
	for _, v := range values {
		if v.IsBlank() || utf8.RuneCountInString(v.Value) > c.max {
			out = append(out, failure{value: v, message: fmt.Sprintf("Value is longer than %d character(s).", c.max)})
		}
	}
	return out
}

type uniqueLang struct{}

func (uniqueLang) component() string { return NS + "UniqueLangConstraintComponent" }

func (uniqueLang) check(_ *evalContext, values []rdf.Term) []failure {
	// Keyed by the lower-cased tag; order keeps the first spelling seen.
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if !v.IsLiteral() || v.Lang == "" {
			continue
		}
		key := strings.ToLower(v.Lang)
		if counts[key] == 0 {
			order = append(order, v.Lang)
		}
		counts[key]++
	}

	var out []failure
	for _, lang := range order {
		if counts[strings.ToLower(lang)] > 1 {
			out = append(out, failure{message: fmt.Sprintf("Language %q is used by more than one value.", lang)})
		}
	}
	return out
}

type nodeConstraint struct{ shape *Shape }

func (c nodeConstraint) component() string { return NS + "NodeConstraintComponent" }

func (c nodeConstraint) check(ec *evalContext, values []rdf.Term) []failure {
	var out []failure
	for _, v := range values {
		if !ec.conforms(v, c.shape) {
			out = append(out, failure{value: v, message: "Value does not conform to " + shapeName(c.shape) + "."})
		}
	}
	return out
}

type notConstraint struct{ shape *Shape }

func (c notConstraint) component() string { return NS + "NotConstraintComponent" }

func (c notConstraint) check(ec *evalContext, values []rdf.Term) []failure {
	var out []failure
	for _, v := range values {
		if ec.conforms(v, c.shape) {
			out = append(out, failure{value: v, message: "Value conforms to " + shapeName(c.shape) + "."})
		}
	}
	return out
}

type andConstraint struct{ shapes []*Shape }

func (c andConstraint) component() string { return NS + "AndConstraintComponent" }

func (c andConstraint) check(ec *evalContext, values []rdf.Term) []failure {
	var out []failure
	for _, v := range values {
		for _, sh := range c.shapes {
			if !ec.conforms(v, sh) {
				out = append(out, failure{value: v, message: "Value does not conform to all shapes of sh:and."})
				break
			}
		}
	}
	return out
}

type orConstraint struct{ shapes []*Shape }

func (c orConstraint) component() string { return NS + "OrConstraintComponent" }

func (c orConstraint) check(ec *evalContext, values []rdf.Term) []failure {
	var out []failure
	for _, v := range values {
		if !slices.ContainsFunc(c.shapes, func(sh *Shape) bool { return ec.conforms(v, sh) }) {
			out = append(out, failure{value: v, message: "Value does not conform to any shape of sh:or."})
		}
	}
	return out
}

func shapeName(sh *Shape) string {
	if sh.ID.IsIRI() {
		return "shape " + sh.ID.String()
	}
	return "an anonymous shape"
}
