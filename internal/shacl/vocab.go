package shacl

import "github.com/thoreinstein/edmx/internal/rdf"

// NS is the SHACL namespace.
const NS = "http://www.w3.org/ns/shacl#"

// Built-in severities.
const (
	Violation = NS + "Violation"
	Warning   = NS + "Warning"
	Info      = NS + "Info"
)

// Node kinds accepted by sh:nodeKind.
const (
	NodeKindIRI                = NS + "IRI"
	NodeKindBlankNode          = NS + "BlankNode"
	NodeKindLiteral            = NS + "Literal"
	NodeKindBlankNodeOrIRI     = NS + "BlankNodeOrIRI"
	NodeKindBlankNodeOrLiteral = NS + "BlankNodeOrLiteral"
	NodeKindIRIOrLiteral       = NS + "IRIOrLiteral"
)

var (
	shNodeShape     = rdf.IRI(NS + "NodeShape")
	shPropertyShape = rdf.IRI(NS + "PropertyShape")

	shTargetClass      = rdf.IRI(NS + "targetClass")
	shTargetNode       = rdf.IRI(NS + "targetNode")
	shTargetSubjectsOf = rdf.IRI(NS + "targetSubjectsOf")
	shTargetObjectsOf  = rdf.IRI(NS + "targetObjectsOf")

	shProperty    = rdf.IRI(NS + "property")
	shPath        = rdf.IRI(NS + "path")
	shSeverity    = rdf.IRI(NS + "severity")
	shMessage     = rdf.IRI(NS + "message")
	shDeactivated = rdf.IRI(NS + "deactivated")

	shInversePath     = rdf.IRI(NS + "inversePath")
	shAlternativePath = rdf.IRI(NS + "alternativePath")
	shZeroOrMorePath  = rdf.IRI(NS + "zeroOrMorePath")
	shOneOrMorePath   = rdf.IRI(NS + "oneOrMorePath")
	shZeroOrOnePath   = rdf.IRI(NS + "zeroOrOnePath")

	shMinCount   = rdf.IRI(NS + "minCount")
	shMaxCount   = rdf.IRI(NS + "maxCount")
	shClass      = rdf.IRI(NS + "class")
	shDatatype   = rdf.IRI(NS + "datatype")
	shNodeKind   = rdf.IRI(NS + "nodeKind")
	shIn         = rdf.IRI(NS + "in")
	shHasValue   = rdf.IRI(NS + "hasValue")
	shPattern    = rdf.IRI(NS + "pattern")
	shFlags      = rdf.IRI(NS + "flags")
	shMinLength  = rdf.IRI(NS + "minLength")
	shMaxLength  = rdf.IRI(NS + "maxLength")
	shUniqueLang = rdf.IRI(NS + "uniqueLang")
	shNode       = rdf.IRI(NS + "node")
	shAnd        = rdf.IRI(NS + "and")
	shOr         = rdf.IRI(NS + "or")
	shNot        = rdf.IRI(NS + "not")

	rdfsClass      = rdf.IRI(rdf.RDFSNS + "Class")
	owlClass       = rdf.IRI(rdf.OWLNS + "Class")
	rdfsSubClassOf = rdf.IRI(rdf.RDFSSubClassOf)
)
