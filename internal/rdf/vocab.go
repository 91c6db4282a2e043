package rdf

// Namespaces used across the validator.
const (
	RDFNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNS = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNS  = "http://www.w3.org/2001/XMLSchema#"
	XMLNS  = "http://www.w3.org/XML/1998/namespace"
	OWLNS  = "http://www.w3.org/2002/07/owl#"
)

// Frequently used IRIs.
const (
	RDFType        = RDFNS + "type"
	RDFFirst       = RDFNS + "first"
	RDFRest        = RDFNS + "rest"
	RDFNil         = RDFNS + "nil"
	RDFLangString  = RDFNS + "langString"
	RDFXMLLiteral  = RDFNS + "XMLLiteral"
	RDFSSubClassOf = RDFSNS + "subClassOf"
	XSDString      = XSDNS + "string"
	XSDBoolean     = XSDNS + "boolean"
	XSDInteger     = XSDNS + "integer"
	XSDDecimal     = XSDNS + "decimal"
	XSDDouble      = XSDNS + "double"
)

// Type is the rdf:type predicate term.
var Type = IRI(RDFType)
