// Package rdf is a small in-memory RDF toolkit: terms, an indexed [Graph],
// RFC 3986 IRI resolution, and readers for RDF/XML and Turtle. Turtle is
// decoded by github.com/knakk/rdf; its triples are copied into a [Graph].
//
// Blank node labels are scoped to a single [Parse] call; two documents
// parsed into the same graph never share a blank node.
package rdf
