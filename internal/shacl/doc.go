// Package shacl implements the part of SHACL Core that record validation
// needs: node and property shapes, the common property paths, targets and
// the value-type, cardinality, string, value-set and logical constraint
// components.
//
// Shapes are read from an [rdf.Graph] with [Parse] and evaluated by an
// [Engine]. Results carry the severity IRI declared on the shape; mapping
// it to a report severity is left to the caller.
package shacl
