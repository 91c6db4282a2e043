// Package normalize prepares RDF/XML records for graph validation.
//
// Normalization is a single pass over the raw token stream. Provenance
// attributes that are not valid RDF are dropped, and elements of top-level
// types found nested inside other resources are reported, since they are
// legal RDF but cannot be processed downstream. All other markup is written
// back unchanged with its original prefixes.
package normalize
