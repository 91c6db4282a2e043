// Package checks holds the record checks that run over a parsed graph:
// record identity, type support, orphaned resources, and the adapter that
// turns shape-engine results into report items.
//
// Every check reports identifiers with the profile's local base removed.
package checks
