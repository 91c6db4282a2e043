// Package report defines the values produced by record validation.
//
// A [Report] aggregates the [Item] values found for one record. Both are
// immutable: optional fields are read through accessors returning
// (value, ok), and [Merge] builds a new report rather than changing its
// argument. Severity is ordered Info < Warning < Error; a report's severity
// is the maximum over its items and is absent for an empty report.
//
// [Reporter] renders reports as colored text or as JSON, YAML or TOML
// documents with the shape of [Output].
package report
