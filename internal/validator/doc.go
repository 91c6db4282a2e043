// Package validator validates metadata records end to end.
//
// A [Validator] takes one record as RDF/XML or Turtle and returns a
// [report.Report]. XML input is first normalized, then every record is
// parsed against the profile's local base and checked in a fixed order:
// identity of the primary resource, supported types, optionally orphaned
// resources, and finally the schema's shapes.
//
//	v, err := validator.New(validator.Options{})
//	if err != nil {
//		return err
//	}
//	r, err := v.ValidateXML(ctx, record)
//	if err != nil {
//		return err
//	}
//	if !r.Passed() {
//		// at least one error item
//	}
//
// A [Batch] runs a Validator over many files with a bounded worker pool and
// returns outcomes in input order.
package validator
