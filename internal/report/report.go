package report

import "slices"

// Report is the aggregate outcome of validating one record. The severity is
// always the maximum over the items, or absent when there are none.
type Report struct {
	recordID optional
	severity Severity
	hasSev   bool
	items    []Item
}

// New returns a report without a record ID holding a copy of items.
func New(items ...Item) Report {
	r := Report{}
	if len(items) > 0 {
		r.items = slices.Clone(items)
	}
	r.severity, r.hasSev = MostSevere(r.items)
	return r
}

// WithRecordID returns a copy of r carrying recordID.
func (r Report) WithRecordID(recordID string) Report {
	out := r.clone()
	out.recordID = some(recordID)
	return out
}

// Merge returns a new report whose items are r's items followed by items,
// with the severity recomputed. r is not modified.
func Merge(r Report, items ...Item) Report {
	merged := New(append(slices.Clone(r.items), items...)...)
	merged.recordID = r.recordID
	return merged
}

// RecordID returns the normalized primary entity identifier, if one was found.
func (r Report) RecordID() (string, bool) { return r.recordID.get() }

// Severity returns the most severe item severity, or false for an empty report.
func (r Report) Severity() (Severity, bool) { return r.severity, r.hasSev }

// Items returns a copy of the report items in order.
func (r Report) Items() []Item { return slices.Clone(r.items) }

// Len returns the number of items.
func (r Report) Len() int { return len(r.items) }

// Passed reports whether the record may proceed, i.e. no item is an Error.
func (r Report) Passed() bool { return !r.hasSev || r.severity != Error }

// Count returns the number of items with severity s.
func (r Report) Count(s Severity) int {
	n := 0
	for _, it := range r.items {
		if it.severity == s {
			n++
		}
	}
	return n
}

func (r Report) clone() Report {
	out := r
	out.items = slices.Clone(r.items)
	return out
}
