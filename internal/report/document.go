package report

// Document is the serialized form of a Report. Absent optional fields are
// omitted.
type Document struct {
	Source   string         `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	RecordID *string        `json:"record_id,omitempty" yaml:"record_id,omitempty" toml:"record_id,omitempty"`
	Severity *Severity      `json:"severity,omitempty" yaml:"severity,omitempty" toml:"severity,omitempty"`
	Items    []ItemDocument `json:"items" yaml:"items" toml:"items"`
}

// ItemDocument is the serialized form of an Item.
type ItemDocument struct {
	Subject   *string  `json:"subject,omitempty" yaml:"subject,omitempty" toml:"subject,omitempty"`
	Predicate *string  `json:"predicate,omitempty" yaml:"predicate,omitempty" toml:"predicate,omitempty"`
	Object    *string  `json:"object,omitempty" yaml:"object,omitempty" toml:"object,omitempty"`
	Message   string   `json:"message" yaml:"message" toml:"message"`
	Severity  Severity `json:"severity" yaml:"severity" toml:"severity"`
}

// Document converts r for serialization. source names the input the report
// belongs to and may be empty.
func (r Report) Document(source string) Document {
	doc := Document{
		Source:   source,
		RecordID: r.recordID.ptr(),
		Items:    make([]ItemDocument, 0, len(r.items)),
	}
	if r.hasSev {
		sev := r.severity
		doc.Severity = &sev
	}
	for _, it := range r.items {
		doc.Items = append(doc.Items, it.Document())
	}
	return doc
}

// Document converts it for serialization.
func (it Item) Document() ItemDocument {
	return ItemDocument{
		Subject:   it.subject.ptr(),
		Predicate: it.predicate.ptr(),
		Object:    it.object.ptr(),
		Message:   it.message,
		Severity:  it.severity,
	}
}
