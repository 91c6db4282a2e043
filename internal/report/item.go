package report

import "strings"

// optional is a present-or-absent string. The zero value is absent.
type optional struct {
	value string
	set   bool
}

func some(v string) optional { return optional{value: v, set: true} }

func (o optional) get() (string, bool) { return o.value, o.set }

func (o optional) ptr() *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// Item is one detected issue. Subject, predicate and object are optional;
// message and severity are always present. Items are values and are never
// modified after construction.
type Item struct {
	subject   optional
	predicate optional
	object    optional
	message   string
	severity  Severity
}

// ItemOption sets an optional field of an Item.
type ItemOption func(*Item)

// WithSubject sets the resource or element the item concerns.
func WithSubject(subject string) ItemOption {
	return func(it *Item) { it.subject = some(subject) }
}

// WithPredicate sets the relation of the offending statement.
func WithPredicate(predicate string) ItemOption {
	return func(it *Item) { it.predicate = some(predicate) }
}

// WithObject sets the value of the offending statement.
func WithObject(object string) ItemOption {
	return func(it *Item) { it.object = some(object) }
}

// NewItem creates an item with the given severity and message.
func NewItem(severity Severity, message string, opts ...ItemOption) Item {
	it := Item{severity: severity, message: message}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// NewError is shorthand for NewItem(Error, ...).
func NewError(message string, opts ...ItemOption) Item {
	return NewItem(Error, message, opts...)
}

// Subject returns the subject and whether it is present.
func (it Item) Subject() (string, bool) { return it.subject.get() }

// Predicate returns the predicate and whether it is present.
func (it Item) Predicate() (string, bool) { return it.predicate.get() }

// Object returns the object and whether it is present.
func (it Item) Object() (string, bool) { return it.object.get() }

// Message returns the human-readable explanation.
func (it Item) Message() string { return it.message }

// Severity returns the item's severity.
func (it Item) Severity() Severity { return it.severity }

// String renders the item on one line: "error: message (s p o)".
func (it Item) String() string {
	var sb strings.Builder
	sb.WriteString(it.severity.String())
	sb.WriteString(": ")
	sb.WriteString(it.message)

	var parts []string
	for _, o := range []optional{it.subject, it.predicate, it.object} {
		if v, ok := o.get(); ok {
			parts = append(parts, v)
		}
	}
	if len(parts) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(parts, " "))
		sb.WriteString(")")
	}
	return sb.String()
}
