package report

import (
	"strings"

	"github.com/thoreinstein/edmx/internal/errors"
)

// Severity represents the impact of a report item. Values are ordered:
// Info < Warning < Error.
type Severity int

const (
	// Info is an informational note.
	Info Severity = iota
	// Warning is a recommended but non-blocking issue.
	Warning
	// Error blocks the record from proceeding.
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the three defined levels.
func (s Severity) Valid() bool {
	return s >= Info && s <= Error
}

// ParseSeverity parses a case-insensitive severity name.
// Unknown names return errors.ErrUnknownSeverity.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return Info, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	default:
		return 0, errors.Wrapf(errors.ErrUnknownSeverity, "%q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.Wrapf(errors.ErrUnknownSeverity, "%d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Max returns the more severe of a and b.
func Max(a, b Severity) Severity {
	if b > a {
		return b
	}
	return a
}

// MostSevere returns the highest severity in items, or false when items is empty.
func MostSevere(items []Item) (Severity, bool) {
	if len(items) == 0 {
		return 0, false
	}
	most := items[0].severity
	for _, it := range items[1:] {
		most = Max(most, it.severity)
	}
	return most, true
}
