package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/edmx/internal/errors"
)

// OutputFormats lists the accepted values of output.format.
var OutputFormats = []string{"text", "json", "yaml", "toml"}

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a version other than CurrentVersion.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrOutOfRange indicates a numeric value outside its accepted range.
	ErrOutOfRange = errors.New("value out of range")
)

// Validate checks a Config for validity.
// Returns nil if valid, or one error per invalid field.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.Wrap(errors.ErrInvalidConfig, "config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, &FieldError{Field: "version", Value: fmt.Sprint(cfg.Version), Err: ErrUnsupportedVersion})
	}

	if !slices.Contains(OutputFormats, cfg.Output.Format) {
		errs = append(errs, &FieldError{Field: "output.format", Value: cfg.Output.Format, Err: errors.ErrUnsupportedFormat})
	}

	if cfg.Limits.MaxRecordSize < 0 {
		errs = append(errs, &FieldError{Field: "limits.max_record_size", Value: fmt.Sprint(cfg.Limits.MaxRecordSize), Err: ErrOutOfRange})
	}

	if cfg.Batch.Workers < 0 {
		errs = append(errs, &FieldError{Field: "batch.workers", Value: fmt.Sprint(cfg.Batch.Workers), Err: ErrOutOfRange})
	}

	for field, path := range map[string]string{
		"schema.shapes":  cfg.Schema.Shapes,
		"schema.classes": cfg.Schema.Classes,
	} {
		if err := validatePath(path); err != nil {
			errs = append(errs, &FieldError{Field: field, Value: path, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use embedded")
	if path == "" {
		return nil
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	if cleaned := filepath.Clean(path); cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}

// FieldError reports an invalid value for one configuration key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

// Unwrap exposes both the field cause and ErrInvalidConfig.
func (e *FieldError) Unwrap() []error {
	return []error{e.Err, errors.ErrInvalidConfig}
}
