package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{"defaults", func(*Config) {}, nil},
		{"bad version", func(c *Config) { c.Version = 0 }, []string{"version"}},
		{"null byte path", func(c *Config) { c.Schema.Shapes = "a\x00b" }, []string{"schema.shapes"}},
		{"dot path", func(c *Config) { c.Schema.Classes = "." }, []string{"schema.classes"}},
		{"two fields", func(c *Config) {
			c.Output.Format = ""
			c.Batch.Workers = -2
		}, []string{"output.format", "batch.workers"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := Validate(cfg)
			require.Len(t, errs, len(tt.fields))

			var got []string
			for _, err := range errs {
				var fe *FieldError
				require.True(t, errors.As(err, &fe))
				got = append(got, fe.Field)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.Len(t, Validate(nil), 1)
}

func TestFieldError_Error(t *testing.T) {
	err := &FieldError{Field: "output.format", Value: "html", Err: ErrOutOfRange}
	assert.Equal(t, "output.format: value out of range: html", err.Error())
}
