package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/edmx/internal/errors"
)

func init() {
	color.NoColor = true
}

func sampleEntries() []Entry {
	return []Entry{
		{Source: "ok.xml", Report: New().WithRecordID("/item/ok")},
		{Source: "bad.xml", Report: New(
			NewError("No unique provided CHO ID found."),
			NewItem(Warning, "Less than 1 values", WithSubject("/agg/1"), WithPredicate("http://www.europeana.eu/schemas/edm/rights")),
		)},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []string{"text", "JSON", "yaml", "toml"} {
		_, err := ParseFormat(f)
		assert.NoError(t, err, f)
	}

	_, err := ParseFormat("html")
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
}

func TestReporter_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText).Write(sampleEntries()...))

	out := buf.String()
	assert.Contains(t, out, "✓ ok.xml (/item/ok)")
	assert.Contains(t, out, "✗ bad.xml: 1 error(s), 1 warning(s)")
	assert.Contains(t, out, "• error No unique provided CHO ID found.")
	assert.Contains(t, out, "(subject=/agg/1, predicate=http://www.europeana.eu/schemas/edm/rights)")
	assert.Contains(t, out, "2 records: 1 passed, 1 failed")
}

func TestReporter_TextSingleHasNoSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText).Write(sampleEntries()[0]))
	assert.NotContains(t, buf.String(), "records:")
}

func TestReporter_Structured(t *testing.T) {
	tests := []struct {
		format    Format
		unmarshal func([]byte, any) error
	}{
		{FormatJSON, json.Unmarshal},
		{FormatYAML, yaml.Unmarshal},
		{FormatTOML, toml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewReporter(&buf, tt.format).Write(sampleEntries()...))

			var out Output
			require.NoError(t, tt.unmarshal(buf.Bytes(), &out), buf.String())

			assert.Equal(t, Summary{Records: 2, Passed: 1, Failed: 1}, out.Summary)
			require.Len(t, out.Reports, 2)
			assert.Nil(t, out.Reports[0].Severity)
			require.NotNil(t, out.Reports[1].Severity)
			assert.Equal(t, Error, *out.Reports[1].Severity)
			assert.Nil(t, out.Reports[1].RecordID)
			assert.Equal(t, Warning, out.Reports[1].Items[1].Severity)
		})
	}
}

func TestReporter_JSONOmitsAbsentFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatJSON).Write(Entry{Report: New(NewError("m"))}))

	out := buf.String()
	assert.False(t, strings.Contains(out, "record_id"), out)
	assert.False(t, strings.Contains(out, "subject"), out)
	assert.Contains(t, out, `"severity": "error"`)
}
