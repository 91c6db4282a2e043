package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/edmx/internal/errors"
)

// Format specifies the output format for reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatYAML produces YAML output.
	FormatYAML Format = "yaml"
	// FormatTOML produces TOML output.
	FormatTOML Format = "toml"
)

// Formats lists every supported output format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	if !slices.Contains(Formats, f) {
		return "", errors.WithHint(
			errors.Wrapf(errors.ErrUnsupportedFormat, "output format %q", name),
			"use one of: text, json, yaml, toml",
		)
	}
	return f, nil
}

// Entry pairs a report with the input it was produced from.
type Entry struct {
	Source string
	Report Report
}

// Output is the top-level structured document written for json, yaml and
// toml. TOML requires a table at the root, so reports are always nested.
type Output struct {
	Reports []Document `json:"reports" yaml:"reports" toml:"reports"`
	Summary Summary    `json:"summary" yaml:"summary" toml:"summary"`
}

// Summary counts reports by outcome.
type Summary struct {
	Records int `json:"records" yaml:"records" toml:"records"`
	Passed  int `json:"passed" yaml:"passed" toml:"passed"`
	Failed  int `json:"failed" yaml:"failed" toml:"failed"`
}

// Summarize counts passed and failed entries.
func Summarize(entries []Entry) Summary {
	s := Summary{Records: len(entries)}
	for _, e := range entries {
		if e.Report.Passed() {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// Reporter formats and writes reports.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Write renders entries in the reporter's format.
func (r *Reporter) Write(entries ...Entry) error {
	switch r.format {
	case FormatJSON, FormatYAML, FormatTOML:
		return r.writeStructured(entries)
	default:
		return r.writeText(entries)
	}
}

func (r *Reporter) writeStructured(entries []Entry) error {
	out := Output{
		Reports: make([]Document, 0, len(entries)),
		Summary: Summarize(entries),
	}
	for _, e := range entries {
		out.Reports = append(out.Reports, e.Report.Document(e.Source))
	}

	switch r.format {
	case FormatJSON:
		encoder := json.NewEncoder(r.out)
		encoder.SetIndent("", "  ")
		return errors.Wrap(encoder.Encode(out), "encoding JSON report")
	case FormatYAML:
		encoder := yaml.NewEncoder(r.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(out); err != nil {
			return errors.Wrap(err, "encoding YAML report")
		}
		return errors.Wrap(encoder.Close(), "encoding YAML report")
	default:
		return errors.Wrap(toml.NewEncoder(r.out).Encode(out), "encoding TOML report")
	}
}

func (r *Reporter) writeText(entries []Entry) error {
	for _, e := range entries {
		r.writeEntry(e)
	}
	if len(entries) > 1 {
		s := Summarize(entries)
		line := fmt.Sprintf("%d records: %d passed, %d failed", s.Records, s.Passed, s.Failed)
		if s.Failed > 0 {
			line = color.RedString("%s", line)
		} else {
			line = color.GreenString("%s", line)
		}
		fmt.Fprintln(r.out, line)
	}
	return nil
}

func (r *Reporter) writeEntry(e Entry) {
	header := e.Source
	if header == "" {
		header = "record"
	}
	if id, ok := e.Report.RecordID(); ok {
		header += " " + color.New(color.FgHiBlack).Sprintf("(%s)", id)
	}

	if e.Report.Len() == 0 {
		fmt.Fprintf(r.out, "%s %s\n", color.GreenString("✓"), header)
		return
	}

	var summary []string
	for _, s := range []struct {
		sev   Severity
		label string
		paint func(string, ...any) string
	}{
		{Error, "error(s)", color.RedString},
		{Warning, "warning(s)", color.YellowString},
		{Info, "info", color.CyanString},
	} {
		if n := e.Report.Count(s.sev); n > 0 {
			summary = append(summary, s.paint("%d %s", n, s.label))
		}
	}

	mark := color.GreenString("✓")
	if !e.Report.Passed() {
		mark = color.RedString("✗")
	}
	fmt.Fprintf(r.out, "%s %s: %s\n", mark, header, strings.Join(summary, ", "))

	for _, it := range e.Report.Items() {
		r.printItem(it)
	}
	fmt.Fprintln(r.out)
}

func (r *Reporter) printItem(it Item) {
	var attr color.Attribute
	switch it.Severity() {
	case Error:
		attr = color.FgRed
	case Warning:
		attr = color.FgYellow
	default:
		attr = color.FgCyan
	}

	var sb strings.Builder
	sb.WriteString("  • ")
	sb.WriteString(color.New(attr).Sprint(it.Severity().String()))
	sb.WriteString(" ")
	sb.WriteString(it.Message())

	var ctx []string
	for _, field := range []struct {
		name string
		get  func() (string, bool)
	}{
		{"subject", it.Subject},
		{"predicate", it.Predicate},
		{"object", it.Object},
	} {
		if v, ok := field.get(); ok {
			ctx = append(ctx, fmt.Sprintf("%s=%s", field.name, truncate(v, 80)))
		}
	}
	if len(ctx) > 0 {
		sb.WriteString(" ")
		sb.WriteString(color.New(color.FgHiBlack).Sprintf("(%s)", strings.Join(ctx, ", ")))
	}

	fmt.Fprintln(r.out, sb.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
