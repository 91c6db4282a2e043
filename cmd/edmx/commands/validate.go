package commands

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/logging"
	"github.com/thoreinstein/edmx/internal/paths"
	"github.com/thoreinstein/edmx/internal/report"
	"github.com/thoreinstein/edmx/internal/validator"
	"github.com/thoreinstein/edmx/pkg/fileutil"
)

var (
	validateFormat  string
	validateXML     bool
	validateTurtle  bool
	validateOrphans bool
	validateOutput  string
	validateSave    bool
	validateWorkers int
)

func init() {
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "",
		"output format: text, json, yaml, toml (default from output.format)")
	validateCmd.Flags().BoolVar(&validateXML, "xml", false, "treat every input as RDF/XML")
	validateCmd.Flags().BoolVar(&validateTurtle, "turtle", false, "treat every input as Turtle")
	validateCmd.Flags().BoolVar(&validateOrphans, "orphans", false,
		"report resources not reachable from an aggregation")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "", "write the reports to a file")
	validateCmd.Flags().BoolVar(&validateSave, "save", false,
		"also keep the reports under the edmx reports directory")
	validateCmd.Flags().IntVarP(&validateWorkers, "workers", "w", 0,
		"records validated in parallel (default from batch.workers)")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file|dir|->...",
	Short: "Validate records",
	Long: `Validate one or more records and print a report for each.

Files ending in .ttl are read as Turtle and everything else as RDF/XML,
unless --xml or --turtle is given. Directories are searched recursively for
.xml, .rdf and .ttl files. Use "-" to read a record from standard input.

The command exits with status 3 when any record has an error.`,
	Example: `  # Validate a record
  edmx validate record.xml

  # Validate Turtle from standard input
  cat record.ttl | edmx validate --turtle -

  # Validate a directory and write a JSON report
  edmx validate --format json --output report.json records/

See Also: edmx inspect, edmx schema types`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	c := loadedConfig()

	name := validateFormat
	if name == "" {
		name = c.Output.Format
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	kind, err := kindOverride(validateXML, validateTurtle)
	if err != nil {
		return err
	}

	jobs, err := collectJobs(args, kind, cmd.InOrStdin(), c.Limits.MaxRecordSize)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return errors.NewUserError(errors.New("no records found"), "Records are .xml, .rdf or .ttl files")
	}

	v, err := newValidator(validateOrphans)
	if err != nil {
		return err
	}

	workers := validateWorkers
	if workers == 0 {
		workers = c.Batch.Workers
	}
	batch := validator.NewBatch(v, validator.BatchOptions{
		Workers:       workers,
		MaxRecordSize: c.Limits.MaxRecordSize,
	})
	outcomes := batch.Run(ctx, jobs)

	var entries []report.Entry
	var failures int
	for _, o := range outcomes {
		if o.Err != nil {
			if errors.Is(o.Err, errors.ErrUnknownSeverity) {
				return errors.NewSystemError(o.Err, "Run: edmx schema check")
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return errors.Wrap(ctxErr, "validation interrupted")
			}
			failures++
			logger.Error("record skipped", "source", o.Source, "error", o.Err)
			continue
		}
		entries = append(entries, o.Entry())
	}

	var buf bytes.Buffer
	if err := report.NewReporter(&buf, format).Write(entries...); err != nil {
		return errors.Wrap(err, "rendering reports")
	}

	if err := emitReports(cmd, buf.Bytes(), format, batch.RunID(), logger); err != nil {
		return err
	}

	summary := report.Summarize(entries)
	logger.Info("validation finished",
		"records", summary.Records,
		"passed", summary.Passed,
		"failed", summary.Failed,
		"skipped", failures,
	)

	switch {
	case failures > 0:
		return errors.NewSystemError(
			errors.Newf("%d record(s) could not be validated", failures),
			"Run with -v to see each failure",
		)
	case summary.Failed > 0:
		return errors.NewExitError(
			errors.Newf("%d record(s) failed validation", summary.Failed),
			errors.ExitInvalid,
		)
	}
	return nil
}

// emitReports writes rendered reports to --output, the reports directory,
// or standard output.
func emitReports(cmd *cobra.Command, data []byte, format report.Format, runID string, logger *slog.Logger) error {
	if validateSave {
		path := filepath.Join(paths.ReportsDir(), "run-"+runID+reportExtension(format))
		if err := paths.EnsureDir(paths.ReportsDir(), 0); err != nil {
			return errors.Wrap(err, "creating reports directory")
		}
		if err := fileutil.AtomicWriteFile(path, data, 0o600); err != nil {
			return errors.Wrap(err, "saving reports")
		}
		logger.Info("reports saved", "path", path)
	}

	if validateOutput != "" {
		if err := fileutil.AtomicWriteFile(validateOutput, data, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", validateOutput)
		}
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Reports written to %s\n", validateOutput)
		}
		return nil
	}

	_, err := cmd.OutOrStdout().Write(data)
	return errors.Wrap(err, "writing reports")
}

func reportExtension(format report.Format) string {
	if format == report.FormatText {
		return ".txt"
	}
	return "." + string(format)
}
