package validator

import (
	"context"
	"time"

	"github.com/thoreinstein/edmx/internal/checks"
	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/logging"
	"github.com/thoreinstein/edmx/internal/normalize"
	"github.com/thoreinstein/edmx/internal/rdf"
	"github.com/thoreinstein/edmx/internal/report"
	"github.com/thoreinstein/edmx/internal/schema"
	"github.com/thoreinstein/edmx/internal/shacl"
)

// Parse failure message prefixes.
const (
	MsgXMLParseFailure = "Could not parse the XML content: "
	MsgParseFailure    = "Could not parse input: "
)

// Options configures a Validator.
type Options struct {
	// Schema defaults to schema.Default().
	Schema *schema.Schema
	// Engine defaults to the bundled SHACL engine.
	Engine checks.ShapeEngine
	// Orphans enables the orphaned-resource check.
	Orphans bool
}

// Validator validates single records. It is safe for concurrent use: each
// call parses into its own graph and the schema is only read.
type Validator struct {
	schema     *schema.Schema
	normalizer *normalize.Normalizer
	engine     checks.ShapeEngine
	orphans    bool
}

// New returns a Validator.
func New(opts Options) (*Validator, error) {
	s := opts.Schema
	if s == nil {
		var err error
		if s, err = schema.Default(); err != nil {
			return nil, errors.Wrap(err, "loading embedded schema")
		}
	}
	engine := opts.Engine
	if engine == nil {
		engine = shacl.NewEngine()
	}

	return &Validator{
		schema:     s,
		normalizer: normalize.New(s.Profile()),
		engine:     engine,
		orphans:    opts.Orphans,
	}, nil
}

// Schema returns the schema records are validated against.
func (v *Validator) Schema() *schema.Schema { return v.schema }

// ValidateXML validates an RDF/XML record.
func (v *Validator) ValidateXML(ctx context.Context, input string) (report.Report, error) {
	return v.ValidateRecord(ctx, input, KindXML)
}

// ValidateTurtle validates a Turtle record.
func (v *Validator) ValidateTurtle(ctx context.Context, input string) (report.Report, error) {
	return v.ValidateRecord(ctx, input, KindTurtle)
}

// ValidateRecord validates one record and returns its report. Problems with
// the record, including unparsable input, are report items; the error is
// reserved for faults of the validator's own configuration, such as a shape
// with an unknown severity, and for cancellation.
func (v *Validator) ValidateRecord(ctx context.Context, input string, kind Kind) (report.Report, error) {
	logger := logging.FromContext(ctx)
	profile := v.schema.Profile()
	start := time.Now()

	var pre []report.Item
	if kind == KindXML {
		res, err := v.normalizer.Normalize(input)
		if err != nil {
			logger.Debug("normalization failed", "error", err)
			return report.New(append(res.Items, report.NewError(MsgXMLParseFailure+err.Error()))...), nil
		}
		logger.Log(ctx, logging.LevelTrace, "normalized", "items", len(res.Items), "stripped", res.Stripped)
		input, pre = res.Output, res.Items
	}

	g, err := rdf.ParseString(input, kind.format(), profile.LocalBaseURL)
	if err != nil {
		logger.Debug("parse failed", "kind", kind, "error", err)
		return report.New(append(pre, report.NewError(MsgParseFailure+err.Error()))...), nil
	}
	logger.Log(ctx, logging.LevelTrace, "parsed", "triples", g.Len())

	recordID, hasID, idItem := checks.CheckIdentity(g, profile)
	typeItems := checks.CheckTypes(g, v.schema.Supported(), profile)
	var orphanItem *report.Item
	if v.orphans {
		orphanItem = checks.CheckOrphans(g, profile)
	}

	v.schema.Augment(g)
	shapeItems, err := checks.CheckShapes(ctx, g, v.engine, v.schema.Shapes(), profile)
	if err != nil {
		return report.Report{}, err
	}

	items := pre
	if idItem != nil {
		items = append(items, *idItem)
	}
	items = append(items, typeItems...)
	if orphanItem != nil {
		items = append(items, *orphanItem)
	}
	items = append(items, shapeItems...)

	r := report.New(items...)
	if hasID {
		r = r.WithRecordID(recordID)
	}

	logger.Debug("record validated",
		"record_id", recordID,
		"items", r.Len(),
		"duration", time.Since(start),
	)
	return r, nil
}

// ExtractRecordIDs parses a record and returns the identifiers of all its
// primary resources without the local base. XML input is normalized first;
// a record that cannot be parsed is an error here.
func (v *Validator) ExtractRecordIDs(input string, kind Kind) ([]string, error) {
	profile := v.schema.Profile()
	if kind == KindXML {
		res, err := v.normalizer.Normalize(input)
		if err != nil {
			return nil, errors.Wrap(err, "normalizing XML")
		}
		input = res.Output
	}

	g, err := rdf.ParseString(input, kind.format(), profile.LocalBaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing record")
	}

	ids := checks.RecordIDs(g, profile)
	for i, id := range ids {
		ids[i] = profile.StripLocalBase(id)
	}
	return ids, nil
}
