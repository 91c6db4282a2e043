package checks

import (
	"context"

	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/rdf"
	"github.com/thoreinstein/edmx/internal/report"
	"github.com/thoreinstein/edmx/internal/schema"
	"github.com/thoreinstein/edmx/internal/shacl"
)

// ShapeEngine evaluates shapes over a data graph.
type ShapeEngine interface {
	Validate(ctx context.Context, data *rdf.Graph, shapes *shacl.Shapes) ([]shacl.Result, error)
}

// MapSeverity converts a SHACL severity IRI to a report severity. Any IRI
// other than sh:Info, sh:Warning and sh:Violation is an error.
func MapSeverity(iri string) (report.Severity, error) {
	switch iri {
	case shacl.Info:
		return report.Info, nil
	case shacl.Warning:
		return report.Warning, nil
	case shacl.Violation:
		return report.Error, nil
	}
	return 0, errors.WithHint(
		errors.Wrapf(errors.ErrUnknownSeverity, "%s", iri),
		"shapes may only use sh:Info, sh:Warning or sh:Violation",
	)
}

// CheckShapes runs engine over g, which must already contain the class
// hierarchy, and converts each result into a report item. An unmappable
// severity aborts the check with an error rather than being downgraded.
func CheckShapes(ctx context.Context, g *rdf.Graph, engine ShapeEngine, shapes *shacl.Shapes, profile schema.Profile) ([]report.Item, error) {
	results, err := engine.Validate(ctx, g, shapes)
	if err != nil {
		return nil, errors.Wrap(err, "evaluating shapes")
	}

	items := make([]report.Item, 0, len(results))
	for _, r := range results {
		sev, err := MapSeverity(r.Severity)
		if err != nil {
			return nil, errors.Wrapf(err, "shape %s", r.SourceShape)
		}

		var opts []report.ItemOption
		if s, ok := render(r.FocusNode, profile); ok {
			opts = append(opts, report.WithSubject(s))
		}
		if p, ok := pathPredicate(r.Path, profile); ok {
			opts = append(opts, report.WithPredicate(p))
		}
		if o, ok := render(r.Value, profile); ok {
			opts = append(opts, report.WithObject(o))
		}
		items = append(items, report.NewItem(sev, r.Message, opts...))
	}
	return items, nil
}

// pathPredicate names the property of a path when the path is built from
// exactly one distinct property.
func pathPredicate(p shacl.Path, profile schema.Profile) (string, bool) {
	if p == nil {
		return "", false
	}
	links := p.Links()
	if len(links) != 1 {
		return "", false
	}
	return render(links[0], profile)
}
