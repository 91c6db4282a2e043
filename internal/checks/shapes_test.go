package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/edmx/internal/checks/mocks"
	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/rdf"
	"github.com/thoreinstein/edmx/internal/report"
	"github.com/thoreinstein/edmx/internal/schema"
	"github.com/thoreinstein/edmx/internal/shacl"
)

var (
	title   = rdf.IRI("http://purl.org/dc/elements/1.1/title")
	creator = rdf.IRI("http://purl.org/dc/elements/1.1/creator")
)

func local(s string) rdf.Term { return rdf.IRI(schema.LocalBaseURL + s) }

func TestCheckShapes_Mapping(t *testing.T) {
	g := rdf.NewGraph()
	shapes := &shacl.Shapes{}

	engine := mocks.NewMockShapeEngine(t)
	engine.EXPECT().Validate(mock.Anything, g, shapes).Return([]shacl.Result{
		{
			FocusNode: local("cho1"),
			Path:      shacl.PredicatePath{Predicate: title},
			Value:     rdf.LangLiteral("Colour", "en-GB"),
			Message:   "too many titles",
			Severity:  shacl.Violation,
		},
		{
			FocusNode: rdf.Blank("b1"),
			Path:      shacl.InversePath{Inner: shacl.PredicatePath{Predicate: creator}},
			Value:     local("agent"),
			Message:   "inverse",
			Severity:  shacl.Warning,
		},
		{
			FocusNode: local("cho1"),
			Path:      shacl.SequencePath{Steps: []shacl.Path{shacl.PredicatePath{Predicate: creator}, shacl.PredicatePath{Predicate: title}}},
			Value:     rdf.TypedLiteral("3", rdf.XSDInteger),
			Message:   "sequence",
			Severity:  shacl.Info,
		},
		{
			FocusNode: local("cho1"),
			Value:     local("cho1"),
			Message:   "node shape",
			Severity:  shacl.Violation,
		},
		{
			FocusNode: local("cho1"),
			Path:      shacl.PredicatePath{Predicate: title},
			Message:   "cardinality",
			Severity:  shacl.Violation,
		},
	}, nil)

	items, err := CheckShapes(context.Background(), g, engine, shapes, profile)
	require.NoError(t, err)
	require.Len(t, items, 5)

	tests := []struct {
		severity  report.Severity
		subject   string
		predicate string
		object    string
	}{
		{report.Error, "cho1", title.Value, "Colour@en-GB"},
		{report.Warning, "", creator.Value, "agent"},
		{report.Info, "cho1", "", "3^^" + rdf.XSDInteger},
		{report.Error, "cho1", "", "cho1"},
		{report.Error, "cho1", title.Value, ""},
	}
	for i, tt := range tests {
		it := items[i]
		assert.Equal(t, tt.severity, it.Severity(), "item %d", i)

		s, ok := it.Subject()
		assert.Equal(t, tt.subject != "", ok, "item %d subject", i)
		assert.Equal(t, tt.subject, s, "item %d subject", i)

		p, ok := it.Predicate()
		assert.Equal(t, tt.predicate != "", ok, "item %d predicate", i)
		assert.Equal(t, tt.predicate, p, "item %d predicate", i)

		o, ok := it.Object()
		assert.Equal(t, tt.object != "", ok, "item %d object", i)
		assert.Equal(t, tt.object, o, "item %d object", i)
	}
	assert.Equal(t, "too many titles", items[0].Message())
}

func TestCheckShapes_UnknownSeverity(t *testing.T) {
	engine := mocks.NewMockShapeEngine(t)
	engine.EXPECT().Validate(mock.Anything, mock.Anything, mock.Anything).Return([]shacl.Result{
		{FocusNode: local("a"), Message: "ok", Severity: shacl.Warning},
		{FocusNode: local("a"), Message: "custom", Severity: "http://example.org/Critical", SourceShape: rdf.IRI("http://example.org/S")},
	}, nil)

	items, err := CheckShapes(context.Background(), rdf.NewGraph(), engine, &shacl.Shapes{}, profile)
	require.Error(t, err)
	assert.Nil(t, items)
	assert.True(t, errors.Is(err, errors.ErrUnknownSeverity))
	assert.Contains(t, err.Error(), "http://example.org/Critical")
}

func TestCheckShapes_EngineError(t *testing.T) {
	engine := mocks.NewMockShapeEngine(t)
	engine.EXPECT().Validate(mock.Anything, mock.Anything, mock.Anything).Return(nil, context.Canceled)

	_, err := CheckShapes(context.Background(), rdf.NewGraph(), engine, &shacl.Shapes{}, profile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMapSeverity(t *testing.T) {
	tests := []struct {
		iri     string
		want    report.Severity
		wantErr bool
	}{
		{shacl.Info, report.Info, false},
		{shacl.Warning, report.Warning, false},
		{shacl.Violation, report.Error, false},
		{shacl.NS + "Debug", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.iri, func(t *testing.T) {
			got, err := MapSeverity(tt.iri)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrUnknownSeverity))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
