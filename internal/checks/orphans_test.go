package checks

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/edmx/internal/report"
)

func TestCheckOrphans_AllReachable(t *testing.T) {
	g := record(t, `
<agg> a ore:Aggregation ; edm:aggregatedCHO <cho> ; edm:isShownBy <wr> .
<cho> a edm:ProvidedCHO ; dc:creator <agent> ; dc:subject [ dc:title "inline" ] .
<agent> a edm:Agent .
<wr> a edm:WebResource .
`)
	assert.Nil(t, CheckOrphans(g, profile))
}

func TestCheckOrphans_Unreachable(t *testing.T) {
	g := record(t, `
<agg> a ore:Aggregation ; edm:aggregatedCHO <cho> .
<cho> a edm:ProvidedCHO .
<lonely> a edm:Agent ; dc:relation <agg> .
[] a edm:Place .
`)

	item := CheckOrphans(g, profile)
	require.NotNil(t, item)
	assert.Equal(t, report.Warning, item.Severity())
	assert.Equal(t,
		"Found 2 resource(s) not reachable from a resource of type http://www.openarchives.org/ore/terms/Aggregation: lonely, [BLANK RESOURCE].",
		item.Message())
	_, ok := item.Subject()
	assert.False(t, ok)
}

func TestCheckOrphans_TypeStatementsAreNotReferences(t *testing.T) {
	g := record(t, `
<agg> a ore:Aggregation .
ore:Aggregation rdfs:label "Aggregation" .
`)

	item := CheckOrphans(g, profile)
	require.NotNil(t, item)
	assert.Contains(t, item.Message(), "http://www.openarchives.org/ore/terms/Aggregation.")
}

func TestCheckOrphans_NoRoot(t *testing.T) {
	g := record(t, `<cho> a edm:ProvidedCHO .`)

	item := CheckOrphans(g, profile)
	require.NotNil(t, item)
	assert.Contains(t, item.Message(), "Found 1 resource(s)")
}

func TestCheckOrphans_ListIsBounded(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<agg> a ore:Aggregation .\n")
	for i := range 12 {
		fmt.Fprintf(&sb, "<r%d> a edm:Agent .\n", i)
	}

	item := CheckOrphans(record(t, sb.String()), profile)
	require.NotNil(t, item)
	assert.Contains(t, item.Message(), "Found 12 resource(s)")
	assert.Contains(t, item.Message(), "r9, ...")
	assert.NotContains(t, item.Message(), "r10")
}
