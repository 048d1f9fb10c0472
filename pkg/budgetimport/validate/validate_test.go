package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/aggregate"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/layout"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

type row struct {
	discipline string
	costType   string
	value      float64
}

func agg(sheet string, rows ...row) aggregate.SheetAggregate {
	items := make([]models.CandidateLineItem, len(rows))
	for i, r := range rows {
		items[i] = models.CandidateLineItem{Discipline: r.discipline, CostType: r.costType, Value: r.value, SourceSheet: sheet}
	}
	return aggregate.Aggregate(sheet, items)
}

func detail(t *testing.T, name string, a aggregate.SheetAggregate) DetailSheet {
	t.Helper()
	l, ok := layout.Lookup(name)
	require.True(t, ok, name)
	return DetailSheet{Layout: l, Present: true, Aggregate: a}
}

func bySeverity(findings []models.ValidationFinding, sev models.Severity) []models.ValidationFinding {
	var out []models.ValidationFinding
	for _, f := range findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

var summary = agg("SUMMARY",
	row{"FAB", "DIRECT LABOR", 6000},
	row{"FAB", "INDIRECT LABOR", 1000},
	row{"FAB", "MATERIALS", 2000},
	row{"FAB", "EQUIPMENT", 500},
	row{"PIPE", "DIRECT LABOR", 9000},
	row{"PIPE", "INDIRECT LABOR", 1000},
	row{"PIPE", "EQUIPMENT", 700},
	row{"GENERAL EQUIPMENT", "EQUIPMENT", 3000},
	row{"GENERAL", "RISK", 1000},
)

func TestReconcileWithinTolerance(t *testing.T) {
	d := detail(t, "DIRECT LABOR", agg("Direct Labor",
		row{"FAB", "WELDERS", 3999.99},
		row{"FAB", "FITTERS", 2000},
		row{"PIPE", "FITTERS", 9030}, // 0.33% off
	))

	findings := Validate(summary, nil, []DetailSheet{d}, DefaultConfig())
	assert.Empty(t, findings)
}

func TestReconcileBeyondTolerance(t *testing.T) {
	d := detail(t, "DIRECT LABOR", agg("Direct Labor",
		row{"FAB", "WELDERS", 6000},
		row{"PIPE", "FITTERS", 9100}, // 1.1% off
	))

	findings := Validate(summary, nil, []DetailSheet{d}, DefaultConfig())
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, models.SeverityError, f.Severity)
	assert.Equal(t, "Direct Labor", f.Sheet)
	require.NotNil(t, f.BudgetValue)
	require.NotNil(t, f.DetailValue)
	assert.Equal(t, 9000.0, *f.BudgetValue)
	assert.Equal(t, 9100.0, *f.DetailValue)
	assert.Contains(t, f.Message, "PIPE")
}

func TestAbsoluteToleranceGuardsSmallFigures(t *testing.T) {
	small := agg("SUMMARY", row{"FAB", "MATERIALS", 1})
	d := detail(t, "MATERIALS", agg("Materials", row{"FAB", "BOLTS", 1.01}))

	findings := Validate(small, nil, []DetailSheet{d}, DefaultConfig())
	assert.Empty(t, findings, "a one cent difference is rounding")
}

func TestOneSidedDisciplinesAreInfo(t *testing.T) {
	d := detail(t, "MATERIALS", agg("Materials", row{"CIVIL", "REBAR", 100}))
	findings := Validate(summary, nil, []DetailSheet{d}, DefaultConfig())

	require.Len(t, findings, 2)
	assert.Equal(t, models.SeverityInfo, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "FAB")
	assert.Equal(t, models.SeverityInfo, findings[1].Severity)
	assert.Contains(t, findings[1].Message, "CIVIL")
}

func TestAbsentAndEmptySheets(t *testing.T) {
	absent, _ := layout.Lookup("SUBCONTRACTS")
	empty := detail(t, "SCAFFOLDING", agg("Scaffolding"))

	findings := Validate(summary, nil, []DetailSheet{{Layout: absent}, empty}, DefaultConfig())
	require.Len(t, findings, 2)
	assert.Equal(t, models.SeverityInfo, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "skip_sheet")
	assert.Equal(t, models.SeverityInfo, findings[1].Severity)
	assert.Contains(t, findings[1].Message, "no rows")
}

func TestStaffRatio(t *testing.T) {
	// Summary indirect labor is 2000.
	inBand := detail(t, "STAFF", agg("Staff", row{"FAB", "SUPERINTENDENT", 300}))
	assert.Empty(t, Validate(summary, nil, []DetailSheet{inBand}, DefaultConfig()))

	outOfBand := detail(t, "STAFF", agg("Staff", row{"FAB", "SUPERINTENDENT", 1000}))
	findings := Validate(summary, nil, []DetailSheet{outOfBand}, DefaultConfig())
	require.Len(t, findings, 1)
	assert.Equal(t, models.SeverityWarning, findings[0].Severity)
	assert.Equal(t, 2000.0, *findings[0].BudgetValue)
	assert.Equal(t, 1000.0, *findings[0].DetailValue)
}

func TestConstructabilityRatio(t *testing.T) {
	// Summary risk is 1000, so 20x to 40x is 20000 to 40000.
	ok := detail(t, "CONSTRUCTABILITY", agg("Constructability", row{"FAB", "ESTIMATE", 30000}))
	assert.Empty(t, Validate(summary, nil, []DetailSheet{ok}, DefaultConfig()))

	low := detail(t, "CONSTRUCTABILITY", agg("Constructability", row{"FAB", "ESTIMATE", 5000}))
	findings := Validate(summary, nil, []DetailSheet{low}, DefaultConfig())
	require.Len(t, findings, 1)
	assert.Equal(t, models.SeverityWarning, findings[0].Severity)
}

func TestRatioBandsAreConfigurable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bands[layout.BandStaff] = Band{Min: 0.4, Max: 0.6}
	d := detail(t, "STAFF", agg("Staff", row{"FAB", "SUPERINTENDENT", 1000}))
	assert.Empty(t, Validate(summary, nil, []DetailSheet{d}, cfg))

	delete(cfg.Bands, layout.BandStaff)
	findings := Validate(summary, nil, []DetailSheet{d}, cfg)
	require.Len(t, findings, 1)
	assert.Equal(t, models.SeverityInfo, findings[0].Severity)
}

func TestEquipmentExclusion(t *testing.T) {
	general := detail(t, "GENERAL EQUIPMENT", agg("General Equipment",
		row{layout.SharedEquipmentDiscipline, "CRANE", 3000},
	))
	discipline := detail(t, "DISCIPLINE EQUIPMENT", agg("Discipline Equipment",
		row{"FAB", "WELDING MACHINE", 500},
		row{"PIPE", "PIPE BENDER", 700},
		row{layout.SharedEquipmentDiscipline, "CRANE", 3000},
	))

	findings := Validate(summary, nil, []DetailSheet{general, discipline}, DefaultConfig())
	require.Len(t, findings, 1)
	assert.Equal(t, models.SeverityWarning, findings[0].Severity)
	assert.Equal(t, "Discipline Equipment", findings[0].Sheet)
}

func TestSummaryDisciplineTotals(t *testing.T) {
	totals := []models.TotalRow{
		{Discipline: "FAB", Label: "DISCIPLINE TOTALS", Value: 9500, SourceRow: 6},
		{Discipline: "PIPE", Label: "DISCIPLINE TOTALS", Value: 12000, SourceRow: 10},
		{Discipline: "PIPE", Label: "ALL LABOR", Value: 1, SourceRow: 9},
	}

	findings := Validate(summary, totals, nil, DefaultConfig())
	require.Len(t, findings, 1)
	assert.Equal(t, models.SeverityError, findings[0].Severity)
	assert.Equal(t, "SUMMARY", findings[0].Sheet)
	assert.Contains(t, findings[0].Message, "row 10")
}
