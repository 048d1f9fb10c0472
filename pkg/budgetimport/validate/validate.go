// Package validate reconciles detail sheets against the summary sheet.
package validate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/aggregate"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/layout"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

// Band is an expected ratio range of a detail sheet total to a summary figure.
type Band struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether v lies inside the band, bounds included.
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Config holds the comparison tolerances and ratio bands.
type Config struct {
	// AbsTolerance is the absolute difference tolerated, in currency units.
	AbsTolerance float64 `yaml:"abs_tolerance" json:"abs_tolerance"`
	// RelTolerance is the difference tolerated relative to the summary figure.
	RelTolerance float64 `yaml:"rel_tolerance" json:"rel_tolerance"`
	// Bands maps layout band names to expected ratio ranges.
	Bands map[string]Band `yaml:"bands" json:"bands"`
}

// DefaultConfig returns the default tolerances and bands.
func DefaultConfig() Config {
	return Config{
		AbsTolerance: 0.01,
		RelTolerance: 0.005,
		Bands: map[string]Band{
			layout.BandStaff:            {Min: 0.10, Max: 0.20},
			layout.BandConstructability: {Min: 20, Max: 40},
		},
	}
}

// DetailSheet is one detail layout and, when the sheet was present, its aggregate.
type DetailSheet struct {
	Layout    layout.Layout
	Present   bool
	Aggregate aggregate.SheetAggregate
}

// Validate compares every detail sheet with the summary sheet and checks the
// summary's own discipline total rows. All findings are returned, in layout
// order and then discipline order.
func Validate(summary aggregate.SheetAggregate, totals []models.TotalRow, details []DetailSheet, cfg Config) []models.ValidationFinding {
	v := &validator{cfg: cfg, summary: summary}
	v.disciplineTotals(totals)
	for _, d := range details {
		v.detail(d)
	}
	return v.findings
}

type validator struct {
	cfg      Config
	summary  aggregate.SheetAggregate
	findings []models.ValidationFinding
}

func (v *validator) add(sheet string, sev models.Severity, budget, detail *float64, format string, args ...any) {
	v.findings = append(v.findings, models.ValidationFinding{
		Sheet:       sheet,
		Severity:    sev,
		Message:     fmt.Sprintf(format, args...),
		BudgetValue: budget,
		DetailValue: detail,
	})
}

// exceeds reports whether two figures differ by more than both tolerances.
func (v *validator) exceeds(budget, detail float64) bool {
	b, d := decimal.NewFromFloat(budget), decimal.NewFromFloat(detail)
	diff := d.Sub(b).Abs()
	if diff.LessThanOrEqual(decimal.NewFromFloat(v.cfg.AbsTolerance)) {
		return false
	}
	return diff.GreaterThan(b.Abs().Mul(decimal.NewFromFloat(v.cfg.RelTolerance)))
}

func (v *validator) disciplineTotals(totals []models.TotalRow) {
	for _, t := range totals {
		if !strings.Contains(t.Label, "DISCIPLINE TOTAL") {
			continue
		}
		sum := v.summary.ByDiscipline[t.Discipline]
		if v.exceeds(t.Value, sum) {
			v.add(v.summary.Sheet, models.SeverityError, ptr(t.Value), ptr(sum),
				"row %d: discipline %s total %.2f does not match its rows %.2f",
				t.SourceRow, t.Discipline, t.Value, sum)
		}
	}
}

func (v *validator) detail(d DetailSheet) {
	name := d.Layout.Name
	if d.Present && d.Aggregate.Sheet != "" {
		name = d.Aggregate.Sheet
	}
	switch {
	case !d.Present:
		v.add(name, models.SeverityInfo, nil, nil, "skip_sheet: sheet %q not present", d.Layout.Name)
		return
	case len(d.Aggregate.Rows) == 0:
		v.add(name, models.SeverityInfo, nil, nil, "sheet %q contributes no rows", name)
		return
	}

	switch d.Layout.Check {
	case layout.CheckRatio:
		v.ratio(name, d)
	default:
		v.reconcile(name, d)
	}
}

func (v *validator) reconcile(name string, d DetailSheet) {
	l := d.Layout
	agg := d.Aggregate
	shared := layout.SharedEquipmentDiscipline

	if l.Check == layout.CheckExclusion {
		if total, ok := agg.ByDiscipline[shared]; ok {
			v.add(name, models.SeverityWarning, nil, ptr(total),
				"%s rows belong on the %s sheet and are excluded from discipline equipment", shared, shared)
		}
	}

	include := func(disc string) bool {
		if l.FixedDiscipline != "" {
			return disc == l.FixedDiscipline
		}
		return l.Check != layout.CheckExclusion || disc != shared
	}

	var order []string
	seen := make(map[string]bool)
	for _, disc := range v.summary.Disciplines {
		if _, ok := v.summary.Figure(disc, l.SummaryCostTypes); ok && include(disc) {
			seen[disc] = true
			order = append(order, disc)
		}
	}
	for _, disc := range agg.Disciplines {
		if !seen[disc] && include(disc) {
			seen[disc] = true
			order = append(order, disc)
		}
	}

	for _, disc := range order {
		budget, inSummary := v.summary.Figure(disc, l.SummaryCostTypes)
		detail, inDetail := agg.ByDiscipline[disc]
		switch {
		case inSummary && inDetail:
			if v.exceeds(budget, detail) {
				v.add(name, models.SeverityError, ptr(budget), ptr(detail),
					"discipline %s: detail total %.2f differs from summary %s %.2f by %.2f",
					disc, detail, strings.Join(l.SummaryCostTypes, "/"), budget, detail-budget)
			}
		case inSummary:
			v.add(name, models.SeverityInfo, ptr(budget), nil,
				"discipline %s has a summary figure but no rows on sheet %q", disc, name)
		default:
			v.add(name, models.SeverityInfo, nil, ptr(detail),
				"discipline %s has rows on sheet %q but no summary %s figure",
				disc, name, strings.Join(l.SummaryCostTypes, "/"))
		}
	}
}

func (v *validator) ratio(name string, d DetailSheet) {
	l := d.Layout
	band, ok := v.cfg.Bands[l.Band]
	if !ok {
		v.add(name, models.SeverityInfo, nil, nil, "no ratio band %q configured", l.Band)
		return
	}

	budget := v.summary.CostTypeTotal(l.SummaryCostTypes)
	detail := d.Aggregate.Total()
	if budget == 0 {
		v.add(name, models.SeverityInfo, ptr(budget), ptr(detail),
			"summary %s total is zero, ratio not checked", strings.Join(l.SummaryCostTypes, "/"))
		return
	}

	ratio := detail / budget
	if !band.Contains(ratio) {
		v.add(name, models.SeverityWarning, ptr(budget), ptr(detail),
			"sheet total is %.4gx the summary %s total, expected %.4gx to %.4gx",
			ratio, strings.Join(l.SummaryCostTypes, "/"), band.Min, band.Max)
	}
}

func ptr(v float64) *float64 { return &v }
