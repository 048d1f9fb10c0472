// Package aggregate merges candidate line items into breakdown rows and totals.
package aggregate

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/classify"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

// ErrTotalsMismatch indicates category totals disagree with the breakdown rows.
var ErrTotalsMismatch = errors.New("category totals do not match breakdown rows")

// Tolerance is the relative tolerance Check allows between totals and rows.
const Tolerance = 1e-6

// SheetAggregate is the aggregated content of one sheet.
type SheetAggregate struct {
	Sheet string
	// Rows are unique by (Discipline, CostType), in first-seen order.
	Rows   []models.BreakdownRow
	Totals models.BudgetTotals
	// Disciplines lists disciplines in first-seen order.
	Disciplines []string
	// ByDiscipline is the total value per discipline.
	ByDiscipline map[string]float64
	// ByDisciplineCostType is the total value per discipline and cost type.
	ByDisciplineCostType map[string]map[string]float64
}

type key struct {
	discipline string
	costType   string
}

type accum struct {
	row      models.BreakdownRow
	value    decimal.Decimal
	manhours decimal.Decimal
	hasHours bool
}

// Aggregate merges items sharing (discipline, cost type) and accumulates totals.
// Values and manhours are summed; merged manhours stay nil only when every
// merged item had none.
func Aggregate(sheet string, items []models.CandidateLineItem) SheetAggregate {
	index := make(map[key]int)
	var acc []*accum
	byCategory := make(map[models.Category]decimal.Decimal)
	otherSeen := make(map[string]bool)
	var others []string

	for _, it := range items {
		k := key{it.Discipline, it.CostType}
		i, ok := index[k]
		if !ok {
			cat, _ := classify.Classify(it.CostType)
			i = len(acc)
			index[k] = i
			acc = append(acc, &accum{row: models.BreakdownRow{
				Discipline: it.Discipline,
				CostType:   it.CostType,
				Category:   cat,
			}})
			if cat == models.CategoryOther && !otherSeen[it.CostType] {
				otherSeen[it.CostType] = true
				others = append(others, it.CostType)
			}
		}
		a := acc[i]
		v := decimal.NewFromFloat(it.Value)
		a.value = a.value.Add(v)
		if it.Manhours != nil {
			a.manhours = a.manhours.Add(decimal.NewFromFloat(*it.Manhours))
			a.hasHours = true
		}
		byCategory[a.row.Category] = byCategory[a.row.Category].Add(v)
	}

	out := SheetAggregate{
		Sheet:                sheet,
		Rows:                 make([]models.BreakdownRow, 0, len(acc)),
		ByDiscipline:         make(map[string]float64),
		ByDisciplineCostType: make(map[string]map[string]float64),
	}
	byDiscipline := make(map[string]decimal.Decimal)
	for _, a := range acc {
		row := a.row
		row.Value = a.value.InexactFloat64()
		if a.hasHours {
			mh := a.manhours.InexactFloat64()
			row.Manhours = &mh
		}
		out.Rows = append(out.Rows, row)

		if _, ok := byDiscipline[row.Discipline]; !ok {
			out.Disciplines = append(out.Disciplines, row.Discipline)
			out.ByDisciplineCostType[row.Discipline] = make(map[string]float64)
		}
		byDiscipline[row.Discipline] = byDiscipline[row.Discipline].Add(a.value)
		out.ByDisciplineCostType[row.Discipline][row.CostType] = row.Value
	}
	for d, v := range byDiscipline {
		out.ByDiscipline[d] = v.InexactFloat64()
	}
	for _, c := range models.Categories {
		out.Totals.Set(c, byCategory[c].InexactFloat64())
	}
	out.Totals.OtherDescriptions = others
	return out
}

// Total returns the sum of all breakdown row values.
func (a SheetAggregate) Total() float64 {
	sum := decimal.Zero
	for _, r := range a.Rows {
		sum = sum.Add(decimal.NewFromFloat(r.Value))
	}
	return sum.InexactFloat64()
}

// Check verifies that the category totals equal the sum of breakdown rows.
func (a SheetAggregate) Check() error {
	rows, cats := a.Total(), a.Totals.Sum()
	if !models.ApproxEqual(rows, cats, Tolerance) {
		return fmt.Errorf("%w: sheet %q rows %.2f, categories %.2f", ErrTotalsMismatch, a.Sheet, rows, cats)
	}
	return nil
}

// Figure sums the values of the given cost types for one discipline.
// ok is false when the discipline has none of them.
func (a SheetAggregate) Figure(discipline string, costTypes []string) (float64, bool) {
	m, ok := a.ByDisciplineCostType[discipline]
	if !ok {
		return 0, false
	}
	sum, found := decimal.Zero, false
	for _, ct := range costTypes {
		if v, ok := m[ct]; ok {
			sum = sum.Add(decimal.NewFromFloat(v))
			found = true
		}
	}
	return sum.InexactFloat64(), found
}

// CostTypeTotal sums the given cost types across every discipline.
func (a SheetAggregate) CostTypeTotal(costTypes []string) float64 {
	sum := decimal.Zero
	for _, d := range a.Disciplines {
		if v, ok := a.Figure(d, costTypes); ok {
			sum = sum.Add(decimal.NewFromFloat(v))
		}
	}
	return sum.InexactFloat64()
}
