package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/classify"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/layout"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

// Normalized is the row normalizer output for one sheet.
type Normalized struct {
	Sheet string
	Items []models.CandidateLineItem
	// Totals holds skipped subtotal rows that carried a value.
	Totals []models.TotalRow
	Errors []models.RowError
	// Warnings report cells that were read as blank because they did not parse.
	Warnings []models.ValidationFinding
	// Disciplines lists disciplines with at least one item, in first-seen order.
	Disciplines []models.DisciplineRef
}

// rowState carries the forward-filled group context between rows.
type rowState struct {
	discipline string
	code       string
	seen       map[string]int
}

// NormalizeRows walks a sheet's rows in document order and emits candidate line items.
// The discipline column is forward-filled: a non-empty cell sets the discipline for
// that row and every following row until the next non-empty cell.
func NormalizeRows(sheet models.Sheet, l layout.Layout) Normalized {
	out := Normalized{Sheet: sheet.Name}
	st := &rowState{
		discipline: NormalizeDiscipline(l.FixedDiscipline),
		seen:       make(map[string]int),
	}

	for r := l.HeaderRows; r < len(sheet.Rows); r++ {
		if err := normalizeRow(&sheet, r, l, st, &out); err != nil {
			out.Errors = append(out.Errors, models.RowError{
				Row:     r + 1,
				Message: fmt.Sprintf("%s: %v", sheet.Name, err),
				Data:    sheet.Snapshot(r),
			})
		}
	}
	return out
}

func normalizeRow(sheet *models.Sheet, r int, l layout.Layout, st *rowState, out *Normalized) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("unexpected row shape: %v", p)
		}
	}()

	cols := l.Columns
	if cols.Discipline != layout.None {
		if c := sheet.Cell(r, cols.Discipline); !c.IsEmpty() {
			st.discipline = NormalizeDiscipline(c.String())
			st.code = ""
			if cols.DisciplineNumber != layout.None {
				st.code = sheet.Cell(r, cols.DisciplineNumber).String()
			}
		}
	}

	desc := sheet.Cell(r, cols.Description)
	value := sheet.Cell(r, cols.Value)
	if desc.IsEmpty() || value.IsEmpty() || st.discipline == "" {
		return nil
	}

	costType := classify.Normalize(desc.String())
	if IsTotalRow(costType) {
		out.Totals = append(out.Totals, models.TotalRow{
			Discipline: st.discipline,
			Label:      costType,
			Value:      CellValue(value),
			SourceRow:  r + 1,
		})
		return nil
	}

	var manhours *float64
	if cols.Manhours != layout.None {
		mh, mhErr := CellManhours(sheet.Cell(r, cols.Manhours))
		if mhErr != nil {
			out.Warnings = append(out.Warnings, models.ValidationFinding{
				Sheet:    sheet.Name,
				Severity: models.SeverityWarning,
				Message:  fmt.Sprintf("row %d: %v, recorded as blank", r+1, mhErr),
			})
		}
		manhours = mh
	}

	out.Items = append(out.Items, models.CandidateLineItem{
		Discipline:  st.discipline,
		CostType:    costType,
		Manhours:    manhours,
		Value:       CellValue(value),
		SourceSheet: sheet.Name,
		SourceRow:   r + 1,
	})

	if i, ok := st.seen[st.discipline]; !ok {
		st.seen[st.discipline] = len(out.Disciplines)
		out.Disciplines = append(out.Disciplines, models.DisciplineRef{Name: st.discipline, Code: st.code})
	} else if out.Disciplines[i].Code == "" {
		out.Disciplines[i].Code = st.code
	}
	return nil
}

// IsTotalRow reports whether a normalized description marks a subtotal row.
func IsTotalRow(desc string) bool {
	return strings.Contains(desc, "TOTAL") ||
		desc == "ALL LABOR" ||
		strings.Contains(desc, "DISCIPLINE TOTAL")
}

// NormalizeDiscipline upper-cases a discipline name and collapses inner whitespace.
func NormalizeDiscipline(s string) string {
	return classify.Normalize(s)
}
