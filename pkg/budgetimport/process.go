package budgetimport

import (
	"log/slog"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/aggregate"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/classify"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/layout"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/parser"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/validate"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/wbs"
)

// Analysis is the outcome of processing one workbook, before persistence.
type Analysis struct {
	Summary aggregate.SheetAggregate
	// SummaryTotals are the subtotal rows skipped on the summary sheet.
	SummaryTotals    []models.TotalRow
	Details          []validate.DetailSheet
	Structure        []models.StructureEntry
	WBS              []models.WbsNode
	DisciplineTotals map[string]float64
	// Findings holds cells read as blank, then cross-sheet validation results.
	Findings []models.ValidationFinding
	// Errors are row-level errors from every sheet read.
	Errors []models.RowError
}

// Process runs the workbook through normalization, aggregation, WBS building
// and cross-sheet validation. Sheets are processed one at a time and rows in
// document order. Only a missing or unreadable summary sheet is an error.
func Process(wb *parser.Workbook, opts Options, logger *slog.Logger) (*Analysis, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sheet, err := wb.Sheet(opts.SummarySheet)
	if err != nil {
		return nil, err
	}

	summary := parser.NormalizeRows(sheet, layout.SummaryLayout(sheet.Name))
	a := &Analysis{
		Summary:       aggregate.Aggregate(sheet.Name, summary.Items),
		SummaryTotals: summary.Totals,
		Errors:        summary.Errors,
		Findings:      summary.Warnings,
	}
	logger.Debug("summary sheet normalized",
		"sheet", sheet.Name,
		"items", len(summary.Items),
		"rows", len(a.Summary.Rows),
		"errors", len(summary.Errors))

	if err := a.Summary.Check(); err != nil {
		a.Errors = append(a.Errors, models.RowError{Row: 0, Message: err.Error()})
	}
	for _, ct := range a.Summary.Totals.OtherDescriptions {
		if _, mapped := classify.Classify(ct); !mapped {
			logger.Warn("unmapped cost type classified as other", "sheet", sheet.Name, "cost_type", ct)
		}
	}

	if opts.ShouldValidateDetails() {
		for _, l := range layout.Details() {
			a.Details = append(a.Details, a.readDetail(wb, l, logger))
		}
	}

	if wb.HasSheet(opts.StructureSheet) {
		st, err := wb.Sheet(opts.StructureSheet)
		if err != nil {
			a.Errors = append(a.Errors, models.RowError{Row: 0, Message: err.Error()})
		} else {
			a.Structure = parser.ReadStructure(st)
		}
	}

	a.WBS = wbs.Build(a.Structure, summary.Disciplines)
	a.DisciplineTotals = wbs.RollUp(a.WBS, a.Summary.ByDiscipline)
	a.Findings = append(a.Findings, validate.Validate(a.Summary, a.SummaryTotals, a.Details, opts.Validation)...)
	return a, nil
}

func (a *Analysis) readDetail(wb *parser.Workbook, l layout.Layout, logger *slog.Logger) validate.DetailSheet {
	d := validate.DetailSheet{Layout: l}
	if !wb.HasSheet(l.Name) {
		logger.Debug("detail sheet absent", "sheet", l.Name)
		return d
	}

	sheet, err := wb.Sheet(l.Name)
	if err != nil {
		a.Errors = append(a.Errors, models.RowError{Row: 0, Message: err.Error()})
		return d
	}

	norm := parser.NormalizeRows(sheet, l)
	d.Present = true
	d.Aggregate = aggregate.Aggregate(sheet.Name, norm.Items)
	a.Errors = append(a.Errors, norm.Errors...)
	a.Findings = append(a.Findings, norm.Warnings...)
	logger.Debug("detail sheet normalized",
		"sheet", sheet.Name,
		"category", l.Category.String(),
		"items", len(norm.Items),
		"errors", len(norm.Errors))
	return d
}
