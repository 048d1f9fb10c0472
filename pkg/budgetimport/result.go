package budgetimport

import (
	"errors"
	"fmt"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

// Assemble packages an analysis into an ImportResult. Success requires at least
// one breakdown row; row-level errors elsewhere do not fail the import.
func Assemble(projectID string, a *Analysis) *models.ImportResult {
	res := &models.ImportResult{
		Success:              len(a.Summary.Rows) > 0,
		ProjectID:            projectID,
		TotalBudget:          a.Summary.Total(),
		BreakdownRowsCreated: len(a.Summary.Rows),
		Errors:               append([]models.RowError{}, a.Errors...),
		Totals:               a.Summary.Totals,
		Breakdown:            a.Summary.Rows,
		DisciplineTotals:     a.DisciplineTotals,
		WBS:                  a.WBS,
		Findings:             append([]models.ValidationFinding{}, a.Findings...),
	}
	if !res.Success {
		res.Errors = append(res.Errors, models.RowError{
			Row:     0,
			Message: fmt.Sprintf("no budget rows found on sheet %q", a.Summary.Sheet),
		})
	}
	return res
}

// persistenceFailed marks a result as failed after a storage error.
func persistenceFailed(res *models.ImportResult, err error) {
	res.Success = false
	res.BreakdownRowsCreated = 0
	res.BudgetCreated = false
	res.BudgetUpdated = false

	entry := models.RowError{Row: 0, Message: "failed to save budget: " + err.Error()}
	var pe *models.PersistenceError
	if errors.As(err, &pe) {
		entry.Message = "failed to save budget: " + pe.Message
		entry.Data = pe.Fields()
	}
	res.Errors = append(res.Errors, entry)
}
