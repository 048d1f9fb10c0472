package models

// RowError is a row-level import error. Row is 0 when not tied to a spreadsheet row.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ImportResult is the result of one budget import run.
type ImportResult struct {
	Success              bool       `json:"success"`
	ProjectID            string     `json:"project_id"`
	TotalBudget          float64    `json:"total_budget"`
	BreakdownRowsCreated int        `json:"breakdown_rows_created"`
	BudgetCreated        bool       `json:"budget_created"`
	BudgetUpdated        bool       `json:"budget_updated"`
	Errors               []RowError `json:"errors"`

	RunID            string              `json:"run_id,omitempty"`
	FileName         string              `json:"file_name,omitempty"`
	Totals           BudgetTotals        `json:"totals"`
	Breakdown        []BreakdownRow      `json:"breakdown,omitempty"`
	DisciplineTotals map[string]float64  `json:"discipline_totals,omitempty"`
	WBS              []WbsNode           `json:"wbs,omitempty"`
	Findings         []ValidationFinding `json:"findings"`
}

// HasErrorFindings reports whether any finding has error severity.
func (r *ImportResult) HasErrorFindings() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
