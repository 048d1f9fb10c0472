package models

// CandidateLineItem is one budget row extracted from a sheet, before aggregation.
type CandidateLineItem struct {
	// Discipline is the forward-filled discipline name (upper-cased).
	Discipline string `json:"discipline"`
	// CostType is the upper-cased description text.
	CostType string `json:"cost_type"`
	// Manhours is nil when the manhours cell is empty or the sheet has no manhours column.
	Manhours *float64 `json:"manhours,omitempty"`
	// Value is the parsed currency value.
	Value float64 `json:"value"`
	// SourceSheet is the sheet the row was read from.
	SourceSheet string `json:"source_sheet"`
	// SourceRow is the 1-based spreadsheet row number.
	SourceRow int `json:"source_row"`
}

// TotalRow is a subtotal row skipped by the normalizer but kept for cross-checks.
type TotalRow struct {
	Discipline string  `json:"discipline"`
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	SourceRow  int     `json:"source_row"`
}
