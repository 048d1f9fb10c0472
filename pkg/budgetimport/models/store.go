package models

import (
	"fmt"
	"time"
)

// AuditEntry records one completed import.
type AuditEntry struct {
	ID          string       `json:"id"`
	RunID       string       `json:"run_id"`
	ProjectID   string       `json:"project_id"`
	FileName    string       `json:"file_name"`
	TotalBudget float64      `json:"total_budget"`
	RowCount    int          `json:"row_count"`
	Totals      BudgetTotals `json:"totals"`
	CreatedAt   time.Time    `json:"created_at"`
}

// PersistenceError carries the storage error fields reported back to callers.
type PersistenceError struct {
	Message string
	Detail  string
	Hint    string
	Code    string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (SQLSTATE %s)", e.Message, e.Code)
	}
	return e.Message
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Fields returns the non-empty error fields keyed by name.
func (e *PersistenceError) Fields() map[string]string {
	out := map[string]string{"message": e.Message}
	if e.Detail != "" {
		out["detail"] = e.Detail
	}
	if e.Hint != "" {
		out["hint"] = e.Hint
	}
	if e.Code != "" {
		out["code"] = e.Code
	}
	return out
}
