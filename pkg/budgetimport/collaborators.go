package budgetimport

import (
	"context"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

// ProjectLookup resolves project identifiers.
type ProjectLookup interface {
	// LookupProject returns nil and no error when the project does not exist.
	LookupProject(ctx context.Context, id string) (*models.Project, error)
}

// BudgetStore persists breakdown rows.
type BudgetStore interface {
	// ReplaceBreakdown atomically replaces every breakdown row of a project,
	// keyed on (project, discipline, cost type). created reports whether the
	// project had no budget before.
	ReplaceBreakdown(ctx context.Context, projectID string, rows []models.BreakdownRow, totals models.BudgetTotals) (created bool, err error)
}

// AuditLog records completed imports.
type AuditLog interface {
	AppendImport(ctx context.Context, entry models.AuditEntry) error
}
