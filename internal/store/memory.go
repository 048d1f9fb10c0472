// Package store provides budget persistence backends for the importer.
package store

import (
	"context"
	"sync"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

// Memory is an in-process store. It backs dry runs and tests.
type Memory struct {
	mu        sync.Mutex
	projects  map[string]models.Project
	breakdown map[string][]models.BreakdownRow
	totals    map[string]models.BudgetTotals
	audit     []models.AuditEntry
	replaces  int

	// FailWith, when set, is returned by ReplaceBreakdown without changing state.
	FailWith error
}

// NewMemory creates a Memory store knowing the given projects.
func NewMemory(projects ...models.Project) *Memory {
	m := &Memory{
		projects:  make(map[string]models.Project),
		breakdown: make(map[string][]models.BreakdownRow),
		totals:    make(map[string]models.BudgetTotals),
	}
	for _, p := range projects {
		m.projects[p.ID] = p
	}
	return m
}

// LookupProject returns the project or nil when unknown.
func (m *Memory) LookupProject(_ context.Context, id string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ReplaceBreakdown replaces all rows of a project.
func (m *Memory) ReplaceBreakdown(_ context.Context, projectID string, rows []models.BreakdownRow, totals models.BudgetTotals) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaces++
	if m.FailWith != nil {
		return false, m.FailWith
	}

	_, existed := m.totals[projectID]
	m.breakdown[projectID] = append([]models.BreakdownRow(nil), rows...)
	totals.OtherDescriptions = append([]string(nil), totals.OtherDescriptions...)
	m.totals[projectID] = totals
	return !existed, nil
}

// AppendImport records an audit entry.
func (m *Memory) AppendImport(_ context.Context, entry models.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audit = append(m.audit, entry)
	return nil
}

// Breakdown returns a copy of the stored rows of a project.
func (m *Memory) Breakdown(projectID string) []models.BreakdownRow {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.BreakdownRow(nil), m.breakdown[projectID]...)
}

// Totals returns the stored totals of a project.
func (m *Memory) Totals(projectID string) (models.BudgetTotals, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.totals[projectID]
	return t, ok
}

// AuditEntries returns a copy of the audit log.
func (m *Memory) AuditEntries() []models.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AuditEntry(nil), m.audit...)
}

// ReplaceCalls returns how many times ReplaceBreakdown was called.
func (m *Memory) ReplaceCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaces
}
