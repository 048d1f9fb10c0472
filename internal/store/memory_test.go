package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

func TestMemoryLookupProject(t *testing.T) {
	m := NewMemory(models.Project{ID: "P-1", Name: "Plant"})

	p, err := m.LookupProject(context.Background(), "P-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Plant", p.Name)

	p, err = m.LookupProject(context.Background(), "P-2")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestMemoryReplaceBreakdown(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(models.Project{ID: "P-1"})
	rows := []models.BreakdownRow{
		{Discipline: "FAB", CostType: "DIRECT LABOR", Category: models.CategoryLabor, Value: 6000},
		{Discipline: "FAB", CostType: "MATERIALS", Category: models.CategoryMaterials, Value: 2000},
	}
	totals := models.BudgetTotals{Labor: 6000, Materials: 2000}

	created, err := m.ReplaceBreakdown(ctx, "P-1", rows, totals)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = m.ReplaceBreakdown(ctx, "P-1", rows[:1], models.BudgetTotals{Labor: 6000})
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, rows[:1], m.Breakdown("P-1"))
	got, ok := m.Totals("P-1")
	require.True(t, ok)
	assert.Equal(t, 6000.0, got.Sum())
	assert.Equal(t, 2, m.ReplaceCalls())

	rows[0].Value = 1
	assert.Equal(t, 6000.0, m.Breakdown("P-1")[0].Value)
}

func TestMemoryFailWith(t *testing.T) {
	m := NewMemory(models.Project{ID: "P-1"})
	boom := errors.New("boom")
	m.FailWith = boom

	_, err := m.ReplaceBreakdown(context.Background(), "P-1", []models.BreakdownRow{{Value: 1}}, models.BudgetTotals{})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, m.Breakdown("P-1"))
	_, ok := m.Totals("P-1")
	assert.False(t, ok)
}

func TestMemoryAppendImport(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.AppendImport(context.Background(), models.AuditEntry{ID: "a", RunID: "r"}))
	require.NoError(t, m.AppendImport(context.Background(), models.AuditEntry{ID: "b", RunID: "r"}))

	entries := m.AuditEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[1].ID)
}
