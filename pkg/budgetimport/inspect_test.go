package budgetimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/parser"
)

func TestInspect(t *testing.T) {
	data := buildWorkbook(t,
		sheetData{
			name: "Summary",
			rows: [][]any{
				summaryHeader,
				{"10", "FAB", "", "DIRECT LABOR", 100, 6000},
				{nil, nil, "", "MATERIALS", "", 2000},
			},
			merges: [][2]string{{"B2", "B3"}},
		},
		sheetData{name: "Materials", rows: [][]any{{"Discipline", "Description", "Qty", "Unit", "Value"}}},
		sheetData{name: "Structure", rows: [][]any{{"Code", "Discipline", "Parent", "Demo"}}},
		sheetData{name: "Notes", rows: [][]any{{"free text"}}},
	)

	wb, err := parser.OpenWorkbook(data)
	require.NoError(t, err)
	defer wb.Close()

	info, err := Inspect(wb, "budget.xlsx", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "budget.xlsx", info.BookName)
	assert.Equal(t, "xlsx", info.Format)
	require.Len(t, info.Sheets, 4)

	assert.Equal(t, RoleSummary, info.Sheets[0].Role)
	assert.Equal(t, "A1:F3", info.Sheets[0].UsedRange)
	assert.Equal(t, 1, info.Sheets[0].MergedRanges)

	assert.Equal(t, RoleDetail, info.Sheets[1].Role)
	assert.Equal(t, "materials", info.Sheets[1].Category)

	assert.Equal(t, RoleStructure, info.Sheets[2].Role)

	assert.Equal(t, RoleIgnored, info.Sheets[3].Role)
	assert.Empty(t, info.Sheets[3].UsedRange)
}
