package parser

import (
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/layout"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

var demoFlags = map[string]bool{
	"Y":    true,
	"YES":  true,
	"X":    true,
	"TRUE": true,
	"1":    true,
	"DEMO": true,
}

// ReadStructure reads discipline structure entries, skipping the header row
// and rows without a discipline name.
func ReadStructure(sheet models.Sheet) []models.StructureEntry {
	cols := layout.Structure
	var entries []models.StructureEntry
	for r := 1; r < len(sheet.Rows); r++ {
		name := NormalizeDiscipline(sheet.Cell(r, cols.Discipline).String())
		if name == "" {
			continue
		}
		entries = append(entries, models.StructureEntry{
			Code:       sheet.Cell(r, cols.Code).String(),
			Discipline: name,
			Parent:     NormalizeDiscipline(sheet.Cell(r, cols.Parent).String()),
			Demo:       demoFlags[NormalizeDiscipline(sheet.Cell(r, cols.Demo).String())],
		})
	}
	return entries
}
