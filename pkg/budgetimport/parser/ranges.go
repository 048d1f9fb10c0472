package parser

import (
	"strings"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
	"github.com/xuri/excelize/v2"
)

// parseRange parses a range string like $A$1:$D$10 to a CellRange.
// A single cell reference yields a one-cell range.
func parseRange(rangeStr string) *models.CellRange {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return &models.CellRange{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}

// FormatRange renders a CellRange in A1:B2 notation.
func FormatRange(r models.CellRange) string {
	start, err := excelize.CoordinatesToCellName(r.C1, r.R1)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(r.C2, r.R2)
	if err != nil {
		return ""
	}
	return start + ":" + end
}
