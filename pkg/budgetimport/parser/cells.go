package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

// BuildGrid combines formatted and raw row text into a cell grid.
// Both inputs come from the same sheet; rows may differ in length.
func BuildGrid(formatted, raw [][]string) [][]models.Cell {
	n := max(len(formatted), len(raw))
	grid := make([][]models.Cell, n)
	for r := 0; r < n; r++ {
		var frow, rrow []string
		if r < len(formatted) {
			frow = formatted[r]
		}
		if r < len(raw) {
			rrow = raw[r]
		}
		width := max(len(frow), len(rrow))
		row := make([]models.Cell, width)
		for c := 0; c < width; c++ {
			row[c] = parseCell(at(frow, c), at(rrow, c))
		}
		grid[r] = row
	}
	return grid
}

func at(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// parseCell classifies a cell from its displayed and stored text.
// A stored value that parses as a number yields a number cell.
func parseCell(formatted, raw string) models.Cell {
	if formatted == "" && raw == "" {
		return models.Cell{}
	}
	if raw == "" {
		raw = formatted
	}
	if formatted == "" {
		formatted = raw
	}
	if v, ok := parseNumber(raw); ok {
		return models.Cell{Kind: models.CellNumber, Text: formatted, Number: v}
	}
	if formatted != raw {
		return models.Cell{Kind: models.CellFormatted, Text: formatted}
	}
	return models.Cell{Kind: models.CellText, Text: raw}
}

// parseNumber parses plain numeric text. Currency formatting is not accepted here.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ResolveMerges repeats each merged range's anchor cell into every cell it covers.
// The grid is extended when a merge reaches past the used range.
func ResolveMerges(grid [][]models.Cell, merges []models.CellRange) [][]models.Cell {
	for _, m := range merges {
		r1, c1 := m.R1-1, m.C1-1
		if r1 < 0 || c1 < 0 || r1 >= len(grid) || c1 >= len(grid[r1]) {
			continue
		}
		anchor := grid[r1][c1]
		if anchor.IsEmpty() {
			continue
		}
		for r := r1; r <= m.R2-1; r++ {
			for len(grid) <= r {
				grid = append(grid, nil)
			}
			for len(grid[r]) < m.C2 {
				grid[r] = append(grid[r], models.Cell{})
			}
			for c := c1; c <= m.C2-1; c++ {
				grid[r][c] = anchor
			}
		}
	}
	return grid
}
