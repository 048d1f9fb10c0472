package models

// Sheet is the used cell range of one worksheet with merged ranges resolved.
type Sheet struct {
	// Name is the worksheet name as stored in the workbook.
	Name string `json:"name"`
	// Rows holds the cell grid. Rows[0] is spreadsheet row 1.
	Rows [][]Cell `json:"rows,omitempty"`
}

// Cell returns the cell at 0-based row and column, or an empty cell when out of range.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return Cell{}
	}
	return s.Rows[row][col]
}

// Snapshot returns the display text of a row, used for row-level error reports.
func (s *Sheet) Snapshot(row int) []string {
	if row < 0 || row >= len(s.Rows) {
		return nil
	}
	out := make([]string, len(s.Rows[row]))
	for i, c := range s.Rows[row] {
		out[i] = c.Text
	}
	return out
}
