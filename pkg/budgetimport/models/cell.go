// Package models defines data structures for budget workbook import.
package models

import "strings"

// CellKind identifies how a cell value was stored in the workbook.
type CellKind int

const (
	// CellEmpty is an absent or blank cell.
	CellEmpty CellKind = iota
	// CellNumber is a numeric cell.
	CellNumber
	// CellText is a plain text cell.
	CellText
	// CellFormatted is a cell whose displayed text differs from its stored value.
	CellFormatted
)

// Cell represents a single spreadsheet cell value.
type Cell struct {
	// Kind is the stored value kind.
	Kind CellKind `json:"kind"`
	// Text is the displayed text. For numbers it is the formatted rendering.
	Text string `json:"text,omitempty"`
	// Number is the numeric value when Kind is CellNumber.
	Number float64 `json:"number,omitempty"`
}

// IsEmpty reports whether the cell carries no usable value.
func (c Cell) IsEmpty() bool {
	if c.Kind == CellEmpty {
		return true
	}
	return c.Kind != CellNumber && strings.TrimSpace(c.Text) == ""
}

// String returns the trimmed display text of the cell.
func (c Cell) String() string {
	return strings.TrimSpace(c.Text)
}
