// Package parser reads budget workbooks and normalizes sheet rows into line items.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/shakinm/xlsReader/xls"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/layout"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidFormat indicates the payload is neither an xlsx nor a legacy xls workbook.
var ErrInvalidFormat = errors.New("invalid workbook format")

// ErrMissingSheet indicates a requested sheet is not present in the workbook.
var ErrMissingSheet = errors.New("missing sheet")

// oleSignature is the compound document header of legacy .xls files.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Workbook is an opened budget workbook.
type Workbook struct {
	format string
	file   *excelize.File
	// legacy holds pre-read .xls sheets keyed by normalized name.
	legacy map[string]models.Sheet
	names  []string
}

// OpenWorkbook opens a workbook from raw bytes.
func OpenWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err == nil {
		return &Workbook{format: "xlsx", file: f, names: f.GetSheetList()}, nil
	}
	if !bytes.HasPrefix(data, oleSignature) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	wb, lerr := openLegacy(data)
	if lerr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, lerr)
	}
	return wb, nil
}

// openLegacy reads every sheet of a .xls payload. The reader works on file
// paths, so the payload goes through a temp file.
func openLegacy(data []byte) (*Workbook, error) {
	tmp, err := os.CreateTemp("", "budget-*.xls")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	book, err := xls.OpenFile(tmp.Name())
	if err != nil {
		return nil, err
	}

	wb := &Workbook{format: "xls", legacy: make(map[string]models.Sheet)}
	for i := 0; i < book.GetNumberSheets(); i++ {
		sheet, err := book.GetSheet(i)
		if err != nil || sheet == nil {
			continue
		}
		var rows [][]string
		for _, row := range sheet.GetRows() {
			var vals []string
			for _, col := range row.GetCols() {
				vals = append(vals, col.GetString())
			}
			rows = append(rows, vals)
		}
		name := sheet.GetName()
		wb.names = append(wb.names, name)
		wb.legacy[layout.NormalizeName(name)] = models.Sheet{Name: name, Rows: BuildGrid(rows, rows)}
	}
	return wb, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// Format returns "xlsx" or "xls".
func (w *Workbook) Format() string {
	return w.format
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return append([]string(nil), w.names...)
}

// HasSheet reports whether a sheet exists, matching names case-insensitively.
func (w *Workbook) HasSheet(name string) bool {
	_, ok := w.resolve(name)
	return ok
}

func (w *Workbook) resolve(name string) (string, bool) {
	want := layout.NormalizeName(name)
	for _, n := range w.names {
		if layout.NormalizeName(n) == want {
			return n, true
		}
	}
	return "", false
}

// Sheet returns the used cell range of a sheet with merged ranges resolved.
func (w *Workbook) Sheet(name string) (models.Sheet, error) {
	actual, ok := w.resolve(name)
	if !ok {
		return models.Sheet{}, &SheetError{SheetName: name, Component: "workbook", Err: ErrMissingSheet}
	}
	if w.legacy != nil {
		return w.legacy[layout.NormalizeName(actual)], nil
	}

	formatted, err := w.file.GetRows(actual)
	if err != nil {
		return models.Sheet{}, &SheetError{SheetName: actual, Component: "cells", Err: err}
	}
	raw, err := w.file.GetRows(actual, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Sheet{}, &SheetError{SheetName: actual, Component: "cells", Err: err}
	}
	merges, err := w.MergedRanges(actual)
	if err != nil {
		return models.Sheet{}, &SheetError{SheetName: actual, Component: "merges", Err: err}
	}

	grid := ResolveMerges(BuildGrid(formatted, raw), merges)
	return models.Sheet{Name: actual, Rows: grid}, nil
}

// MergedRanges returns the merged ranges of a sheet. Legacy workbooks carry none.
func (w *Workbook) MergedRanges(name string) ([]models.CellRange, error) {
	if w.file == nil {
		return nil, nil
	}
	actual, ok := w.resolve(name)
	if !ok {
		return nil, &SheetError{SheetName: name, Component: "workbook", Err: ErrMissingSheet}
	}
	cells, err := w.file.GetMergeCells(actual)
	if err != nil {
		return nil, err
	}
	var ranges []models.CellRange
	for _, mc := range cells {
		if r := parseRange(mc.GetStartAxis() + ":" + mc.GetEndAxis()); r != nil {
			ranges = append(ranges, *r)
		}
	}
	return ranges, nil
}

// SheetError represents an error reading one sheet.
type SheetError struct {
	SheetName string
	Component string // "workbook", "cells", "merges"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
