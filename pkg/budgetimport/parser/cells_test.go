package parser

import (
	"errors"
	"testing"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write test workbook: %v", err)
	}
	return buf.Bytes()
}

func TestWorkbookSheet(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		f.SetSheetName("Sheet1", "SUMMARY")
		f.SetCellValue("SUMMARY", "A1", "No")
		f.SetCellValue("SUMMARY", "B1", "Discipline")
		f.SetCellValue("SUMMARY", "B2", "FAB")
		f.SetCellValue("SUMMARY", "F2", 6000)
		f.SetCellValue("SUMMARY", "F3", 200.5)
		f.SetCellValue("SUMMARY", "F4", "$1,234.50")
		f.MergeCell("SUMMARY", "B2", "B5")
	})

	wb, err := OpenWorkbook(data)
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	defer wb.Close()

	if wb.Format() != "xlsx" {
		t.Errorf("Expected xlsx format, got %q", wb.Format())
	}
	if !wb.HasSheet(" summary ") {
		t.Errorf("Expected case-insensitive sheet match")
	}

	sheet, err := wb.Sheet("summary")
	if err != nil {
		t.Fatalf("Sheet failed: %v", err)
	}
	if sheet.Name != "SUMMARY" {
		t.Errorf("Expected actual sheet name, got %q", sheet.Name)
	}

	// Merged range B2:B5 repeats the anchor value
	for r := 1; r <= 4; r++ {
		if got := sheet.Cell(r, 1).String(); got != "FAB" {
			t.Errorf("row %d: expected 'FAB', got %q", r+1, got)
		}
	}

	if c := sheet.Cell(1, 5); c.Kind != models.CellNumber || c.Number != 6000 {
		t.Errorf("Expected number 6000, got %+v", c)
	}
	if c := sheet.Cell(2, 5); c.Kind != models.CellNumber || c.Number != 200.5 {
		t.Errorf("Expected number 200.5, got %+v", c)
	}
	if got := CellValue(sheet.Cell(3, 5)); got != 1234.5 {
		t.Errorf("Expected 1234.5, got %v", got)
	}
}

func TestWorkbookMissingSheet(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {})
	wb, err := OpenWorkbook(data)
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	defer wb.Close()

	_, err = wb.Sheet("SUMMARY")
	if !errors.Is(err, ErrMissingSheet) {
		t.Fatalf("Expected ErrMissingSheet, got %v", err)
	}
	var se *SheetError
	if !errors.As(err, &se) || se.SheetName != "SUMMARY" {
		t.Errorf("Expected SheetError for SUMMARY, got %v", err)
	}
}

func TestOpenWorkbookInvalid(t *testing.T) {
	tests := [][]byte{
		[]byte("not a workbook"),
		nil,
	}
	for i, data := range tests {
		if _, err := OpenWorkbook(data); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("case %d: expected ErrInvalidFormat, got %v", i, err)
		}
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		formatted string
		raw       string
		kind      models.CellKind
		number    float64
	}{
		{"", "", models.CellEmpty, 0},
		{"123", "123", models.CellNumber, 123},
		{"$1,234.50", "1234.5", models.CellNumber, 1234.5},
		{"-100", "-100", models.CellNumber, -100},
		{"hello", "hello", models.CellText, 0},
		{"$ -", "$ -", models.CellText, 0},
		{"Jan-24", "45300x", models.CellFormatted, 0},
	}

	for _, tt := range tests {
		c := parseCell(tt.formatted, tt.raw)
		if c.Kind != tt.kind || c.Number != tt.number {
			t.Errorf("parseCell(%q, %q) = %+v, expected kind %v number %v",
				tt.formatted, tt.raw, c, tt.kind, tt.number)
		}
	}
}

func TestResolveMerges(t *testing.T) {
	grid := BuildGrid([][]string{
		{"A", "B"},
		{""},
	}, nil)
	grid = ResolveMerges(grid, []models.CellRange{
		{R1: 1, C1: 1, R2: 3, C2: 1},
		{R1: 1, C1: 2, R2: 1, C2: 3},
	})

	if len(grid) != 3 {
		t.Fatalf("Expected grid extended to 3 rows, got %d", len(grid))
	}
	for r := 0; r < 3; r++ {
		if grid[r][0].Text != "A" {
			t.Errorf("row %d: expected 'A', got %q", r, grid[r][0].Text)
		}
	}
	if len(grid[0]) != 3 || grid[0][2].Text != "B" {
		t.Errorf("Expected B repeated across columns, got %+v", grid[0])
	}
}

func TestUsedRange(t *testing.T) {
	sheet := models.Sheet{Rows: BuildGrid([][]string{
		{},
		{"", "x", ""},
		{"", "", "", "y"},
	}, nil)}
	r, ok := UsedRange(sheet)
	if !ok {
		t.Fatalf("Expected used range")
	}
	if got := FormatRange(r); got != "B2:D3" {
		t.Errorf("Expected B2:D3, got %q", got)
	}

	if _, ok := UsedRange(models.Sheet{}); ok {
		t.Errorf("Expected no used range for empty sheet")
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		input    string
		expected *models.CellRange
	}{
		{"$A$1:$D$10", &models.CellRange{R1: 1, C1: 1, R2: 10, C2: 4}},
		{"B2:B5", &models.CellRange{R1: 2, C1: 2, R2: 5, C2: 2}},
		{"C3", &models.CellRange{R1: 3, C1: 3, R2: 3, C2: 3}},
		{"D4:A1", &models.CellRange{R1: 1, C1: 1, R2: 4, C2: 4}},
		{"bogus", nil},
	}

	for _, tt := range tests {
		got := parseRange(tt.input)
		if (got == nil) != (tt.expected == nil) || (got != nil && *got != *tt.expected) {
			t.Errorf("parseRange(%q) = %+v, expected %+v", tt.input, got, tt.expected)
		}
	}
}
