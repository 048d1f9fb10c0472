package models

// WorkbookInfo describes a workbook's sheets and how the importer sees them.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Format is "xlsx" or "xls".
	Format string `json:"format"`
	// Sheets lists every sheet in workbook order.
	Sheets []SheetInfo `json:"sheets"`
}

// SheetInfo describes one sheet.
type SheetInfo struct {
	Name string `json:"name"`
	// UsedRange is the bounding range of non-empty cells, e.g. "A1:J40".
	UsedRange string `json:"used_range,omitempty"`
	// Role is "summary", "structure", "detail" or "ignored".
	Role string `json:"role"`
	// Category is the canonical category of a detail sheet.
	Category string `json:"category,omitempty"`
	// MergedRanges is the number of merged ranges on the sheet.
	MergedRanges int `json:"merged_ranges,omitempty"`
}
