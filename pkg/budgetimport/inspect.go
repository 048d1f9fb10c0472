package budgetimport

import (
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/layout"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/parser"
)

// Sheet roles reported by Inspect.
const (
	RoleSummary   = "summary"
	RoleStructure = "structure"
	RoleDetail    = "detail"
	RoleIgnored   = "ignored"
)

// Inspect describes the sheets of a workbook and the role each plays in an
// import. Ignored sheets are listed but not read.
func Inspect(wb *parser.Workbook, bookName string, opts Options) (*models.WorkbookInfo, error) {
	info := &models.WorkbookInfo{BookName: bookName, Format: wb.Format()}
	summary := layout.NormalizeName(opts.SummarySheet)
	structure := layout.NormalizeName(opts.StructureSheet)

	for _, name := range wb.SheetNames() {
		si := models.SheetInfo{Name: name, Role: RoleIgnored}
		switch n := layout.NormalizeName(name); {
		case n == summary:
			si.Role = RoleSummary
		case n == structure:
			si.Role = RoleStructure
		default:
			if l, ok := layout.Lookup(name); ok {
				si.Role = RoleDetail
				si.Category = l.Category.String()
			}
		}

		if si.Role != RoleIgnored {
			sheet, err := wb.Sheet(name)
			if err != nil {
				return nil, err
			}
			if r, ok := parser.UsedRange(sheet); ok {
				si.UsedRange = parser.FormatRange(r)
			}
			merges, err := wb.MergedRanges(name)
			if err != nil {
				return nil, err
			}
			si.MergedRanges = len(merges)
		}
		info.Sheets = append(info.Sheets, si)
	}
	return info, nil
}
