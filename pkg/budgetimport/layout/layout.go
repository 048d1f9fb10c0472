// Package layout holds the fixed column layouts of the budget workbook sheets.
package layout

import (
	"strings"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

// None marks a column the sheet does not have.
const None = -1

// SharedEquipmentDiscipline is the discipline that carries equipment shared by all disciplines.
const SharedEquipmentDiscipline = "GENERAL EQUIPMENT"

// CheckKind selects how a detail sheet is compared against the summary sheet.
type CheckKind int

const (
	// CheckReconcile compares per-discipline totals for equality within tolerance.
	CheckReconcile CheckKind = iota
	// CheckRatio compares the sheet total against a ratio band of the summary figure.
	CheckRatio
	// CheckExclusion reconciles per discipline but excludes the shared equipment discipline.
	CheckExclusion
)

func (k CheckKind) String() string {
	switch k {
	case CheckRatio:
		return "ratio"
	case CheckExclusion:
		return "exclusion"
	default:
		return "reconcile"
	}
}

// Columns maps row fields to 0-based column positions.
type Columns struct {
	DisciplineNumber int
	Discipline       int
	Description      int
	Manhours         int
	Value            int
}

// Layout describes one sheet.
type Layout struct {
	// Name is the sheet name, matched case-insensitively.
	Name     string
	Category models.Category
	Columns  Columns
	// HeaderRows is the number of leading rows to skip.
	HeaderRows int
	// FixedDiscipline is used for every row when the sheet has no discipline column.
	FixedDiscipline string
	// SummaryCostTypes are the summary sheet cost types the sheet reconciles against.
	SummaryCostTypes []string
	Check            CheckKind
	// Band names the ratio band for CheckRatio layouts.
	Band string
}

// Ratio band names.
const (
	BandStaff            = "staff"
	BandConstructability = "constructability"
)

// Summary is the column layout of the summary sheet. Columns 6 to 9 carry the
// percent-of-discipline and derived rate columns, which are recomputed rather than read.
var Summary = Columns{
	DisciplineNumber: 0,
	Discipline:       1,
	Description:      3,
	Manhours:         4,
	Value:            5,
}

// SummaryHeaderRows is the number of header rows on the summary sheet.
const SummaryHeaderRows = 1

// StructureColumns maps the structure sheet columns.
type StructureColumns struct {
	Code       int
	Discipline int
	Parent     int
	Demo       int
}

// Structure is the column layout of the discipline structure sheet.
var Structure = StructureColumns{Code: 0, Discipline: 1, Parent: 2, Demo: 3}

var details = []Layout{
	{
		Name:             "DIRECT LABOR",
		Category:         models.CategoryLabor,
		Columns:          Columns{DisciplineNumber: None, Discipline: 0, Description: 1, Manhours: 2, Value: 4},
		HeaderRows:       1,
		SummaryCostTypes: []string{"DIRECT LABOR"},
		Check:            CheckReconcile,
	},
	{
		Name:             "INDIRECT LABOR",
		Category:         models.CategoryLabor,
		Columns:          Columns{DisciplineNumber: None, Discipline: 0, Description: 1, Manhours: 2, Value: 4},
		HeaderRows:       1,
		SummaryCostTypes: []string{"INDIRECT LABOR"},
		Check:            CheckReconcile,
	},
	{
		Name:             "STAFF",
		Category:         models.CategoryLabor,
		Columns:          Columns{DisciplineNumber: None, Discipline: 0, Description: 1, Manhours: 3, Value: 5},
		HeaderRows:       1,
		SummaryCostTypes: []string{"INDIRECT LABOR"},
		Check:            CheckRatio,
		Band:             BandStaff,
	},
	{
		Name:             "MATERIALS",
		Category:         models.CategoryMaterials,
		Columns:          Columns{DisciplineNumber: None, Discipline: 0, Description: 1, Manhours: None, Value: 4},
		HeaderRows:       1,
		SummaryCostTypes: []string{"MATERIALS"},
		Check:            CheckReconcile,
	},
	{
		Name:             "GENERAL EQUIPMENT",
		Category:         models.CategoryEquipment,
		Columns:          Columns{DisciplineNumber: None, Discipline: None, Description: 0, Manhours: None, Value: 3},
		HeaderRows:       1,
		FixedDiscipline:  SharedEquipmentDiscipline,
		SummaryCostTypes: []string{"EQUIPMENT"},
		Check:            CheckReconcile,
	},
	{
		Name:             "DISCIPLINE EQUIPMENT",
		Category:         models.CategoryEquipment,
		Columns:          Columns{DisciplineNumber: None, Discipline: 0, Description: 1, Manhours: None, Value: 4},
		HeaderRows:       1,
		SummaryCostTypes: []string{"EQUIPMENT"},
		Check:            CheckExclusion,
	},
	{
		Name:             "SUBCONTRACTS",
		Category:         models.CategorySubcontracts,
		Columns:          Columns{DisciplineNumber: None, Discipline: 0, Description: 1, Manhours: None, Value: 3},
		HeaderRows:       1,
		SummaryCostTypes: []string{"SUBCONTRACTS"},
		Check:            CheckReconcile,
	},
	{
		Name:             "SCAFFOLDING",
		Category:         models.CategorySubcontracts,
		Columns:          Columns{DisciplineNumber: None, Discipline: 0, Description: 1, Manhours: 2, Value: 3},
		HeaderRows:       1,
		SummaryCostTypes: []string{"SCAFFOLDING"},
		Check:            CheckReconcile,
	},
	{
		Name:             "CONSTRUCTABILITY",
		Category:         models.CategoryOther,
		Columns:          Columns{DisciplineNumber: None, Discipline: 0, Description: 1, Manhours: 2, Value: 3},
		HeaderRows:       1,
		SummaryCostTypes: []string{"RISK"},
		Check:            CheckRatio,
		Band:             BandConstructability,
	},
}

var byName = func() map[string]Layout {
	m := make(map[string]Layout, len(details))
	for _, l := range details {
		m[NormalizeName(l.Name)] = l
	}
	return m
}()

// Details returns the detail sheet layouts in validation order.
func Details() []Layout {
	out := make([]Layout, len(details))
	copy(out, details)
	return out
}

// Lookup returns the detail layout for a sheet name.
func Lookup(sheetName string) (Layout, bool) {
	l, ok := byName[NormalizeName(sheetName)]
	return l, ok
}

// NormalizeName folds a sheet name for matching.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}

// SummaryLayout returns the layout of the summary sheet under the given name.
func SummaryLayout(name string) Layout {
	return Layout{
		Name:       name,
		Columns:    Summary,
		HeaderRows: SummaryHeaderRows,
	}
}
