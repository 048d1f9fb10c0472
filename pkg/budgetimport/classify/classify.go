// Package classify maps budget cost-type labels to canonical categories.
package classify

import (
	"strings"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/models"
)

// costTypeMap maps normalized cost-type labels to categories. It is never modified.
var costTypeMap = map[string]models.Category{
	"DIRECT LABOR":                models.CategoryLabor,
	"INDIRECT LABOR":              models.CategoryLabor,
	"LABOR":                       models.CategoryLabor,
	"PERDIEM":                     models.CategoryLabor,
	"PER DIEM":                    models.CategoryLabor,
	"MATERIALS":                   models.CategoryMaterials,
	"MATERIAL":                    models.CategoryMaterials,
	"EQUIPMENT":                   models.CategoryEquipment,
	"SUBCONTRACTS":                models.CategorySubcontracts,
	"SUBCONTRACT":                 models.CategorySubcontracts,
	"SCAFFOLDING":                 models.CategorySubcontracts,
	"SMALL TOOLS & CONSUMABLES":   models.CategorySmallToolsConsumables,
	"SMALL TOOLS AND CONSUMABLES": models.CategorySmallToolsConsumables,
	"ADD ONS":                     models.CategoryOther,
	"RISK":                        models.CategoryOther,
}

// Classify returns the category for a cost type. Labels not in the table
// fall back to CategoryOther with mapped set to false.
func Classify(costType string) (cat models.Category, mapped bool) {
	if c, ok := costTypeMap[Normalize(costType)]; ok {
		return c, true
	}
	return models.CategoryOther, false
}

// Normalize upper-cases a label and collapses inner whitespace.
func Normalize(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
