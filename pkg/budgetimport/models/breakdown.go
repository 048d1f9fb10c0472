package models

import "math"

// BreakdownRow is an aggregated budget line, unique by (Discipline, CostType).
type BreakdownRow struct {
	Discipline string   `json:"discipline"`
	CostType   string   `json:"cost_type"`
	Category   Category `json:"category"`
	Manhours   *float64 `json:"manhours,omitempty"`
	Value      float64  `json:"value"`
}

// BudgetTotals holds per-category totals for one sheet.
type BudgetTotals struct {
	Labor                 float64 `json:"labor"`
	Materials             float64 `json:"materials"`
	Equipment             float64 `json:"equipment"`
	Subcontracts          float64 `json:"subcontracts"`
	SmallToolsConsumables float64 `json:"small_tools_consumables"`
	Other                 float64 `json:"other"`
	// OtherDescriptions lists cost types that fell into Other, once each.
	OtherDescriptions []string `json:"other_descriptions,omitempty"`
}

// Sum returns the total over all categories.
func (t BudgetTotals) Sum() float64 {
	return t.Labor + t.Materials + t.Equipment + t.Subcontracts + t.SmallToolsConsumables + t.Other
}

// Get returns the total for a category.
func (t BudgetTotals) Get(c Category) float64 {
	switch c {
	case CategoryLabor:
		return t.Labor
	case CategoryMaterials:
		return t.Materials
	case CategoryEquipment:
		return t.Equipment
	case CategorySubcontracts:
		return t.Subcontracts
	case CategorySmallToolsConsumables:
		return t.SmallToolsConsumables
	default:
		return t.Other
	}
}

// Set assigns the total for a category.
func (t *BudgetTotals) Set(c Category, v float64) {
	switch c {
	case CategoryLabor:
		t.Labor = v
	case CategoryMaterials:
		t.Materials = v
	case CategoryEquipment:
		t.Equipment = v
	case CategorySubcontracts:
		t.Subcontracts = v
	case CategorySmallToolsConsumables:
		t.SmallToolsConsumables = v
	default:
		t.Other = v
	}
}

// ApproxEqual reports whether a and b agree within rel relative tolerance.
// Values whose magnitude is below 1 are compared absolutely against rel.
func ApproxEqual(a, b, rel float64) bool {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		scale = 1
	}
	return math.Abs(a-b) <= rel*scale
}
