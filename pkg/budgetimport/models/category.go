package models

import "fmt"

// Category is a canonical budget category. The set is fixed.
type Category int

const (
	CategoryLabor Category = iota
	CategoryMaterials
	CategoryEquipment
	CategorySubcontracts
	CategorySmallToolsConsumables
	CategoryOther
)

// Categories lists every category in reporting order.
var Categories = []Category{
	CategoryLabor,
	CategoryMaterials,
	CategoryEquipment,
	CategorySubcontracts,
	CategorySmallToolsConsumables,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryLabor:                 "labor",
	CategoryMaterials:             "materials",
	CategoryEquipment:             "equipment",
	CategorySubcontracts:          "subcontracts",
	CategorySmallToolsConsumables: "small_tools_consumables",
	CategoryOther:                 "other",
}

func (c Category) String() string {
	if s, ok := categoryLabels[c]; ok {
		return s
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// MarshalText encodes the category as its snake_case label.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a snake_case label.
func (c *Category) UnmarshalText(b []byte) error {
	for k, v := range categoryLabels {
		if v == string(b) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", string(b))
}
