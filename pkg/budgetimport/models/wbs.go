package models

// WbsNode is a work breakdown structure node. Trees have at most two levels.
type WbsNode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	// Demo marks a demolition sub-discipline whose cost rolls into its parent.
	Demo bool `json:"demo,omitempty"`
	// Total is the node's budget, including children for parent nodes.
	Total    float64   `json:"total"`
	Children []WbsNode `json:"children,omitempty"`
}

// StructureEntry is one row of the discipline structure sheet.
type StructureEntry struct {
	Code       string `json:"code"`
	Discipline string `json:"discipline"`
	Parent     string `json:"parent,omitempty"`
	Demo       bool   `json:"demo,omitempty"`
}

// DisciplineRef is a discipline observed on the summary sheet.
type DisciplineRef struct {
	Name string `json:"name"`
	// Code is the discipline number, when the sheet carries one.
	Code string `json:"code,omitempty"`
}
