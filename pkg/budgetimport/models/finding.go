package models

import "fmt"

// Severity grades a validation finding.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// MarshalText encodes the severity as its lowercase name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ValidationFinding is one cross-sheet validation result.
type ValidationFinding struct {
	Sheet    string   `json:"sheet"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	// BudgetValue is the summary sheet figure, when one applies.
	BudgetValue *float64 `json:"budget_value,omitempty"`
	// DetailValue is the detail sheet figure, when one applies.
	DetailValue *float64 `json:"detail_value,omitempty"`
}
