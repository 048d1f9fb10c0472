// Package budgetimport imports construction budget workbooks and validates
// their detail sheets against the summary sheet.
package budgetimport

import (
	"fmt"
	"os"

	"github.com/ukaji3/budgetimport-go/pkg/budgetimport/validate"
	"gopkg.in/yaml.v3"
)

// Default sheet names.
const (
	DefaultSummarySheet   = "SUMMARY"
	DefaultStructureSheet = "STRUCTURE"
)

// Options configures import behavior.
type Options struct {
	// SummarySheet is the name of the mandatory summary sheet.
	SummarySheet string `yaml:"summary_sheet"`
	// StructureSheet is the name of the optional discipline structure sheet.
	StructureSheet string `yaml:"structure_sheet"`
	// ValidateDetails specifies whether detail sheets are read and validated.
	// If nil, defaults to true.
	ValidateDetails *bool `yaml:"validate_details"`
	// Validation holds tolerances and ratio bands for cross-sheet checks.
	Validation validate.Config `yaml:"validation"`
}

// DefaultOptions returns default import options.
func DefaultOptions() Options {
	opts := Options{}
	opts.applyDefaults()
	return opts
}

// ShouldValidateDetails returns whether detail sheets are read and validated.
func (o Options) ShouldValidateDetails() bool {
	if o.ValidateDetails != nil {
		return *o.ValidateDetails
	}
	return true
}

func (o *Options) applyDefaults() {
	def := validate.DefaultConfig()
	if o.SummarySheet == "" {
		o.SummarySheet = DefaultSummarySheet
	}
	if o.StructureSheet == "" {
		o.StructureSheet = DefaultStructureSheet
	}
	if o.Validation.AbsTolerance == 0 {
		o.Validation.AbsTolerance = def.AbsTolerance
	}
	if o.Validation.RelTolerance == 0 {
		o.Validation.RelTolerance = def.RelTolerance
	}
	if o.Validation.Bands == nil {
		o.Validation.Bands = make(map[string]validate.Band)
	}
	for name, band := range def.Bands {
		if _, ok := o.Validation.Bands[name]; !ok {
			o.Validation.Bands[name] = band
		}
	}
}

// LoadOptions reads a YAML options file. Fields left out keep their defaults.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading options file: %w", err)
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing options file: %w", err)
	}
	opts.applyDefaults()
	return opts, nil
}
