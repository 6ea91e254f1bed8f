package ingestion

import (
	"fmt"

	"github.com/plantqa/qamatrix/core"
)

// ValidationResult collects per-row findings from a report validation pass.
// Errors disqualify a row; warnings flag suspicious values that are kept.
type ValidationResult struct {
	Errors   []string
	Warnings []string
	Valid    int
}

// OK reports whether the pass found no disqualifying rows.
func (v *ValidationResult) OK() bool {
	return len(v.Errors) == 0
}

// Validate checks every defect record and splits them into kept records and
// findings. Rows failing core validation are dropped with an error entry;
// unknown sources and out-of-domain gravities are kept with a warning.
func Validate(defects []core.Defect) ([]core.Defect, *ValidationResult) {
	result := &ValidationResult{}
	kept := make([]core.Defect, 0, len(defects))

	for i, d := range defects {
		if err := core.ValidateDefect(&d); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if d.Source != "" && !core.ValidSource(d.Source) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: unknown source %q", i+1, d.Source))
		}
		kept = append(kept, d)
		result.Valid++
	}

	return kept, result
}
