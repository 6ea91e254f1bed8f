package rating

import (
	"math"
	"sort"

	"github.com/plantqa/qamatrix/core"
)

// DesignationSummary rolls up statuses and recurrence per manufacturing
// area designation.
type DesignationSummary struct {
	Designation     string
	TotalConcerns   int
	PlantNG         int
	MFGNG           int
	WorkstationNG   int
	AvgDefectRating float64
	TotalRecurrence int
	PlantNGPct      float64
}

// Report groups entries by designation and summarizes their verdicts.
// Groups come back sorted by designation for stable output.
func Report(entries []core.MatrixEntry) []DesignationSummary {
	grouped := make(map[string]*DesignationSummary)
	ratingSums := make(map[string]int)

	for i := range entries {
		entry := &entries[i]
		summary, ok := grouped[entry.Designation]
		if !ok {
			summary = &DesignationSummary{Designation: entry.Designation}
			grouped[entry.Designation] = summary
		}

		summary.TotalConcerns++
		summary.TotalRecurrence += entry.Recurrence
		ratingSums[entry.Designation] += entry.DefectRating
		if entry.PlantStatus == core.StatusNG {
			summary.PlantNG++
		}
		if entry.MFGStatus == core.StatusNG {
			summary.MFGNG++
		}
		if entry.WorkstationStatus == core.StatusNG {
			summary.WorkstationNG++
		}
	}

	report := make([]DesignationSummary, 0, len(grouped))
	for designation, summary := range grouped {
		summary.AvgDefectRating = round1(float64(ratingSums[designation]) / float64(summary.TotalConcerns))
		summary.PlantNGPct = round1(float64(summary.PlantNG) / float64(summary.TotalConcerns) * 100)
		report = append(report, *summary)
	}

	sort.Slice(report, func(i, j int) bool {
		return report[i].Designation < report[j].Designation
	})
	return report
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
