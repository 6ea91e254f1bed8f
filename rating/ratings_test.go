package rating

import (
	"testing"

	"github.com/plantqa/qamatrix/core"
	"github.com/stretchr/testify/assert"
)

func TestMFGRatingExcludesResidualTorque(t *testing.T) {
	trim := map[string]int{"T10": 1, "T20": 2}
	chassis := map[string]int{"C10": 3}
	final := map[string]int{"F10": 4, "ResidualTorque": 5}

	assert.Equal(t, 10, MFGRating(trim, chassis, final))
}

func TestMFGRatingEmptyMaps(t *testing.T) {
	assert.Equal(t, 0, MFGRating(nil, nil, nil))
}

func TestQualityRating(t *testing.T) {
	assert.Equal(t, 6, QualityRating(map[string]int{"visual_control_1_2": 1, "auto_control_5_1": 5}))
	assert.Equal(t, 0, QualityRating(nil))
}

func TestPlantRatingIncludesResidualTorque(t *testing.T) {
	final := map[string]int{"F10": 9, "ResidualTorque": 5}
	qControl := map[string]int{"auto_control_5_1": 5}
	qDetail := map[string]int{"SHOWER": 1}

	assert.Equal(t, 11, PlantRating(final, qControl, qDetail))
}

func TestStatuses(t *testing.T) {
	tests := []struct {
		name          string
		defectRating  int
		mfgRating     int
		plantRating   int
		hasRecurrence bool
		wantWS        core.Status
		wantMFG       core.Status
		wantPlant     core.Status
	}{
		{"all covered", 3, 5, 5, false, core.StatusOK, core.StatusOK, core.StatusOK},
		{"recurrence forces workstation NG", 3, 5, 5, true, core.StatusNG, core.StatusOK, core.StatusOK},
		{"mfg short", 5, 3, 5, false, core.StatusNG, core.StatusNG, core.StatusOK},
		{"plant short", 3, 3, 1, false, core.StatusOK, core.StatusOK, core.StatusNG},
		{"rating equals severity", 5, 5, 5, false, core.StatusOK, core.StatusOK, core.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, mfg, plant := Statuses(tt.defectRating, tt.mfgRating, tt.plantRating, tt.hasRecurrence)
			assert.Equal(t, tt.wantWS, ws)
			assert.Equal(t, tt.wantMFG, mfg)
			assert.Equal(t, tt.wantPlant, plant)
		})
	}
}

func TestRecalculate(t *testing.T) {
	entry := core.MatrixEntry{
		SerialNo:     1,
		Concern:      "seat belt loose LH",
		DefectRating: 3,
		Weekly:       core.WeeklyRecurrence{0, 1, 0, 0, 2, 0},
		Trim:         map[string]int{"T10": 1},
		Chassis:      map[string]int{"C10": 1},
		Final:        map[string]int{"F10": 1, "ResidualTorque": 5},
		QControl:     map[string]int{"auto_control_5_1": 5},
	}

	Recalculate(&entry)

	assert.Equal(t, core.ControlRating{MFG: 3, Quality: 5, Plant: 10}, entry.Rating)
	assert.Equal(t, 3, entry.Recurrence)
	assert.Equal(t, 6, entry.RecurrencePlusDefect)
	assert.Equal(t, core.StatusNG, entry.WorkstationStatus, "recurrence exists")
	assert.Equal(t, core.StatusOK, entry.MFGStatus)
	assert.Equal(t, core.StatusOK, entry.PlantStatus)
}

func TestRecalculateAllSummary(t *testing.T) {
	entries := []core.MatrixEntry{
		{Concern: "a", DefectRating: 5, Final: map[string]int{"F10": 1}},
		{Concern: "b", DefectRating: 1, Trim: map[string]int{"T10": 3},
			QControl: map[string]int{"auto_control_5_1": 5}},
	}

	summary := RecalculateAll(entries)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.MFGNG)
	assert.Equal(t, 1, summary.PlantNG)
	assert.Equal(t, 1, summary.Critical, "severity-5 plant NG counts as critical")
}

func TestReportGroupsByDesignation(t *testing.T) {
	entries := []core.MatrixEntry{
		{Concern: "a", Designation: "trim", DefectRating: 3, PlantStatus: core.StatusNG,
			MFGStatus: core.StatusOK, WorkstationStatus: core.StatusNG, Recurrence: 2},
		{Concern: "b", Designation: "trim", DefectRating: 5, PlantStatus: core.StatusOK,
			MFGStatus: core.StatusNG, WorkstationStatus: core.StatusOK, Recurrence: 0},
		{Concern: "c", Designation: "chassis", DefectRating: 1, PlantStatus: core.StatusOK,
			MFGStatus: core.StatusOK, WorkstationStatus: core.StatusOK, Recurrence: 1},
	}

	report := Report(entries)
	assert.Len(t, report, 2)

	assert.Equal(t, "chassis", report[0].Designation)
	assert.Equal(t, 1, report[0].TotalConcerns)

	trim := report[1]
	assert.Equal(t, "trim", trim.Designation)
	assert.Equal(t, 2, trim.TotalConcerns)
	assert.Equal(t, 1, trim.PlantNG)
	assert.Equal(t, 1, trim.MFGNG)
	assert.Equal(t, 1, trim.WorkstationNG)
	assert.Equal(t, 4.0, trim.AvgDefectRating)
	assert.Equal(t, 2, trim.TotalRecurrence)
	assert.Equal(t, 50.0, trim.PlantNGPct)
}
