package rating

import (
	"testing"

	"github.com/plantqa/qamatrix/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRepeats(t *testing.T) {
	entries := []core.MatrixEntry{
		{SerialNo: 1, Concern: "seat belt loose", DefectRating: 3},
		{SerialNo: 2, Concern: "brake noise", DefectRating: 1},
	}
	aggregated := []core.AggregatedMatch{
		{SerialNo: 1, RepeatCount: 4},
		{SerialNo: 99, RepeatCount: 2}, // no matrix entry
	}

	updated := RecordRepeats(entries, aggregated)
	assert.Equal(t, 1, updated)

	assert.Equal(t, 4, entries[0].Weekly[core.WeeklyWindow-1], "quantity lands in W-1")
	assert.Equal(t, 4, entries[0].Recurrence)
	assert.Equal(t, 7, entries[0].RecurrencePlusDefect)
	assert.Equal(t, core.StatusNG, entries[0].WorkstationStatus)

	assert.Equal(t, 0, entries[1].Weekly.Total(), "unmatched entry untouched")
}

func TestRecordRepeatsAccumulates(t *testing.T) {
	entries := []core.MatrixEntry{
		{SerialNo: 1, Concern: "belt", DefectRating: 1,
			Weekly: core.WeeklyRecurrence{0, 0, 0, 0, 0, 2}},
	}

	RecordRepeats(entries, []core.AggregatedMatch{{SerialNo: 1, RepeatCount: 3}})
	assert.Equal(t, 5, entries[0].Weekly[core.WeeklyWindow-1])
}

func TestShiftAll(t *testing.T) {
	entries := []core.MatrixEntry{
		{SerialNo: 1, Concern: "belt", DefectRating: 1,
			Weekly: core.WeeklyRecurrence{6, 5, 4, 3, 2, 1}},
	}

	ShiftAll(entries)

	assert.Equal(t, core.WeeklyRecurrence{5, 4, 3, 2, 1, 0}, entries[0].Weekly)
	assert.Equal(t, 15, entries[0].Recurrence, "recalculated after shift")
}

func TestAnalyzeTrend(t *testing.T) {
	tests := []struct {
		name   string
		weekly core.WeeklyRecurrence
		want   string
	}{
		{"empty window", core.WeeklyRecurrence{}, TrendInactive},
		{"first hit last week", core.WeeklyRecurrence{0, 0, 0, 0, 0, 3}, TrendNewSpike},
		{"worsening", core.WeeklyRecurrence{1, 0, 1, 2, 4, 5}, TrendIncreasing},
		{"improving", core.WeeklyRecurrence{5, 4, 6, 1, 1, 0}, TrendDecreasing},
		{"steady", core.WeeklyRecurrence{2, 2, 2, 2, 2, 2}, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AnalyzeTrend(tt.weekly).Direction)
		})
	}
}
