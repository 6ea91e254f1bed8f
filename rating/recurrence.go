package rating

import (
	"log/slog"

	"github.com/plantqa/qamatrix/core"
)

// RecordRepeats folds aggregated match results into the W-1 bucket of the
// matching entries and recalculates them. Serials without a matrix entry are
// skipped. Returns the number of entries updated.
func RecordRepeats(entries []core.MatrixEntry, aggregated []core.AggregatedMatch) int {
	bySerial := make(map[core.ConcernID]*core.MatrixEntry, len(entries))
	for i := range entries {
		bySerial[entries[i].SerialNo] = &entries[i]
	}

	updated := 0
	for _, group := range aggregated {
		entry, ok := bySerial[group.SerialNo]
		if !ok {
			slog.Warn("aggregated match has no matrix entry", "serial", group.SerialNo)
			continue
		}
		entry.Weekly[core.WeeklyWindow-1] += group.RepeatCount
		Recalculate(entry)
		updated++
	}

	slog.Debug("repeats recorded", "groups", len(aggregated), "updated", updated)
	return updated
}

// ShiftAll advances every entry's weekly window by one week and
// recalculates. Called at the start of a new reporting week.
func ShiftAll(entries []core.MatrixEntry) {
	for i := range entries {
		entries[i].Weekly = entries[i].Weekly.Shift()
		Recalculate(&entries[i])
	}
	slog.Debug("weekly windows shifted", "entries", len(entries))
}

// Trend labels for a concern's weekly window.
const (
	TrendInactive   = "inactive"
	TrendNewSpike   = "new_spike"
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Trend is the direction of a concern's weekly recurrence with a coarse
// attention level.
type Trend struct {
	Direction string
	Severity  string
}

// AnalyzeTrend classifies the weekly window by comparing the last two weeks
// against the oldest three. A single hit in W-1 after an otherwise empty
// window counts as a fresh spike rather than a trend.
func AnalyzeTrend(weekly core.WeeklyRecurrence) Trend {
	if !weekly.HasRecurrence() {
		return Trend{Direction: TrendInactive, Severity: "none"}
	}

	if weekly[core.WeeklyWindow-1] > 0 {
		fresh := true
		for _, count := range weekly[:core.WeeklyWindow-1] {
			if count > 0 {
				fresh = false
				break
			}
		}
		if fresh {
			return Trend{Direction: TrendNewSpike, Severity: "watch"}
		}
	}

	recent := float64(weekly[4]+weekly[5]) / 2
	older := float64(weekly[0]+weekly[1]+weekly[2]) / 3

	switch {
	case recent > older*1.5:
		return Trend{Direction: TrendIncreasing, Severity: "high"}
	case recent < older*0.5:
		return Trend{Direction: TrendDecreasing, Severity: "low"}
	default:
		return Trend{Direction: TrendStable, Severity: "medium"}
	}
}
