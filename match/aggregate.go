package match

import (
	"log/slog"
	"sort"

	"github.com/plantqa/qamatrix/core"
)

// DefaultConfidenceThreshold is the minimum confidence for a match to count
// toward a concern's repeat total during aggregation.
const DefaultConfidenceThreshold = 0.3

// Aggregate groups accepted matches (confidence >= confidenceThreshold and a
// concern present) by concern serial. Each group's repeat count is the sum of
// the originating defects' quantities and its average confidence is the mean
// over exactly the accepted matches. Rejected or absent matches route their
// defect into the returned unmatched list. Groups come back ordered by repeat
// count descending; ties keep encounter order.
func Aggregate(matches []core.MatchResult, defects []core.Defect, concerns []core.Concern, confidenceThreshold float64) ([]core.AggregatedMatch, []core.Defect) {
	concernText := make(map[core.ConcernID]string, len(concerns))
	for _, c := range concerns {
		concernText[c.SerialNo] = c.Text
	}

	grouped := make(map[core.ConcernID]*core.AggregatedMatch)
	confidenceSums := make(map[core.ConcernID]float64)
	acceptedCounts := make(map[core.ConcernID]int)
	var order []core.ConcernID
	unmatched := make([]core.Defect, 0)

	for _, m := range matches {
		if m.DefectIndex < 0 || m.DefectIndex >= len(defects) {
			continue // cannot attribute a quantity to an unknown defect
		}
		defect := defects[m.DefectIndex]
		quantity := defect.Quantity
		if quantity < 1 {
			quantity = 1
		}

		if !m.Matched() || m.Confidence < confidenceThreshold {
			unmatched = append(unmatched, defect)
			continue
		}

		serial := *m.MatchedSerial
		group, ok := grouped[serial]
		if !ok {
			group = &core.AggregatedMatch{
				SerialNo: serial,
				Concern:  concernText[serial],
			}
			grouped[serial] = group
			order = append(order, serial)
		}
		group.DefectEntries = append(group.DefectEntries, defect)
		group.RepeatCount += quantity
		confidenceSums[serial] += m.Confidence
		acceptedCounts[serial]++
	}

	aggregated := make([]core.AggregatedMatch, 0, len(order))
	for _, serial := range order {
		group := grouped[serial]
		if n := acceptedCounts[serial]; n > 0 {
			group.AvgConfidence = round3(confidenceSums[serial] / float64(n))
		}
		aggregated = append(aggregated, *group)
	}

	sort.SliceStable(aggregated, func(i, j int) bool {
		return aggregated[i].RepeatCount > aggregated[j].RepeatCount
	})

	slog.Debug("aggregation complete",
		"concerns", len(aggregated),
		"unmatched", len(unmatched),
		"threshold", confidenceThreshold)

	return aggregated, unmatched
}
