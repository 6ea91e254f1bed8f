package ingestion

import (
	"github.com/plantqa/qamatrix/core"
)

// Deduplicate merges report rows sharing the same code/location/description
// identity, summing their quantities. The first occurrence keeps its other
// fields; output preserves first-seen order.
func Deduplicate(defects []core.Defect) []core.Defect {
	index := make(map[core.ID]int, len(defects))
	merged := make([]core.Defect, 0, len(defects))

	for _, d := range defects {
		id := core.IDFromContent(d.DedupKey())
		if at, seen := index[id]; seen {
			merged[at].Quantity += d.Quantity
			continue
		}
		index[id] = len(merged)
		merged = append(merged, d)
	}
	return merged
}

// SplitBySource groups defects by their source system, preserving row order
// within each group.
func SplitBySource(defects []core.Defect) map[string][]core.Defect {
	groups := make(map[string][]core.Defect)
	for _, d := range defects {
		groups[d.Source] = append(groups[d.Source], d)
	}
	return groups
}
