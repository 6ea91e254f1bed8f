package match

import (
	"testing"

	"github.com/plantqa/qamatrix/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serialPtr(id core.ConcernID) *core.ConcernID {
	return &id
}

func TestAggregateQuantityInvariant(t *testing.T) {
	// Sum of repeat counts plus quantities of unmatched defects must equal
	// the total quantity of all input defects.
	concerns := testCatalog()
	defects := []core.Defect{
		{Description: "belt loose", Quantity: 2},
		{Description: "brake noise", Quantity: 4},
		{Description: "gibberish", Quantity: 3},
		{Description: "paint crack", Quantity: 1},
	}
	matches := []core.MatchResult{
		{DefectIndex: 0, MatchedSerial: serialPtr(1), Confidence: 0.8},
		{DefectIndex: 1, MatchedSerial: serialPtr(2), Confidence: 0.5},
		{DefectIndex: 2, Confidence: 0},
		{DefectIndex: 3, MatchedSerial: serialPtr(3), Confidence: 0.1}, // below threshold
	}

	aggregated, unmatched := Aggregate(matches, defects, concerns, 0.3)

	total := 0
	for _, d := range defects {
		total += d.Quantity
	}
	sum := 0
	for _, g := range aggregated {
		sum += g.RepeatCount
	}
	for _, d := range unmatched {
		sum += d.Quantity
	}
	assert.Equal(t, total, sum)
	assert.Len(t, unmatched, 2)
}

func TestAggregateRepeatCountAndAverage(t *testing.T) {
	concerns := []core.Concern{{SerialNo: 7, Text: "torque error rear axle"}}
	defects := []core.Defect{
		{Description: "torque low", Quantity: 3},
		{Description: "tightening wrong", Quantity: 5},
	}
	matches := []core.MatchResult{
		{DefectIndex: 0, MatchedSerial: serialPtr(7), Confidence: 0.8},
		{DefectIndex: 1, MatchedSerial: serialPtr(7), Confidence: 0.6},
	}

	aggregated, unmatched := Aggregate(matches, defects, concerns, 0.3)
	require.Len(t, aggregated, 1)
	assert.Empty(t, unmatched)

	group := aggregated[0]
	assert.Equal(t, core.ConcernID(7), group.SerialNo)
	assert.Equal(t, "torque error rear axle", group.Concern)
	assert.Equal(t, 8, group.RepeatCount)
	assert.InDelta(t, 0.7, group.AvgConfidence, 1e-9)
	assert.Len(t, group.DefectEntries, 2)
}

func TestAggregateOrdersByRepeatCountDescending(t *testing.T) {
	concerns := []core.Concern{
		{SerialNo: 1, Text: "one"},
		{SerialNo: 2, Text: "two"},
		{SerialNo: 3, Text: "three"},
	}
	defects := []core.Defect{
		{Description: "a", Quantity: 1},
		{Description: "b", Quantity: 5},
		{Description: "c", Quantity: 2},
	}
	matches := []core.MatchResult{
		{DefectIndex: 0, MatchedSerial: serialPtr(1), Confidence: 0.9},
		{DefectIndex: 1, MatchedSerial: serialPtr(2), Confidence: 0.9},
		{DefectIndex: 2, MatchedSerial: serialPtr(3), Confidence: 0.9},
	}

	aggregated, _ := Aggregate(matches, defects, concerns, 0.3)
	require.Len(t, aggregated, 3)
	assert.Equal(t, core.ConcernID(2), aggregated[0].SerialNo)
	assert.Equal(t, core.ConcernID(3), aggregated[1].SerialNo)
	assert.Equal(t, core.ConcernID(1), aggregated[2].SerialNo)
}

func TestAggregateTiesKeepEncounterOrder(t *testing.T) {
	concerns := []core.Concern{
		{SerialNo: 10, Text: "first seen"},
		{SerialNo: 20, Text: "second seen"},
	}
	defects := []core.Defect{
		{Description: "a", Quantity: 2},
		{Description: "b", Quantity: 2},
	}
	matches := []core.MatchResult{
		{DefectIndex: 0, MatchedSerial: serialPtr(10), Confidence: 0.5},
		{DefectIndex: 1, MatchedSerial: serialPtr(20), Confidence: 0.5},
	}

	aggregated, _ := Aggregate(matches, defects, concerns, 0.3)
	require.Len(t, aggregated, 2)
	assert.Equal(t, core.ConcernID(10), aggregated[0].SerialNo)
	assert.Equal(t, core.ConcernID(20), aggregated[1].SerialNo)
}

func TestAggregateZeroQuantityCountsAsOne(t *testing.T) {
	concerns := []core.Concern{{SerialNo: 1, Text: "one"}}
	defects := []core.Defect{{Description: "a", Quantity: 0}}
	matches := []core.MatchResult{
		{DefectIndex: 0, MatchedSerial: serialPtr(1), Confidence: 0.9},
	}

	aggregated, _ := Aggregate(matches, defects, concerns, 0.3)
	require.Len(t, aggregated, 1)
	assert.Equal(t, 1, aggregated[0].RepeatCount)
}

func TestAggregateSkipsOutOfRangeIndices(t *testing.T) {
	concerns := []core.Concern{{SerialNo: 1, Text: "one"}}
	defects := []core.Defect{{Description: "a", Quantity: 1}}
	matches := []core.MatchResult{
		{DefectIndex: 5, MatchedSerial: serialPtr(1), Confidence: 0.9},
		{DefectIndex: -1, MatchedSerial: serialPtr(1), Confidence: 0.9},
		{DefectIndex: 0, MatchedSerial: serialPtr(1), Confidence: 0.9},
	}

	aggregated, unmatched := Aggregate(matches, defects, concerns, 0.3)
	require.Len(t, aggregated, 1)
	assert.Empty(t, unmatched)
	assert.Equal(t, 1, aggregated[0].RepeatCount)
}
