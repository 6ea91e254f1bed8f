package match

import (
	"context"
	"errors"
	"testing"

	"github.com/plantqa/qamatrix/ai/mock"
	"github.com/plantqa/qamatrix/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteMatcherEmptyInputs(t *testing.T) {
	m := NewRemoteMatcher(mock.NewMockMatcher(), nil, 0)

	_, _, err := m.Match(context.Background(), []core.Defect{{Description: "x"}}, nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, _, err = m.Match(context.Background(), nil, testCatalog())
	assert.ErrorIs(t, err, ErrNoDefects)
}

func TestRemoteMatcherUsesService(t *testing.T) {
	service := mock.NewMockMatcher()
	m := NewRemoteMatcher(service, nil, 0)
	defects := []core.Defect{
		{Description: "belt loose", Quantity: 1},
		{Description: "paint crack", Quantity: 2},
	}

	results, stats, err := m.Match(context.Background(), defects, testCatalog())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 1, service.CallCount())
	assert.Equal(t, BatchStats{RemoteBatches: 1}, stats)
	for i, r := range results {
		assert.Equal(t, i, r.DefectIndex)
		assert.Equal(t, core.MethodRemote, r.Method)
	}
}

func TestRemoteMatcherFallbackEqualsLocal(t *testing.T) {
	// A forced service failure must reproduce the lexical matcher's output
	// exactly for the failing batch.
	service := mock.NewMockMatcher()
	service.MatchBatchFunc = func(ctx context.Context, concerns []core.Concern, defects []core.Defect, indexOffset int) ([]core.MatchResult, error) {
		return nil, errors.New("429 rate limited")
	}

	local := NewLocalMatcher(nil, 0)
	m := NewRemoteMatcher(service, local, 0)
	defects := []core.Defect{
		{Description: "belt insecure left front", Location: "t10", Quantity: 2},
		{Description: "scratched painting door", Location: "p2", Quantity: 1},
	}

	remoteResults, stats, err := m.Match(context.Background(), defects, testCatalog())
	require.NoError(t, err)
	assert.Equal(t, BatchStats{FallbackBatches: 1}, stats)

	localResults, err := local.Match(defects, testCatalog())
	require.NoError(t, err)
	assert.Equal(t, localResults, remoteResults)
}

func TestRemoteMatcherBatching(t *testing.T) {
	var offsets []int
	service := mock.NewMockMatcher()
	service.MatchBatchFunc = func(ctx context.Context, concerns []core.Concern, defects []core.Defect, indexOffset int) ([]core.MatchResult, error) {
		offsets = append(offsets, indexOffset)
		results := make([]core.MatchResult, len(defects))
		for i := range defects {
			results[i] = core.MatchResult{DefectIndex: indexOffset + i, Method: core.MethodRemote}
		}
		return results, nil
	}

	m := NewRemoteMatcher(service, nil, 2)
	defects := make([]core.Defect, 5)
	for i := range defects {
		defects[i] = core.Defect{Description: "belt loose", Quantity: 1}
	}

	results, stats, err := m.Match(context.Background(), defects, testCatalog())
	require.NoError(t, err)
	require.Len(t, results, 5)

	assert.Equal(t, 3, service.CallCount())
	assert.Equal(t, []int{0, 2, 4}, offsets)
	assert.Equal(t, BatchStats{RemoteBatches: 3}, stats)
}

func TestRemoteMatcherPartialFallback(t *testing.T) {
	// Only the middle batch fails; the other batches keep their service
	// results.
	service := mock.NewMockMatcher()
	serial := core.ConcernID(1)
	service.MatchBatchFunc = func(ctx context.Context, concerns []core.Concern, defects []core.Defect, indexOffset int) ([]core.MatchResult, error) {
		if indexOffset == 2 {
			return nil, errors.New("boom")
		}
		results := make([]core.MatchResult, len(defects))
		for i := range defects {
			results[i] = core.MatchResult{
				DefectIndex:   indexOffset + i,
				MatchedSerial: &serial,
				Confidence:    0.9,
				Method:        core.MethodRemote,
			}
		}
		return results, nil
	}

	m := NewRemoteMatcher(service, nil, 2)
	defects := make([]core.Defect, 6)
	for i := range defects {
		defects[i] = core.Defect{Description: "belt insecure left front", Location: "t10", Quantity: 1}
	}

	results, stats, err := m.Match(context.Background(), defects, testCatalog())
	require.NoError(t, err)
	require.Len(t, results, 6)

	assert.Equal(t, BatchStats{RemoteBatches: 2, FallbackBatches: 1}, stats)
	assert.Equal(t, core.MethodRemote, results[0].Method)
	assert.Equal(t, core.MethodLocal, results[2].Method)
	assert.Equal(t, core.MethodLocal, results[3].Method)
	assert.Equal(t, core.MethodRemote, results[4].Method)
}

func TestRemoteMatcherFillsOmittedIndices(t *testing.T) {
	// The service answers only the first defect of the batch; the rest must
	// come back as explicit unmatched remote results.
	service := mock.NewMockMatcher()
	serial := core.ConcernID(2)
	service.MatchBatchFunc = func(ctx context.Context, concerns []core.Concern, defects []core.Defect, indexOffset int) ([]core.MatchResult, error) {
		return []core.MatchResult{
			{DefectIndex: indexOffset, MatchedSerial: &serial, Confidence: 0.8, Method: core.MethodRemote},
		}, nil
	}

	m := NewRemoteMatcher(service, nil, 0)
	defects := []core.Defect{
		{Description: "brake noise", Quantity: 1},
		{Description: "belt loose", Quantity: 1},
		{Description: "paint crack", Quantity: 1},
	}

	results, _, err := m.Match(context.Background(), defects, testCatalog())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Matched())
	for _, r := range results[1:] {
		assert.False(t, r.Matched())
		assert.Equal(t, 0.0, r.Confidence)
		assert.Equal(t, core.MethodRemote, r.Method)
	}
}

func TestRemoteMatcherResultsOrderedByIndex(t *testing.T) {
	// Service returns batch results in reverse order; output must still be
	// ordered by defect index.
	service := mock.NewMockMatcher()
	service.MatchBatchFunc = func(ctx context.Context, concerns []core.Concern, defects []core.Defect, indexOffset int) ([]core.MatchResult, error) {
		results := make([]core.MatchResult, 0, len(defects))
		for i := len(defects) - 1; i >= 0; i-- {
			results = append(results, core.MatchResult{DefectIndex: indexOffset + i, Method: core.MethodRemote})
		}
		return results, nil
	}

	m := NewRemoteMatcher(service, nil, 0)
	defects := make([]core.Defect, 4)
	for i := range defects {
		defects[i] = core.Defect{Description: "belt loose", Quantity: 1}
	}

	results, _, err := m.Match(context.Background(), defects, testCatalog())
	require.NoError(t, err)
	for i, r := range results {
		assert.Equal(t, i, r.DefectIndex)
	}
}
