// Package mock provides test double implementations of AI service interfaces.
//
// The package contains a mock implementation of ai.ConcernMatcher for use in
// unit tests. It allows tests to run without an external matching service and
// enables controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	matcher := mock.NewMockMatcher()
//	results, err := matcher.MatchBatch(ctx, concerns, defects, 0)
//
//	// Custom behavior injection
//	matcher.MatchBatchFunc = func(ctx context.Context, concerns []core.Concern, defects []core.Defect, indexOffset int) ([]core.MatchResult, error) {
//	    return nil, errors.New("service down")
//	}
//
//	// Check call counts
//	count := matcher.CallCount()
//
// The default behavior matches every defect to the first catalog concern with
// confidence 0.9, which is enough to drive aggregation paths in tests.
package mock

import (
	"context"
	"fmt"

	"github.com/plantqa/qamatrix/core"
)

// MockMatcher is a test double for ai.ConcernMatcher.
// It allows custom behavior injection via function fields.
type MockMatcher struct {
	// MatchBatchFunc is called by MatchBatch if set.
	// If nil, uses default deterministic behavior.
	MatchBatchFunc func(ctx context.Context, concerns []core.Concern, defects []core.Defect, indexOffset int) ([]core.MatchResult, error)

	callCount int
}

// NewMockMatcher creates a mock matcher with default deterministic behavior.
// Note: Returns concrete type to allow behavior injection and call-count
// assertions in tests.
func NewMockMatcher() *MockMatcher {
	return &MockMatcher{}
}

// MatchBatch matches every defect to the first catalog concern with
// confidence 0.9, or delegates to MatchBatchFunc when set.
func (m *MockMatcher) MatchBatch(ctx context.Context, concerns []core.Concern, defects []core.Defect, indexOffset int) ([]core.MatchResult, error) {
	m.callCount++

	if m.MatchBatchFunc != nil {
		return m.MatchBatchFunc(ctx, concerns, defects, indexOffset)
	}

	results := make([]core.MatchResult, 0, len(defects))
	for i := range defects {
		result := core.MatchResult{
			DefectIndex: indexOffset + i,
			Confidence:  0.9,
			Method:      core.MethodRemote,
		}
		if len(concerns) > 0 {
			serial := concerns[0].SerialNo
			result.MatchedSerial = &serial
			result.Reason = fmt.Sprintf("mock match to concern %d", serial)
		} else {
			result.Reason = "mock: empty catalog"
			result.Confidence = 0
		}
		results = append(results, result)
	}
	return results, nil
}

// CallCount returns the number of times MatchBatch was called.
func (m *MockMatcher) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockMatcher) Reset() {
	m.callCount = 0
	m.MatchBatchFunc = nil
}
