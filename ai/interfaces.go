package ai

import (
	"context"

	"github.com/plantqa/qamatrix/core"
)

// ConcernMatcher matches batches of defect reports against the concern
// catalog using an external semantic-matching service.
// Implementations must be thread-safe for concurrent use.
type ConcernMatcher interface {
	// MatchBatch submits one batch of defects together with the full concern
	// catalog and returns the service's structured matches. indexOffset is
	// added to each defect's position within the batch so that returned
	// results carry global defect indices.
	//
	// The contract does not guarantee full coverage: the service may omit
	// indices, and callers are responsible for noticing gaps. Any transport,
	// protocol, rate-limit, quota, or payload-shape failure is returned as
	// an error; the caller decides how to degrade.
	MatchBatch(ctx context.Context, concerns []core.Concern, defects []core.Defect, indexOffset int) ([]core.MatchResult, error)
}
