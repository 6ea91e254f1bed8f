// Copyright 2025 Plant QA Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package match

import (
	"context"
	"log/slog"
	"sort"

	"github.com/plantqa/qamatrix/ai"
	"github.com/plantqa/qamatrix/core"
)

// DefaultBatchSize is the maximum number of defects sent to the matching
// service in one request.
const DefaultBatchSize = 200

// BatchStats reports how each batch of a remote matching run was resolved.
type BatchStats struct {
	// RemoteBatches is the number of batches answered by the service.
	RemoteBatches int

	// FallbackBatches is the number of batches resolved by the lexical
	// matcher after a service failure.
	FallbackBatches int
}

// RemoteMatcher drives the external semantic-matching service in batches and
// degrades per batch to lexical matching on any service failure. It never
// propagates a service error to the caller: the only error conditions are an
// empty catalog or an empty defect list.
type RemoteMatcher struct {
	service   ai.ConcernMatcher
	local     *LocalMatcher
	batchSize int
	logger    *slog.Logger
}

// NewRemoteMatcher creates a RemoteMatcher. A nil local matcher selects a
// default-configured LocalMatcher for fallback; a non-positive batch size
// selects DefaultBatchSize.
func NewRemoteMatcher(service ai.ConcernMatcher, local *LocalMatcher, batchSize int) *RemoteMatcher {
	if local == nil {
		local = NewLocalMatcher(nil, 0)
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &RemoteMatcher{
		service:   service,
		local:     local,
		batchSize: batchSize,
		logger:    slog.Default().With("component", "remote-matcher"),
	}
}

// Match resolves every defect against the catalog, preferring the semantic
// service batch by batch. Exactly one result per defect comes back, ordered
// by defect index. Service failures degrade only the failing batch; defect
// indices the service omits are filled in as unmatched.
func (m *RemoteMatcher) Match(ctx context.Context, defects []core.Defect, concerns []core.Concern) ([]core.MatchResult, BatchStats, error) {
	var stats BatchStats
	if len(concerns) == 0 {
		return nil, stats, ErrEmptyCatalog
	}
	if len(defects) == 0 {
		return nil, stats, ErrNoDefects
	}

	results := make([]core.MatchResult, 0, len(defects))
	for start := 0; start < len(defects); start += m.batchSize {
		end := start + m.batchSize
		if end > len(defects) {
			end = len(defects)
		}
		batch := defects[start:end]

		batchResults, err := m.service.MatchBatch(ctx, concerns, batch, start)
		if err != nil {
			m.logger.Warn("batch failed, falling back to lexical matching",
				"offset", start,
				"size", len(batch),
				"err", err)
			results = append(results, m.fallback(batch, concerns, start)...)
			stats.FallbackBatches++
			continue
		}

		results = append(results, fillGaps(batchResults, start, len(batch))...)
		stats.RemoteBatches++
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DefectIndex < results[j].DefectIndex
	})

	m.logger.Debug("remote matching complete",
		"defects", len(defects),
		"remote_batches", stats.RemoteBatches,
		"fallback_batches", stats.FallbackBatches)

	return results, stats, nil
}

// fallback matches one batch locally and rebases result indices from
// batch-local to global.
func (m *RemoteMatcher) fallback(batch []core.Defect, concerns []core.Concern, start int) []core.MatchResult {
	localResults, err := m.local.Match(batch, concerns)
	if err != nil {
		// Unreachable for non-empty inputs; produce unmatched results
		// rather than dropping the batch.
		out := make([]core.MatchResult, len(batch))
		for i := range batch {
			out[i] = core.MatchResult{
				DefectIndex: start + i,
				Confidence:  0,
				Reason:      "no match found",
				Method:      core.MethodLocal,
			}
		}
		return out
	}
	for i := range localResults {
		localResults[i].DefectIndex += start
	}
	return localResults
}

// fillGaps supplements a service response so that every index in
// [start, start+size) has exactly one result. Missing indices become
// unmatched results attributed to the remote method.
func fillGaps(batchResults []core.MatchResult, start, size int) []core.MatchResult {
	covered := make(map[int]bool, len(batchResults))
	for _, r := range batchResults {
		covered[r.DefectIndex] = true
	}
	if len(covered) == size {
		return batchResults
	}
	for i := start; i < start+size; i++ {
		if !covered[i] {
			batchResults = append(batchResults, core.MatchResult{
				DefectIndex: i,
				Confidence:  0,
				Reason:      "no match returned by service",
				Method:      core.MethodRemote,
			})
		}
	}
	return batchResults
}
