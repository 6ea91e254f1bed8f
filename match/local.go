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
	"log/slog"
	"math"
	"strings"

	"github.com/plantqa/qamatrix/core"
)

// DefaultThreshold is the minimum combined score for a local match to be
// accepted. Distinct from the higher aggregation confidence threshold.
const DefaultThreshold = 0.15

// Signal weights for the combined local score.
const (
	weightJaccard   = 0.20
	weightSubstring = 0.25
	weightDice      = 0.15
	weightWeighted  = 0.25
	weightStation   = 0.15
)

// LocalMatcher scores defects against the concern catalog with the
// multi-signal lexical scorer. It performs no I/O and is deterministic:
// identical inputs always yield identical results.
type LocalMatcher struct {
	norm      *Normalizer
	threshold float64
	logger    *slog.Logger
}

// NewLocalMatcher creates a LocalMatcher. A nil normalizer selects the
// default manufacturing synonym table; a non-positive threshold selects
// DefaultThreshold.
func NewLocalMatcher(norm *Normalizer, threshold float64) *LocalMatcher {
	if norm == nil {
		norm = DefaultNormalizer()
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &LocalMatcher{
		norm:      norm,
		threshold: threshold,
		logger:    slog.Default().With("component", "local-matcher"),
	}
}

// target holds the precomputed scoring inputs for one concern.
type target struct {
	text      string
	rawTokens []string
	expanded  map[string]bool
	joined    string
}

// Match scores every defect against the full catalog and returns exactly one
// MatchResult per defect, in input order. Defects without usable tokens, or
// whose best combined score falls below the threshold, come back unmatched
// with confidence 0.
func (m *LocalMatcher) Match(defects []core.Defect, concerns []core.Concern) ([]core.MatchResult, error) {
	if len(concerns) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(defects) == 0 {
		return nil, ErrNoDefects
	}

	targets := make([]target, len(concerns))
	for i, c := range concerns {
		text := c.Text + " " + c.Station + " " + c.Designation
		raw := Tokenize(text)
		targets[i] = target{
			text:      text,
			rawTokens: raw,
			expanded:  m.norm.Expand(raw),
			joined:    strings.Join(raw, " "),
		}
	}

	results := make([]core.MatchResult, len(defects))
	matched := 0
	for i := range defects {
		results[i] = m.matchOne(i, &defects[i], concerns, targets)
		if results[i].Matched() {
			matched++
		}
	}

	m.logger.Debug("lexical matching complete",
		"matched", matched,
		"total", len(defects),
		"threshold", m.threshold)

	return results, nil
}

// Threshold returns the per-match acceptance threshold in effect.
func (m *LocalMatcher) Threshold() float64 {
	return m.threshold
}

func (m *LocalMatcher) matchOne(index int, defect *core.Defect, concerns []core.Concern, targets []target) core.MatchResult {
	text := defect.MatchText()
	rawTokens := Tokenize(text)
	if len(rawTokens) == 0 {
		return core.MatchResult{
			DefectIndex: index,
			Confidence:  0,
			Reason:      "no usable tokens",
			Method:      core.MethodLocal,
		}
	}

	queryTokens := m.norm.Expand(rawTokens)

	// Linear scan with strict greater-than: on equal best scores the
	// earliest-indexed concern wins. This tie-break is contractual.
	bestIdx := -1
	bestScore := 0.0
	for i := range targets {
		t := &targets[i]
		score := weightJaccard*Jaccard(queryTokens, t.expanded) +
			weightSubstring*SubstringOverlap(rawTokens, t.joined) +
			weightDice*Dice(text, t.text) +
			weightWeighted*WeightedOverlap(rawTokens, t.rawTokens) +
			weightStation*StationBonus(defect.Location, concerns[i].Station)

		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx == -1 || bestScore < m.threshold {
		return core.MatchResult{
			DefectIndex: index,
			Confidence:  0,
			Reason:      "no match found",
			Method:      core.MethodLocal,
		}
	}

	serial := concerns[bestIdx].SerialNo
	return core.MatchResult{
		DefectIndex:   index,
		MatchedSerial: &serial,
		Confidence:    round3(bestScore),
		Reason:        "lexical match: " + snippet(concerns[bestIdx].Text, 50),
		Method:        core.MethodLocal,
	}
}

// round3 rounds to three decimal places.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// snippet truncates s to at most max bytes.
func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
