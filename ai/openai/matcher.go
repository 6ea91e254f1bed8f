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


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/plantqa/qamatrix/ai"
	"github.com/plantqa/qamatrix/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyResponse indicates the gateway returned no choices.
var ErrEmptyResponse = errors.New("empty response from matching service")

// Matcher implements ai.ConcernMatcher against OpenAI-compatible
// chat-completion gateways.
type Matcher struct {
	client  llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

// matchPayload mirrors one entry of the service's structured response.
type matchPayload struct {
	DefectIndex   int     `json:"defect_index"`
	MatchedSerial *int    `json:"matched_serial"`
	Confidence    float64 `json:"confidence"`
	Reason        string  `json:"reason"`
}

// matchResponse is the wrapper structure for the service's JSON response.
type matchResponse struct {
	Matches []matchPayload `json:"matches"`
}

// newMatcher is an internal constructor that returns the concrete type.
func newMatcher(config *ai.Config) (*Matcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication.
	token := config.APIKey
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Gateway),
		openai.WithToken(token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Matcher{
		client:  client,
		timeout: config.Timeout,
		logger:  slog.Default().With("component", "openai-matcher"),
	}, nil
}

// NewMatcher creates a concern matcher using the provided configuration.
//
// Returns ai.ConcernMatcher interface to enforce abstraction.
func NewMatcher(config *ai.Config) (ai.ConcernMatcher, error) {
	return newMatcher(config)
}

// MatchBatch submits one defect batch with the full concern catalog rendered
// as context and parses the structured response. Each request is bounded by
// the configured timeout. Errors are returned as-is for the caller to decide
// degradation; the batch is never retried here.
func (m *Matcher) MatchBatch(ctx context.Context, concerns []core.Concern, defects []core.Defect, indexOffset int) ([]core.MatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	user := renderCatalog(concerns) + "\n\n" + renderBatch(defects, indexOffset) +
		"\n\nMatch each defect to the best QA concern."

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(user),
			},
		},
	}

	response, err := m.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		if isQuotaError(err) {
			m.logger.Warn("matching service rate limited or out of credits", "err", err)
		} else {
			m.logger.Error("failed to generate matches", "err", err)
		}
		return nil, err
	}

	if len(response.Choices) < 1 {
		return nil, ErrEmptyResponse
	}

	results, err := parseMatches(response.Choices[0].Content, indexOffset, len(defects))
	if err != nil {
		m.logger.Warn("error parsing matching service response", "err", err)
		return nil, err
	}

	m.logger.Debug("remote batch matched",
		"offset", indexOffset,
		"defects", len(defects),
		"results", len(results))

	return results, nil
}

// parseMatches decodes the service's JSON payload into MatchResults.
// Indices outside [offset, offset+batchLen) are dropped; duplicate indices
// keep the first occurrence; confidences are clamped into [0, 1].
func parseMatches(responseText string, offset, batchLen int) ([]core.MatchResult, error) {
	// Strip markdown code fences if present
	text := strings.TrimSpace(responseText)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Try to repair common JSON issues
	text = repairJSON(text)

	var parsed matchResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("malformed match payload: %w", err)
	}

	seen := make(map[int]bool, len(parsed.Matches))
	results := make([]core.MatchResult, 0, len(parsed.Matches))
	for _, p := range parsed.Matches {
		if p.DefectIndex < offset || p.DefectIndex >= offset+batchLen || seen[p.DefectIndex] {
			continue
		}
		seen[p.DefectIndex] = true

		confidence := p.Confidence
		if confidence < 0 {
			confidence = 0
		} else if confidence > 1 {
			confidence = 1
		}

		result := core.MatchResult{
			DefectIndex: p.DefectIndex,
			Confidence:  confidence,
			Reason:      p.Reason,
			Method:      core.MethodRemote,
		}
		if p.MatchedSerial != nil {
			serial := core.ConcernID(*p.MatchedSerial)
			result.MatchedSerial = &serial
		}
		results = append(results, result)
	}

	return results, nil
}

// isQuotaError reports whether an error looks like an HTTP 429 rate limit or
// HTTP 402 exhausted-credits response. Used only to pick the log message;
// every error degrades the batch the same way.
func isQuotaError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "402") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "credits")
}
