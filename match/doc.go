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


// Package match links free-text defect reports to cataloged QA concerns.
//
// Two matchers are provided. LocalMatcher is a pure, deterministic
// multi-signal lexical scorer combining character-bigram overlap, token-set
// overlap over synonym-expanded tokens, length-weighted token overlap, raw
// substring overlap, and a station-code bonus. RemoteMatcher delegates to an
// external semantic-matching service in bounded batches and substitutes the
// LocalMatcher's output for any batch the service cannot answer; degradation
// is the designed resilience path, so RemoteMatcher never fails because of
// the service.
//
// Aggregate rolls accepted matches up into per-concern repeat counts with
// mean confidence, which the rating layer consumes.
package match
