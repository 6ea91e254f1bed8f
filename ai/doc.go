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


// Package ai provides the abstraction over the external semantic-matching
// service used for defect-to-concern linkage.
//
// The package defines the ConcernMatcher interface so that the matching
// pipeline depends on an abstraction rather than a concrete vendor client.
// Two implementation sub-packages exist:
//
//   - ai/openai: production implementation speaking to OpenAI-compatible
//     chat-completion gateways
//   - ai/mock: test doubles for unit testing without network access
//
// Production constructors (openai.NewMatcher) return the interface type to
// enforce abstraction; mock constructors return concrete types so tests can
// inject behavior and assert call counts.
package ai
