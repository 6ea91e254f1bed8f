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


// Package openai implements the ai.ConcernMatcher interface against any
// OpenAI-compatible chat-completion gateway (hosted gateways, Ollama,
// LocalAI, vLLM).
//
// Each batch request renders the full concern catalog plus the defect batch
// into a structured prompt, forces JSON output at temperature zero, and
// parses the response defensively: markdown fences are stripped, common key
// quoting mistakes are repaired, out-of-range or duplicate defect indices
// are dropped, and confidences are clamped into [0, 1].
package openai
