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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the semantic-matching service client.
type Config struct {
	// Gateway is the base URL of the OpenAI-compatible chat-completion
	// gateway. Example: "https://ai.gateway.lovable.dev/v1"
	Gateway string

	// Model is the model identifier requested from the gateway.
	// Example: "google/gemini-3-flash-preview"
	Model string

	// APIKey is the bearer credential sent with each request. Local
	// OpenAI-compatible services that skip authentication may leave it
	// empty; a placeholder token is sent instead.
	APIKey string

	// Timeout bounds each batch request. Default: 120s.
	Timeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithGateway sets the gateway base URL.
func WithGateway(gateway string) ConfigOption {
	return func(c *Config) {
		c.Gateway = gateway
	}
}

// WithModel sets the model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the bearer credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTimeout sets the per-batch request timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// DefaultConfig returns a Config with the production gateway defaults.
func DefaultConfig() *Config {
	return &Config{
		Gateway: "https://ai.gateway.lovable.dev/v1",
		Model:   "google/gemini-3-flash-preview",
		Timeout: 120 * time.Second,
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in canonical form. The /v1 suffix
// is appended to the gateway if missing, as required by OpenAI-compatible
// APIs (Ollama, LocalAI, vLLM, hosted gateways).
func (c *Config) Normalize() {
	if c.Gateway != "" && !strings.HasSuffix(c.Gateway, "/v1") {
		c.Gateway = strings.TrimSuffix(c.Gateway, "/")
		c.Gateway = c.Gateway + "/v1"
	}
	if c.Timeout <= 0 {
		c.Timeout = 120 * time.Second
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Gateway == "" {
		return errors.New("ai config: Gateway is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	return nil
}
