// Copyright 2025 Poiesic Systems
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
	"fmt"
	"log/slog"

	"github.com/poiesic/corpusqa/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completer implements ai.Completer using OpenAI-compatible chat APIs.
// Completions are sampled at temperature 0 with a bounded output-token
// budget so that answers are reproducible for a fixed model version.
type Completer struct {
	client    llms.Model
	maxTokens int
	logger    *slog.Logger
}

// newCompleter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCompleter(config *ai.Config, token string) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(config.CompletionHost),
		openai.WithToken(token),
		openai.WithModel(config.CompletionModel),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client:    client,
		maxTokens: config.MaxTokens,
		logger:    slog.Default().With("component", "openai-completer"),
	}, nil
}

// NewCompleter creates a new completer using the provided configuration.
// The token may be empty for services that do not require authentication.
//
// Returns ai.Completer interface to enforce abstraction.
func NewCompleter(config *ai.Config, token string) (ai.Completer, error) {
	return newCompleter(config, token)
}

// Complete invokes the completion model with deterministic sampling.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("requesting completion", "promptLength", len(prompt), "maxTokens", c.maxTokens)

	completion, err := llms.GenerateFromSinglePrompt(ctx, c.client, prompt,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		c.logger.Error("failed to generate completion", "err", err)
		return "", fmt.Errorf("%w: %w", ai.ErrCompletionService, err)
	}

	return completion, nil
}
