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


package qa

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/corpusqa/ai"
	"github.com/poiesic/corpusqa/core"
	"github.com/poiesic/corpusqa/index"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 3

// Answerer synthesizes sourced answers: it retrieves the most relevant
// chunks for a question, assembles the strict-format prompt, and runs a
// deterministic completion over it.
//
// Answer.Sources is derived from the retrieved chunks supplied in the
// prompt, not parsed out of the completion's free text, so provenance
// holds even when the model's formatting varies. Whether the completion
// actually confines itself to the supplied chunks is the completion
// service's contract, not verified here.
type Answerer struct {
	completer ai.Completer
	index     *index.Index
	k         int
	logger    *slog.Logger
}

// Option configures an Answerer.
type Option func(*Answerer) error

// WithTopK sets how many chunks are retrieved per question.
func WithTopK(k int) Option {
	return func(a *Answerer) error {
		if k < 1 {
			return index.ErrInvalidK
		}
		a.k = k
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Answerer) error {
		a.logger = logger
		return nil
	}
}

// NewAnswerer creates an Answerer over a query-ready index.
func NewAnswerer(completer ai.Completer, ix *index.Index, opts ...Option) (*Answerer, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	if ix == nil {
		return nil, ErrIndexRequired
	}

	a := &Answerer{
		completer: completer,
		index:     ix,
		k:         DefaultTopK,
		logger:    slog.Default().With("component", "qa"),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Answer retrieves the top-k chunks for the question, prompts the
// completion service with them, and returns the answer together with
// the ordered, de-duplicated source URLs of the retrieved chunks. When
// the completion is the refusal sentinel, sources are cleared.
func (a *Answerer) Answer(ctx context.Context, question string) (core.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return core.Answer{}, ErrEmptyQuestion
	}

	results, err := a.index.Search(ctx, question, a.k)
	if err != nil {
		return core.Answer{}, err
	}

	chunks := make([]core.Chunk, len(results))
	for i, result := range results {
		chunks[i] = result.Chunk
	}

	text, err := a.completer.Complete(ctx, buildPrompt(question, chunks))
	if err != nil {
		return core.Answer{}, err
	}
	text = strings.TrimSpace(text)

	answer := core.Answer{Text: text, Sources: sourcesOf(chunks)}
	if text == RefusalSentinel {
		answer.Sources = []string{}
	}

	a.logger.Debug("answered question", "retrieved", len(chunks), "sources", len(answer.Sources))
	return answer, nil
}

// sourcesOf returns the source URLs of the chunks in retrieval order,
// each at most once.
func sourcesOf(chunks []core.Chunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	sources := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if _, ok := seen[chunk.Metadata.Source]; ok {
			continue
		}
		seen[chunk.Metadata.Source] = struct{}{}
		sources = append(sources, chunk.Metadata.Source)
	}
	return sources
}
