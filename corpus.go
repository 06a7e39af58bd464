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


package corpusqa

import (
	"context"
	"log/slog"

	"github.com/poiesic/corpusqa/ai"
	"github.com/poiesic/corpusqa/ai/openai"
	"github.com/poiesic/corpusqa/core"
	"github.com/poiesic/corpusqa/etl"
	"github.com/poiesic/corpusqa/index"
	"github.com/poiesic/corpusqa/qa"
	"github.com/poiesic/corpusqa/splitter"
	"github.com/poiesic/corpusqa/storage"
	"github.com/poiesic/corpusqa/storage/badger"
)

// Corpus is the top-level handle onto one question-answering corpus:
// the document store, the AI provider, and the directory holding
// persisted vector indexes.
type Corpus struct {
	documents storage.DocumentRepository
	provider  ai.Provider
	splitter  *splitter.Splitter
	indexDir  string
	logger    *slog.Logger
}

// CorpusOption configures a Corpus.
type CorpusOption func(*corpusOptions)

type corpusOptions struct {
	aiConfig *ai.Config
	token    string
	indexDir string
	provider ai.Provider
	splitter *splitter.Splitter
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(config *ai.Config) CorpusOption {
	return func(o *corpusOptions) {
		o.aiConfig = config
	}
}

// WithToken sets the API token for the AI services.
func WithToken(token string) CorpusOption {
	return func(o *corpusOptions) {
		o.token = token
	}
}

// WithIndexDir sets the directory persisted indexes live under.
func WithIndexDir(dir string) CorpusOption {
	return func(o *corpusOptions) {
		o.indexDir = dir
	}
}

// WithProvider injects an AI provider, bypassing the openai one.
func WithProvider(provider ai.Provider) CorpusOption {
	return func(o *corpusOptions) {
		o.provider = provider
	}
}

// WithSplitter injects a configured chunk splitter.
func WithSplitter(s *splitter.Splitter) CorpusOption {
	return func(o *corpusOptions) {
		o.splitter = s
	}
}

// NewCorpus opens or creates a corpus at filePath. An empty filePath
// opens an in-memory document store, used by tests.
func NewCorpus(filePath string, opts ...CorpusOption) (*Corpus, error) {
	options := &corpusOptions{
		aiConfig: ai.DefaultConfig(),
		indexDir: ".",
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, filePath == "")
	if err != nil {
		return nil, err
	}

	documents, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig, options.token)
		if err != nil {
			documents.Close()
			return nil, err
		}
	}

	split := options.splitter
	if split == nil {
		split, err = splitter.NewSplitter()
		if err != nil {
			provider.Close()
			documents.Close()
			return nil, err
		}
	}

	return &Corpus{
		documents: documents,
		provider:  provider,
		splitter:  split,
		indexDir:  options.indexDir,
		logger:    slog.Default(),
	}, nil
}

// Close releases the AI provider and the document store.
func (c *Corpus) Close() error {
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}
	if err := c.documents.Close(); err != nil {
		c.logger.Error("error closing document repository", "err", err)
		return err
	}
	return nil
}

// Documents returns the underlying document repository.
func (c *Corpus) Documents() storage.DocumentRepository {
	return c.documents
}

// RunETL expands container IDs into source items, extracts chaptered
// documents from each in parallel, and bulk-inserts the results into a
// collection. Returns the number of documents stored and the number of
// items dropped after retry exhaustion.
func (c *Corpus) RunETL(ctx context.Context, containerIDs []string, collection storage.Selector, client *etl.Services, opts ...etl.Option) (stored, dropped int, err error) {
	orchestrator, err := etl.NewOrchestrator(opts...)
	if err != nil {
		return 0, 0, err
	}
	defer orchestrator.Release()

	extractor, err := etl.NewExtractor(client.Transcripts, client.Chapters)
	if err != nil {
		return 0, 0, err
	}

	items, droppedContainers := orchestrator.ListAll(ctx, client.Listing, containerIDs)
	documents, droppedItems := orchestrator.ExtractAll(ctx, extractor, items)
	dropped = droppedContainers + droppedItems

	stored, err = c.documents.BulkInsert(ctx, collection, documents)
	if err != nil {
		return stored, dropped, err
	}

	c.logger.Info("etl run complete", "stored", stored, "dropped", dropped)
	return stored, dropped, nil
}

// BuildIndex splits every document in a collection into chunks, embeds
// them, builds a vector index named name, and persists it under the
// corpus index directory.
func (c *Corpus) BuildIndex(ctx context.Context, name string, collection storage.Selector) (*index.Index, error) {
	documents, err := c.documents.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	texts, metadatas, err := c.splitter.Split(documents)
	if err != nil {
		return nil, err
	}

	ix, err := index.Build(ctx, name, c.provider.Embedder(), texts, metadatas)
	if err != nil {
		return nil, err
	}
	if err := ix.Save(c.indexDir); err != nil {
		return nil, err
	}
	return ix, nil
}

// DropCollection removes a collection and all its documents.
func (c *Corpus) DropCollection(ctx context.Context, collection storage.Selector) error {
	return c.documents.Drop(ctx, collection)
}

// Ask loads the named index and answers a question over it. A missing
// index surfaces index.ErrNotFound; it is never rebuilt implicitly.
func (c *Corpus) Ask(ctx context.Context, indexName, question string, k int) (core.Answer, error) {
	ix, err := index.Load(c.indexDir, indexName, c.provider.Embedder())
	if err != nil {
		return core.Answer{}, err
	}

	answerer, err := qa.NewAnswerer(c.provider.Completer(), ix, qa.WithTopK(k))
	if err != nil {
		return core.Answer{}, err
	}
	return answerer.Answer(ctx, question)
}
