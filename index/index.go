package index

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/corpusqa/ai"
	"github.com/poiesic/corpusqa/core"
)

// embedBatchSize bounds one embedding request. Batches are submitted in
// order and results reassembled in order, so entry order always matches
// input order.
const embedBatchSize = 100

// Entry is one immutable element of the index: a chunk and its
// embedding vector.
type Entry struct {
	Vector   []float32
	Text     string
	Metadata core.DocMetadata
}

// SearchResult pairs a retrieved chunk with its distance from the
// query. Smaller distances mean more similar.
type SearchResult struct {
	Chunk    core.Chunk
	Distance float32
}

// Index is a similarity-searchable structure over chunk embeddings.
// An index is built wholesale, is immutable afterwards, and is freely
// shared across concurrent Search calls. Build and query must use the
// same embedding function; distances are squared Euclidean in that
// embedding space.
type Index struct {
	name     string
	dim      int
	entries  []Entry
	embedder ai.Embedder
	logger   *slog.Logger
}

// Build computes one embedding per text and constructs a query-ready
// index. Embeddings are requested in bounded batches, order-preserving.
// An empty input yields a valid empty index.
func Build(ctx context.Context, name string, embedder ai.Embedder, texts []string, metadatas []core.DocMetadata) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if len(texts) != len(metadatas) {
		return nil, fmt.Errorf("%w: %d texts, %d metadatas", ErrLengthMismatch, len(texts), len(metadatas))
	}

	logger := slog.Default().With("component", "index", "index", name)

	entries := make([]Entry, 0, len(texts))
	dim := 0

	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		vectors, err := embedder.EmbedTexts(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		if len(vectors) != end-start {
			return nil, fmt.Errorf("%w: requested %d embeddings, received %d", ai.ErrEmbeddingService, end-start, len(vectors))
		}

		for i, vector := range vectors {
			if dim == 0 {
				dim = len(vector)
			}
			if len(vector) != dim {
				return nil, fmt.Errorf("%w: entry %d has dimension %d, index has %d",
					ErrDimensionMismatch, start+i, len(vector), dim)
			}
			entries = append(entries, Entry{
				Vector:   vector,
				Text:     texts[start+i],
				Metadata: metadatas[start+i],
			})
		}
	}

	logger.Info("built vector index", "entries", len(entries), "dimension", dim)

	return &Index{
		name:     name,
		dim:      dim,
		entries:  entries,
		embedder: embedder,
		logger:   logger,
	}, nil
}

// Name returns the index name used for persistence.
func (ix *Index) Name() string {
	return ix.name
}

// Len returns the number of entries in the index.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Dimension returns the embedding dimensionality of the index, or 0 for
// an empty index.
func (ix *Index) Dimension() int {
	return ix.dim
}

// Search embeds the query with the index's embedding function and
// returns the k nearest entries ordered by ascending distance, ties
// broken by insertion order. k must be at least 1; fewer than k entries
// returns them all, and an empty index returns an empty sequence.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if len(ix.entries) == 0 {
		return []SearchResult{}, nil
	}

	vector, err := ix.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(vector) != ix.dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d", ErrDimensionMismatch, len(vector), ix.dim)
	}

	results := make([]SearchResult, len(ix.entries))
	for i, entry := range ix.entries {
		results[i] = SearchResult{
			Chunk:    core.Chunk{Text: entry.Text, Metadata: entry.Metadata},
			Distance: squaredL2(vector, entry.Vector),
		}
	}

	// Stable sort keeps insertion order among equal distances.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > k {
		results = results[:k]
	}

	ix.logger.Debug("searched index", "k", k, "hits", len(results))
	return results, nil
}

// squaredL2 computes squared Euclidean distance. Monotonic with
// Euclidean distance, so ranking is identical and the square root is
// skipped.
func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
