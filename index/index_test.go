package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/corpusqa/ai/mock"
	"github.com/poiesic/corpusqa/core"
)

// planarEmbedder maps known texts to fixed 2-d vectors so distances
// and rankings in tests are exact.
func planarEmbedder(vectors map[string][]float32) *mock.MockEmbedder {
	lookup := func(text string) ([]float32, error) {
		v, ok := vectors[text]
		if !ok {
			return nil, fmt.Errorf("no vector for %q", text)
		}
		return v, nil
	}
	return &mock.MockEmbedder{
		EmbedTextFunc: func(_ context.Context, text string) ([]float32, error) {
			return lookup(text)
		},
		EmbedTextsFunc: func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, text := range texts {
				v, err := lookup(text)
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		},
	}
}

func metadatasFor(texts []string) []core.DocMetadata {
	metadatas := make([]core.DocMetadata, len(texts))
	for i, text := range texts {
		metadatas[i] = core.DocMetadata{Source: "s-" + text}
	}
	return metadatas
}

func TestBuild_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil embedder", func(t *testing.T) {
		_, err := Build(ctx, "idx", nil, []string{"a"}, metadatasFor([]string{"a"}))
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := Build(ctx, "idx", mock.NewMockEmbedder(), []string{"a", "b"}, metadatasFor([]string{"a"}))
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("inconsistent entry dimensions", func(t *testing.T) {
		embedder := planarEmbedder(map[string][]float32{
			"a": {1, 0},
			"b": {1, 0, 0},
		})
		_, err := Build(ctx, "idx", embedder, []string{"a", "b"}, metadatasFor([]string{"a", "b"}))
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}

func TestBuild_EmptyInput(t *testing.T) {
	ix, err := Build(context.Background(), "idx", mock.NewMockEmbedder(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ix.Len())
	assert.Equal(t, 0, ix.Dimension())

	results, err := ix.Search(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBuild_PreservesInputOrder(t *testing.T) {
	// More texts than one embedding batch, so ordering also covers
	// batch reassembly.
	n := embedBatchSize*2 + 7
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf("chunk %d", i)
	}

	ix, err := Build(context.Background(), "idx", mock.NewMockEmbedder(), texts, metadatasFor(texts))
	require.NoError(t, err)
	require.Equal(t, n, ix.Len())

	for i, entry := range ix.entries {
		assert.Equal(t, texts[i], entry.Text)
		assert.Equal(t, "s-"+texts[i], entry.Metadata.Source)
	}
}

func TestSearch_RanksByDistance(t *testing.T) {
	ctx := context.Background()
	embedder := planarEmbedder(map[string][]float32{
		"near":   {1, 0},
		"middle": {0.5, 0.5},
		"far":    {0, 1},
		"query":  {0.9, 0.1},
	})
	texts := []string{"far", "near", "middle"}

	ix, err := Build(ctx, "idx", embedder, texts, metadatasFor(texts))
	require.NoError(t, err)

	results, err := ix.Search(ctx, "query", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "near", results[0].Chunk.Text)
	assert.Equal(t, "middle", results[1].Chunk.Text)
	assert.Equal(t, "far", results[2].Chunk.Text)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
	}
	assert.Equal(t, "s-near", results[0].Chunk.Metadata.Source)
}

func TestSearch_TruncatesToK(t *testing.T) {
	ctx := context.Background()
	texts := []string{"a", "b", "c", "d"}

	ix, err := Build(ctx, "idx", mock.NewMockEmbedder(), texts, metadatasFor(texts))
	require.NoError(t, err)

	results, err := ix.Search(ctx, "a", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Fewer entries than k returns everything.
	results, err = ix.Search(ctx, "a", 10)
	require.NoError(t, err)
	assert.Len(t, results, 4)
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	embedder := planarEmbedder(map[string][]float32{
		"first":  {0, 1},
		"second": {0, 1},
		"third":  {0, 1},
		"query":  {1, 0},
	})
	texts := []string{"first", "second", "third"}

	ix, err := Build(ctx, "idx", embedder, texts, metadatasFor(texts))
	require.NoError(t, err)

	results, err := ix.Search(ctx, "query", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Chunk.Text)
	assert.Equal(t, "second", results[1].Chunk.Text)
	assert.Equal(t, "third", results[2].Chunk.Text)
}

func TestSearch_InvalidK(t *testing.T) {
	ix, err := Build(context.Background(), "idx", mock.NewMockEmbedder(), []string{"a"}, metadatasFor([]string{"a"}))
	require.NoError(t, err)

	_, err = ix.Search(context.Background(), "a", 0)
	assert.ErrorIs(t, err, ErrInvalidK)
	_, err = ix.Search(context.Background(), "a", -1)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestSearch_QueryDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	embedder := planarEmbedder(map[string][]float32{
		"a":     {1, 0},
		"query": {1, 0, 0},
	})
	ix, err := Build(ctx, "idx", embedder, []string{"a"}, metadatasFor([]string{"a"}))
	require.NoError(t, err)

	_, err = ix.Search(ctx, "query", 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	embedder := mock.NewMockEmbedder()

	texts := []string{"tuning language models", "serving inference", "monitoring drift"}
	metadatas := []core.DocMetadata{
		{Source: "u1", Title: "T1", ChapterTitle: "C1", FullTitle: "T1 - C1"},
		{Source: "u2", Title: "T2", ChapterTitle: "C2", FullTitle: "T2 - C2"},
		{Source: "u3", Title: "T3", ChapterTitle: "C3", FullTitle: "T3 - C3"},
	}

	built, err := Build(ctx, "corpus", embedder, texts, metadatas)
	require.NoError(t, err)
	require.NoError(t, built.Save(dir))
	assert.FileExists(t, filepath.Join(dir, "corpus.idx"))

	loaded, err := Load(dir, "corpus", embedder)
	require.NoError(t, err)
	assert.Equal(t, built.Name(), loaded.Name())
	assert.Equal(t, built.Len(), loaded.Len())
	assert.Equal(t, built.Dimension(), loaded.Dimension())

	want, err := built.Search(ctx, "how do I serve a model", 2)
	require.NoError(t, err)
	got, err := loaded.Search(ctx, "how do I serve a model", 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSave_Overwrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	embedder := mock.NewMockEmbedder()

	first, err := Build(ctx, "corpus", embedder, []string{"a"}, metadatasFor([]string{"a"}))
	require.NoError(t, err)
	require.NoError(t, first.Save(dir))

	second, err := Build(ctx, "corpus", embedder, []string{"a", "b"}, metadatasFor([]string{"a", "b"}))
	require.NoError(t, err)
	require.NoError(t, second.Save(dir))

	loaded, err := Load(dir, "corpus", embedder)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
}

func TestSave_LockedByAnotherWriter(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	ix, err := Build(ctx, "corpus", mock.NewMockEmbedder(), []string{"a"}, metadatasFor([]string{"a"}))
	require.NoError(t, err)

	lockPath := filepath.Join(dir, "corpus.idx.lock")
	require.NoError(t, os.WriteFile(lockPath, nil, 0o644))

	err = ix.Save(dir)
	assert.ErrorIs(t, err, ErrLocked)

	// Releasing the lock lets the save proceed.
	require.NoError(t, os.Remove(lockPath))
	require.NoError(t, ix.Save(dir))
	assert.NoFileExists(t, lockPath, "lock is released after a successful save")
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir(), "missing", mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_NilEmbedder(t *testing.T) {
	_, err := Load(t.TempDir(), "corpus", nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestLoad_CorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "corpus.idx"), []byte{0xff, 0xff, 0xff, 0xff, 0xff}, 0o644))

	_, err := Load(dir, "corpus", mock.NewMockEmbedder())
	assert.Error(t, err)
}

func TestSerializeEntries_RoundTrip(t *testing.T) {
	entries := []Entry{
		{Vector: []float32{0.25, -1, 3.5}, Text: "alpha", Metadata: core.DocMetadata{Source: "u1", Title: "T"}},
		{Vector: []float32{0, 0, 0}, Text: "", Metadata: core.DocMetadata{}},
	}

	decoded, err := unmarshalEntries(marshalEntries(entries))
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}
