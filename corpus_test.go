package corpusqa

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/corpusqa/ai/mock"
	"github.com/poiesic/corpusqa/core"
	"github.com/poiesic/corpusqa/etl"
	"github.com/poiesic/corpusqa/index"
	"github.com/poiesic/corpusqa/qa"
	"github.com/poiesic/corpusqa/splitter"
	"github.com/poiesic/corpusqa/storage"
)

func wordLen(text string) int {
	return len(strings.Fields(text))
}

func newTestCorpus(t *testing.T, provider *mock.MockProvider) *Corpus {
	t.Helper()
	split, err := splitter.NewSplitter(
		splitter.WithChunkSize(50),
		splitter.WithChunkOverlap(5),
		splitter.WithLenFunc(wordLen),
	)
	require.NoError(t, err)

	corpus, err := NewCorpus("",
		WithProvider(provider),
		WithSplitter(split),
		WithIndexDir(t.TempDir()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { corpus.Close() })
	return corpus
}

// nearestEmbedder makes the D-chord document the nearest neighbor of
// the test question.
func nearestEmbedder() *mock.MockEmbedder {
	vector := func(text string) []float32 {
		switch {
		case strings.Contains(text, "D chord"):
			return []float32{1, 0}
		case strings.Contains(text, "Strumming"):
			return []float32{0, 1}
		default:
			return []float32{0.5, 0.5}
		}
	}
	return &mock.MockEmbedder{
		EmbedTextFunc: func(_ context.Context, text string) ([]float32, error) {
			return vector(text), nil
		},
		EmbedTextsFunc: func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, text := range texts {
				out[i] = vector(text)
			}
			return out, nil
		},
	}
}

func TestCorpus_BuildIndexAndAsk(t *testing.T) {
	completer := mock.NewMockCompleter("Place three fingers on the second and third frets.")
	provider := mock.NewMockProviderWithServices(nearestEmbedder(), completer).(*mock.MockProvider)
	corpus := newTestCorpus(t, provider)
	ctx := context.Background()

	documents := []*core.Document{
		core.NewDocument("D chord is formed by placing fingers on the second and third frets", core.DocMetadata{Source: "u1"}),
		core.NewDocument("Strumming patterns start from steady downstrokes", core.DocMetadata{Source: "u2"}),
	}
	_, err := corpus.Documents().BulkInsert(ctx, storage.ByName("lessons"), documents)
	require.NoError(t, err)

	ix, err := corpus.BuildIndex(ctx, "lessons", storage.ByName("lessons"))
	require.NoError(t, err)
	assert.Equal(t, 2, ix.Len())

	answer, err := corpus.Ask(ctx, "lessons", "How to play the D chord?", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, answer.Sources)
	assert.NotEmpty(t, answer.Text)
	assert.NotEqual(t, qa.RefusalSentinel, answer.Text)
}

func TestCorpus_AskMissingIndex(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	corpus := newTestCorpus(t, provider)

	_, err := corpus.Ask(context.Background(), "nothing", "any question", 3)
	assert.ErrorIs(t, err, index.ErrNotFound)
}

func TestCorpus_DropCollection(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	corpus := newTestCorpus(t, provider)
	ctx := context.Background()

	_, err := corpus.Documents().BulkInsert(ctx, storage.ByName("lessons"), []*core.Document{
		core.NewDocument("some text", core.DocMetadata{Source: "u1"}),
	})
	require.NoError(t, err)

	require.NoError(t, corpus.DropCollection(ctx, storage.ByName("lessons")))

	count, err := corpus.Documents().Count(ctx, storage.ByName("lessons"))
	require.NoError(t, err)
	assert.Zero(t, count)
}

type stubListing struct{ items []core.SourceItem }

func (s stubListing) ListItems(context.Context, string) ([]core.SourceItem, error) {
	return s.items, nil
}

type stubChapters struct{}

func (stubChapters) GetChapters(context.Context, string) ([]core.ChapterMarker, error) {
	return []core.ChapterMarker{{Time: 0, Title: "Intro"}}, nil
}

type stubTranscripts struct{}

func (stubTranscripts) GetTranscript(_ context.Context, sourceID string) ([]core.TranscriptSegment, error) {
	return []core.TranscriptSegment{{StartTime: 0, Text: "transcript of " + sourceID}}, nil
}

func TestCorpus_RunETL(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	corpus := newTestCorpus(t, provider)
	ctx := context.Background()

	services := &etl.Services{
		Listing:     stubListing{items: []core.SourceItem{{ID: "v1", Title: "One"}, {ID: "v2", Title: "Two"}}},
		Transcripts: stubTranscripts{},
		Chapters:    stubChapters{},
	}

	stored, dropped, err := corpus.RunETL(ctx, []string{"playlist"}, storage.ByName("lessons"), services,
		etl.WithRetryPolicy(0, 2.0, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, stored)
	assert.Zero(t, dropped)

	documents, err := corpus.Documents().GetAll(ctx, storage.ByName("lessons"))
	require.NoError(t, err)
	require.Len(t, documents, 2)
	assert.Contains(t, documents[0].Text, "transcript of v1")
	assert.Contains(t, documents[1].Text, "transcript of v2")
}
