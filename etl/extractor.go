package etl

import (
	"context"
	"log/slog"

	"github.com/poiesic/corpusqa/core"
)

// Extractor turns one source item into its chaptered documents by
// combining the transcript and chapter-metadata services.
type Extractor struct {
	transcripts TranscriptService
	chapters    ChapterService
	logger      *slog.Logger
}

// NewExtractor creates an extractor over the given collaborator services.
func NewExtractor(transcripts TranscriptService, chapters ChapterService) (*Extractor, error) {
	if transcripts == nil {
		return nil, ErrTranscriptServiceRequired
	}
	if chapters == nil {
		return nil, ErrChapterServiceRequired
	}
	return &Extractor{
		transcripts: transcripts,
		chapters:    chapters,
		logger:      slog.Default().With("component", "extractor"),
	}, nil
}

// ExtractItem fetches the transcript and chapters of one item and builds
// its documents. Any failure, including core.ErrNoChapters, is returned
// to the caller; the orchestrator decides whether to retry or drop.
func (e *Extractor) ExtractItem(ctx context.Context, item core.SourceItem) ([]*core.Document, error) {
	e.logger.Debug("extracting source item", "id", item.ID, "title", item.Title)

	segments, err := e.transcripts.GetTranscript(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	chapters, err := e.chapters.GetChapters(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	documents, err := BuildDocuments(chapters, segments, item.ID, item.Title)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("extracted documents", "id", item.ID, "documents", len(documents))
	return documents, nil
}
