package storage

import (
	"context"

	"github.com/poiesic/corpusqa/core"
)

// BulkBatchSize is the number of documents written per storage request.
// Bulk writes are chunked to bound request size; a failed batch is
// retried by the caller, not internally.
const BulkBatchSize = 250

// DocumentRepository provides long-term storage for extracted documents.
// Implementations must be thread-safe and support concurrent access.
type DocumentRepository interface {
	// BulkInsert writes documents to a collection in batches of
	// BulkBatchSize, preserving submission order. Returns the number of
	// documents written; on error, documents from batches before the
	// failing one remain written.
	BulkInsert(ctx context.Context, collection Selector, documents []*core.Document) (int, error)

	// GetAll retrieves every document in a collection, in insertion
	// order. An empty or unknown collection yields an empty slice.
	GetAll(ctx context.Context, collection Selector) ([]*core.Document, error)

	// Count returns the number of documents in a collection.
	Count(ctx context.Context, collection Selector) (int, error)

	// Drop removes a collection and all its documents. Dropping an
	// absent collection is not an error.
	Drop(ctx context.Context, collection Selector) error

	// Close closes the storage backend and releases resources.
	Close() error
}
