package badger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/corpusqa/core"
	"github.com/poiesic/corpusqa/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
// Collections are key namespaces; insertion order is materialized with
// a per-collection position sequence.
type DocumentRepository struct {
	backend *Backend
	logger  *slog.Logger

	mu   sync.Mutex
	seqs map[string]*badger.Sequence
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository over an open
// backend. The repository takes ownership of the backend; Close closes
// it.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	return &DocumentRepository{
		backend: backend,
		logger:  slog.Default().With("component", "storage"),
		seqs:    make(map[string]*badger.Sequence),
	}, nil
}

// Close releases the position sequences and closes the backend.
func (r *DocumentRepository) Close() error {
	r.mu.Lock()
	for name, seq := range r.seqs {
		seq.Release()
		delete(r.seqs, name)
	}
	r.mu.Unlock()
	return r.backend.Close()
}

// BulkInsert writes documents to a collection in batches, preserving
// submission order. Each batch is one transaction; on error, batches
// committed before the failure remain written and the count reflects
// them.
func (r *DocumentRepository) BulkInsert(ctx context.Context, collection storage.Selector, documents []*core.Document) (int, error) {
	c, err := collection.Resolve()
	if err != nil {
		return 0, err
	}
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	seq, err := r.seq(c.Name())
	if err != nil {
		return 0, err
	}

	inserted := 0
	for start := 0; start < len(documents); start += storage.BulkBatchSize {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}

		end := start + storage.BulkBatchSize
		if end > len(documents) {
			end = len(documents)
		}
		batch := documents[start:end]

		err := r.backend.WithTx(func(tx *badger.Txn) error {
			for _, document := range batch {
				position, err := seq.Next()
				if err != nil {
					return err
				}
				key := makeDocumentKey(c.Name(), position)
				if err := tx.Set(key, storage.MarshalDocument(document)); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return inserted, err
		}
		inserted += len(batch)
	}

	r.logger.Info("bulk inserted documents", "collection", c.Name(), "count", inserted)
	return inserted, nil
}

// GetAll retrieves every document in a collection, in insertion order.
func (r *DocumentRepository) GetAll(ctx context.Context, collection storage.Selector) ([]*core.Document, error) {
	c, err := collection.Resolve()
	if err != nil {
		return nil, err
	}

	var documents []*core.Document
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(c.Name())
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var document *core.Document
			err := iter.Item().Value(func(val []byte) error {
				var err error
				document, err = storage.UnmarshalDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			documents = append(documents, document)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	if documents == nil {
		documents = []*core.Document{}
	}
	return documents, nil
}

// Count returns the number of documents in a collection.
func (r *DocumentRepository) Count(ctx context.Context, collection storage.Selector) (int, error) {
	c, err := collection.Resolve()
	if err != nil {
		return 0, err
	}

	count := 0
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(c.Name())
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Drop removes a collection, its documents, and its position sequence.
func (r *DocumentRepository) Drop(ctx context.Context, collection storage.Selector) error {
	c, err := collection.Resolve()
	if err != nil {
		return err
	}

	r.mu.Lock()
	if seq, ok := r.seqs[c.Name()]; ok {
		seq.Release()
		delete(r.seqs, c.Name())
	}
	r.mu.Unlock()

	err = r.backend.DropPrefix(
		makeCollectionPrefix(c.Name()),
		[]byte(documentSeqName(c.Name())),
	)
	if err != nil {
		return err
	}

	r.logger.Info("dropped collection", "collection", c.Name())
	return nil
}

// seq returns the position sequence for a collection, creating it on
// first use.
func (r *DocumentRepository) seq(collection string) (*badger.Sequence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seq, ok := r.seqs[collection]; ok {
		return seq, nil
	}
	seq, err := r.backend.GetSequence(documentSeqName(collection))
	if err != nil {
		return nil, err
	}
	r.seqs[collection] = seq
	return seq, nil
}
