package etl

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/corpusqa/core"
)

// Result holds the outcome of processing one item: either a value or the
// error that exhausted its retries. Failures are carried as values so one
// item's exhaustion never aborts its siblings.
type Result[T any] struct {
	Value T
	Err   error
}

// Failed reports whether the item's processing failed after all retries.
func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// Orchestrator fans a list of items out to a worker pool, applies a
// bounded retry policy per item, and fans results back in preserving
// submission order.
type Orchestrator struct {
	pool         *ants.Pool
	maxRetries   int
	coefficient  float64
	initialDelay time.Duration
	logger       *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithPoolSize sets the worker pool size for concurrent extraction.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}

		if o.pool != nil {
			o.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithRetryPolicy sets the per-item retry policy. An item is retried up
// to maxRetries times after its first failure, with delay
// initialDelay * coefficient^attempt before each retry.
// Default is 3 retries, coefficient 2.0, initial delay 5s.
func WithRetryPolicy(maxRetries int, coefficient float64, initialDelay time.Duration) Option {
	return func(o *Orchestrator) error {
		if maxRetries < 0 {
			return ErrInvalidMaxRetries
		}
		o.maxRetries = maxRetries
		o.coefficient = coefficient
		o.initialDelay = initialDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a new extraction orchestrator.
func NewOrchestrator(opts ...Option) (*Orchestrator, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		pool:         pool,
		maxRetries:   3,
		coefficient:  2.0,
		initialDelay: 5 * time.Second,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// Release releases the worker pool.
// The orchestrator should not be used after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}

// FanOut applies fn to every item concurrently on the orchestrator's
// worker pool. Each item is retried per the orchestrator's retry policy;
// once retries are exhausted the item's result carries the failure
// instead of raising. The returned slice is indexed by submission order,
// not completion order.
func FanOut[T, R any](ctx context.Context, o *Orchestrator, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		submitErr := o.pool.Submit(func() {
			defer wg.Done()

			var value R
			err := RetryWithBackoff(ctx, func() error {
				v, fnErr := fn(ctx, item)
				if fnErr != nil {
					return fnErr
				}
				value = v
				return nil
			}, o.maxRetries, o.coefficient, o.initialDelay)

			results[i] = Result[R]{Value: value, Err: err}
		})
		if submitErr != nil {
			results[i] = Result[R]{Err: submitErr}
			wg.Done()
		}
	}
	wg.Wait()

	return results
}

// Collect partitions per-item results: failures are counted and dropped,
// successful slices are flattened into one sequence preserving the
// relative order in which their items were submitted.
func Collect[R any](results []Result[[]R]) (flattened []R, dropped int) {
	for _, result := range results {
		if result.Failed() {
			dropped++
			continue
		}
		flattened = append(flattened, result.Value...)
	}
	return flattened, dropped
}

// ListAll expands container identifiers into source items, concurrently
// and best effort. Containers whose listing exhausts its retries are
// dropped; the count of dropped containers is returned alongside the
// flattened items.
func (o *Orchestrator) ListAll(ctx context.Context, listing ListingService, containerIDs []string) ([]core.SourceItem, int) {
	results := FanOut(ctx, o, containerIDs, func(ctx context.Context, id string) ([]core.SourceItem, error) {
		return listing.ListItems(ctx, id)
	})

	items, dropped := Collect(results)
	if dropped > 0 {
		o.logger.Warn("dropped containers after exhausting retries", "dropped", dropped, "total", len(containerIDs))
	}
	return items, dropped
}

// ExtractAll extracts documents from source items, concurrently and best
// effort. Items whose extraction exhausts its retries are dropped; the
// count of dropped items is returned alongside the flattened documents.
func (o *Orchestrator) ExtractAll(ctx context.Context, extractor *Extractor, items []core.SourceItem) ([]*core.Document, int) {
	results := FanOut(ctx, o, items, func(ctx context.Context, item core.SourceItem) ([]*core.Document, error) {
		return extractor.ExtractItem(ctx, item)
	})

	documents, dropped := Collect(results)
	if dropped > 0 {
		o.logger.Warn("dropped items after exhausting retries", "dropped", dropped, "total", len(items))
	}
	return documents, dropped
}
