package splitter

import (
	"fmt"
	"log/slog"

	"github.com/pkoukk/tiktoken-go"
	"github.com/poiesic/corpusqa/core"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultChunkSize is the token budget of one chunk.
	DefaultChunkSize = 500
	// DefaultChunkOverlap is the number of tokens repeated across
	// adjacent chunks of one document so nothing semantic is lost at a
	// boundary.
	DefaultChunkOverlap = 100
	// DefaultEncoding is the tiktoken encoding used to measure chunks.
	DefaultEncoding = "cl100k_base"
)

// Splitter deterministically splits document text into overlapping
// token-bounded chunks sized for embedding. Splitting is recursive over
// progressively finer separators (paragraph, line, word) so chunks stay
// under the token budget while cutting on natural boundaries.
type Splitter struct {
	chunkSize         int
	chunkOverlap      int
	encoding          string
	allowedSpecial    []string
	disallowedSpecial []string
	lenFunc           func(string) int
	logger            *slog.Logger
}

// Option configures a Splitter.
type Option func(*Splitter) error

// WithChunkSize sets the per-chunk token budget.
func WithChunkSize(size int) Option {
	return func(s *Splitter) error {
		if size < 1 {
			return ErrInvalidChunkSize
		}
		s.chunkSize = size
		return nil
	}
}

// WithChunkOverlap sets the number of tokens repeated across adjacent
// chunks of one document.
func WithChunkOverlap(overlap int) Option {
	return func(s *Splitter) error {
		if overlap < 0 {
			return ErrInvalidChunkOverlap
		}
		s.chunkOverlap = overlap
		return nil
	}
}

// WithEncoding sets the tiktoken encoding used to measure chunk lengths.
func WithEncoding(encoding string) Option {
	return func(s *Splitter) error {
		s.encoding = encoding
		return nil
	}
}

// WithSpecialTokenPolicy sets which special-token sequences the
// tokenizer accepts in corpus text. Transcripts occasionally contain
// reserved sequences verbatim; both index build and query allow all of
// them by default.
func WithSpecialTokenPolicy(allowed, disallowed []string) Option {
	return func(s *Splitter) error {
		s.allowedSpecial = allowed
		s.disallowedSpecial = disallowed
		return nil
	}
}

// WithLenFunc overrides the token length function. Intended for tests
// that must not depend on tiktoken's downloaded encodings.
func WithLenFunc(lenFunc func(string) int) Option {
	return func(s *Splitter) error {
		s.lenFunc = lenFunc
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Splitter) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSplitter creates a splitter with the default token budget (500
// tokens per chunk, 100 tokens of overlap, cl100k_base encoding, all
// special tokens allowed).
func NewSplitter(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		chunkSize:         DefaultChunkSize,
		chunkOverlap:      DefaultChunkOverlap,
		encoding:          DefaultEncoding,
		allowedSpecial:    []string{"all"},
		disallowedSpecial: []string{},
		logger:            slog.Default().With("component", "splitter"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.chunkOverlap >= s.chunkSize {
		return nil, ErrOverlapExceedsSize
	}

	if s.lenFunc == nil {
		encoder, err := tiktoken.GetEncoding(s.encoding)
		if err != nil {
			return nil, fmt.Errorf("loading encoding %s: %w", s.encoding, err)
		}
		allowed, disallowed := s.allowedSpecial, s.disallowedSpecial
		s.lenFunc = func(text string) int {
			return len(encoder.Encode(text, allowed, disallowed))
		}
	}

	return s, nil
}

// Split splits each document's text into chunks and returns the chunk
// texts alongside their metadata, as parallel slices of equal length.
// Chunk order follows document order, then intra-document split order.
// Every chunk of one document carries a value copy of that document's
// metadata.
func (s *Splitter) Split(documents []*core.Document) ([]string, []core.DocMetadata, error) {
	split := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(s.chunkSize),
		textsplitter.WithChunkOverlap(s.chunkOverlap),
		textsplitter.WithLenFunc(s.lenFunc),
	)

	var texts []string
	var metadatas []core.DocMetadata

	for _, document := range documents {
		chunks, err := split.SplitText(document.Text)
		if err != nil {
			return nil, nil, fmt.Errorf("splitting document %q: %w", document.Metadata.FullTitle, err)
		}

		for _, chunk := range chunks {
			texts = append(texts, chunk)
			metadatas = append(metadatas, document.Metadata)
		}
	}

	s.logger.Debug("split documents into chunks", "documents", len(documents), "chunks", len(texts))
	return texts, metadatas, nil
}
