package core

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated with content-based hashing so that re-running an
// extraction over the same source produces the same IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SourceItem identifies one raw content unit, e.g. a single video in a
// playlist. Items are immutable once listed.
type SourceItem struct {
	ID    string
	Title string
}

// TranscriptSegment is one timestamped piece of transcript text, as
// returned by a transcript service. Segments are ordered by StartTime
// and never mutated.
type TranscriptSegment struct {
	StartTime float64
	Text      string
}

// ChapterMarker is a timestamp + title boundary used to segment a
// transcript into topical documents. Markers are sorted ascending by
// Time; the last marker's implicit end time is +Inf.
type ChapterMarker struct {
	Time  float64
	Title string
}

// DocMetadata carries the provenance of a document: where it came from
// and how it is titled. Every chunk split from a document inherits a
// value copy of this metadata.
type DocMetadata struct {
	// Source is a URL pointing at the chapter start, e.g.
	// "https://www.youtube.com/watch?v=abc&t=120s".
	Source string
	// Title is the title of the source item.
	Title string
	// ChapterTitle is the title of the chapter within the source item.
	ChapterTitle string
	// FullTitle is "{Title} - {ChapterTitle}".
	FullTitle string
}

// Document is one chapter's worth of transcript text plus provenance.
// Its text is the concatenation, in segment order, of all transcript
// segments whose start time falls in the chapter's half-open window.
// Documents with empty text are valid (a chapter may contain no speech).
type Document struct {
	ID       ID
	Text     string
	Metadata DocMetadata
}

// NewDocument builds a Document and assigns its content-based ID.
func NewDocument(text string, metadata DocMetadata) *Document {
	return &Document{
		ID:       IDFromContent(metadata.Source + "\x00" + text),
		Text:     text,
		Metadata: metadata,
	}
}

// Chunk is a token-bounded slice of a document's text, the atomic unit
// for embedding and retrieval. Metadata is a value copy of the parent
// document's metadata; chunks carry no positional offset.
type Chunk struct {
	Text     string
	Metadata DocMetadata
}

// Answer is the result of one question against the corpus. Sources is
// the ordered, de-duplicated list of source URLs of the chunks supplied
// to the completion service. Answers are derived per query and never
// persisted.
type Answer struct {
	Text    string
	Sources []string
}

// FullTitle derives the combined title used in document metadata.
func FullTitle(title, chapterTitle string) string {
	return fmt.Sprintf("%s - %s", title, chapterTitle)
}
