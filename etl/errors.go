package etl

import "errors"

var (
	// ErrInvalidMaxRetries is returned when a negative retry count is configured.
	ErrInvalidMaxRetries = errors.New("max retries cannot be negative")

	// ErrTranscriptServiceRequired is returned when a transcript service is not provided.
	ErrTranscriptServiceRequired = errors.New("transcript service required")

	// ErrChapterServiceRequired is returned when a chapter service is not provided.
	ErrChapterServiceRequired = errors.New("chapter service required")
)
