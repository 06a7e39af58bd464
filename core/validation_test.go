package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateChapters(t *testing.T) {
	t.Run("empty sequence", func(t *testing.T) {
		err := ValidateChapters(nil)
		assert.ErrorIs(t, err, ErrNoChapters)
	})

	t.Run("single marker", func(t *testing.T) {
		err := ValidateChapters([]ChapterMarker{{Time: 0, Title: "Intro"}})
		assert.NoError(t, err)
	})

	t.Run("sorted markers", func(t *testing.T) {
		err := ValidateChapters([]ChapterMarker{
			{Time: 0, Title: "Intro"},
			{Time: 42.5, Title: "Tuning"},
			{Time: 42.5, Title: "Tuning continued"}, // equal times allowed
			{Time: 300, Title: "Chords"},
		})
		assert.NoError(t, err)
	})

	t.Run("unsorted markers", func(t *testing.T) {
		err := ValidateChapters([]ChapterMarker{
			{Time: 100, Title: "Chords"},
			{Time: 50, Title: "Tuning"},
		})
		assert.ErrorIs(t, err, ErrUnsortedChapters)
	})
}

func TestValidateDocument(t *testing.T) {
	t.Run("nil document", func(t *testing.T) {
		assert.ErrorIs(t, ValidateDocument(nil), ErrInvalidDocument)
	})

	t.Run("missing source", func(t *testing.T) {
		doc := &Document{Text: "something"}
		err := ValidateDocument(doc)
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.ErrorIs(t, err, ErrEmptySource)
	})

	t.Run("empty text is valid", func(t *testing.T) {
		doc := NewDocument("", DocMetadata{Source: "https://example.com?v=1"})
		assert.NoError(t, ValidateDocument(doc))
	})
}
