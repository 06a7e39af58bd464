package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/corpusqa/core"
)

func TestDocumentSerialization_RoundTrip(t *testing.T) {
	document := core.NewDocument(
		"the D chord is formed by placing three fingers",
		core.DocMetadata{
			Source:       "https://www.youtube.com/watch?v=abc&t=120s",
			Title:        "Chords",
			ChapterTitle: "D major",
			FullTitle:    "Chords - D major",
		},
	)

	decoded, err := UnmarshalDocument(MarshalDocument(document))
	require.NoError(t, err)
	assert.Equal(t, document, decoded)
}

func TestDocumentSerialization_EmptyText(t *testing.T) {
	document := core.NewDocument("", core.DocMetadata{Source: "u1"})

	decoded, err := UnmarshalDocument(MarshalDocument(document))
	require.NoError(t, err)
	assert.Equal(t, document, decoded)
}

func TestUnmarshalDocument_Truncated(t *testing.T) {
	document := core.NewDocument("some text", core.DocMetadata{Source: "u1"})
	data := MarshalDocument(document)

	_, err := UnmarshalDocument(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestIDSerialization_RoundTrip(t *testing.T) {
	id := core.IDFromContent("some content")

	decoded, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestSelector_Resolve(t *testing.T) {
	t.Run("by name", func(t *testing.T) {
		c, err := ByName("transcripts").Resolve()
		require.NoError(t, err)
		assert.Equal(t, "transcripts", c.Name())
	})

	t.Run("zero selector uses default", func(t *testing.T) {
		c, err := Selector{}.Resolve()
		require.NoError(t, err)
		assert.Equal(t, DefaultCollection, c.Name())
	})

	t.Run("blank name uses default", func(t *testing.T) {
		c, err := ByName("  ").Resolve()
		require.NoError(t, err)
		assert.Equal(t, DefaultCollection, c.Name())
	})

	t.Run("by handle", func(t *testing.T) {
		c, err := ByName("transcripts").Resolve()
		require.NoError(t, err)

		resolved, err := ByHandle(c).Resolve()
		require.NoError(t, err)
		assert.Equal(t, c, resolved)
	})

	t.Run("separator in name rejected", func(t *testing.T) {
		_, err := ByName("a:b").Resolve()
		assert.ErrorIs(t, err, ErrInvalidCollection)
	})
}
