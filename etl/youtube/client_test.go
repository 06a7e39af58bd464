package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/corpusqa/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/playlistItems", r.URL.Path)
		assert.Equal(t, "pl42", r.URL.Query().Get("playlistId"))
		w.Write([]byte(`{"items":[
			{"snippet":{"title":"Lesson 1","resourceId":{"videoId":"v1"}}},
			{"snippet":{"title":"Lesson 2","resourceId":{"videoId":"v2"}}}
		]}`))
	}))
	defer server.Close()

	client := NewClient(WithMetadataURL(server.URL))
	items, err := client.ListItems(context.Background(), "pl42")
	require.NoError(t, err)
	assert.Equal(t, []core.SourceItem{
		{ID: "v1", Title: "Lesson 1"},
		{ID: "v2", Title: "Lesson 2"},
	}, items)
}

func TestGetChapters(t *testing.T) {
	t.Run("chapters present", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/videos", r.URL.Path)
			w.Write([]byte(`{"items":[{"chapters":{"chapters":[
				{"time":0,"title":"Intro"},
				{"time":61.5,"title":"Tuning"}
			]}}]}`))
		}))
		defer server.Close()

		client := NewClient(WithMetadataURL(server.URL))
		chapters, err := client.GetChapters(context.Background(), "v1")
		require.NoError(t, err)
		assert.Equal(t, []core.ChapterMarker{
			{Time: 0, Title: "Intro"},
			{Time: 61.5, Title: "Tuning"},
		}, chapters)
	})

	t.Run("no chapters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items":[{"chapters":{"chapters":[]}}]}`))
		}))
		defer server.Close()

		client := NewClient(WithMetadataURL(server.URL))
		_, err := client.GetChapters(context.Background(), "v1")
		assert.ErrorIs(t, err, core.ErrNoChapters)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(WithMetadataURL(server.URL))
		_, err := client.GetChapters(context.Background(), "v1")
		assert.Error(t, err)
	})
}

func TestGetTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.URL.Query().Get("lang"))
		assert.Equal(t, "v1", r.URL.Query().Get("v"))
		w.Write([]byte(`<transcript>
			<text start="1.2" dur="3.1">welcome to the course</text>
			<text start="4.5" dur="2.0">let us begin</text>
		</transcript>`))
	}))
	defer server.Close()

	client := NewClient(WithTranscriptURL(server.URL))
	segments, err := client.GetTranscript(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, []core.TranscriptSegment{
		{StartTime: 1.2, Text: "welcome to the course"},
		{StartTime: 4.5, Text: "let us begin"},
	}, segments)
}
