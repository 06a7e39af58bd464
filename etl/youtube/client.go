package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/poiesic/corpusqa/core"
	"github.com/poiesic/corpusqa/etl"
)

const (
	defaultMetadataURL   = "https://yt.lemnoslife.com"
	defaultTranscriptURL = "https://video.google.com/timedtext"
	defaultLanguage      = "en"
	defaultTimeout       = 30 * time.Second
)

// Client fetches playlists, chapter markers, and transcripts from the
// YouTube operational and timedtext APIs. It implements the etl
// collaborator interfaces ListingService, ChapterService, and
// TranscriptService.
type Client struct {
	metadataURL   string
	transcriptURL string
	language      string
	httpClient    *http.Client
	logger        *slog.Logger
}

var (
	_ etl.ListingService    = (*Client)(nil)
	_ etl.ChapterService    = (*Client)(nil)
	_ etl.TranscriptService = (*Client)(nil)
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMetadataURL overrides the metadata API base URL.
func WithMetadataURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.metadataURL = baseURL
	}
}

// WithTranscriptURL overrides the timedtext endpoint URL.
func WithTranscriptURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.transcriptURL = baseURL
	}
}

// WithLanguage sets the transcript language code. Default is "en".
func WithLanguage(lang string) ClientOption {
	return func(c *Client) {
		c.language = lang
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a client for the public YouTube metadata endpoints.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		metadataURL:   defaultMetadataURL,
		transcriptURL: defaultTranscriptURL,
		language:      defaultLanguage,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		logger:        slog.Default().With("component", "youtube-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type playlistResponse struct {
	Items []struct {
		Snippet struct {
			Title      string `json:"title"`
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

// ListItems expands a playlist into its videos.
func (c *Client) ListItems(ctx context.Context, containerID string) ([]core.SourceItem, error) {
	query := url.Values{"playlistId": {containerID}, "part": {"snippet"}}

	var response playlistResponse
	if err := c.getJSON(ctx, "/playlistItems", query, &response); err != nil {
		return nil, fmt.Errorf("listing playlist %s: %w", containerID, err)
	}

	items := make([]core.SourceItem, 0, len(response.Items))
	for _, item := range response.Items {
		items = append(items, core.SourceItem{
			ID:    item.Snippet.ResourceID.VideoID,
			Title: item.Snippet.Title,
		})
	}

	c.logger.Debug("listed playlist", "playlist", containerID, "items", len(items))
	return items, nil
}

type chaptersResponse struct {
	Items []struct {
		Chapters struct {
			Chapters []struct {
				Time  float64 `json:"time"`
				Title string  `json:"title"`
			} `json:"chapters"`
		} `json:"chapters"`
	} `json:"items"`
}

// GetChapters fetches the chapter markers of one video. Returns
// core.ErrNoChapters when the video has none; the orchestrator's retry
// policy treats that like any other per-item failure.
func (c *Client) GetChapters(ctx context.Context, sourceID string) ([]core.ChapterMarker, error) {
	query := url.Values{"id": {sourceID}, "part": {"chapters"}}

	var response chaptersResponse
	if err := c.getJSON(ctx, "/videos", query, &response); err != nil {
		return nil, fmt.Errorf("fetching chapters for %s: %w", sourceID, err)
	}

	if len(response.Items) == 0 {
		return nil, fmt.Errorf("video %s: %w", sourceID, core.ErrNoChapters)
	}

	raw := response.Items[0].Chapters.Chapters
	if len(raw) == 0 {
		return nil, fmt.Errorf("video %s: %w", sourceID, core.ErrNoChapters)
	}

	chapters := make([]core.ChapterMarker, 0, len(raw))
	for _, chapter := range raw {
		chapters = append(chapters, core.ChapterMarker{Time: chapter.Time, Title: chapter.Title})
	}
	return chapters, nil
}

type timedText struct {
	Texts []struct {
		Start float64 `xml:"start,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

// GetTranscript fetches the timedtext transcript of one video as ordered
// segments.
func (c *Client) GetTranscript(ctx context.Context, sourceID string) ([]core.TranscriptSegment, error) {
	query := url.Values{"lang": {c.language}, "v": {sourceID}}

	body, err := c.get(ctx, c.transcriptURL, query)
	if err != nil {
		return nil, fmt.Errorf("fetching transcript for %s: %w", sourceID, err)
	}

	var transcript timedText
	if err := xml.Unmarshal(body, &transcript); err != nil {
		return nil, fmt.Errorf("decoding transcript for %s: %w", sourceID, err)
	}

	segments := make([]core.TranscriptSegment, 0, len(transcript.Texts))
	for _, text := range transcript.Texts {
		segments = append(segments, core.TranscriptSegment{StartTime: text.Start, Text: text.Body})
	}

	c.logger.Debug("fetched transcript", "video", sourceID, "segments", len(segments))
	return segments, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.get(ctx, c.metadataURL+path, query)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (c *Client) get(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s from %s", response.Status, rawURL)
	}

	return io.ReadAll(response.Body)
}
