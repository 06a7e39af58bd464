// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package etl

import (
	"context"

	"github.com/poiesic/corpusqa/core"
)

// TranscriptService fetches the timestamped transcript of one source item.
// Implementations must return segments ordered by start time.
type TranscriptService interface {
	GetTranscript(ctx context.Context, sourceID string) ([]core.TranscriptSegment, error)
}

// ChapterService fetches the chapter markers of one source item.
// Implementations must return markers sorted ascending by time and fail
// with core.ErrNoChapters when the item has none.
type ChapterService interface {
	GetChapters(ctx context.Context, sourceID string) ([]core.ChapterMarker, error)
}

// ListingService expands a container identifier (e.g. a playlist) into
// the source items it holds.
type ListingService interface {
	ListItems(ctx context.Context, containerID string) ([]core.SourceItem, error)
}

// Services bundles the external collaborators of one extraction run.
// One client may implement all three.
type Services struct {
	Listing     ListingService
	Transcripts TranscriptService
	Chapters    ChapterService
}
