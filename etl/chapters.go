package etl

import (
	"fmt"
	"strings"

	"github.com/poiesic/corpusqa/core"
)

// watchURLFormat builds the canonical URL of a source item. The chapter
// start time is appended as a query parameter so citations land on the
// right moment of the recording.
const (
	watchURLFormat   = "https://www.youtube.com/watch?v=%s"
	startParamFormat = "&t=%ds"
)

// BuildDocuments turns a raw transcript plus chapter markers into one
// self-contained document per chapter.
//
// For each marker i the half-open window [chapters[i].Time,
// chapters[i+1].Time) selects the transcript segments belonging to that
// chapter; the last window is unbounded above. Segment texts are joined
// with a single space, in segment order, then trimmed of leading and
// trailing whitespace. Membership is decided on the raw start time, not
// the trimmed text. A chapter with no segments yields a document with
// empty text, which is kept.
//
// Returns core.ErrNoChapters if the marker sequence is empty.
func BuildDocuments(chapters []core.ChapterMarker, segments []core.TranscriptSegment, sourceID, title string) ([]*core.Document, error) {
	if err := core.ValidateChapters(chapters); err != nil {
		return nil, err
	}

	baseURL := fmt.Sprintf(watchURLFormat, sourceID)
	documents := make([]*core.Document, 0, len(chapters))

	for i, chapter := range chapters {
		end, bounded := chapterEnd(chapters, i)

		var parts []string
		for _, segment := range segments {
			if segment.StartTime < chapter.Time {
				continue
			}
			if bounded && segment.StartTime >= end {
				continue
			}
			parts = append(parts, segment.Text)
		}

		text := strings.TrimSpace(strings.Join(parts, " "))
		metadata := core.DocMetadata{
			Source:       baseURL + fmt.Sprintf(startParamFormat, int64(chapter.Time)),
			Title:        title,
			ChapterTitle: chapter.Title,
			FullTitle:    core.FullTitle(title, chapter.Title),
		}

		documents = append(documents, core.NewDocument(text, metadata))
	}

	return documents, nil
}

// chapterEnd returns the exclusive end time of chapter i. The last
// chapter has no end; bounded is false in that case.
func chapterEnd(chapters []core.ChapterMarker, i int) (end float64, bounded bool) {
	if i >= len(chapters)-1 {
		return 0, false
	}
	return chapters[i+1].Time, true
}
