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


package core

import "fmt"

// ValidateChapters validates a chapter marker sequence before document
// assembly.
//
// Validation rules:
//   - At least one marker must be present
//   - Markers must be sorted ascending by time
//
// NOT validated:
//   - Titles (a chapter may be untitled)
//   - Time 0 for the first marker (sources may start mid-stream)
func ValidateChapters(chapters []ChapterMarker) error {
	if len(chapters) == 0 {
		return ErrNoChapters
	}
	for i := 1; i < len(chapters); i++ {
		if chapters[i].Time < chapters[i-1].Time {
			return fmt.Errorf("%w: marker %d at %.2f precedes marker %d at %.2f",
				ErrUnsortedChapters, i, chapters[i].Time, i-1, chapters[i-1].Time)
		}
	}
	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Metadata.Source must not be empty
//
// NOT validated:
//   - Text (empty chapters are kept; a chapter may contain no speech)
//   - ID (assigned by NewDocument from content)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.Metadata.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptySource)
	}
	return nil
}
