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

import "errors"

// Domain validation errors
var (
	// ErrNoChapters indicates a source item has no chapter markers.
	// Extraction of that item cannot proceed without them.
	ErrNoChapters = errors.New("no chapters found")

	// ErrUnsortedChapters indicates chapter markers are not sorted
	// ascending by time.
	ErrUnsortedChapters = errors.New("chapter markers not sorted by time")

	// ErrEmptySourceID indicates a source item has an empty identifier.
	ErrEmptySourceID = errors.New("source id cannot be empty")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptySource indicates document metadata has no source URL.
	ErrEmptySource = errors.New("document source cannot be empty")
)
